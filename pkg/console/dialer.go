package console

import (
	"context"
	"fmt"
	"maps"
	"math/big"
	"slices"

	"go.uber.org/zap"

	"github.com/chainsafe/wallet-console/pkg/amount"
	"github.com/chainsafe/wallet-console/pkg/chain"
	"github.com/chainsafe/wallet-console/pkg/chain/evm"
	"github.com/chainsafe/wallet-console/pkg/chain/solana"
	"github.com/chainsafe/wallet-console/pkg/config"
	"github.com/chainsafe/wallet-console/pkg/keys"
)

// NewVerifier returns the signature verifier of a chain kind.
func NewVerifier(kind chain.Kind) (chain.Verifier, error) {
	switch kind {
	case chain.KindSolana:
		return solana.Verifier{}, nil
	case chain.KindEVM:
		return evm.Verifier{}, nil
	default:
		return nil, fmt.Errorf("unknown chain kind %q", string(kind))
	}
}

// NewDialer returns a Dialer over the configured networks. Faucets are built
// once here so their recipient windows survive network switches; their keys
// are decrypted with masterKey.
func NewDialer(cfg *config.ChainConfig, masterKey []byte, logger *zap.Logger) (chain.Dialer, error) {
	kind := chain.Kind(cfg.Kind)
	if err := kind.Validate(); err != nil {
		return nil, err
	}

	faucets := make(map[string]*evm.Faucet)
	if kind == chain.KindEVM {
		for name, n := range cfg.Networks {
			if !n.Faucet.Enabled {
				continue
			}
			f, err := newFaucet(n.Faucet, masterKey, logger.Named("faucet").With(zap.String("network", name)))
			if err != nil {
				return nil, fmt.Errorf("network %s: %w", name, err)
			}
			faucets[name] = f
		}
	}

	return chain.DialerFunc(func(ctx context.Context, network string) (chain.Client, error) {
		n, ok := cfg.Network(network)
		if !ok {
			return nil, fmt.Errorf("unknown network %q", network)
		}
		switch kind {
		case chain.KindEVM:
			var maxGas *big.Int
			if n.MaxGasPrice != "" {
				v, ok := new(big.Int).SetString(n.MaxGasPrice, 10)
				if !ok {
					return nil, fmt.Errorf("invalid max_gas_price %q", n.MaxGasPrice)
				}
				maxGas = v
			}
			return evm.NewClient(ctx, evm.Config{
				Network:        network,
				RPCURL:         n.RPCURL,
				ChainID:        n.ChainID,
				MaxGasPrice:    maxGas,
				PollInterval:   cfg.PollInterval,
				ConfirmTimeout: cfg.ConfirmTimeout,
			}, faucets[network], logger)
		default:
			return solana.NewClient(solana.Config{
				Network:        network,
				RPCURL:         n.RPCURL,
				PollInterval:   cfg.PollInterval,
				ConfirmTimeout: cfg.ConfirmTimeout,
			}, logger)
		}
	}), nil
}

func newFaucet(cfg config.FaucetConfig, masterKey []byte, logger *zap.Logger) (*evm.Faucet, error) {
	key, err := keys.Load(cfg.KeystorePath, masterKey)
	if err != nil {
		return nil, fmt.Errorf("load faucet key: %w", err)
	}
	if key.Kind != chain.KindEVM {
		return nil, fmt.Errorf("faucet key is a %s key", key.Kind)
	}
	fc := evm.FaucetConfig{Window: cfg.Window, Entries: cfg.Entries}
	if cfg.MaxAmount != "" {
		d, err := amount.Parse(cfg.MaxAmount)
		if err != nil {
			return nil, fmt.Errorf("invalid faucet max_amount: %w", err)
		}
		if fc.MaxAmount, err = amount.ToBaseUnits(d, chain.KindEVM.Decimals()); err != nil {
			return nil, err
		}
	}
	return evm.NewFaucet(key.Secret, fc, logger)
}

// Networks lists the configured network names in sorted order.
func Networks(cfg *config.ChainConfig) []string {
	return slices.Sorted(maps.Keys(cfg.Networks))
}
