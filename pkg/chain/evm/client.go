// Package evm implements the chain contracts on an Ethereum JSON-RPC endpoint.
package evm

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"

	"github.com/chainsafe/wallet-console/internal/metrics"
	"github.com/chainsafe/wallet-console/pkg/chain"
)

const (
	transferGasLimit      = 21000
	defaultPollInterval   = 2 * time.Second
	defaultConfirmTimeout = 2 * time.Minute
)

// ErrTransactionReverted is returned for a mined transaction with a failed receipt.
var ErrTransactionReverted = errors.New("transaction reverted")

// backend is the subset of *ethclient.Client the console uses.
type backend interface {
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	Close()
}

// Config configures a Client.
type Config struct {
	Network        string
	RPCURL         string
	ChainID        int64
	MaxGasPrice    *big.Int
	PollInterval   time.Duration
	ConfirmTimeout time.Duration
}

// Client is a chain.Client backed by an Ethereum node.
type Client struct {
	backend        backend
	network        string
	chainID        *big.Int
	maxGasPrice    *big.Int
	pollInterval   time.Duration
	confirmTimeout time.Duration
	faucet         *Faucet
	logger         *zap.Logger
}

var _ chain.Client = (*Client)(nil)

// NewClient dials cfg.RPCURL. A nil faucet disables airdrops on this network.
func NewClient(ctx context.Context, cfg Config, faucet *Faucet, logger *zap.Logger) (*Client, error) {
	if cfg.ChainID <= 0 {
		return nil, fmt.Errorf("chain id is required for network %q", cfg.Network)
	}
	ec, err := ethclient.DialContext(ctx, cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Ethereum RPC: %w", err)
	}
	c := newClient(ec, cfg, faucet, logger)
	c.logger.Info("Connected to Ethereum",
		zap.String("network", cfg.Network),
		zap.Int64("chain_id", cfg.ChainID),
		zap.String("rpc_url", cfg.RPCURL),
		zap.Bool("faucet", faucet != nil))
	return c, nil
}

func newClient(b backend, cfg Config, faucet *Faucet, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}
	if cfg.ConfirmTimeout <= 0 {
		cfg.ConfirmTimeout = defaultConfirmTimeout
	}
	return &Client{
		backend:        b,
		network:        cfg.Network,
		chainID:        big.NewInt(cfg.ChainID),
		maxGasPrice:    cfg.MaxGasPrice,
		pollInterval:   cfg.PollInterval,
		confirmTimeout: cfg.ConfirmTimeout,
		faucet:         faucet,
		logger:         logger,
	}
}

func (c *Client) Kind() chain.Kind { return chain.KindEVM }

func (c *Client) Network() string { return c.network }

// ChainID returns the chain ID transactions are signed for.
func (c *Client) ChainID() *big.Int { return new(big.Int).Set(c.chainID) }

// RequestAirdrop sends amount wei from the configured faucet account.
func (c *Client) RequestAirdrop(ctx context.Context, account string, amount *big.Int) (string, error) {
	if c.faucet == nil {
		return "", chain.ErrAirdropUnavailable
	}
	return c.faucet.Drip(ctx, c, account, amount)
}

// ConfirmTransaction polls for the receipt until it is mined or the confirm timeout elapses.
func (c *Client) ConfirmTransaction(ctx context.Context, txID string) error {
	hash := common.HexToHash(txID)

	ctx, cancel := context.WithTimeout(ctx, c.confirmTimeout)
	defer cancel()

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		receipt, err := c.backend.TransactionReceipt(ctx, hash)
		switch {
		case err == nil:
			if receipt.Status == types.ReceiptStatusFailed {
				return fmt.Errorf("%w: %s", ErrTransactionReverted, hash.Hex())
			}
			return nil
		case errors.Is(err, ethereum.NotFound):
		default:
			err = rpcError("transactionReceipt", err)
			if errors.Is(err, chain.ErrRateLimited) {
				return err
			}
			c.logger.Warn("Failed to get transaction receipt", zap.String("tx_hash", hash.Hex()), zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("confirm transaction %s: %w", hash.Hex(), ctx.Err())
		case <-ticker.C:
		}
	}
}

// GetBalance returns the latest balance in wei.
func (c *Client) GetBalance(ctx context.Context, account string) (*big.Int, error) {
	addr, err := parseAddress("account", account)
	if err != nil {
		return nil, err
	}
	bal, err := c.backend.BalanceAt(ctx, addr, nil)
	if err != nil {
		return nil, rpcError("balanceAt", err)
	}
	return bal, nil
}

// NewTransfer builds an unsigned legacy value transfer.
func (c *Client) NewTransfer(ctx context.Context, from, to string, amount *big.Int) (chain.Transaction, error) {
	sender, err := parseAddress("sender", from)
	if err != nil {
		return nil, err
	}
	recipient, err := parseAddress("recipient", to)
	if err != nil {
		return nil, err
	}
	if amount == nil || amount.Sign() <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}

	nonce, err := c.backend.PendingNonceAt(ctx, sender)
	if err != nil {
		return nil, rpcError("pendingNonceAt", err)
	}
	gasPrice, err := c.gasPrice(ctx)
	if err != nil {
		return nil, err
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &recipient,
		Value:    new(big.Int).Set(amount),
		Gas:      transferGasLimit,
		GasPrice: gasPrice,
	})
	return &Transfer{tx: tx, from: sender}, nil
}

func (c *Client) gasPrice(ctx context.Context) (*big.Int, error) {
	gasPrice, err := c.backend.SuggestGasPrice(ctx)
	if err != nil {
		return nil, rpcError("suggestGasPrice", err)
	}
	if c.maxGasPrice != nil && gasPrice.Cmp(c.maxGasPrice) > 0 {
		c.logger.Warn("Suggested gas price exceeds maximum",
			zap.String("suggested", gasPrice.String()),
			zap.String("max", c.maxGasPrice.String()))
		return new(big.Int).Set(c.maxGasPrice), nil
	}
	return gasPrice, nil
}

// Broadcast submits a signed transfer and returns its hash.
func (c *Client) Broadcast(ctx context.Context, tx chain.Transaction) (string, error) {
	t, ok := tx.(*Transfer)
	if !ok {
		return "", chain.ErrWrongKind
	}
	if t.signed == nil {
		return "", fmt.Errorf("transaction is not signed")
	}
	if err := c.backend.SendTransaction(ctx, t.signed); err != nil {
		return "", rpcError("sendTransaction", err)
	}
	return t.signed.Hash().Hex(), nil
}

func (c *Client) Close() {
	c.backend.Close()
}

// Transfer is a native value transfer built by Client.NewTransfer.
type Transfer struct {
	tx     *types.Transaction
	from   common.Address
	signed *types.Transaction
}

func (t *Transfer) Kind() chain.Kind { return chain.KindEVM }

// parseAddress decodes a hex address. The input is kept out of the root cause.
func parseAddress(role, address string) (common.Address, error) {
	if !common.IsHexAddress(address) {
		return common.Address{}, fmt.Errorf("%w: %s %q", chain.ErrInvalidAddress, role, address)
	}
	return common.HexToAddress(address), nil
}

// rpcError counts a failed node call and wraps it as a chain.RPCError carrying
// the HTTP status or JSON-RPC code.
func rpcError(method string, err error) error {
	metrics.RPCErrors.WithLabelValues(string(chain.KindEVM), method).Inc()
	out := &chain.RPCError{Method: method, Err: err}
	var httpErr rpc.HTTPError
	var rpcErr rpc.Error
	switch {
	case errors.As(err, &httpErr):
		out.Code = httpErr.StatusCode
	case errors.As(err, &rpcErr):
		out.Code = rpcErr.ErrorCode()
		out.Message = rpcErr.Error()
	}
	return out
}
