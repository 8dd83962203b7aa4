package evm

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/chainsafe/wallet-console/pkg/chain"
)

// Wallet is a single-key wallet. Signing requires a prior Connect.
type Wallet struct {
	key     *ecdsa.PrivateKey
	address common.Address

	mu        sync.RWMutex
	connected bool
}

var _ chain.Wallet = (*Wallet)(nil)

// NewWallet wraps a 32-byte secp256k1 private key.
func NewWallet(secret []byte) (*Wallet, error) {
	key, err := crypto.ToECDSA(secret)
	if err != nil {
		return nil, fmt.Errorf("failed to load private key: %w", err)
	}
	return &Wallet{key: key, address: crypto.PubkeyToAddress(key.PublicKey)}, nil
}

// GenerateKey returns a fresh secp256k1 private key.
func GenerateKey() ([]byte, error) {
	key, err := crypto.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	return crypto.FromECDSA(key), nil
}

// AddressOf returns the checksummed address of a private key.
func AddressOf(secret []byte) (string, error) {
	key, err := crypto.ToECDSA(secret)
	if err != nil {
		return "", err
	}
	return crypto.PubkeyToAddress(key.PublicKey).Hex(), nil
}

func (w *Wallet) Kind() chain.Kind { return chain.KindEVM }

func (w *Wallet) Connected() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.connected
}

func (w *Wallet) Connect(context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.connected = true
	return nil
}

func (w *Wallet) Disconnect() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.connected = false
}

func (w *Wallet) Address() string {
	if !w.Connected() {
		return ""
	}
	return w.address.Hex()
}

// PublicKey returns the uncompressed secp256k1 public key.
func (w *Wallet) PublicKey() []byte {
	if !w.Connected() {
		return nil
	}
	return crypto.FromECDSAPub(&w.key.PublicKey)
}

// SignMessage produces an EIP-191 personal_sign signature with v in {27, 28}.
func (w *Wallet) SignMessage(_ context.Context, message []byte) ([]byte, error) {
	if !w.Connected() {
		return nil, chain.ErrNotConnected
	}
	return signPersonal(w.key, message)
}

// SendTransaction signs a Transfer for the client's chain ID and broadcasts it.
func (w *Wallet) SendTransaction(ctx context.Context, client chain.Client, tx chain.Transaction) (string, error) {
	if !w.Connected() {
		return "", chain.ErrNotConnected
	}
	t, ok := tx.(*Transfer)
	if !ok {
		return "", chain.ErrWrongKind
	}
	ec, ok := client.(interface{ ChainID() *big.Int })
	if !ok {
		return "", chain.ErrWrongKind
	}
	if t.from != w.address {
		return "", fmt.Errorf("%w: sender %s, wallet %s", chain.ErrWrongSender, t.from.Hex(), w.address.Hex())
	}
	if err := signTransfer(t, w.key, ec.ChainID()); err != nil {
		return "", err
	}
	return client.Broadcast(ctx, t)
}

func signPersonal(key *ecdsa.PrivateKey, message []byte) ([]byte, error) {
	sig, err := crypto.Sign(accounts.TextHash(message), key)
	if err != nil {
		return nil, fmt.Errorf("sign message: %w", err)
	}
	sig[crypto.RecoveryIDOffset] += 27
	return sig, nil
}

func signTransfer(t *Transfer, key *ecdsa.PrivateKey, chainID *big.Int) error {
	signed, err := types.SignTx(t.tx, types.LatestSignerForChainID(chainID), key)
	if err != nil {
		return fmt.Errorf("sign transaction: %w", err)
	}
	t.signed = signed
	return nil
}
