package solana

import (
	"context"
	"fmt"
	"sync"

	sol "github.com/gagliardetto/solana-go"

	"github.com/chainsafe/wallet-console/pkg/chain"
)

// Wallet is a keypair wallet. Signing requires a prior Connect.
type Wallet struct {
	key sol.PrivateKey

	mu        sync.RWMutex
	connected bool
}

var _ chain.Wallet = (*Wallet)(nil)

// NewWallet wraps a 64-byte ed25519 private key.
func NewWallet(secret []byte) (*Wallet, error) {
	if len(secret) != 64 {
		return nil, fmt.Errorf("invalid solana private key length: expected 64, got %d", len(secret))
	}
	key := make(sol.PrivateKey, len(secret))
	copy(key, secret)
	return &Wallet{key: key}, nil
}

// GenerateKey returns a fresh ed25519 private key.
func GenerateKey() ([]byte, error) {
	key, err := sol.NewRandomPrivateKey()
	if err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	return []byte(key), nil
}

// AddressOf returns the base58 address of a private key.
func AddressOf(secret []byte) string {
	return sol.PrivateKey(secret).PublicKey().String()
}

func (w *Wallet) Kind() chain.Kind { return chain.KindSolana }

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
	return w.key.PublicKey().String()
}

func (w *Wallet) PublicKey() []byte {
	if !w.Connected() {
		return nil
	}
	pk := w.key.PublicKey()
	return pk.Bytes()
}

// SignMessage signs the raw message bytes with ed25519.
func (w *Wallet) SignMessage(_ context.Context, message []byte) ([]byte, error) {
	if !w.Connected() {
		return nil, chain.ErrNotConnected
	}
	sig, err := w.key.Sign(message)
	if err != nil {
		return nil, fmt.Errorf("sign message: %w", err)
	}
	return sig[:], nil
}

// SendTransaction signs a Transfer built by a Solana client and broadcasts it.
func (w *Wallet) SendTransaction(ctx context.Context, client chain.Client, tx chain.Transaction) (string, error) {
	if !w.Connected() {
		return "", chain.ErrNotConnected
	}
	t, ok := tx.(*Transfer)
	if !ok {
		return "", chain.ErrWrongKind
	}
	pub := w.key.PublicKey()
	if !t.payer.Equals(pub) {
		return "", fmt.Errorf("%w: payer %s, wallet %s", chain.ErrWrongSender, t.payer, pub)
	}
	if _, err := t.tx.Sign(func(key sol.PublicKey) *sol.PrivateKey {
		if key.Equals(pub) {
			return &w.key
		}
		return nil
	}); err != nil {
		return "", fmt.Errorf("sign transaction: %w", err)
	}
	t.signed = true
	return client.Broadcast(ctx, t)
}
