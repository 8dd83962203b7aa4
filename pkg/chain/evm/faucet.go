package evm

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	lru "github.com/hashicorp/golang-lru"
	"go.uber.org/zap"

	"github.com/chainsafe/wallet-console/internal/metrics"
	"github.com/chainsafe/wallet-console/pkg/chain"
)

const (
	defaultFaucetWindow  = 24 * time.Hour
	defaultFaucetEntries = 4096
)

// ErrAboveFaucetMaximum is returned for a drip larger than the configured maximum.
var ErrAboveFaucetMaximum = errors.New("amount exceeds faucet maximum")

// FaucetConfig configures a Faucet.
type FaucetConfig struct {
	// Window is the minimum time between two drips to the same recipient.
	Window time.Duration
	// MaxAmount caps a single drip in wei. Nil means no cap.
	MaxAmount *big.Int
	// Entries bounds the number of recipients remembered.
	Entries int
}

// Faucet funds airdrops on EVM test networks from a single funded key.
type Faucet struct {
	key       *ecdsa.PrivateKey
	address   common.Address
	window    time.Duration
	maxAmount *big.Int
	now       func() time.Time
	logger    *zap.Logger

	mu     sync.Mutex
	recent *lru.Cache
}

// NewFaucet creates a Faucet that signs with secret.
func NewFaucet(secret []byte, cfg FaucetConfig, logger *zap.Logger) (*Faucet, error) {
	key, err := crypto.ToECDSA(secret)
	if err != nil {
		return nil, fmt.Errorf("failed to load faucet key: %w", err)
	}
	if cfg.Window <= 0 {
		cfg.Window = defaultFaucetWindow
	}
	if cfg.Entries <= 0 {
		cfg.Entries = defaultFaucetEntries
	}
	recent, err := lru.New(cfg.Entries)
	if err != nil {
		return nil, fmt.Errorf("create faucet cache: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Faucet{
		key:       key,
		address:   crypto.PubkeyToAddress(key.PublicKey),
		window:    cfg.Window,
		maxAmount: cfg.MaxAmount,
		now:       time.Now,
		logger:    logger,
		recent:    recent,
	}, nil
}

// Address is the faucet's funding account.
func (f *Faucet) Address() string {
	return f.address.Hex()
}

// Drip sends amount wei to recipient through c. A recipient served within the
// window gets chain.ErrRateLimited.
func (f *Faucet) Drip(ctx context.Context, c *Client, recipient string, amount *big.Int) (string, error) {
	addr, err := parseAddress("recipient", recipient)
	if err != nil {
		metrics.FaucetRequests.WithLabelValues("invalid").Inc()
		return "", err
	}
	if f.maxAmount != nil && amount != nil && amount.Cmp(f.maxAmount) > 0 {
		metrics.FaucetRequests.WithLabelValues("invalid").Inc()
		return "", fmt.Errorf("%w: requested %s wei, maximum %s", ErrAboveFaucetMaximum, amount, f.maxAmount)
	}

	key := strings.ToLower(addr.Hex())
	if !f.reserve(key) {
		metrics.FaucetRequests.WithLabelValues("rate_limited").Inc()
		f.logger.Info("Faucet request rate limited", zap.String("recipient", key))
		return "", chain.ErrRateLimited
	}

	txID, err := f.send(ctx, c, recipient, amount)
	if err != nil {
		f.release(key)
		metrics.FaucetRequests.WithLabelValues("failed").Inc()
		return "", err
	}
	metrics.FaucetRequests.WithLabelValues("sent").Inc()
	f.logger.Info("Faucet drip sent",
		zap.String("recipient", key),
		zap.String("amount_wei", amount.String()),
		zap.String("tx_hash", txID))
	return txID, nil
}

func (f *Faucet) send(ctx context.Context, c *Client, recipient string, amount *big.Int) (string, error) {
	tx, err := c.NewTransfer(ctx, f.address.Hex(), recipient, amount)
	if err != nil {
		return "", fmt.Errorf("build faucet transfer: %w", err)
	}
	t := tx.(*Transfer)
	if err := signTransfer(t, f.key, c.chainID); err != nil {
		return "", err
	}
	return c.Broadcast(ctx, t)
}

// reserve records a drip for key unless one happened within the window.
func (f *Faucet) reserve(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := f.now()
	if v, ok := f.recent.Get(key); ok {
		if last, ok := v.(time.Time); ok && now.Sub(last) < f.window {
			return false
		}
	}
	f.recent.Add(key, now)
	return true
}

func (f *Faucet) release(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recent.Remove(key)
}
