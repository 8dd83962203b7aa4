// Package balance holds the wallet balance shared by the console forms.
package balance

import (
	"math/big"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/chainsafe/wallet-console/pkg/amount"
)

// Snapshot is a copy of the balance at one version.
type Snapshot struct {
	// Units is the balance in chain base units. Nil means never fetched.
	Units     *big.Int  `json:"-"`
	Value     string    `json:"value"`
	Symbol    string    `json:"symbol"`
	Network   string    `json:"network"`
	Version   uint64    `json:"version"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}

// Known reports whether the balance was ever set.
func (s Snapshot) Known() bool {
	return s.Units != nil
}

// Tokens returns the balance in whole tokens.
func (s Snapshot) Tokens(decimals int32) decimal.Decimal {
	return amount.FromBaseUnits(s.Units, decimals)
}

// Listener is called after every write with the new snapshot.
type Listener func(Snapshot)

// Balance is a single value with last-write-wins semantics. Every write bumps
// the version, so readers can tell which write they observed.
type Balance struct {
	decimals int32
	symbol   string
	now      func() time.Time

	mu        sync.RWMutex
	units     *big.Int
	network   string
	version   uint64
	updatedAt time.Time
	listeners []Listener
}

// New creates an unknown balance for a token with the given decimals and symbol.
func New(decimals int32, symbol string) *Balance {
	return &Balance{decimals: decimals, symbol: symbol, now: time.Now}
}

// Set overwrites the balance and returns the new version.
func (b *Balance) Set(network string, units *big.Int) uint64 {
	b.mu.Lock()
	if units != nil {
		units = new(big.Int).Set(units)
	}
	b.units = units
	b.network = network
	b.version++
	b.updatedAt = b.now()
	snap := b.snapshotLocked()
	listeners := append([]Listener(nil), b.listeners...)
	b.mu.Unlock()

	for _, l := range listeners {
		l(snap)
	}
	return snap.Version
}

// Clear forgets the balance, for example after the wallet disconnects.
func (b *Balance) Clear() uint64 {
	return b.Set("", nil)
}

// Get returns the current snapshot.
func (b *Balance) Get() Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.snapshotLocked()
}

// Subscribe registers l for future writes.
func (b *Balance) Subscribe(l Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners = append(b.listeners, l)
}

func (b *Balance) snapshotLocked() Snapshot {
	s := Snapshot{
		Symbol:    b.symbol,
		Network:   b.network,
		Version:   b.version,
		UpdatedAt: b.updatedAt,
	}
	if b.units != nil {
		s.Units = new(big.Int).Set(b.units)
		s.Value = amount.Format(amount.FromBaseUnits(b.units, b.decimals))
	}
	return s
}
