// Package reconciler keeps the console balance in step with the chain.
//
// Balances only change through console forms when the wallet is used
// exclusively here. Incoming transfers and activity from other wallets holding
// the same key are caught by re-reading the balance periodically.
package reconciler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/chainsafe/wallet-console/internal/metrics"
	"github.com/chainsafe/wallet-console/pkg/console"
	"github.com/chainsafe/wallet-console/pkg/operation"
)

const defaultReconcileTimeout = 30 * time.Second

// Console is the subset of console.Service the reconciler uses.
type Console interface {
	Wallet(ctx context.Context) (*console.WalletInfo, error)
	Forms(ctx context.Context) ([]operation.View, error)
	RefreshBalance(ctx context.Context) (*console.WalletInfo, error)
}

// Reconciler periodically refreshes the wallet balance.
type Reconciler struct {
	console Console
	logger  *zap.Logger
	timeout time.Duration

	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// New creates a new Reconciler
func New(c Console, logger *zap.Logger) *Reconciler {
	return &Reconciler{
		console: c,
		logger:  logger,
		timeout: defaultReconcileTimeout,
		stopCh:  make(chan struct{}),
	}
}

// Reconcile refreshes the balance once. It is skipped while the wallet is
// disconnected or a form is pending, since a pending form writes the balance
// itself after confirmation. It reports whether a refresh was made.
func (r *Reconciler) Reconcile(ctx context.Context) (bool, error) {
	info, err := r.console.Wallet(ctx)
	if err != nil {
		return false, err
	}
	if !info.Connected {
		return false, nil
	}
	views, err := r.console.Forms(ctx)
	if err != nil {
		return false, err
	}
	for _, v := range views {
		if v.Phase == operation.PhasePending {
			r.logger.Debug("Skipping balance reconciliation, form pending", zap.String("form", v.Form))
			return false, nil
		}
	}

	before := info.Balance
	after, err := r.console.RefreshBalance(ctx)
	if err != nil {
		metrics.BalanceReconciliations.WithLabelValues("error").Inc()
		return false, err
	}
	if before.Known() && before.Value != after.Balance.Value {
		metrics.BalanceReconciliations.WithLabelValues("changed").Inc()
		r.logger.Info("Balance changed outside the console",
			zap.String("network", after.Network),
			zap.String("previous", before.Value),
			zap.String("current", after.Balance.Value))
	} else {
		metrics.BalanceReconciliations.WithLabelValues("unchanged").Inc()
	}
	return true, nil
}

// StartPeriodicReconciliation starts a background goroutine that reconciles periodically
func (r *Reconciler) StartPeriodicReconciliation(interval time.Duration) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		r.logger.Info("Started periodic balance reconciliation", zap.Duration("interval", interval))

		for {
			select {
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
				if _, err := r.Reconcile(ctx); err != nil {
					r.logger.Warn("Periodic balance reconciliation failed", zap.Error(err))
				}
				cancel()
			case <-r.stopCh:
				r.logger.Info("Stopping periodic balance reconciliation")
				return
			}
		}
	}()
}

// Stop stops the periodic reconciliation
func (r *Reconciler) Stop() {
	r.stopOnce.Do(func() { close(r.stopCh) })
	r.wg.Wait()
}
