package api

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/chainsafe/wallet-console/pkg/chain"
	"github.com/chainsafe/wallet-console/pkg/config"
	"github.com/chainsafe/wallet-console/pkg/console"
	"github.com/chainsafe/wallet-console/pkg/history"
	"github.com/chainsafe/wallet-console/pkg/keys"
	"github.com/chainsafe/wallet-console/pkg/notify"
	"github.com/chainsafe/wallet-console/pkg/pgutil"
)

// OpenSession loads the wallet key, opens the history store and builds a
// console session publishing to sinks. The returned func releases everything.
func OpenSession(ctx context.Context, cfg *config.Config, logger *zap.Logger, sinks ...notify.Sink) (*console.Session, func(), error) {
	kind := chain.Kind(cfg.Chain.Kind)

	masterKey, err := keys.MasterKeyFromEnv(cfg.Wallet.MasterKeyEnv)
	if err != nil {
		if errors.Is(err, keys.ErrMasterKeyMissing) {
			return nil, nil, fmt.Errorf("%w (hint: walletctl keygen prints a new one)", err)
		}
		return nil, nil, fmt.Errorf("invalid wallet master key: %w", err)
	}

	key, err := keys.Load(cfg.Wallet.KeystorePath, masterKey)
	if err != nil {
		return nil, nil, fmt.Errorf("load wallet key: %w", err)
	}
	if key.Kind != kind {
		return nil, nil, fmt.Errorf("wallet key is a %s key but chain kind is %s", key.Kind, kind)
	}
	wallet, err := key.Wallet()
	if err != nil {
		return nil, nil, err
	}
	verifier, err := console.NewVerifier(kind)
	if err != nil {
		return nil, nil, err
	}
	dialer, err := console.NewDialer(&cfg.Chain, masterKey, logger.Named("chain"))
	if err != nil {
		return nil, nil, fmt.Errorf("create dialer: %w", err)
	}

	var (
		store   history.Store = history.NewMemoryStore()
		closers []func()
	)
	if cfg.Database.Enabled {
		db, err := pgutil.ConnectDB(ctx, &cfg.Database, logger)
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, func() { _ = db.Close() })
		store = history.NewStore(db)
	} else {
		logger.Info("Database disabled, keeping operation history in memory")
	}

	session, err := console.NewSession(ctx, console.Config{
		Kind:           kind,
		Networks:       console.Networks(&cfg.Chain),
		DefaultNetwork: cfg.Chain.DefaultNetwork,
		ResetDelay:     cfg.Operation.ResetDelay,
	}, console.Deps{
		Wallet:   wallet,
		Verifier: verifier,
		Dialer:   dialer,
		Notifier: notify.NewMulti(sinks...),
		Store:    store,
	}, console.WithLogger(logger.Named("console")))
	if err != nil {
		for _, c := range closers {
			c()
		}
		return nil, nil, fmt.Errorf("create console session: %w", err)
	}

	cleanup := func() {
		session.Close()
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	return session, cleanup, nil
}
