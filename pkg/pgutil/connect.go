package pgutil

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"go.uber.org/zap"

	"github.com/chainsafe/wallet-console/pkg/config"
)

const connectTimeout = 10 * time.Second

// ConnectDB opens a bun connection to the configured database and pings it.
func ConnectDB(ctx context.Context, cfg *config.DatabaseConfig, logger *zap.Logger) (*bun.DB, error) {
	connector := pgdriver.NewConnector(
		pgdriver.WithNetwork("tcp"),
		pgdriver.WithAddr(fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)),
		pgdriver.WithUser(cfg.User),
		pgdriver.WithPassword(cfg.Password),
		pgdriver.WithDatabase(cfg.Database),
		pgdriver.WithInsecure(cfg.SSLMode == "" || cfg.SSLMode == "disable"),
		pgdriver.WithDialTimeout(connectTimeout),
		pgdriver.WithApplicationName("wallet-console"),
	)

	db := bun.NewDB(sql.OpenDB(connector), pgdialect.New())

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database %s: %w", cfg.Database, err)
	}

	if logger != nil {
		logger.Info("Connected to database",
			zap.String("host", cfg.Host),
			zap.String("database", cfg.Database))
	}
	return db, nil
}
