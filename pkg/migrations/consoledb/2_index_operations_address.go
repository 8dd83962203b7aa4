package consoledb

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/chainsafe/wallet-console/pkg/history"
	mghelper "github.com/chainsafe/wallet-console/pkg/pgutil/migrations"
)

// Per-wallet history lookups filter by address and sort by start time.
func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		return mghelper.CreateModelIndex(ctx, db, &history.OperationDao{}, "address_started_at", "address", "started_at")
	}, func(ctx context.Context, db *bun.DB) error {
		return mghelper.DropModelIndexes(ctx, db, &history.OperationDao{}, "address_started_at")
	})
}
