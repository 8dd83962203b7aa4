package consoledb

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/chainsafe/wallet-console/pkg/history"
	mghelper "github.com/chainsafe/wallet-console/pkg/pgutil/migrations"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		if err := mghelper.CreateSchema(ctx, db, &history.OperationDao{}); err != nil {
			return err
		}
		return mghelper.CreateModelIndexes(ctx, db, &history.OperationDao{}, "form", "status", "started_at")
	}, func(ctx context.Context, db *bun.DB) error {
		return mghelper.DropTables(ctx, db, &history.OperationDao{})
	})
}
