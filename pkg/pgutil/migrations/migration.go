// Package migrations holds schema helpers shared by bun migrations.
package migrations

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
	"go.uber.org/zap"
)

// UsageText documents the migrate command.
const UsageText = `Usage:
  console-migrate -config config.yaml <command>

Commands:
  init    creates the migration bookkeeping tables
  up      runs all pending migrations
  down    reverts the last migration group
  status  prints migration status
`

// ErrUnknownCommand is returned for commands other than init, up, down and status.
var ErrUnknownCommand = errors.New("unknown migration command")

// CreateSchema creates a table for every model if it does not exist.
func CreateSchema(ctx context.Context, db bun.IDB, models ...any) error {
	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("create table for %T: %w", model, err)
		}
	}
	return nil
}

// DropTables drops the tables of the given models.
func DropTables(ctx context.Context, db bun.IDB, models ...any) error {
	for _, model := range models {
		if _, err := db.NewDropTable().Model(model).IfExists().Cascade().Exec(ctx); err != nil {
			return fmt.Errorf("drop table for %T: %w", model, err)
		}
	}
	return nil
}

// CreateModelIndexes creates one index per column, named idx_<table>_<column>.
func CreateModelIndexes(ctx context.Context, db bun.IDB, model any, columns ...string) error {
	for _, column := range columns {
		if err := CreateModelIndex(ctx, db, model, column, column); err != nil {
			return err
		}
	}
	return nil
}

// CreateModelIndex creates an index named idx_<table>_<suffix> over the columns.
func CreateModelIndex(ctx context.Context, db bun.IDB, model any, suffix string, columns ...string) error {
	name, err := modelIndexName(db, model, suffix)
	if err != nil {
		return err
	}
	if _, err = db.NewCreateIndex().
		Model(model).
		Index(name).
		Column(columns...).
		IfNotExists().
		Exec(ctx); err != nil {
		return fmt.Errorf("create index %s: %w", name, err)
	}
	return nil
}

// DropModelIndexes drops indexes created by CreateModelIndex with the given suffixes.
func DropModelIndexes(ctx context.Context, db bun.IDB, model any, suffixes ...string) error {
	for _, suffix := range suffixes {
		name, err := modelIndexName(db, model, suffix)
		if err != nil {
			return err
		}
		if _, err = db.NewDropIndex().Model(model).Index(name).IfExists().Exec(ctx); err != nil {
			return fmt.Errorf("drop index %s: %w", name, err)
		}
	}
	return nil
}

func modelIndexName(db bun.IDB, model any, suffix string) (string, error) {
	if model == nil {
		return "", fmt.Errorf("model cannot be nil")
	}
	table := db.NewCreateIndex().Model(model).GetTableName()
	if table == "" {
		return "", fmt.Errorf("failed to resolve table name for model %T", model)
	}
	table = strings.NewReplacer(`"`, "", ".", "_").Replace(table)
	return fmt.Sprintf("idx_%s_%s", table, suffix), nil
}

// RunMigrations executes one migrate command.
func RunMigrations(ctx context.Context, migrator *migrate.Migrator, logger *zap.Logger, command string) error {
	switch command {
	case "init":
		if err := migrator.Init(ctx); err != nil {
			return err
		}
		logger.Info("migration tables created")
		return nil

	case "up":
		return withLock(ctx, migrator, logger, func() error {
			group, err := migrator.Migrate(ctx)
			if err != nil {
				return err
			}
			if group.IsZero() {
				logger.Info("no new migrations to run (database is up to date)")
			} else {
				logger.Info("migrated", zap.String("group", group.String()))
			}
			return nil
		})

	case "down":
		return withLock(ctx, migrator, logger, func() error {
			group, err := migrator.Rollback(ctx)
			if err != nil {
				return err
			}
			if group.IsZero() {
				logger.Info("no migrations to roll back")
			} else {
				logger.Info("rolled back", zap.String("group", group.String()))
			}
			return nil
		})

	case "status":
		ms, err := migrator.MigrationsWithStatus(ctx)
		if err != nil {
			return err
		}
		logger.Info("migration status",
			zap.Stringer("migrations", ms),
			zap.Stringer("unapplied", ms.Unapplied()),
			zap.Stringer("last_group", ms.LastGroup()))
		return nil

	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, command)
	}
}

func withLock(ctx context.Context, migrator *migrate.Migrator, logger *zap.Logger, fn func() error) error {
	if err := migrator.Lock(ctx); err != nil {
		return fmt.Errorf("failed to acquire migration lock: %w", err)
	}
	defer func() {
		if err := migrator.Unlock(ctx); err != nil {
			logger.Warn("failed to release migration lock", zap.Error(err))
		}
	}()
	return fn()
}
