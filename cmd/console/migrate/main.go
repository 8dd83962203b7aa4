package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/uptrace/bun/migrate"
	"go.uber.org/zap"

	"github.com/chainsafe/wallet-console/pkg/config"
	"github.com/chainsafe/wallet-console/pkg/migrations/consoledb"
	"github.com/chainsafe/wallet-console/pkg/pgutil"
	mghelper "github.com/chainsafe/wallet-console/pkg/pgutil/migrations"
)

func main() {
	cfgPath := flag.String("config", "config.example.yaml", "Path to configuration file")
	flag.Usage = func() { fmt.Fprint(os.Stderr, mghelper.UsageText) }
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*cfgPath, flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
}

func run(cfgPath, command string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("error reading configuration file: %w", err)
	}
	if !cfg.Database.Enabled {
		return fmt.Errorf("database is disabled in %s", cfgPath)
	}

	logger, err := cfg.Logger()
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := pgutil.ConnectDB(ctx, &cfg.Database, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	logger.Info("Running console migrations", zap.String("database", cfg.Database.Database), zap.String("command", command))

	migrator := migrate.NewMigrator(db, consoledb.Migrations)
	return mghelper.RunMigrations(ctx, migrator, logger, command)
}
