package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chainsafe/wallet-console/pkg/app/api"
	"github.com/chainsafe/wallet-console/pkg/config"
	"github.com/chainsafe/wallet-console/pkg/console"
	"github.com/chainsafe/wallet-console/pkg/notify"
)

var (
	// ErrInvalidArgs is returned when a command gets the wrong arguments.
	ErrInvalidArgs = errors.New("invalid arguments")
	// ErrOperationFailed is returned when a form resolves to Failed.
	ErrOperationFailed = errors.New("operation failed")
)

var (
	configPath string
	network    string
	verbose    bool

	out io.Writer = os.Stdout

	label = color.New(color.FgCyan).SprintFunc()
)

var rootCmd = &cobra.Command{
	Use:           "walletctl",
	Short:         "Operate the wallet console from the command line",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to configuration file")
	rootCmd.PersistentFlags().StringVar(&network, "network", "", "network to use instead of chain.default_network")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")

	rootCmd.AddCommand(
		keygenCmd,
		addressCmd,
		balanceCmd,
		airdropCmd,
		sendCmd,
		signCmd,
		tokenCmd,
	)
}

// Execute runs the root command until it finishes or the process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if network != "" {
		if _, ok := cfg.Chain.Network(network); !ok {
			return nil, fmt.Errorf("%w: unknown network %q", ErrInvalidArgs, network)
		}
		cfg.Chain.DefaultNetwork = network
	}
	return cfg, nil
}

func newLogger() (*zap.Logger, error) {
	level := "warn"
	if verbose {
		level = "debug"
	}
	return config.NewLogger(config.LoggingConfig{Level: level, Format: "console", OutputPath: "stderr"})
}

// withSession opens a connected console session that prints notifications to the terminal.
func withSession(ctx context.Context, fn func(ctx context.Context, s *console.Session) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	session, closeSession, err := api.OpenSession(ctx, cfg, logger, notify.NewTerminal(out))
	if err != nil {
		return err
	}
	defer closeSession()

	if _, err := session.Connect(ctx); err != nil {
		return err
	}
	return fn(ctx, session)
}
