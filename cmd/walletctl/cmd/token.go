package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/chainsafe/wallet-console/pkg/auth"
)

var (
	tokenSubject string
	tokenTTL     time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint an API token for the console server",
	Args:  cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.Auth.JWTSecretEnv == "" {
			return fmt.Errorf("authentication is disabled: auth.jwt_secret_env is empty")
		}
		secret := strings.TrimSpace(os.Getenv(cfg.Auth.JWTSecretEnv))
		if secret == "" {
			return fmt.Errorf("jwt secret not set: env=%s", cfg.Auth.JWTSecretEnv)
		}
		ttl := cfg.Auth.TokenTTL
		if tokenTTL > 0 {
			ttl = tokenTTL
		}
		m, err := auth.NewJWTManager([]byte(secret), cfg.Auth.Issuer, ttl)
		if err != nil {
			return err
		}
		token, expires, err := m.Issue(tokenSubject)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s %s\n", label("expires:"), expires.UTC().Format(time.RFC3339))
		fmt.Fprintln(out, token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "operator", "token subject")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "token lifetime (defaults to auth.token_ttl)")
}
