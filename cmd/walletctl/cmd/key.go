package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chainsafe/wallet-console/pkg/chain"
	"github.com/chainsafe/wallet-console/pkg/keys"
)

var forceKeygen bool

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate the console wallet key",
	Args:  cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		path := cfg.Wallet.KeystorePath
		if _, err := os.Stat(path); err == nil && !forceKeygen {
			return fmt.Errorf("keystore %s already exists (use --force to replace it)", path)
		}

		masterKey, err := keys.MasterKeyFromEnv(cfg.Wallet.MasterKeyEnv)
		if errors.Is(err, keys.ErrMasterKeyMissing) {
			if masterKey, err = keys.GenerateMasterKey(); err != nil {
				return err
			}
			fmt.Fprintf(out, "%s export %s=%s\n", label("new master key:"),
				cfg.Wallet.MasterKeyEnv, keys.MasterKeyToBase64(masterKey))
		} else if err != nil {
			return err
		}

		key, err := keys.Generate(chain.Kind(cfg.Chain.Kind))
		if err != nil {
			return err
		}
		if err := keys.Save(path, key, masterKey); err != nil {
			return err
		}
		fmt.Fprintf(out, "%s %s\n", label("created address:"), key.Address)
		fmt.Fprintf(out, "%s %s\n", label("keystore:"), path)
		return nil
	},
}

var addressCmd = &cobra.Command{
	Use:   "address",
	Short: "Print the console wallet address",
	Args:  cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		masterKey, err := keys.MasterKeyFromEnv(cfg.Wallet.MasterKeyEnv)
		if err != nil {
			return err
		}
		key, err := keys.Load(cfg.Wallet.KeystorePath, masterKey)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s %s (%s)\n", label("address:"), key.Address, key.Kind)
		return nil
	},
}

func init() {
	keygenCmd.Flags().BoolVar(&forceKeygen, "force", false, "overwrite an existing keystore")
}
