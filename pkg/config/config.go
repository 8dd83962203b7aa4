package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the wallet console configuration
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Chain      ChainConfig      `yaml:"chain"`
	Wallet     WalletConfig     `yaml:"wallet"`
	Operation  OperationConfig  `yaml:"operation"`
	Notify     NotifyConfig     `yaml:"notify"`
	Auth       AuthConfig       `yaml:"auth"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `yaml:"host" default:"0.0.0.0"`
	Port            int           `yaml:"port" default:"8080" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" default:"60s"`
	RequestTimeout  time.Duration `yaml:"request_timeout" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"30s"`
}

// DatabaseConfig contains database connection settings. Without a database
// the operation history is kept in memory.
type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host" default:"localhost" validate:"required_if=Enabled true"`
	Port     int    `yaml:"port" default:"5432"`
	User     string `yaml:"user" validate:"required_if=Enabled true"`
	Password string `yaml:"password"`
	Database string `yaml:"database" default:"wallet_console"`
	SSLMode  string `yaml:"ssl_mode" default:"disable" validate:"oneof=disable require verify-ca verify-full"`
}

// ChainConfig selects the chain family and its networks
type ChainConfig struct {
	Kind           string                   `yaml:"kind" default:"solana" validate:"oneof=solana evm"`
	Networks       map[string]NetworkConfig `yaml:"networks" validate:"required,min=1,dive"`
	DefaultNetwork string                   `yaml:"default_network" default:"devnet" validate:"required"`
	PollInterval   time.Duration            `yaml:"poll_interval" default:"1s"`
	ConfirmTimeout time.Duration            `yaml:"confirm_timeout" default:"60s"`
	// BalanceRefresh is the period of the background balance reconciliation. Zero disables it.
	BalanceRefresh time.Duration `yaml:"balance_refresh" default:"30s" validate:"min=0"`
}

// NetworkConfig contains the settings of one selectable network
type NetworkConfig struct {
	RPCURL string `yaml:"rpc_url" validate:"required,url"`
	// ChainID is required for evm networks.
	ChainID int64 `yaml:"chain_id"`
	// MaxGasPrice caps the suggested gas price in wei (evm only).
	MaxGasPrice string       `yaml:"max_gas_price" validate:"omitempty,number"`
	Faucet      FaucetConfig `yaml:"faucet"`
}

// FaucetConfig configures airdrops on evm networks, which have no native airdrop RPC
type FaucetConfig struct {
	Enabled      bool          `yaml:"enabled"`
	KeystorePath string        `yaml:"keystore_path" validate:"required_if=Enabled true"`
	Window       time.Duration `yaml:"window"`
	MaxAmount    string        `yaml:"max_amount" validate:"omitempty,number"`
	Entries      int           `yaml:"entries"`
}

// WalletConfig locates the console wallet key
type WalletConfig struct {
	KeystorePath string `yaml:"keystore_path" default:"data/wallet.json" validate:"required"`
	MasterKeyEnv string `yaml:"master_key_env" default:"WALLET_MASTER_KEY" validate:"required"`
	AutoConnect  bool   `yaml:"auto_connect" default:"true"`
}

// OperationConfig contains form runner settings
type OperationConfig struct {
	ResetDelay time.Duration `yaml:"reset_delay" default:"3s" validate:"gt=0"`
}

// NotifyConfig contains notification stream settings
type NotifyConfig struct {
	ReadBufferSize  int  `yaml:"read_buffer_size" default:"1024"`
	WriteBufferSize int  `yaml:"write_buffer_size" default:"1024"`
	ClientBuffer    int  `yaml:"client_buffer" default:"16" validate:"min=1"`
	History         int  `yaml:"history" default:"20" validate:"min=0"`
	Terminal        bool `yaml:"terminal"`
}

// AuthConfig contains API authentication settings. Authentication is
// disabled when JWTSecretEnv is empty.
type AuthConfig struct {
	JWTSecretEnv string        `yaml:"jwt_secret_env"`
	Issuer       string        `yaml:"issuer" default:"wallet-console"`
	TokenTTL     time.Duration `yaml:"token_ttl" default:"24h"`
}

// MonitoringConfig contains monitoring and metrics settings
type MonitoringConfig struct {
	Enabled bool   `yaml:"enabled" default:"true"`
	Path    string `yaml:"path" default:"/metrics"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level      string `yaml:"level" default:"info" validate:"oneof=debug info warn error"`
	Format     string `yaml:"format" default:"json" validate:"oneof=json console"`
	OutputPath string `yaml:"output_path" default:"stdout"`
}

// Load loads configuration from a YAML file. ${VAR} references are expanded
// from the environment before parsing.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses, defaults and validates configuration from YAML bytes.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := defaults.Set(&cfg); err != nil {
		return nil, fmt.Errorf("failed to set defaults: %w", err)
	}
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%s: failed on %q", verrs[0].Namespace(), verrs[0].Tag())
		}
		return err
	}
	if _, ok := cfg.Chain.Networks[cfg.Chain.DefaultNetwork]; !ok {
		return fmt.Errorf("chain.default_network %q is not in chain.networks", cfg.Chain.DefaultNetwork)
	}
	for name, n := range cfg.Chain.Networks {
		if cfg.Chain.Kind == "evm" && n.ChainID <= 0 {
			return fmt.Errorf("chain.networks.%s.chain_id is required for evm", name)
		}
		if cfg.Chain.Kind != "evm" && n.Faucet.Enabled {
			return fmt.Errorf("chain.networks.%s.faucet is only supported for evm", name)
		}
	}
	return nil
}

// Network returns the settings of a named network.
func (c *ChainConfig) Network(name string) (NetworkConfig, bool) {
	n, ok := c.Networks[name]
	return n, ok
}

// Addr returns the listen address of the HTTP server.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
