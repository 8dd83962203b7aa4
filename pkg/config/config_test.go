package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const minimalConfig = `
chain:
  networks:
    devnet:
      rpc_url: https://api.devnet.solana.com
    testnet:
      rpc_url: https://api.testnet.solana.com
`

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte(minimalConfig))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Server.ShutdownTimeout != 30*time.Second {
		t.Errorf("expected default shutdown timeout 30s, got %s", cfg.Server.ShutdownTimeout)
	}
	if cfg.Operation.ResetDelay != 3*time.Second {
		t.Errorf("expected default reset delay 3s, got %s", cfg.Operation.ResetDelay)
	}
	if cfg.Chain.Kind != "solana" || cfg.Chain.DefaultNetwork != "devnet" {
		t.Errorf("unexpected chain defaults: %+v", cfg.Chain)
	}
	if !cfg.Wallet.AutoConnect {
		t.Error("expected auto_connect to default to true")
	}
	if cfg.Database.Enabled {
		t.Error("expected database to be disabled by default")
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestParse_ExpandsEnvironment(t *testing.T) {
	t.Setenv("TEST_DB_PASSWORD", "s3cret")
	cfg, err := Parse([]byte(minimalConfig + `
database:
  enabled: true
  user: console
  password: ${TEST_DB_PASSWORD}
`))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if cfg.Database.Password != "s3cret" {
		t.Fatalf("expected expanded password, got %q", cfg.Database.Password)
	}
}

func TestParse_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "no networks",
			yaml:    "chain:\n  kind: solana\n",
			wantErr: "Networks",
		},
		{
			name:    "unknown default network",
			yaml:    minimalConfig + "  default_network: mainnet\n",
			wantErr: "default_network",
		},
		{
			name:    "unknown chain kind",
			yaml:    minimalConfig + "  kind: bitcoin\n",
			wantErr: "Kind",
		},
		{
			name:    "evm without chain id",
			yaml:    "chain:\n  kind: evm\n  default_network: sepolia\n  networks:\n    sepolia:\n      rpc_url: https://rpc.sepolia.org\n",
			wantErr: "chain_id",
		},
		{
			name:    "database enabled without user",
			yaml:    minimalConfig + "database:\n  enabled: true\n",
			wantErr: "User",
		},
		{
			name:    "bad log level",
			yaml:    minimalConfig + "logging:\n  level: verbose\n",
			wantErr: "Level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error mentioning %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(minimalConfig+"server:\n  port: 9000\n"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Server.Addr() != "0.0.0.0:9000" {
		t.Fatalf("unexpected addr %s", cfg.Server.Addr())
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestNewLogger(t *testing.T) {
	if _, err := NewLogger(LoggingConfig{Level: "debug", Format: "console"}); err != nil {
		t.Fatalf("NewLogger() failed: %v", err)
	}
	if _, err := NewLogger(LoggingConfig{Level: "nope", Format: "json"}); err == nil {
		t.Fatal("expected error for invalid level")
	}
}

func TestConfigLogger_NamesAndTagsEntries(t *testing.T) {
	cfg, err := Parse([]byte(minimalConfig))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	path := filepath.Join(t.TempDir(), "console.log")
	cfg.Logging.OutputPath = path

	logger, err := cfg.Logger()
	if err != nil {
		t.Fatalf("Logger() failed: %v", err)
	}
	logger.Named("faucet").Info("drip sent")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	line := string(data)
	if !strings.Contains(line, `"logger":"console.faucet"`) {
		t.Errorf("expected console root name, got %s", line)
	}
	if !strings.Contains(line, `"chain":"solana"`) {
		t.Errorf("expected chain field, got %s", line)
	}
}
