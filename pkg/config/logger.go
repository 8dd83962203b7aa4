package config

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerName is the root name of every console logger.
const LoggerName = "console"

// NewLogger creates a logger named LoggerName from cfg. The json format uses
// the production encoder, console the development encoder with colored levels.
func NewLogger(cfg LoggingConfig, fields ...zap.Field) (*zap.Logger, error) {
	zapConfig := zap.NewProductionConfig()
	if cfg.Format == "console" {
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	zapConfig.Level = zap.NewAtomicLevelAt(level)

	switch cfg.OutputPath {
	case "", "stdout":
		zapConfig.OutputPaths = []string{"stdout"}
	default:
		zapConfig.OutputPaths = []string{cfg.OutputPath}
	}

	logger, err := zapConfig.Build(zap.Fields(fields...))
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger.Named(LoggerName), nil
}

// Logger creates the process logger, tagged with the configured chain kind.
func (c *Config) Logger() (*zap.Logger, error) {
	return NewLogger(c.Logging, zap.String("chain", c.Chain.Kind))
}
