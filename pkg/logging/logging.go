// Package logging builds the zap logger shared by the testbed.
package logging

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/decker502/particlebed/pkg/config"
)

// New builds a logger from cfg. "json" selects the production encoder;
// anything else gets the colored console encoder. An unparsable level
// falls back to info.
func New(cfg config.LoggingConfig, opts ...zap.Option) (*zap.Logger, error) {
	level, err := cfg.ZapLevel()
	if err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if strings.EqualFold(cfg.Format, "json") {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build(opts...)
}

// Verbose lowers level to debug when verbose is set.
func Verbose(cfg config.LoggingConfig, verbose bool) config.LoggingConfig {
	if verbose {
		cfg.Level = "debug"
	}
	return cfg
}
