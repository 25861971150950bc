package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// New builds a development logger at the given level. Unknown levels log at info.
func New(logLevel string) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()

	switch logLevel {
	case "debug":
		cfg.Level.SetLevel(zap.DebugLevel)
	case "info":
		cfg.Level.SetLevel(zap.InfoLevel)
	case "warn":
		cfg.Level.SetLevel(zap.WarnLevel)
	case "error":
		cfg.Level.SetLevel(zap.ErrorLevel)
	default:
		cfg.Level.SetLevel(zap.InfoLevel)
	}

	lgr, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return lgr, nil
}

// Init builds a logger and installs it as the global zap logger.
func Init(logLevel string) (*zap.Logger, error) {
	lgr, err := New(logLevel)
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(lgr)
	return lgr, nil
}
