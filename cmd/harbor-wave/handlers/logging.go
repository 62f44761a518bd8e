package handlers

import (
	"fmt"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log formats.
const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// newZapLogger builds the structured log stream on stderr. Verbosity 0
// disables it; each further step lowers the level by one, so -v shows info
// and -vv shows the V(1) phase and progress events.
func newZapLogger(verbosity int, format string) (logr.Logger, func(), error) {
	if verbosity <= 0 {
		return logr.Discard(), func() {}, nil
	}

	cfg := zap.NewProductionConfig()
	cfg.Sampling = nil
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	switch format {
	case "", LogFormatConsole:
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	case LogFormatJSON:
		cfg.Encoding = "json"
	default:
		return logr.Logger{}, nil, fmt.Errorf("unknown log format %q, want %s or %s", format, LogFormatConsole, LogFormatJSON)
	}
	cfg.Level = zap.NewAtomicLevelAt(zapcore.Level(1 - verbosity))

	raw, err := cfg.Build()
	if err != nil {
		return logr.Logger{}, nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return zapr.NewLogger(raw), func() { _ = raw.Sync() }, nil
}
