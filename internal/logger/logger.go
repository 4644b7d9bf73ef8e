// Package logger builds the zap loggers used across headergen.
package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Standard field names for structured diagnostics.
const (
	FieldDecl     = "decl"
	FieldKind     = "kind"
	FieldReason   = "reason"
	FieldLibrary  = "library"
	FieldFile     = "file"
	FieldSelector = "selector"
	FieldMacro    = "macro"
	FieldCode     = "code"
	FieldPath     = "path"
	FieldCount    = "count"
)

// Options configures New.
type Options struct {
	// Verbose lowers the level to Debug.
	Verbose bool
	// JSON selects the production JSON encoder instead of the console one.
	JSON bool
	// Writer defaults to stderr.
	Writer io.Writer
}

// New builds a logger.
func New(opts Options) *zap.Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	level := zap.InfoLevel
	if opts.Verbose {
		level = zap.DebugLevel
	}

	var enc zapcore.Encoder
	if opts.JSON {
		cfg := zap.NewProductionEncoderConfig()
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(cfg)
	} else {
		enc = zapcore.NewConsoleEncoder(minimalEncoderConfig())
	}

	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), level))
}

// Nop returns a logger that discards everything.
func Nop() *zap.Logger {
	return zap.NewNop()
}

// minimalEncoderConfig has no timestamps or callers.
func minimalEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		LevelKey:         "level",
		MessageKey:       "msg",
		NameKey:          "logger",
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		EncodeName:       zapcore.FullNameEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	}
}
