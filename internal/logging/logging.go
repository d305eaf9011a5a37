// Package logging builds the zap loggers used by the server and CLI.
//
// Logs always go to stderr: stdout carries the MCP protocol stream.
package logging

import (
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLoggerConfig returns a console config at the given level with
// stacktraces disabled.
func NewLoggerConfig(level zapcore.Level) zap.Config {
	return zap.Config{
		Level:    zap.NewAtomicLevelAt(level),
		Encoding: "console",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "ts",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			FunctionKey:    zapcore.OmitKey,
			MessageKey:     "msg",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		DisableStacktrace: true,
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
	}
}

// ParseLevel parses a level name such as "debug" or "WARN".
func ParseLevel(name string) (zapcore.Level, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(name)))); err != nil {
		return zapcore.InfoLevel, errors.Wrapf(err, "invalid log level %q", name)
	}
	return lvl, nil
}

// NewLogger returns a named sugared logger at the given level.
func NewLogger(name, level string) (*zap.SugaredLogger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	logger, err := NewLoggerConfig(lvl).Build()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build logger")
	}
	return logger.Named(name).Sugar(), nil
}
