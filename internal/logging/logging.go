// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging builds the zap logger used by the CLI. Console output goes
// to stderr so it never mixes with rendered decks and summaries on stdout.
package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/pdiddy/study-engine/pkg/types"
)

// New builds a logger writing to stderr, and also to cfg.File when set.
func New(cfg types.LogConfig) (*zap.Logger, error) {
	return NewWithConsole(cfg, zapcore.Lock(os.Stderr))
}

// NewWithConsole is New with the console output replaced by console.
func NewWithConsole(cfg types.LogConfig, console zapcore.WriteSyncer) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("%w: log level: %v", types.ErrInvalidConfig, err)
	}

	var consoleEncoder zapcore.Encoder
	switch cfg.Mode {
	case "production":
		consoleEncoder = zapcore.NewJSONEncoder(fileEncoderConfig())
	case "development", "":
		consoleEncoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	default:
		return nil, fmt.Errorf("%w: log mode %q", types.ErrInvalidConfig, cfg.Mode)
	}

	core := zapcore.NewCore(consoleEncoder, console, level)
	if cfg.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    10, // megabytes
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		}
		fileCore := zapcore.NewCore(zapcore.NewJSONEncoder(fileEncoderConfig()), zapcore.AddSync(rotator), level)
		core = zapcore.NewTee(core, fileCore)
	}

	return zap.New(core, zap.AddCaller()), nil
}

func fileEncoderConfig() zapcore.EncoderConfig {
	ec := zap.NewProductionEncoderConfig()
	ec.TimeKey = "timestamp"
	ec.EncodeTime = zapcore.ISO8601TimeEncoder
	ec.MessageKey = "message"
	return ec
}
