// Package logging owns the process-wide zap logger. Setup must run once,
// before any component logs; until then L returns a no-op logger.
package logging

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls the global logger.
type Config struct {
	Level      string // debug, info, warn, error
	Format     string // json, console
	OutputPath string // file path or "stdout"/"stderr"
	MaxSizeMB  int    // rotation threshold, file output only
	MaxBackups int
	MaxAgeDays int
}

var (
	once   sync.Once
	logger = zap.NewNop()
)

// Setup configures the global logger. The first call wins; later calls are
// no-ops so library code cannot reconfigure logging behind the CLI's back.
func Setup(cfg Config) {
	once.Do(func() {
		logger = build(cfg)
	})
}

// L returns the process logger.
func L() *zap.Logger {
	return logger
}

func build(cfg Config) *zap.Logger {
	level := zapcore.InfoLevel
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
	}

	var encoder zapcore.Encoder
	if cfg.Format == "console" {
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	var output zapcore.WriteSyncer
	switch cfg.OutputPath {
	case "", "stderr":
		output = zapcore.AddSync(os.Stderr)
	case "stdout":
		output = zapcore.AddSync(os.Stdout)
	default:
		writer := &lumberjack.Logger{
			Filename:   cfg.OutputPath,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
		}
		if writer.MaxSize == 0 {
			writer.MaxSize = 100
		}
		if writer.MaxBackups == 0 {
			writer.MaxBackups = 3
		}
		if writer.MaxAge == 0 {
			writer.MaxAge = 30
		}
		output = zapcore.AddSync(writer)
	}

	return zap.New(zapcore.NewCore(encoder, output, level))
}
