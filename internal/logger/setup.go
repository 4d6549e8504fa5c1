// Package logger builds the single *zap.Logger instantiated once at
// startup and threaded through every constructor (spec §9's "Ambient
// globals vs. explicit context": no process-wide singleton). Construction
// is adapted from the teacher's internal/utils/logger.New: a console +
// rotating-file tee via lumberjack, JSON on disk, console encoding to
// stdout.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls log destination and rotation.
type Config struct {
	LogFile     string
	MaxSizeMB   int
	MaxAgeDays  int
	MaxBackups  int
	Compress    bool
	Development bool
}

// DefaultConfig mirrors the teacher's defaults.
func DefaultConfig() Config {
	return Config{
		LogFile:    "arbot.log",
		MaxSizeMB:  100,
		MaxAgeDays: 7,
		MaxBackups: 3,
		Compress:   true,
	}
}

// New builds a *zap.Logger writing structured fields to both stdout and a
// rotating log file.
func New(cfg Config) (*zap.Logger, error) {
	rotator := &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    cfg.MaxSizeMB,
		MaxAge:     cfg.MaxAgeDays,
		MaxBackups: cfg.MaxBackups,
		Compress:   cfg.Compress,
	}

	fileEncoderConfig := zap.NewProductionEncoderConfig()
	fileEncoderConfig.TimeKey = "timestamp"
	fileEncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	fileEncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	fileEncoderConfig.EncodeDuration = zapcore.StringDurationEncoder

	level := zapcore.InfoLevel
	consoleEncoder := zapcore.NewConsoleEncoder(fileEncoderConfig)
	if cfg.Development {
		level = zapcore.DebugLevel
		consoleEncoder = PrettyEncoder()
	}

	core := zapcore.NewTee(
		zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stdout), level),
		zapcore.NewCore(zapcore.NewJSONEncoder(fileEncoderConfig), zapcore.AddSync(rotator), level),
	)

	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)), nil
}
