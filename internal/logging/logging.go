// Package logging builds the zap logger for the simulator commands and adapts it to movement.Logger.
package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ajanata/movement"
	"github.com/ajanata/movement/internal/config"
)

// New builds a logger writing to stderr, or to a rotated file when cfg.File is set.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var encoder zapcore.Encoder
	switch cfg.Format {
	case "json":
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	case "console", "":
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	var out zapcore.WriteSyncer = zapcore.Lock(os.Stderr)
	if cfg.File != "" {
		out = zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
		})
	}

	return zap.New(zapcore.NewCore(encoder, out, level)), nil
}

// Logger adapts a zap logger to movement.Logger.
type Logger struct {
	s *zap.SugaredLogger
}

var _ movement.Logger = Logger{}

func Adapt(l *zap.Logger) Logger {
	return Logger{s: l.Sugar()}
}

func (l Logger) Debug(msg string) { l.s.Debug(msg) }

func (l Logger) Debugf(format string, v ...any) { l.s.Debugf(format, v...) }

func (l Logger) Info(msg string) { l.s.Info(msg) }

func (l Logger) Infof(format string, v ...any) { l.s.Infof(format, v...) }
