package logger

import (
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Level = zapcore.Level

const (
	DebugLevel = zapcore.DebugLevel
	InfoLevel  = zapcore.InfoLevel
	WarnLevel  = zapcore.WarnLevel
	ErrorLevel = zapcore.ErrorLevel
)

type Logger struct {
	*zap.Logger
}

type loggerConfig struct {
	noStdout bool
	noFile   bool
}

type Option func(*loggerConfig)

func NoStdout(l *loggerConfig) {
	l.noStdout = true
}

func NoFile(l *loggerConfig) {
	l.noFile = true
}

func NewLogger(path string, level Level, options ...Option) (*Logger, error) {
	var config loggerConfig
	for _, option := range options {
		option(&config)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encoderConfig)

	var cores []zapcore.Core
	if !config.noFile && path != "" {
		file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, errors.Wrap(err, "open log file failed")
		}
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(file), level))
	}
	if !config.noStdout {
		cores = append(cores, zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), level))
	}

	return &Logger{Logger: zap.New(zapcore.NewTee(cores...), zap.AddCaller())}, nil
}

func NewNoopLogger() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

func (l *Logger) With(fields ...Field) *Logger {
	return &Logger{Logger: l.Logger.With(fields...)}
}
