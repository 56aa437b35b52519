// Copyright 2025 BookVerse Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var _ LoggerInterface = (*Logger)(nil)

type Logger struct {
	*zap.SugaredLogger

	security SecurityLoggerInterface
}

func (l *Logger) Security() SecurityLoggerInterface {
	return l.security
}

func NewLogger(level string) *Logger {
	logLevel, err := zap.ParseAtomicLevel(level)
	if err != nil {
		logLevel = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = logLevel
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger := zap.Must(cfg.Build(zap.AddCallerSkip(1)))

	l := new(Logger)
	l.SugaredLogger = logger.Sugar()
	l.security = newSecurityLogger(logger)

	return l
}
