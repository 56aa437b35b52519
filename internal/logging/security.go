// Copyright 2025 BookVerse Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"go.uber.org/zap"
)

// Security event identifiers follow the OWASP logging vocabulary so that the
// SIEM pipeline can route them without per-service rules.
const (
	eventSystemStartup  = "sys_startup"
	eventSystemShutdown = "sys_shutdown"
	eventAuthnSuccess   = "authn_token_success"
	eventAuthnFailure   = "authn_token_fail"
)

var _ SecurityLoggerInterface = (*securityLogger)(nil)

type securityLogger struct {
	logger *zap.Logger
}

func (s *securityLogger) SystemStartup() {
	s.logger.Info("system startup", zap.String("security_event", eventSystemStartup))
}

func (s *securityLogger) SystemShutdown() {
	s.logger.Info("system shutdown", zap.String("security_event", eventSystemShutdown))
}

func (s *securityLogger) AuthnSuccess(subject string) {
	s.logger.Info(
		"token authentication succeeded",
		zap.String("security_event", eventAuthnSuccess),
		zap.String("subject", subject),
	)
}

func (s *securityLogger) AuthnFailure(subject, reason string) {
	s.logger.Warn(
		"token authentication failed",
		zap.String("security_event", eventAuthnFailure),
		zap.String("subject", subject),
		zap.String("reason", reason),
	)
}

func newSecurityLogger(logger *zap.Logger) *securityLogger {
	return &securityLogger{logger: logger.WithOptions(zap.WithCaller(false))}
}
