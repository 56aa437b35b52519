// Copyright 2025 BookVerse Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

var _ middleware.LogFormatter = (*LogFormatter)(nil)

// LogFormatter adapts the application logger to chi's request logger
// middleware. Request lines are emitted at debug level only.
type LogFormatter struct {
	logger LoggerInterface
}

type logEntry struct {
	logger LoggerInterface

	method    string
	path      string
	requestID string
}

func (f *LogFormatter) NewLogEntry(r *http.Request) middleware.LogEntry {
	return &logEntry{
		logger:    f.logger,
		method:    r.Method,
		path:      r.URL.Path,
		requestID: middleware.GetReqID(r.Context()),
	}
}

func (e *logEntry) Write(status, bytes int, header http.Header, elapsed time.Duration, extra interface{}) {
	e.logger.Debugf(
		"%s %s [%s] -> %d (%dB in %s)",
		e.method, e.path, e.requestID, status, bytes, elapsed,
	)
}

func (e *logEntry) Panic(v interface{}, stack []byte) {
	e.logger.Errorf("panic serving %s %s: %v\n%s", e.method, e.path, v, stack)
}

func NewLogFormatter(logger LoggerInterface) *LogFormatter {
	return &LogFormatter{logger: logger}
}
