// Package chiext has chi middleware that logs through slog.
package chiext

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// Logger logs one line per request.
func Logger() func(next http.Handler) http.Handler {
	return middleware.RequestLogger(&LogFormatter{Logger: slog.Default()})
}

type LogFormatter struct {
	Logger *slog.Logger
}

func (l *LogFormatter) NewLogEntry(r *http.Request) middleware.LogEntry {
	attrs := []any{
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("from", r.RemoteAddr),
	}
	if reqID := middleware.GetReqID(r.Context()); reqID != "" {
		attrs = append(attrs, slog.String("request", reqID))
	}

	return &logEntry{
		logger: l.Logger,
		attrs:  attrs,
	}
}

type logEntry struct {
	logger *slog.Logger
	attrs  []any
}

func (l *logEntry) Write(status, bytes int, header http.Header, elapsed time.Duration, extra any) {
	attrs := append(l.attrs,
		slog.Int("status", status),
		slog.Int("bytes", bytes),
		slog.Duration("elapsed", elapsed),
	)

	switch {
	case status >= 500:
		l.logger.Error("Request", attrs...)
	case status >= 400:
		l.logger.Warn("Request", attrs...)
	default:
		l.logger.Debug("Request", attrs...)
	}
}

func (l *logEntry) Panic(v any, stack []byte) {
	l.logger.Error("Request panic", append(l.attrs, slog.Any("panic", v), slog.String("stack", string(stack)))...)
}
