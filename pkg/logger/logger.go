// Package logger provides a structured, levelled logger built on log/slog.
//
// The key extension over plain slog is WithCtx: it returns the logger that
// the request middleware stored in the context, so every log line from a
// handler or an outgoing API call is correlated by request_id:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("order placed", "crop_id", 7)
//	// → time=... level=INFO msg="order placed" request_id=a1b2c3d4 crop_id=7
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/farmxchain/farmx/config"
)

var L *slog.Logger

func init() {
	L = New(os.Stderr, config.AppEnv(), config.LogLevel())
	slog.SetDefault(L)
}

// New builds a logger for env. Production gets JSON at INFO, everything else
// gets text at DEBUG. A non-empty level overrides the env default.
func New(w io.Writer, env, level string) *slog.Logger {
	prod := env == "production" || env == "prod"

	lvl := slog.LevelDebug
	if prod {
		lvl = slog.LevelInfo
	}
	if override, ok := parseLevel(level); ok {
		lvl = override
	}
	opts := &slog.HandlerOptions{Level: lvl}

	if prod {
		return slog.New(slog.NewJSONHandler(w, opts)) // structured JSON for log aggregators
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return 0, false
}

// SetOutput replaces the base logger, e.g. to silence the CLI or capture logs in tests.
func SetOutput(w io.Writer) {
	L = New(w, config.AppEnv(), config.LogLevel())
	slog.SetDefault(L)
}

// ─────────────────────────────────────────────
// Context-aware logger
// ─────────────────────────────────────────────

type ctxKey struct{}

// WithCtx returns the per-request logger stored in ctx by the Logger
// middleware, or the base logger when there is none.
func WithCtx(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return L
	}
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores a *slog.Logger (pre-tagged with request_id) into ctx.
// Called by the Logger middleware; not usually needed in application code.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// ─────────────────────────────────────────────
// Short-hand helpers (use base logger)
// ─────────────────────────────────────────────

// Debug logs at DEBUG level.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs at INFO level.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs at WARN level.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs at ERROR level.
func Error(msg string, args ...any) { L.Error(msg, args...) }
