package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/viper"
)

// Handler is a slog handler that enriches every record with the request id
// stored in the context by the HTTP middleware.
type Handler struct {
	inner slog.Handler
}

// NewHandler creates a new Handler. When inner is nil a JSON handler writing
// to stdout is used, with the level taken from the logger.level config key.
func NewHandler(inner slog.Handler) *Handler {
	if inner == nil {
		level := slog.LevelInfo
		if viper.GetString("logger.level") == "debug" {
			level = slog.LevelDebug
		}
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}

	return &Handler{inner: inner}
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *Handler) Handle(ctx context.Context, record slog.Record) error {
	if reqID, ok := ctx.Value(requestIDKey).(string); ok && reqID != "" {
		record.AddAttrs(slog.String("request_id", reqID))
	}

	return h.inner.Handle(ctx, record)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{inner: h.inner.WithAttrs(attrs)}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{inner: h.inner.WithGroup(name)}
}
