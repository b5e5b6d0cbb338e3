// Package logging provides a custom slog handler that integrates with the
// admin activity feed. It forwards logs at WARN level and above into the
// capped adminActivityLogs collection for auditing.
package logging

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/activity"
	"github.com/fikadugetahun12-cyber/ZewedJobs-admins-FINAL/internal/model"
)

// ActivityHandler is a slog.Handler that wraps another handler and also
// records WARN and ERROR level logs as system entries in the activity feed.
type ActivityHandler struct {
	inner    slog.Handler
	activity *activity.Log
	level    slog.Level
}

// NewActivityHandler creates an ActivityHandler that wraps the given handler.
// Logs at WARN level and above are written to both the wrapped handler and
// the activity feed.
func NewActivityHandler(inner slog.Handler, log *activity.Log) *ActivityHandler {
	return &ActivityHandler{
		inner:    inner,
		activity: log,
		level:    slog.LevelWarn,
	}
}

// NewActivityHandlerWithLevel creates an ActivityHandler with a custom
// minimum forwarding level.
func NewActivityHandlerWithLevel(inner slog.Handler, log *activity.Log, level slog.Level) *ActivityHandler {
	return &ActivityHandler{
		inner:    inner,
		activity: log,
		level:    level,
	}
}

// Enabled implements slog.Handler.
func (h *ActivityHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *ActivityHandler) Handle(ctx context.Context, r slog.Record) error {
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}

	if r.Level >= h.level {
		// Background context so the entry lands even when the request
		// context is already cancelled.
		description := fmt.Sprintf("[%s] %s", r.Level, r.Message)
		_, _ = h.activity.Append(context.Background(), model.ActionSystem,
			description, model.SystemUserID, model.SystemUserName)
	}
	return nil
}

// WithAttrs implements slog.Handler.
func (h *ActivityHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ActivityHandler{
		inner:    h.inner.WithAttrs(attrs),
		activity: h.activity,
		level:    h.level,
	}
}

// WithGroup implements slog.Handler.
func (h *ActivityHandler) WithGroup(name string) slog.Handler {
	return &ActivityHandler{
		inner:    h.inner.WithGroup(name),
		activity: h.activity,
		level:    h.level,
	}
}
