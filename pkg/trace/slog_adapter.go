package trace

import (
	"context"
	"log/slog"
)

// SlogAdapter writes trace events to an slog.Logger.
// Useful for development when you want to see driver calls in console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger. Successful calls log at
// Debug level; failed calls log at Warn level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("session", event.SessionID),
		slog.String("category", event.Category.String()),
	}

	if event.Resource != "" {
		attrs = append(attrs, slog.String("resource", event.Resource))
	}

	level := slog.LevelDebug
	switch {
	case event.Call != nil:
		attrs = append(attrs, slog.String("entry", event.Call.Entry))
		if event.Call.Channel != "" {
			attrs = append(attrs, slog.String("channel", event.Call.Channel))
		}
		if event.Call.Attribute != 0 {
			attrs = append(attrs, slog.Uint64("attribute", uint64(event.Call.Attribute)))
		}
		attrs = append(attrs, slog.Duration("duration", event.Call.Duration))
		if event.Call.Status != 0 {
			level = slog.LevelWarn
			attrs = append(attrs,
				slog.Int("status", int(event.Call.Status)),
				slog.String("message", event.Call.Message),
			)
		}
	case event.StateChange != nil:
		attrs = append(attrs,
			slog.String("old_state", event.StateChange.OldState),
			slog.String("new_state", event.StateChange.NewState),
		)
		if event.StateChange.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.StateChange.Reason))
		}
	}

	a.logger.LogAttrs(context.Background(), level, "nirfsg", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
