package board

import (
	"context"
	"log/slog"
	"time"
)

// Event captures one board operation for logging.
type Event struct {
	Name      string
	Duration  time.Duration
	Success   bool
	Err       error
	Fields    map[string]any
	StartedAt time.Time
}

// Observer receives board events.
type Observer interface {
	ObserveBoard(ctx context.Context, event Event)
}

// NoopObserver ignores all events.
type NoopObserver struct{}

func (NoopObserver) ObserveBoard(context.Context, Event) {}

// Drag motion fires once per mouse cell; keep it out of info logs.
var debugEvents = map[string]bool{
	"drag_move": true,
	"reload":    true,
}

type logObserver struct {
	logger *slog.Logger
}

// NewLogObserver writes board events to logger.
func NewLogObserver(logger *slog.Logger) Observer {
	if logger == nil {
		return NoopObserver{}
	}
	return &logObserver{logger: logger}
}

func (o *logObserver) ObserveBoard(ctx context.Context, event Event) {
	attrs := make([]any, 0, 6+len(event.Fields)*2)
	attrs = append(attrs,
		"op", event.Name,
		"duration_ms", event.Duration.Milliseconds(),
		"success", event.Success,
	)
	for k, v := range event.Fields {
		attrs = append(attrs, k, v)
	}
	switch {
	case event.Err != nil:
		attrs = append(attrs, "error", event.Err.Error())
		o.logger.ErrorContext(ctx, "board_op", attrs...)
	case debugEvents[event.Name]:
		o.logger.DebugContext(ctx, "board_op", attrs...)
	default:
		o.logger.InfoContext(ctx, "board_op", attrs...)
	}
}
