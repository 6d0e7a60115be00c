package audit

import "log/slog"

type Event struct {
	UserID   *uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

type Dispatcher struct {
	logger *Logger
	slog   *slog.Logger
	queue  chan Event
}

func NewDispatcher(logger *Logger, sl *slog.Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		slog:   sl,
		queue:  make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.logger.Log(
			ev.UserID,
			ev.Action,
			ev.Entity,
			ev.EntityID,
			ev.Metadata,
		); err != nil {
			d.slog.Error("audit write failed", "action", ev.Action, "err", err)
		}
	}
}

// Dispatch never blocks a request: a full queue drops the event.
func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		d.slog.Warn("audit queue full, dropping event", "action", ev.Action)
	}
}
