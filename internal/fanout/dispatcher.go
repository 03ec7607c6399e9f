package fanout

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HandlerFunc processes one event. Handlers are stateless and must tolerate
// duplicate delivery of the same event.
type HandlerFunc func(ctx context.Context, ev Event) error

// Dispatcher routes events to their registered handlers, replacing the
// platform's per-document-path trigger registration with a typed table that
// tests can call directly.
type Dispatcher struct {
	handlers map[EventKind]HandlerFunc
	log      *zap.Logger
}

// NewDispatcher wires the standard handler table over an engine and propagator
func NewDispatcher(engine *Engine, propagator *Propagator, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		handlers: make(map[EventKind]HandlerFunc),
		log:      log,
	}

	d.Register(EventLikeCreated, engine.HandleLike)
	d.Register(EventCommentCreated, engine.HandleComment)
	d.Register(EventRevisionCreated, engine.HandleRevision)
	d.Register(EventFollowCreated, func(ctx context.Context, ev Event) error {
		if err := propagator.SeedFollowerFeed(ctx, ev); err != nil {
			return err
		}
		return engine.HandleFollow(ctx, ev)
	})

	return d
}

// NewEmptyDispatcher returns a dispatcher with no handlers registered.
// Callers install their own table with Register.
func NewEmptyDispatcher(log *zap.Logger) *Dispatcher {
	return &Dispatcher{
		handlers: make(map[EventKind]HandlerFunc),
		log:      log,
	}
}

// Register installs (or replaces) the handler for an event kind
func (d *Dispatcher) Register(kind EventKind, h HandlerFunc) {
	d.handlers[kind] = h
}

// Dispatch runs the handler registered for the event's kind. The event id in
// the logs ties a failure back to one delivery when the platform redelivers.
func (d *Dispatcher) Dispatch(ctx context.Context, ev Event) error {
	h, ok := d.handlers[ev.Kind]
	if !ok {
		return fmt.Errorf("no handler registered for event kind %s", ev.Kind)
	}

	log := d.log.With(
		zap.String("event_id", uuid.NewString()),
		zap.String("event_kind", ev.Kind.String()),
	)
	if err := h(ctx, ev); err != nil {
		log.Error("event handler failed", zap.Error(err))
		return err
	}
	return nil
}
