package events

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storefront-edge/internal/models"
)

// Handler reacts to one event kind. The raw payload shape depends on the
// kind; handlers decode what they need.
type Handler func(ctx context.Context, event models.Event) error

// Dispatcher routes lifecycle events to their registered handlers. One
// handler per kind; unknown kinds are rejected at dispatch.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[models.EventKind]Handler
	logger   *zap.Logger
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher(logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		handlers: make(map[models.EventKind]Handler),
		logger:   logger,
	}
}

// Register binds a handler to an event kind, replacing any previous one.
func (d *Dispatcher) Register(kind models.EventKind, h Handler) {
	d.mu.Lock()
	d.handlers[kind] = h
	d.mu.Unlock()

	d.logger.Debug("Event handler registered", zap.String("kind", string(kind)))
}

// Dispatch delivers one event to its handler. Events without an ID are
// assigned one so log lines across a handler run can be correlated.
func (d *Dispatcher) Dispatch(ctx context.Context, event models.Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}

	d.mu.RLock()
	h, ok := d.handlers[event.Kind]
	d.mu.RUnlock()

	if !ok {
		return fmt.Errorf("no handler registered for event kind '%s'", event.Kind)
	}

	d.logger.Info("Dispatching event",
		zap.String("event_id", event.ID), zap.String("kind", string(event.Kind)))

	if err := h(ctx, event); err != nil {
		d.logger.Error("Event handler failed",
			zap.String("event_id", event.ID), zap.String("kind", string(event.Kind)), zap.Error(err))
		return err
	}

	return nil
}
