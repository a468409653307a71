package usecase

import (
	"context"

	"github.com/iho/hucha/internal/domain"
)

// EventApplier applies one domain event inside the open transaction of the
// command that raised it. An error aborts the whole transaction.
type EventApplier func(ctx context.Context, tx Transaction, event domain.Event) error

// Dispatcher routes domain events to registered appliers, synchronously and
// in-process, before the unit of work commits. Registration happens at
// wiring time; Dispatch is read-only and safe for concurrent use.
type Dispatcher struct {
	appliers map[string][]EventApplier
}

// NewDispatcher creates an empty Dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{appliers: make(map[string][]EventApplier)}
}

// Register adds an applier for an event type.
func (d *Dispatcher) Register(eventType string, applier EventApplier) {
	d.appliers[eventType] = append(d.appliers[eventType], applier)
}

// Dispatch applies events in order. The first applier error stops
// dispatching and is returned to the caller, which rolls back.
func (d *Dispatcher) Dispatch(ctx context.Context, tx Transaction, events []domain.Event) error {
	for _, ev := range events {
		for _, apply := range d.appliers[ev.EventType()] {
			if err := apply(ctx, tx, ev); err != nil {
				return err
			}
		}
	}

	return nil
}
