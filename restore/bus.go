package restore

import "context"

// Handler consumes a restoring event for one record.
type Handler func(ctx context.Context, rec Record) error

// Bus routes restoring events to handlers by record type. Record stores
// publish an event for every restore before the delete marker is cleared.
//
// Subscribe during init(); the bus is read-only afterwards and performs no
// locking. Handlers run synchronously on the publisher's stack, in
// subscription order, stopping at the first error.
type Bus struct {
	handlers map[string][]Handler
}

// NewBus creates a new empty Bus.
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[string][]Handler),
	}
}

// Subscribe registers a handler for a record type's restoring events.
func (b *Bus) Subscribe(recordType string, h Handler) {
	b.handlers[recordType] = append(b.handlers[recordType], h)
}

// PublishRestoring delivers a restoring event for rec. The first handler
// error aborts delivery and is returned to the publisher, which must not
// finalize the restore.
func (b *Bus) PublishRestoring(ctx context.Context, rec Record) error {
	for _, h := range b.handlers[rec.RecordType()] {
		if err := h(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}
