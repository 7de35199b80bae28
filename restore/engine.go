package restore

import (
	"context"
	"fmt"
	"log/slog"
)

// Engine runs cascade restores. It is triggered by restoring events: when a
// parent is restored, the trashed children that were trashed at or after the
// parent are restored with it. Each child restore publishes its own
// restoring event, so deeper levels cascade naturally; the engine never
// recurses explicitly.
type Engine struct {
	registry *Registry
	logger   *slog.Logger
}

// New creates a new Engine.
func New(registry *Registry, logger *slog.Logger) *Engine {
	if registry == nil {
		registry = NewRegistry()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		registry: registry,
		logger:   logger,
	}
}

// Bind subscribes the engine's restoring handler for every record type in
// its registry. Call once at process initialization.
func (e *Engine) Bind(bus *Bus) {
	for _, recordType := range e.registry.RecordTypes() {
		bus.Subscribe(recordType, e.OnRestoring)
	}
}

// Validate checks that a record can participate in cascade restore,
// returning its soft-delete capability. Records without one fail with
// ErrNotSoftDeletable before any cascade work happens.
func Validate(rec Record) (SoftDeletable, error) {
	sd, ok := rec.(SoftDeletable)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotSoftDeletable, rec.RecordType())
	}
	return sd, nil
}

// OnRestoring handles a restoring event for rec: it validates the record,
// then dispatches every declared relationship in declaration order. The
// first failure aborts the remaining relationships so misconfiguration
// surfaces immediately instead of partially cascading.
func (e *Engine) OnRestoring(ctx context.Context, rec Record) error {
	parent, err := Validate(rec)
	if err != nil {
		return err
	}

	names := e.registry.CascadesOf(rec.RecordType())
	if len(names) == 0 {
		return nil
	}

	e.logger.Info("running cascade restore",
		"record", rec.RecordRef(),
		"relationships", len(names),
	)

	for _, name := range names {
		if err := e.dispatch(ctx, parent, name); err != nil {
			return err
		}
	}
	return nil
}

// dispatch restores the eligible trashed members of one relationship.
// Eligibility filtering happens here, in process, not in the store query:
// the store returns every trashed member and the timestamp comparison stays
// explicit.
func (e *Engine) dispatch(ctx context.Context, parent SoftDeletable, name string) error {
	resolver, ok := parent.(RelationshipResolver)
	if !ok {
		return fmt.Errorf("%w: %s cannot resolve %q", ErrUnknownRelationship, parent.RecordType(), name)
	}

	rel, err := resolver.Relationship(name)
	if err != nil {
		return fmt.Errorf("resolve %s.%s: %w", parent.RecordType(), name, err)
	}
	if !rel.Shape().Supported() {
		return fmt.Errorf("%w: %s.%s is %s", ErrUnsupportedShape, parent.RecordType(), name, rel.Shape())
	}

	children, err := rel.OnlyTrashed(ctx)
	if err != nil {
		return fmt.Errorf("query trashed %s.%s: %w", parent.RecordType(), name, err)
	}

	// The parent's marker is still set here: restoring events fire before
	// the restore is finalized.
	parentDeletedAt := parent.DeletedAt()

	restored := 0
	for _, child := range children {
		if !Eligible(parentDeletedAt, child.DeletedAt()) {
			continue
		}
		if err := child.Restore(ctx); err != nil {
			return fmt.Errorf("restore %s: %w", child.RecordRef(), err)
		}
		restored++
	}

	e.logger.Info("cascade restore dispatched",
		"record", parent.RecordRef(),
		"relationship", name,
		"shape", rel.Shape().String(),
		"trashed", len(children),
		"restored", restored,
	)

	return nil
}
