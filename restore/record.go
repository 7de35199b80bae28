package restore

import (
	"context"
	"time"
)

// Record is the base interface for anything the engine can cascade over.
type Record interface {
	// RecordType returns the record's type name (e.g., "posts").
	RecordType() string

	// RecordRef returns the type-qualified reference (e.g., "posts#uuid").
	RecordRef() string
}

// SoftDeletable is the capability interface for records that carry a
// soft-delete marker. The engine refuses to cascade records that do not
// implement it.
type SoftDeletable interface {
	Record

	// DeletedAt returns the soft-delete timestamp, or nil when active.
	DeletedAt() *time.Time

	// Restore clears the soft-delete marker. Implementations must publish a
	// restoring event before the marker is cleared, so nested cascades
	// observe the record while it is still trashed.
	Restore(ctx context.Context) error
}

// RelationshipResolver is the capability interface for records whose
// relationships can be resolved by name.
type RelationshipResolver interface {
	// Relationship resolves a named relationship to a handle. Unresolvable
	// names and unsupported shapes fail with an error wrapping
	// ErrConfiguration.
	Relationship(name string) (Handle, error)
}

// Handle is a resolved relationship on a specific parent record.
type Handle interface {
	// Shape returns the relationship's shape.
	Shape() Shape

	// OnlyTrashed lists the soft-deleted members of the relationship.
	// The result is a one-shot snapshot; call again for a fresh read.
	OnlyTrashed(ctx context.Context) ([]SoftDeletable, error)
}
