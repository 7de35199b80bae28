// Package restore implements cascading restoration of soft-deleted records.
//
// Lazarus is designed for applications that soft delete hierarchies of
// records: when a parent is restored, the children that were trashed as part
// of the parent's deletion should come back with it, while children that were
// trashed independently (before the parent, or for unrelated reasons) must
// stay trashed.
//
// # Key Features
//
//   - Timestamp-based eligibility: a child is restored only when it was
//     trashed at or after the instant the parent was
//   - Closed relationship shapes: to-many, polymorphic to-many, many-to-many
//   - Per-type cascade configuration registered once at init
//   - Restoring-event bus, so each child restore triggers its own cascade
//     and deep hierarchies come back level by level
//   - Fail-fast error handling; misconfiguration is never silently ignored
//
// # Collaborator Contracts
//
// The engine owns no records. Record stores adapt their records to [Record],
// the [SoftDeletable] capability, and the [RelationshipResolver] capability:
//
//	type SoftDeletable interface {
//	    Record
//	    DeletedAt() *time.Time
//	    Restore(ctx context.Context) error
//	}
//
// Relationship handles expose their shape and a one-shot trashed-member query:
//
//	type Handle interface {
//	    Shape() Shape
//	    OnlyTrashed(ctx context.Context) ([]SoftDeletable, error)
//	}
//
// # Wiring
//
// Declare cascades per record type, bind the engine to the store's bus, and
// have the store publish a restoring event before each restore is finalized:
//
//	reg := restore.NewRegistry()
//	reg.Register("posts", "Comments", "Tags")
//
//	bus := restore.NewBus()
//	engine := restore.New(reg, nil)
//	engine.Bind(bus)
//
// # Errors
//
// All misconfiguration surfaces as an error wrapping [ErrConfiguration]:
//
//   - [ErrNotSoftDeletable] - record has no delete marker or restore operation
//   - [ErrUnknownRelationship] - configured name does not resolve
//   - [ErrUnsupportedShape] - relationship shape cannot cascade
//
// Store failures (query or restore) propagate unchanged and abort the run.
package restore
