package restore

import (
	"errors"
	"fmt"
)

// ErrConfiguration is the base error for cascade restore misconfiguration.
// Every configuration failure wraps it, so errors.Is(err, ErrConfiguration)
// matches all of them.
var ErrConfiguration = errors.New("lazarus: invalid cascade restore configuration")

var (
	// ErrNotSoftDeletable is returned when a record without a soft-delete
	// marker or restore operation is asked to participate in a cascade.
	ErrNotSoftDeletable = fmt.Errorf("%w: record does not support soft delete", ErrConfiguration)

	// ErrUnknownRelationship is returned when a configured relationship name
	// does not resolve on the record.
	ErrUnknownRelationship = fmt.Errorf("%w: unknown relationship", ErrConfiguration)

	// ErrUnsupportedShape is returned when a relationship resolves to a shape
	// that cannot participate in a cascade restore.
	ErrUnsupportedShape = fmt.Errorf("%w: unsupported relationship shape", ErrConfiguration)
)
