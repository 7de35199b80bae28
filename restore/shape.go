package restore

// Shape identifies the structural kind of a parent-child relationship.
// It is a closed set: anything outside it fails relationship resolution
// with ErrUnsupportedShape.
type Shape uint8

const (
	// ShapeInvalid is the zero value. It never passes dispatch.
	ShapeInvalid Shape = iota

	// ToMany is a one-to-many relationship keyed by a parent reference
	// stored on the child.
	ToMany

	// ToManyPolymorphic is a one-to-many relationship whose children carry
	// the owner's type alongside its reference, so several parent types can
	// share one child table.
	ToManyPolymorphic

	// ManyToMany is a relationship materialized through a join structure.
	ManyToMany
)

// Supported reports whether the shape can participate in a cascade restore.
func (s Shape) Supported() bool {
	switch s {
	case ToMany, ToManyPolymorphic, ManyToMany:
		return true
	}
	return false
}

// String returns the shape's wire-friendly name.
func (s Shape) String() string {
	switch s {
	case ToMany:
		return "to-many"
	case ToManyPolymorphic:
		return "to-many-polymorphic"
	case ManyToMany:
		return "many-to-many"
	}
	return "invalid"
}
