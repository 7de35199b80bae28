package restore

// Cascade declares the relationships restored alongside one record type.
type Cascade struct {
	// RecordType is the owning record type (e.g., "posts").
	RecordType string

	// Relationships are the relationship names to cascade, in declaration
	// order. Order only affects dispatch order; restores are independent.
	Relationships []string
}

// Registry holds cascade declarations for all record types.
// Register during init() for each record type; the registry is read-only
// afterwards and performs no locking.
type Registry struct {
	cascades []Cascade
	byType   map[string][]string
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		byType: make(map[string][]string),
	}
}

// Register declares the cascading relationships for a record type.
// Registering the same type again appends to its declaration.
func (r *Registry) Register(recordType string, relationships ...string) {
	r.cascades = append(r.cascades, Cascade{
		RecordType:    recordType,
		Relationships: relationships,
	})
	r.byType[recordType] = append(r.byType[recordType], relationships...)
}

// CascadesOf returns the relationship names declared for a record type, in
// declaration order. Unregistered types return nil: their restores simply
// cascade nothing.
func (r *Registry) CascadesOf(recordType string) []string {
	return r.byType[recordType]
}

// HasCascades reports whether a record type has any declared relationships.
func (r *Registry) HasCascades(recordType string) bool {
	return len(r.byType[recordType]) > 0
}

// RecordTypes returns all record types with declarations, in first-seen
// registration order.
func (r *Registry) RecordTypes() []string {
	var types []string
	seen := make(map[string]bool)
	for _, c := range r.cascades {
		if !seen[c.RecordType] {
			seen[c.RecordType] = true
			types = append(types, c.RecordType)
		}
	}
	return types
}
