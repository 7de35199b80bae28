package dynamostore

import "github.com/jacentio/lazarus/restore"

// Relationship describes how one named relationship on a parent type is
// queried. Register one row per relationship during init().
type Relationship struct {
	// Name is the relationship name on the parent (e.g., "Comments").
	Name string

	// Shape is the relationship's shape.
	Shape restore.Shape

	// ParentType is the parent entity type (e.g., "posts").
	ParentType string

	// ChildTable is the DynamoDB table holding the children.
	ChildTable string

	// ChildType is the child entity type (e.g., "comments").
	ChildType string

	// ChildKeyAttr is the child table's key attribute. Default: "id".
	ChildKeyAttr string

	// IndexName is the GSI keyed by RefAttr. Required for to-many and
	// polymorphic to-many shapes; unused for many-to-many.
	IndexName string

	// RefAttr is the attribute on the child holding the parent reference
	// (e.g., "parent_ref", or "owner_ref" for polymorphic children).
	RefAttr string

	// OwnerTypeAttr is the attribute holding the owner's type on polymorphic
	// children (e.g., "owner_type"). Only used for the polymorphic shape.
	OwnerTypeAttr string
}

// Registry holds all known relationships for cascade restores.
// Register during init(); the registry is read-only afterwards.
type Registry struct {
	byParent map[string]map[string]Relationship
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		byParent: make(map[string]map[string]Relationship),
	}
}

// Register adds a relationship to the registry.
func (r *Registry) Register(rel Relationship) {
	if rel.ChildKeyAttr == "" {
		rel.ChildKeyAttr = "id"
	}
	byName, ok := r.byParent[rel.ParentType]
	if !ok {
		byName = make(map[string]Relationship)
		r.byParent[rel.ParentType] = byName
	}
	byName[rel.Name] = rel
}

// Resolve looks up a relationship by parent type and name.
func (r *Registry) Resolve(parentType, name string) (Relationship, bool) {
	rel, ok := r.byParent[parentType][name]
	return rel, ok
}
