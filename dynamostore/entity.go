package dynamostore

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// PK represents a DynamoDB primary key.
type PK map[string]types.AttributeValue

// Entity is the base interface for all storable types.
type Entity interface {
	// TableName returns the DynamoDB table name for this entity type.
	TableName() string

	// GetKey returns the primary key for this entity.
	GetKey() PK

	// EntityRef returns the type-qualified reference (e.g., "posts#uuid").
	EntityRef() string

	// EntityType returns the entity type name (e.g., "posts").
	EntityType() string
}

// Item represents a retrieved DynamoDB item with common fields.
type Item struct {
	// Raw is the raw DynamoDB item.
	Raw map[string]types.AttributeValue

	// Version is the optimistic lock version.
	Version int64

	// EntityRef is the type-qualified entity reference.
	EntityRef string

	// EntityType is the entity type name.
	EntityType string

	// DeletedAt is the soft-delete instant, or nil when active.
	DeletedAt *time.Time
}
