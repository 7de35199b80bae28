package dynamostore

import (
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Managed attribute names.
const (
	attrDeletedAt  = "deleted_at"
	attrVersion    = "version"
	attrEntityRef  = "entity_ref"
	attrEntityType = "entity_type"
)

// DeletedAtOf returns an item's soft-delete instant, or nil when active.
func DeletedAtOf(item map[string]types.AttributeValue) *time.Time {
	attr, exists := item[attrDeletedAt]
	if !exists {
		return nil // no attribute = active
	}
	num, ok := attr.(*types.AttributeValueMemberN)
	if !ok {
		return nil
	}
	unix, err := strconv.ParseInt(num.Value, 10, 64)
	if err != nil {
		return nil
	}
	t := time.Unix(unix, 0).UTC()
	return &t
}

// IsTrashed reports whether an item carries a soft-delete marker.
func IsTrashed(item map[string]types.AttributeValue) bool {
	return DeletedAtOf(item) != nil
}

// TrashedFilterExpr returns the filter expression selecting only trashed
// items. Use with TrashedFilterNames when building custom queries.
func TrashedFilterExpr() string {
	return "attribute_exists(#deleted_at)"
}

// TrashedFilterNames returns expression attribute names for the trashed
// filter.
func TrashedFilterNames() map[string]string {
	return map[string]string{"#deleted_at": attrDeletedAt}
}

// unmarshalItem converts a raw DynamoDB item to an Item struct.
func unmarshalItem(raw map[string]types.AttributeValue) *Item {
	item := &Item{Raw: raw, DeletedAt: DeletedAtOf(raw)}

	if v, ok := raw[attrVersion].(*types.AttributeValueMemberN); ok {
		item.Version, _ = strconv.ParseInt(v.Value, 10, 64)
	}
	if v, ok := raw[attrEntityRef].(*types.AttributeValueMemberS); ok {
		item.EntityRef = v.Value
	}
	if v, ok := raw[attrEntityType].(*types.AttributeValueMemberS); ok {
		item.EntityType = v.Value
	}

	return item
}
