// Package dynamostore adapts DynamoDB-backed entities to the restore engine.
//
// Soft deletion is a deleted_at attribute holding epoch seconds; active items
// do not carry the attribute at all. Restoring removes the attribute and bumps
// the version so concurrent optimistic-lock updates fail after the state flip.
//
// Relationship shapes map onto DynamoDB access patterns:
//
//   - to-many: GSI query on the child table keyed by a parent reference
//     attribute, filtered to trashed items
//   - to-many-polymorphic: the same query against a shared owner reference
//     GSI, plus an owner type filter
//   - many-to-many: a sharded relationship table holding link rows, resolved
//     row by row to child items
//
// Relationships are registered per parent type with the metadata those
// queries need. Entity tables are keyed by a single attribute (default "id").
package dynamostore
