package dynamostore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacentio/lazarus/internal/shard"
	"github.com/jacentio/lazarus/restore"
)

// Store provides DynamoDB operations for soft-deleted hierarchical entities.
type Store struct {
	client        *dynamodb.Client
	config        Config
	relationships *Registry
	bus           *restore.Bus
}

// New creates a new Store instance. The bus receives a restoring event for
// every restore issued through this store; pass nil to disable events.
func New(client *dynamodb.Client, config Config, relationships *Registry, bus *restore.Bus) *Store {
	config.validate()
	if relationships == nil {
		relationships = NewRegistry()
	}
	return &Store{
		client:        client,
		config:        config,
		relationships: relationships,
		bus:           bus,
	}
}

// Relationships returns the store's relationship registry.
func (s *Store) Relationships() *Registry {
	return s.relationships
}

// Get retrieves an entity's item by table and key. Trashed items are
// returned with DeletedAt set; callers decide what trashed means to them.
func (s *Store) Get(ctx context.Context, table string, key PK) (*Item, error) {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(table),
		Key:       key,
	})
	if err != nil {
		return nil, err
	}
	if result.Item == nil {
		return nil, ErrNotFound
	}
	return unmarshalItem(result.Item), nil
}

// Put writes an entity's item as active. attrs is marshalled with
// attributevalue and may be a struct or a map; the key, entity_ref,
// entity_type and version attributes are added on top. Pass nil for an item
// with identity attributes only.
func (s *Store) Put(ctx context.Context, entity Entity, attrs any) error {
	item := map[string]types.AttributeValue{}
	if attrs != nil {
		var err error
		item, err = attributevalue.MarshalMap(attrs)
		if err != nil {
			return err
		}
	}

	for k, v := range entity.GetKey() {
		item[k] = v
	}
	item[attrEntityRef] = &types.AttributeValueMemberS{Value: entity.EntityRef()}
	item[attrEntityType] = &types.AttributeValueMemberS{Value: entity.EntityType()}
	item[attrVersion] = &types.AttributeValueMemberN{Value: "1"}

	_, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(entity.TableName()),
		Item:      item,
	})
	return err
}

// Trash marks an entity as soft-deleted now.
func (s *Store) Trash(ctx context.Context, entity Entity) error {
	return s.TrashAt(ctx, entity, time.Now())
}

// TrashAt marks an entity as soft-deleted at the given instant and bumps the
// version so concurrent optimistic-lock updates fail. Trashing an
// already-trashed entity is a no-op: the original marker is what cascades
// compare against.
func (s *Store) TrashAt(ctx context.Context, entity Entity, at time.Time) error {
	_, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(entity.TableName()),
		Key:                 entity.GetKey(),
		UpdateExpression:    aws.String("SET #deleted_at = :at, #version = #version + :one"),
		ConditionExpression: aws.String("attribute_not_exists(#deleted_at)"),
		ExpressionAttributeNames: map[string]string{
			"#deleted_at": attrDeletedAt,
			"#version":    attrVersion,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":at": &types.AttributeValueMemberN{
				Value: strconv.FormatInt(at.Unix(), 10),
			},
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
	})

	// Ignore condition failure - already trashed
	var condErr *types.ConditionalCheckFailedException
	if errors.As(err, &condErr) {
		return nil
	}
	return err
}

// Restore clears an entity's soft-delete marker, publishing a restoring
// event first so declared cascades run while the marker is still set.
// Restoring an active entity is a no-op.
func (s *Store) Restore(ctx context.Context, entity Entity) error {
	item, err := s.Get(ctx, entity.TableName(), entity.GetKey())
	if err != nil {
		return err
	}
	rec := s.NewRecord(entity.TableName(), entity.GetKey(), entity.EntityType(), entity.EntityRef(), item.DeletedAt)
	return rec.Restore(ctx)
}

// Associate writes a many-to-many link row between parent and child under a
// named relationship. Links are plain rows; they carry no delete marker of
// their own.
func (s *Store) Associate(ctx context.Context, parent Entity, relationship string, child Entity) error {
	pk := shard.RelationshipPK(parent.EntityRef(), relationship, child.EntityRef(), s.config.NumShards)

	_, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.config.RelationshipTable),
		Item: map[string]types.AttributeValue{
			"pk":          &types.AttributeValueMemberS{Value: pk},
			"child_ref":   &types.AttributeValueMemberS{Value: child.EntityRef()},
			"parent_ref":  &types.AttributeValueMemberS{Value: parent.EntityRef()},
			"child_table": &types.AttributeValueMemberS{Value: child.TableName()},
			"child_key":   &types.AttributeValueMemberM{Value: child.GetKey()},
		},
	})
	return err
}

// NewRecord wraps an item's identity and delete marker as a record the
// restore engine can cascade over. The marker should be the item's state at
// the restoring moment; stream consumers pass the pre-restore marker from
// the old image.
func (s *Store) NewRecord(table string, key PK, entityType, entityRef string, deletedAt *time.Time) restore.SoftDeletable {
	return &record{
		store:     s,
		table:     table,
		key:       key,
		typ:       entityType,
		ref:       entityRef,
		deletedAt: deletedAt,
	}
}

// queryTrashedByRef lists trashed children holding a reference to the parent,
// via the relationship's GSI. Polymorphic relationships add an owner type
// filter on top of the shared reference attribute.
func (s *Store) queryTrashedByRef(ctx context.Context, parent *record, rel Relationship) ([]restore.SoftDeletable, error) {
	filter := TrashedFilterExpr()
	exprNames := map[string]string{
		"#deleted_at": attrDeletedAt,
		"#ref":        rel.RefAttr,
	}
	exprValues := map[string]types.AttributeValue{
		":ref": &types.AttributeValueMemberS{Value: parent.ref},
	}

	if rel.Shape == restore.ToManyPolymorphic {
		filter += " AND #owner_type = :owner_type"
		exprNames["#owner_type"] = rel.OwnerTypeAttr
		exprValues[":owner_type"] = &types.AttributeValueMemberS{Value: rel.ParentType}
	}

	var children []restore.SoftDeletable
	paginator := dynamodb.NewQueryPaginator(s.client, &dynamodb.QueryInput{
		TableName:                 aws.String(rel.ChildTable),
		IndexName:                 aws.String(rel.IndexName),
		KeyConditionExpression:    aws.String("#ref = :ref"),
		FilterExpression:          aws.String(filter),
		ExpressionAttributeNames:  exprNames,
		ExpressionAttributeValues: exprValues,
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			child, err := s.wrapChild(rel, raw)
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}
	}

	return children, nil
}

// queryTrashedLinked lists trashed children reachable through the
// relationship table: link rows resolve to child items, which are kept when
// they carry a delete marker.
func (s *Store) queryTrashedLinked(ctx context.Context, parent *record, rel Relationship) ([]restore.SoftDeletable, error) {
	var children []restore.SoftDeletable

	for _, shardPK := range shard.ShardPKs(parent.ref, rel.Name, s.config.NumShards) {
		paginator := dynamodb.NewQueryPaginator(s.client, &dynamodb.QueryInput{
			TableName:              aws.String(s.config.RelationshipTable),
			KeyConditionExpression: aws.String("pk = :pk"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":pk": &types.AttributeValueMemberS{Value: shardPK},
			},
		})
		for paginator.HasMorePages() {
			page, err := paginator.NextPage(ctx)
			if err != nil {
				return nil, err
			}
			for _, row := range page.Items {
				link := unmarshalLink(row, rel)

				result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
					TableName: aws.String(link.table),
					Key:       link.key,
				})
				if err != nil {
					return nil, fmt.Errorf("resolve link %s: %w", link.ref, err)
				}
				if result.Item == nil || !IsTrashed(result.Item) {
					continue
				}

				deletedAt := DeletedAtOf(result.Item)
				children = append(children, s.NewRecord(link.table, link.key, rel.ChildType, link.ref, deletedAt))
			}
		}
	}

	return children, nil
}

// wrapChild converts a queried child item to a restorable record.
func (s *Store) wrapChild(rel Relationship, raw map[string]types.AttributeValue) (restore.SoftDeletable, error) {
	keyAttr, ok := raw[rel.ChildKeyAttr]
	if !ok {
		return nil, fmt.Errorf("lazarus: child of %s.%s has no %q attribute", rel.ParentType, rel.Name, rel.ChildKeyAttr)
	}
	key := PK{rel.ChildKeyAttr: keyAttr}

	ref := ""
	if v, okRef := raw[attrEntityRef].(*types.AttributeValueMemberS); okRef {
		ref = v.Value
	}
	if ref == "" {
		if id, okID := keyAttr.(*types.AttributeValueMemberS); okID {
			ref = rel.ChildType + "#" + id.Value
		}
	}

	return s.NewRecord(rel.ChildTable, key, rel.ChildType, ref, DeletedAtOf(raw)), nil
}

// link is a resolved relationship-table row.
type link struct {
	ref   string
	table string
	key   PK
}

// unmarshalLink converts a relationship-table row to a link, falling back to
// the registered child table when the row does not name one.
func unmarshalLink(row map[string]types.AttributeValue, rel Relationship) link {
	l := link{table: rel.ChildTable}

	if v, ok := row["child_ref"].(*types.AttributeValueMemberS); ok {
		l.ref = v.Value
	}
	if v, ok := row["child_table"].(*types.AttributeValueMemberS); ok && v.Value != "" {
		l.table = v.Value
	}
	if v, ok := row["child_key"].(*types.AttributeValueMemberM); ok {
		l.key = v.Value
	}

	return l
}
