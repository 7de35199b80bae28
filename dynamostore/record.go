package dynamostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacentio/lazarus/restore"
)

// record adapts one stored item to the restore engine's contracts.
type record struct {
	store     *Store
	table     string
	key       PK
	typ       string
	ref       string
	deletedAt *time.Time
}

func (r *record) RecordType() string { return r.typ }
func (r *record) RecordRef() string  { return r.ref }

func (r *record) DeletedAt() *time.Time { return r.deletedAt }

// Restore publishes the restoring event, then removes the delete marker and
// bumps the version. An item whose marker is already gone is left alone.
func (r *record) Restore(ctx context.Context) error {
	if r.deletedAt == nil {
		return nil // already active
	}

	if r.store.bus != nil {
		if err := r.store.bus.PublishRestoring(ctx, r); err != nil {
			return err
		}
	}

	_, err := r.store.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.table),
		Key:                 r.key,
		UpdateExpression:    aws.String("REMOVE #deleted_at SET #version = #version + :one"),
		ConditionExpression: aws.String("attribute_exists(#deleted_at)"),
		ExpressionAttributeNames: map[string]string{
			"#deleted_at": attrDeletedAt,
			"#version":    attrVersion,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
	})

	// Ignore condition failure - someone restored it first
	var condErr *types.ConditionalCheckFailedException
	if errors.As(err, &condErr) {
		err = nil
	}
	if err != nil {
		return err
	}

	r.deletedAt = nil
	return nil
}

// Relationship resolves a registered relationship for this record's type.
func (r *record) Relationship(name string) (restore.Handle, error) {
	rel, ok := r.store.relationships.Resolve(r.typ, name)
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", restore.ErrUnknownRelationship, r.typ, name)
	}
	if !rel.Shape.Supported() {
		return nil, fmt.Errorf("%w: %s.%s is %s", restore.ErrUnsupportedShape, r.typ, name, rel.Shape)
	}
	return &relationshipHandle{store: r.store, parent: r, rel: rel}, nil
}

// relationshipHandle is a resolved relationship on one parent record.
type relationshipHandle struct {
	store  *Store
	parent *record
	rel    Relationship
}

func (h *relationshipHandle) Shape() restore.Shape { return h.rel.Shape }

func (h *relationshipHandle) OnlyTrashed(ctx context.Context) ([]restore.SoftDeletable, error) {
	switch h.rel.Shape {
	case restore.ToMany, restore.ToManyPolymorphic:
		return h.store.queryTrashedByRef(ctx, h.parent, h.rel)
	case restore.ManyToMany:
		return h.store.queryTrashedLinked(ctx, h.parent, h.rel)
	}
	return nil, fmt.Errorf("%w: %s", restore.ErrUnsupportedShape, h.rel.Shape)
}
