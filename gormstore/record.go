package gormstore

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	"github.com/jacentio/lazarus/restore"
)

// record adapts one model instance to the restore engine's base contract.
type record struct {
	store *Store
	model any
	value reflect.Value
	sch   *schema.Schema
}

func (r *record) RecordType() string { return r.sch.Table }

func (r *record) RecordRef() string {
	pk := "?"
	if f := r.sch.PrioritizedPrimaryField; f != nil {
		if v, zero := f.ValueOf(context.Background(), r.value); !zero {
			pk = fmt.Sprint(v)
		}
	}
	return fmt.Sprintf("%s#%s", r.sch.Table, pk)
}

// softRecord adds the soft-delete capability for models with a
// gorm.DeletedAt field.
type softRecord struct {
	record
	deletedAt *schema.Field
}

func (r *softRecord) DeletedAt() *time.Time {
	v, zero := r.deletedAt.ValueOf(context.Background(), r.value)
	if zero {
		return nil
	}
	d, ok := v.(gorm.DeletedAt)
	if !ok || !d.Valid {
		return nil
	}
	t := d.Time
	return &t
}

// Restore publishes the restoring event, then clears the delete marker.
// An active model is left alone.
func (r *softRecord) Restore(ctx context.Context) error {
	if r.DeletedAt() == nil {
		return nil // already active
	}

	if r.store.bus != nil {
		if err := r.store.bus.PublishRestoring(ctx, r); err != nil {
			return err
		}
	}

	tx := r.store.db.WithContext(ctx).Unscoped().Model(r.model).Update(r.deletedAt.DBName, nil)
	if tx.Error != nil {
		return tx.Error
	}

	// keep the in-memory marker in sync with the row
	return r.deletedAt.Set(ctx, r.value, gorm.DeletedAt{})
}

// Relationship resolves a named relationship from the parsed schema.
func (r *softRecord) Relationship(name string) (restore.Handle, error) {
	rel, ok := r.sch.Relationships.Relations[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", restore.ErrUnknownRelationship, r.sch.Table, name)
	}

	shape := shapeOf(rel)
	if !shape.Supported() {
		return nil, fmt.Errorf("%w: %s.%s is %s", restore.ErrUnsupportedShape, r.sch.Table, name, rel.Type)
	}

	childDeleted := deletedAtField(rel.FieldSchema)
	if childDeleted == nil {
		return nil, fmt.Errorf("%w: members of %s.%s", restore.ErrNotSoftDeletable, r.sch.Table, name)
	}

	return &relationshipHandle{
		parent:       r,
		rel:          rel,
		shape:        shape,
		childDeleted: childDeleted,
	}, nil
}

// shapeOf maps a GORM relationship onto the engine's closed shape set.
func shapeOf(rel *schema.Relationship) restore.Shape {
	switch rel.Type {
	case schema.HasMany:
		if rel.Polymorphic != nil {
			return restore.ToManyPolymorphic
		}
		return restore.ToMany
	case schema.Many2Many:
		return restore.ManyToMany
	}
	return restore.ShapeInvalid
}

// relationshipHandle is a resolved relationship on one parent model.
type relationshipHandle struct {
	parent       *softRecord
	rel          *schema.Relationship
	shape        restore.Shape
	childDeleted *schema.Field
}

func (h *relationshipHandle) Shape() restore.Shape { return h.shape }

// OnlyTrashed queries the soft-deleted members of the relationship in a
// single statement per call. Eligibility is not part of the query; the
// engine filters in process.
func (h *relationshipHandle) OnlyTrashed(ctx context.Context) ([]restore.SoftDeletable, error) {
	out := reflect.New(reflect.SliceOf(reflect.PointerTo(h.rel.FieldSchema.ModelType)))
	db := h.parent.store.db.WithContext(ctx).Unscoped()

	switch h.shape {
	case restore.ToMany, restore.ToManyPolymorphic:
		// Children hold the parent reference directly. Polymorphic owners
		// add a constant type reference alongside the key.
		for _, ref := range h.rel.References {
			switch {
			case ref.OwnPrimaryKey:
				v, _ := ref.PrimaryKey.ValueOf(ctx, h.parent.value)
				db = db.Where(fmt.Sprintf("%s = ?", ref.ForeignKey.DBName), v)
			case ref.PrimaryValue != "":
				db = db.Where(fmt.Sprintf("%s = ?", ref.ForeignKey.DBName), ref.PrimaryValue)
			}
		}
		db = db.Where(fmt.Sprintf("%s IS NOT NULL", h.childDeleted.DBName))
		if err := db.Find(out.Interface()).Error; err != nil {
			return nil, err
		}

	case restore.ManyToMany:
		joinTable := h.rel.JoinTable.Table
		childTable := h.rel.FieldSchema.Table

		var parentValue any
		var joinParentFK, joinChildFK, childPK string
		for _, ref := range h.rel.References {
			if ref.OwnPrimaryKey {
				parentValue, _ = ref.PrimaryKey.ValueOf(ctx, h.parent.value)
				joinParentFK = ref.ForeignKey.DBName
			} else {
				joinChildFK = ref.ForeignKey.DBName
				childPK = ref.PrimaryKey.DBName
			}
		}

		err := db.Table(childTable).
			Select(childTable+".*").
			Joins(fmt.Sprintf("JOIN %s ON %s.%s = %s.%s", joinTable, joinTable, joinChildFK, childTable, childPK)).
			Where(fmt.Sprintf("%s.%s = ?", joinTable, joinParentFK), parentValue).
			Where(fmt.Sprintf("%s.%s IS NOT NULL", childTable, h.childDeleted.DBName)).
			Find(out.Interface()).Error
		if err != nil {
			return nil, err
		}
	}

	slice := out.Elem()
	children := make([]restore.SoftDeletable, 0, slice.Len())
	for i := 0; i < slice.Len(); i++ {
		rec, err := h.parent.store.Wrap(slice.Index(i).Interface())
		if err != nil {
			return nil, err
		}
		// The child schema was checked for a delete marker at resolution
		sd, ok := rec.(restore.SoftDeletable)
		if !ok {
			return nil, fmt.Errorf("%w: members of %s", restore.ErrNotSoftDeletable, h.rel.FieldSchema.Table)
		}
		children = append(children, sd)
	}
	return children, nil
}
