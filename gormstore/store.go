// Package gormstore adapts GORM-managed models to the restore engine.
//
// Soft deletion is GORM's native gorm.DeletedAt field. Relationship shapes
// are derived from the parsed model schema: has-many maps to to-many,
// has-many with a polymorphic owner maps to polymorphic to-many, and
// many2many maps to many-to-many. Anything else fails resolution with a
// configuration error.
package gormstore

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"

	"github.com/jacentio/lazarus/restore"
)

// Open creates a new database connection for the given dialect.
func Open(ctx context.Context, dialect string, dsn string, config *gorm.Config) (*gorm.DB, error) {
	if config == nil {
		config = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		}
	}

	var db *gorm.DB
	var err error

	switch dialect {
	case "sqlite":
		db, err = gorm.Open(sqlite.Open(dsn), config)
		if err == nil {
			db.Exec("PRAGMA foreign_keys = ON")
		}
	case "mysql":
		db, err = gorm.Open(mysql.Open(dsn), config)
	default:
		return nil, fmt.Errorf("unsupported dialect: %s", dialect)
	}
	if err != nil {
		return nil, err
	}

	return db.WithContext(ctx), nil
}

// Store adapts a GORM database to the restore engine's record store
// contract. The bus receives a restoring event for every restore issued
// through this store; pass nil to disable events.
type Store struct {
	db    *gorm.DB
	bus   *restore.Bus
	cache *sync.Map
}

// New creates a new Store around an open database.
func New(db *gorm.DB, bus *restore.Bus) *Store {
	return &Store{
		db:    db,
		bus:   bus,
		cache: &sync.Map{},
	}
}

// DB returns the underlying database handle.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Wrap adapts a model to a record the restore engine can cascade over. The
// model must carry its primary key; to wrap a trashed row, load it with
// Unscoped so the delete marker is populated.
func (s *Store) Wrap(model any) (restore.Record, error) {
	sch, err := schema.Parse(model, s.cache, s.db.NamingStrategy)
	if err != nil {
		return nil, err
	}

	rec := record{
		store: s,
		model: model,
		value: reflect.ValueOf(model),
		sch:   sch,
	}
	if f := deletedAtField(sch); f != nil {
		return &softRecord{record: rec, deletedAt: f}, nil
	}
	return &rec, nil
}

// Restore clears a model's soft-delete marker, publishing a restoring event
// first so declared cascades run while the marker is still set. Restoring an
// active model is a no-op. Models without a soft-delete field fail with a
// configuration error.
func (s *Store) Restore(ctx context.Context, model any) error {
	rec, err := s.Wrap(model)
	if err != nil {
		return err
	}
	sd, err := restore.Validate(rec)
	if err != nil {
		return err
	}
	return sd.Restore(ctx)
}

// deletedAtField returns the schema's gorm.DeletedAt field, or nil when the
// model has no soft-delete marker.
func deletedAtField(sch *schema.Schema) *schema.Field {
	deletedAtType := reflect.TypeOf(gorm.DeletedAt{})
	for _, f := range sch.Fields {
		if f.FieldType == deletedAtType {
			return f
		}
	}
	return nil
}
