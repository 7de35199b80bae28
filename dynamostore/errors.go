package dynamostore

import "errors"

var (
	// ErrNotFound is returned when an entity's item does not exist.
	ErrNotFound = errors.New("lazarus: entity not found")
)
