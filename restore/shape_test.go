package restore_test

import (
	"testing"

	"github.com/jacentio/lazarus/restore"
)

func TestShape_Supported(t *testing.T) {
	tests := []struct {
		shape    restore.Shape
		expected bool
	}{
		{restore.ToMany, true},
		{restore.ToManyPolymorphic, true},
		{restore.ManyToMany, true},
		{restore.ShapeInvalid, false},
		{restore.Shape(42), false},
	}

	for _, tt := range tests {
		if got := tt.shape.Supported(); got != tt.expected {
			t.Errorf("Shape(%d).Supported() = %v, expected %v", tt.shape, got, tt.expected)
		}
	}
}

func TestShape_String(t *testing.T) {
	tests := []struct {
		shape    restore.Shape
		expected string
	}{
		{restore.ToMany, "to-many"},
		{restore.ToManyPolymorphic, "to-many-polymorphic"},
		{restore.ManyToMany, "many-to-many"},
		{restore.ShapeInvalid, "invalid"},
	}

	for _, tt := range tests {
		if got := tt.shape.String(); got != tt.expected {
			t.Errorf("String() = %q, expected %q", got, tt.expected)
		}
	}
}
