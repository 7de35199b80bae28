package restore_test

import (
	"testing"

	"github.com/jacentio/lazarus/restore"
)

func TestNewRegistry(t *testing.T) {
	r := restore.NewRegistry()
	if r == nil {
		t.Fatal("expected non-nil Registry")
	}
	if r.HasCascades("posts") {
		t.Error("empty registry should have no cascades")
	}
}

func TestRegistry_Register(t *testing.T) {
	r := restore.NewRegistry()
	r.Register("posts", "Comments", "Tags")

	names := r.CascadesOf("posts")
	if len(names) != 2 {
		t.Fatalf("expected 2 relationships, got %d", len(names))
	}
	if names[0] != "Comments" || names[1] != "Tags" {
		t.Errorf("expected declaration order [Comments Tags], got %v", names)
	}
}

func TestRegistry_RegisterAppends(t *testing.T) {
	r := restore.NewRegistry()
	r.Register("posts", "Comments")
	r.Register("posts", "Tags")

	names := r.CascadesOf("posts")
	if len(names) != 2 {
		t.Fatalf("expected 2 relationships after two registrations, got %d", len(names))
	}
	if names[0] != "Comments" || names[1] != "Tags" {
		t.Errorf("expected [Comments Tags], got %v", names)
	}
}

func TestRegistry_CascadesOf_Unregistered(t *testing.T) {
	r := restore.NewRegistry()
	r.Register("posts", "Comments")

	if names := r.CascadesOf("users"); names != nil {
		t.Errorf("expected nil for unregistered type, got %v", names)
	}
}

func TestRegistry_HasCascades(t *testing.T) {
	r := restore.NewRegistry()
	r.Register("posts", "Comments")
	r.Register("threads")

	if !r.HasCascades("posts") {
		t.Error("expected posts to have cascades")
	}
	if r.HasCascades("threads") {
		t.Error("a declaration with no relationships should report no cascades")
	}
	if r.HasCascades("users") {
		t.Error("unregistered type should report no cascades")
	}
}

func TestRegistry_RecordTypes(t *testing.T) {
	r := restore.NewRegistry()
	r.Register("posts", "Comments")
	r.Register("comments", "Reactions")
	r.Register("posts", "Tags")

	types := r.RecordTypes()
	if len(types) != 2 {
		t.Fatalf("expected 2 record types, got %d", len(types))
	}
	if types[0] != "posts" || types[1] != "comments" {
		t.Errorf("expected first-seen order [posts comments], got %v", types)
	}
}
