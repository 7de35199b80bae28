package restore_test

import (
	"testing"
	"time"

	"github.com/jacentio/lazarus/restore"
)

func ts(unix int64) *time.Time {
	t := time.Unix(unix, 0)
	return &t
}

func TestEligible(t *testing.T) {
	tests := []struct {
		name     string
		parent   *time.Time
		child    *time.Time
		expected bool
	}{
		{"child trashed after parent", ts(100), ts(150), true},
		{"child trashed with parent", ts(100), ts(100), true},
		{"child trashed before parent", ts(100), ts(50), false},
		{"child not trashed", ts(100), nil, false},
		{"parent not trashed", nil, ts(150), false},
		{"neither trashed", nil, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := restore.Eligible(tt.parent, tt.child)
			if result != tt.expected {
				t.Errorf("Eligible(%v, %v) = %v, expected %v", tt.parent, tt.child, result, tt.expected)
			}
		})
	}
}

func TestEligible_SubSecondPrecision(t *testing.T) {
	parent := time.Unix(100, 500_000_000)
	justBefore := time.Unix(100, 499_999_999)
	justAfter := time.Unix(100, 500_000_001)

	if restore.Eligible(&parent, &justBefore) {
		t.Error("child trashed a nanosecond before the parent should not be eligible")
	}
	if !restore.Eligible(&parent, &justAfter) {
		t.Error("child trashed a nanosecond after the parent should be eligible")
	}
}

func TestEligible_IsPure(t *testing.T) {
	parent := ts(100)
	child := ts(150)

	restore.Eligible(parent, child)

	if !parent.Equal(time.Unix(100, 0)) || !child.Equal(time.Unix(150, 0)) {
		t.Error("Eligible must not mutate its inputs")
	}
}
