package postgres

import (
	"strings"
	"testing"
)

func TestULIDGenerator_NewReference(t *testing.T) {
	gen := NewULIDGenerator()

	ref := gen.NewReference()
	if !strings.HasPrefix(ref, ReferencePrefix) {
		t.Errorf("expected %s prefix, got %s", ReferencePrefix, ref)
	}
	if len(ref) != len(ReferencePrefix)+26 {
		t.Errorf("expected %d characters, got %d (%s)", len(ReferencePrefix)+26, len(ref), ref)
	}

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		r := gen.NewReference()
		if seen[r] {
			t.Fatalf("duplicate reference generated: %s", r)
		}
		seen[r] = true
	}
}

func TestULIDGenerator_NewID(t *testing.T) {
	gen := NewULIDGenerator()

	id := gen.NewID()
	if len(id) != 26 {
		t.Errorf("expected a 26 character ULID, got %d (%s)", len(id), id)
	}
	if strings.HasPrefix(id, ReferencePrefix) {
		t.Error("entry IDs carry no reference prefix")
	}
}
