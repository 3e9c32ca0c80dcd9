package platform

import (
	"strings"
	"testing"
)

func TestComputeRootDeterministic(t *testing.T) {
	root1 := ComputeRoot("session", "abc")
	root2 := ComputeRoot("session", "abc")

	if root1 != root2 {
		t.Errorf("same inputs should produce same root: %s != %s", root1, root2)
	}
}

func TestComputeRootDifferentDomains(t *testing.T) {
	root1 := ComputeRoot("session", "test-123")
	root2 := ComputeRoot("gift", "test-123")

	if root1 == root2 {
		t.Error("different domains should produce different roots")
	}
}

func TestSessionRoot(t *testing.T) {
	if SessionRoot("abc") != ComputeRoot("session", "abc") {
		t.Error("SessionRoot mismatch")
	}
}

func TestNewEntryID_uniquePerCall(t *testing.T) {
	a := NewEntryID("choc-1")
	b := NewEntryID("choc-1")

	if a == b {
		t.Errorf("entry ids should differ: %s", a)
	}
	if !strings.HasPrefix(a, "item-") || !strings.HasSuffix(a, "-choc-1") {
		t.Errorf("unexpected entry id shape: %s", a)
	}
}
