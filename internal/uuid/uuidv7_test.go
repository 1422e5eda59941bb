package uuid

import "testing"

func TestNew(t *testing.T) {
	a := New()
	b := New()
	if a == b {
		t.Fatal("expected distinct ids")
	}
	if !IsValid(a) {
		t.Errorf("expected valid uuid, got %q", a)
	}
	if Version(a) != 7 {
		t.Errorf("expected version 7, got %d", Version(a))
	}
	if a[:8] > b[:8] {
		t.Errorf("expected time ordering, %s came after %s", a, b)
	}
}

func TestParse(t *testing.T) {
	got, err := Parse("0190A3C4-1234-7ABC-8DEF-0123456789AB")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "0190a3c4-1234-7abc-8def-0123456789ab" {
		t.Errorf("unexpected normalised id %q", got)
	}
	if _, err := Parse("t1"); err == nil {
		t.Error("expected error for short id")
	}
	if IsValid("cycle_amd_1") {
		t.Error("expected invalid")
	}
	if Version("nope") != 0 {
		t.Error("expected version 0 for invalid id")
	}
}
