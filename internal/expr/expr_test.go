package expr

import (
	"strings"
	"testing"
)

func TestMatchBoolean(t *testing.T) {
	p, err := Compile("machine", "machine.current_jobs < machine.max_jobs")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	free := map[string]any{"current_jobs": 1, "max_jobs": 4}
	full := map[string]any{"current_jobs": 4, "max_jobs": 4}

	if ok, err := p.Match(free); err != nil || !ok {
		t.Errorf("Match(free) = (%v, %v), want (true, nil)", ok, err)
	}
	if ok, err := p.Match(full); err != nil || ok {
		t.Errorf("Match(full) = (%v, %v), want (false, nil)", ok, err)
	}
}

func TestMatchStringFields(t *testing.T) {
	p, err := Compile("job", `job.name.startsWith("batch-")`)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if ok, _ := p.Match(map[string]any{"name": "batch-7"}); !ok {
		t.Error("prefix match failed")
	}
	if ok, _ := p.Match(map[string]any{"name": "interactive"}); ok {
		t.Error("non-prefix matched")
	}
}

func TestCompileError(t *testing.T) {
	if _, err := Compile("user", "user.name ==="); err == nil {
		t.Fatal("Compile accepted a syntax error")
	}
	if _, err := Compile("user", ""); err == nil {
		t.Fatal("Compile accepted an empty expression")
	}
}

// TestNonBooleanResultFails verifies that an expression yielding a
// non-boolean is an explicit error, never treated as a match verdict.
func TestNonBooleanResultFails(t *testing.T) {
	p, err := Compile("user", "user.name")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	_, err = p.Match(map[string]any{"name": "alice"})
	if err == nil {
		t.Fatal("Match accepted a string result")
	}
	if !strings.Contains(err.Error(), "boolean") {
		t.Errorf("error = %v, want mention of boolean requirement", err)
	}
}

func TestRuntimeErrorSurfaces(t *testing.T) {
	p, err := Compile("user", "missing.field > 1")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if _, err := p.Match(map[string]any{"name": "alice"}); err == nil {
		t.Fatal("Match swallowed a reference error")
	}
}
