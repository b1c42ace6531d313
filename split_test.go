package hierchunk

import (
	"strings"
	"testing"
)

// oversizedPython has four statements of 11 non-whitespace bytes each behind a
// 10-byte header, sized so small budgets force per-statement splits.
const oversizedPython = "def big():\n    a = 111111111\n    b = 222222222\n    c = 333333333\n    d = 444444444\n"

func TestSplitOversizedPerStatement(t *testing.T) {
	opts := &Options{SplitOversized: true, MaxTokens: 20}

	chunks, err := Decompose("p.py", oversizedPython, opts)
	if err != nil {
		t.Fatalf("Decompose failed: %v", err)
	}

	// root + function + four parts
	if len(chunks) != 6 {
		t.Fatalf("got %d chunks, want 6", len(chunks))
	}

	fn := chunks[1]
	if fn.ID != "p.py::big" {
		t.Fatalf("function id = %q", fn.ID)
	}
	wantParts := []string{"p.py::big.part1", "p.py::big.part2", "p.py::big.part3", "p.py::big.part4"}
	if len(fn.ChildIDs) != len(wantParts) {
		t.Fatalf("function ChildIDs = %v, want %v", fn.ChildIDs, wantParts)
	}
	for i, want := range wantParts {
		if fn.ChildIDs[i] != want {
			t.Errorf("ChildIDs[%d] = %q, want %q", i, fn.ChildIDs[i], want)
		}
	}

	for i, part := range chunks[2:] {
		if part.Kind != KindFunctionPart {
			t.Errorf("part %d kind = %q, want %q", i, part.Kind, KindFunctionPart)
		}
		if part.ParentID != fn.ID {
			t.Errorf("part %d parent = %q, want %q", i, part.ParentID, fn.ID)
		}
		if part.Part != i+1 {
			t.Errorf("part %d Part = %d, want %d", i, part.Part, i+1)
		}
		if !strings.HasPrefix(part.Text, "def big():\n") {
			t.Errorf("part %d text = %q, want header carried over", i, part.Text)
		}
	}

	if chunks[2].Text != "def big():\n    a = 111111111" {
		t.Errorf("part 1 text = %q", chunks[2].Text)
	}

	// Part coordinates cover the statement group only; the repeated header
	// in Text has no span of its own.
	for i, part := range chunks[2:] {
		span := oversizedPython[part.ByteRange.Start:part.ByteRange.End]
		if !strings.HasSuffix(part.Text, span) {
			t.Errorf("part %d span %q is not the statement tail of text %q", i, span, part.Text)
		}
		if strings.Contains(span, "def big()") {
			t.Errorf("part %d span %q includes the header", i, span)
		}
	}
	if got := oversizedPython[chunks[2].ByteRange.Start:chunks[2].ByteRange.End]; got != "a = 111111111" {
		t.Errorf("part 1 span = %q, want statement only", got)
	}

	assertTreeConsistent(t, chunks)
	assertUniqueIDs(t, chunks)
}

func TestSplitOversizedGreedyGrouping(t *testing.T) {
	// Budget of 22 after the 10-byte header fits exactly two 11-byte
	// statements per group.
	opts := &Options{SplitOversized: true, MaxTokens: 32}

	chunks, err := Decompose("p.py", oversizedPython, opts)
	if err != nil {
		t.Fatalf("Decompose failed: %v", err)
	}

	if len(chunks) != 4 {
		t.Fatalf("got %d chunks, want 4", len(chunks))
	}

	want1 := "def big():\n    a = 111111111\n    b = 222222222"
	want2 := "def big():\n    c = 333333333\n    d = 444444444"
	if chunks[2].Text != want1 {
		t.Errorf("part 1 text = %q, want %q", chunks[2].Text, want1)
	}
	if chunks[3].Text != want2 {
		t.Errorf("part 2 text = %q, want %q", chunks[3].Text, want2)
	}
}

func TestSplitOversizedDisabledByDefault(t *testing.T) {
	chunks, err := Decompose("p.py", oversizedPython, &Options{MaxTokens: 20})
	if err != nil {
		t.Fatalf("Decompose failed: %v", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2 without SplitOversized", len(chunks))
	}
}

func TestSplitUnderBudgetStaysWhole(t *testing.T) {
	chunks, err := Decompose("p.py", oversizedPython, &Options{SplitOversized: true, MaxTokens: 400})
	if err != nil {
		t.Fatalf("Decompose failed: %v", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2 for an in-budget function", len(chunks))
	}
	if len(chunks[1].ChildIDs) != 0 {
		t.Errorf("ChildIDs = %v, want none", chunks[1].ChildIDs)
	}
}

func TestSplitSingleStatementNotSplit(t *testing.T) {
	// One statement means one group; a single part would be the whole
	// function again, so no parts are emitted.
	source := "def one():\n    x = \"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa\"\n"

	chunks, err := Decompose("p.py", source, &Options{SplitOversized: true, MaxTokens: 10})
	if err != nil {
		t.Fatalf("Decompose failed: %v", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2", len(chunks))
	}
	if len(chunks[1].ChildIDs) != 0 {
		t.Errorf("ChildIDs = %v, want none", chunks[1].ChildIDs)
	}
}

func TestSplitOversizedStatementKeptWhole(t *testing.T) {
	// The first statement of a group always starts the group even when it
	// alone exceeds the budget; no statement is ever cut mid-way.
	source := "def f():\n    x = \"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa\"\n    y = 1\n"

	chunks, err := Decompose("p.py", source, &Options{SplitOversized: true, MaxTokens: 12})
	if err != nil {
		t.Fatalf("Decompose failed: %v", err)
	}
	if len(chunks) != 4 {
		t.Fatalf("got %d chunks, want 4", len(chunks))
	}
	if !strings.Contains(chunks[2].Text, "aaaaaaaa") {
		t.Errorf("part 1 text = %q, want whole oversized statement", chunks[2].Text)
	}
	if !strings.Contains(chunks[3].Text, "y = 1") {
		t.Errorf("part 2 text = %q", chunks[3].Text)
	}
}

func TestSplitNestedMethodDedentsParts(t *testing.T) {
	source := "class C:\n    def m(self):\n        a = 111111111\n        b = 222222222\n        c = 333333333\n        d = 444444444\n"

	chunks, err := Decompose("c.py", source, &Options{SplitOversized: true, MaxTokens: 22})
	if err != nil {
		t.Fatalf("Decompose failed: %v", err)
	}

	var fn *Chunk
	var parts []Chunk
	for i := range chunks {
		switch chunks[i].Kind {
		case "function_definition":
			fn = &chunks[i]
		case KindFunctionPart:
			parts = append(parts, chunks[i])
		}
	}
	if fn == nil {
		t.Fatal("no method chunk")
	}
	if len(parts) != 4 {
		t.Fatalf("got %d parts, want 4", len(parts))
	}
	want := "def m(self):\n    a = 111111111"
	if parts[0].Text != want {
		t.Errorf("part 1 text = %q, want %q", parts[0].Text, want)
	}
	for _, p := range parts {
		if p.ParentID != fn.ID {
			t.Errorf("part %q parent = %q, want %q", p.ID, p.ParentID, fn.ID)
		}
	}
}

func TestSplitNotAppliedToNestedBoundaries(t *testing.T) {
	// A function containing a nested boundary decomposes recursively
	// instead of splitting into parts.
	source := "def outer():\n    def inner():\n        return 1\n    a = 111111111\n    b = 222222222\n    c = 333333333\n"

	chunks, err := Decompose("n.py", source, &Options{SplitOversized: true, MaxTokens: 20})
	if err != nil {
		t.Fatalf("Decompose failed: %v", err)
	}
	for _, c := range chunks {
		if c.Kind == KindFunctionPart && c.ParentID == "n.py::outer" {
			t.Errorf("outer was part-split despite nested boundary: %q", c.ID)
		}
	}
}
