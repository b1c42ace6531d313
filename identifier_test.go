package hierchunk

import "testing"

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		label    string
		expected string
	}{
		{"hello", "hello"},
		{"foo bar", "foo_bar"},
		{"foo  bar", "foo_bar"},
		{"  spaced  ", "spaced"},
		{"tab\there", "tab_here"},
		{"multi\nline", "multi_line"},
		{"dash-name", "dashname"},
		{"dots.and.more", "dotsandmore"},
		{"__dunder__", "dunder"},
		{"snake_case_ok", "snake_case_ok"},
		{"Number42", "Number42"},
		{"!!!", ""},
		{"", ""},
	}

	for _, test := range tests {
		if got := sanitizeLabel(test.label); got != test.expected {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", test.label, got, test.expected)
		}
	}
}

func TestJoinID(t *testing.T) {
	tests := []struct {
		parentID     string
		base         string
		parentIsRoot bool
		expected     string
	}{
		{"main.py", "main", true, "main.py::main"},
		{"main.py::main", "helper", false, "main.py::main.helper"},
		{"main.py::a.b", "c", false, "main.py::a.b.c"},
		{"", "orphan", false, "orphan"},
	}

	for _, test := range tests {
		got := joinID(test.parentID, test.base, test.parentIsRoot)
		if got != test.expected {
			t.Errorf("joinID(%q, %q, %v) = %q, want %q",
				test.parentID, test.base, test.parentIsRoot, got, test.expected)
		}
	}
}

func TestAssignIDCollisions(t *testing.T) {
	res, err := parseString("def foo():\n    pass\n", LanguagePython)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	node := res.Tree.RootNode().NamedChild(0)
	if node == nil {
		t.Fatal("no function node")
	}

	r := &run{
		rootID: "f.py",
		ids:    map[string]bool{"f.py": true},
	}

	first := r.assignID(node, "foo", "f.py")
	if first != "f.py::foo" {
		t.Errorf("first id = %q, want %q", first, "f.py::foo")
	}
	second := r.assignID(node, "foo", "f.py")
	if second != "f.py::foo_0" {
		t.Errorf("second id = %q, want %q", second, "f.py::foo_0")
	}
	third := r.assignID(node, "", "f.py")
	if third != "f.py::function_definition_1" {
		t.Errorf("anonymous id = %q, want %q", third, "f.py::function_definition_1")
	}
}
