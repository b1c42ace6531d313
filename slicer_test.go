package hierchunk

import (
	"errors"
	"strings"
	"testing"
)

func TestSourceBufferSlice(t *testing.T) {
	buf := newSourceBuffer([]byte("hello world"))

	tests := []struct {
		start, end uint32
		expected   string
	}{
		{0, 5, "hello"},
		{6, 11, "world"},
		{0, 11, "hello world"},
		{0, 0, ""},
		{5, 5, ""},
		{11, 11, ""},
	}

	for _, test := range tests {
		got, err := buf.slice(test.start, test.end)
		if err != nil {
			t.Errorf("slice(%d, %d) failed: %v", test.start, test.end, err)
			continue
		}
		if got != test.expected {
			t.Errorf("slice(%d, %d) = %q, want %q", test.start, test.end, got, test.expected)
		}
	}
}

func TestSourceBufferSliceInvalid(t *testing.T) {
	buf := newSourceBuffer([]byte("short"))

	tests := []struct {
		start, end uint32
	}{
		{0, 6},
		{6, 6},
		{3, 2},
		{100, 200},
	}

	for _, test := range tests {
		_, err := buf.slice(test.start, test.end)
		if !errors.Is(err, ErrInvalidRange) {
			t.Errorf("slice(%d, %d) err = %v, want ErrInvalidRange", test.start, test.end, err)
		}
	}
}

func TestSourceBufferMultibyte(t *testing.T) {
	// Node offsets are byte offsets; slicing must not re-interpret bytes.
	source := "x = \"\U0001F30D\"\n"
	buf := newSourceBuffer([]byte(source))

	got, err := buf.slice(0, uint32(len(source)))
	if err != nil {
		t.Fatalf("slice failed: %v", err)
	}
	if got != source {
		t.Errorf("full slice = %q, want %q", got, source)
	}

	// The emoji occupies bytes 5..9.
	got, err = buf.slice(5, 9)
	if err != nil {
		t.Fatalf("slice failed: %v", err)
	}
	if got != "\U0001F30D" {
		t.Errorf("emoji slice = %q", got)
	}
}

func TestNodeTextNamesNodeInError(t *testing.T) {
	code := "def f():\n    pass\n"
	res, err := parseString(code, LanguagePython)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	node := res.Tree.RootNode().NamedChild(0)
	if node == nil {
		t.Fatal("no function node")
	}

	// A buffer shorter than the node's span violates the slicing contract.
	short := newSourceBuffer([]byte("def"))
	_, err = short.nodeText(node)
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("err = %v, want ErrInvalidRange", err)
	}
	if want := "function_definition"; !strings.Contains(err.Error(), want) {
		t.Errorf("error %q does not name node type %q", err.Error(), want)
	}
}
