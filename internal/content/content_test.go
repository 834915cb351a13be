package content

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestDetectKind(t *testing.T) {
	tests := []struct {
		name     string
		expected Kind
	}{
		{"README.md", Markdown},
		{"notes.MARKDOWN", Markdown},
		{"main.go", Source},
		{"script.py", Source},
		{"notes.txt", Plain},
		{"LICENSE", Plain},
	}

	for _, tt := range tests {
		if got := DetectKind(tt.name); got != tt.expected {
			t.Errorf("DetectKind(%q) = %v, want %v", tt.name, got, tt.expected)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	_ = os.WriteFile(path, []byte("one\r\ntwo\r\n"), 0644)

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if doc.Text != "one\ntwo\n" {
		t.Errorf("Text = %q, CRLF should be normalized", doc.Text)
	}
	if doc.Kind != Plain || doc.Name() != "doc.txt" || !filepath.IsAbs(doc.Path) {
		t.Errorf("doc = %+v", doc)
	}

	again, _ := Load(path)
	if again.Hash != doc.Hash {
		t.Error("hash is not stable")
	}
	_ = os.WriteFile(path, []byte("one\ntwo\nthree\n"), 0644)
	changed, _ := Load(path)
	if changed.Hash == doc.Hash {
		t.Error("hash did not change with the content")
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	bin := filepath.Join(dir, "blob.bin")
	_ = os.WriteFile(bin, []byte{'a', 0, 'b'}, 0644)

	if _, err := Load(bin); !errors.Is(err, ErrBinary) {
		t.Errorf("Load(binary) error = %v, want ErrBinary", err)
	}
	if _, err := Load(filepath.Join(dir, "missing.txt")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want ErrNotExist", err)
	}
	if _, err := Load(dir); err == nil {
		t.Error("Load(dir) should fail")
	}
}

func TestExpandTabs(t *testing.T) {
	tests := []struct {
		line     string
		expected string
	}{
		{"no tabs", "no tabs"},
		{"\tx", "    x"},
		{"ab\tx", "ab  x"},
		{"abcd\tx", "abcd    x"},
		{"日\tx", "日  x"},
	}

	for _, tt := range tests {
		if got := ExpandTabs(tt.line, 4); got != tt.expected {
			t.Errorf("ExpandTabs(%q) = %q, want %q", tt.line, got, tt.expected)
		}
	}
}

func TestRenderer_Plain(t *testing.T) {
	r := NewRenderer("notty", "monokai", 4, nil)
	doc := &Document{Path: "/tmp/a.txt", Kind: Plain, Text: "short\n\tindented\na much longer line of text\n"}

	lines := r.Render(doc, 10, false)
	if len(lines) != 3 || lines[1] != "    indented" {
		t.Errorf("unwrapped = %q", lines)
	}

	wrapped := r.Render(doc, 10, true)
	if len(wrapped) <= 3 {
		t.Errorf("wrapped = %q, expected more lines", wrapped)
	}
	for _, line := range wrapped {
		if ansi.StringWidth(line) > 10 {
			t.Errorf("line %q wider than 10", line)
		}
	}
}

func TestRenderer_SourceKeepsLines(t *testing.T) {
	r := NewRenderer("notty", "monokai", 4, nil)
	src := "package main\n\n/* block\n   comment */\nfunc main() {\n\tprintln(\"hi\")\n}\n"
	doc := &Document{Path: "/tmp/main.go", Kind: Source, Text: src, Hash: 1}

	lines := r.Render(doc, 80, false)
	expected := strings.Split(strings.TrimRight(src, "\n"), "\n")
	if len(lines) != len(expected) {
		t.Fatalf("got %d lines, want %d: %q", len(lines), len(expected), lines)
	}
	for i := range expected {
		if got := ansi.Strip(lines[i]); got != ExpandTabs(expected[i], 4) {
			t.Errorf("line %d = %q, want %q", i, got, expected[i])
		}
	}

	lines[0] = "mutated"
	if again := r.Render(doc, 80, false); ansi.Strip(again[0]) != "package main" {
		t.Error("cached lines were mutated through the returned slice")
	}
}

func TestRenderer_Markdown(t *testing.T) {
	r := NewRenderer("notty", "monokai", 4, nil)
	doc := &Document{Path: "/tmp/a.md", Kind: Markdown, Text: "# Heading\n\nbody text\n"}

	plain := ansi.Strip(strings.Join(r.Render(doc, 60, true), "\n"))
	if !strings.Contains(plain, "Heading") || !strings.Contains(plain, "body text") {
		t.Errorf("markdown render = %q", plain)
	}
	if r.Render(nil, 60, true) != nil {
		t.Error("nil document should render nothing")
	}
}
