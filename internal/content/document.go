// Package content loads documents from disk and renders them to terminal
// lines for the scroll box.
package content

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/cespare/xxhash/v2"
)

// ErrBinary is returned for files that look like binary data.
var ErrBinary = errors.New("binary file")

// Kind selects how a document is rendered.
type Kind int

const (
	Plain Kind = iota
	Markdown
	Source
)

func (k Kind) String() string {
	switch k {
	case Markdown:
		return "markdown"
	case Source:
		return "source"
	default:
		return "plain"
	}
}

// Document is a loaded file.
type Document struct {
	Path    string
	Kind    Kind
	Text    string
	Hash    uint64
	ModTime time.Time
}

// Name returns the file's base name.
func (d *Document) Name() string {
	return filepath.Base(d.Path)
}

// DetectKind picks a Kind from the file name.
func DetectKind(name string) Kind {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown", ".mdown":
		return Markdown
	case ".txt", ".text", "":
		return Plain
	}
	if lexers.Match(filepath.Base(name)) != nil {
		return Source
	}
	return Plain
}

// binarySniffLen is how much of a file is checked for NUL bytes.
const binarySniffLen = 8000

// Load reads path into a Document.
func Load(path string) (*Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("load %s: is a directory", path)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if bytes.IndexByte(data[:min(len(data), binarySniffLen)], 0) >= 0 {
		return nil, fmt.Errorf("load %s: %w", path, ErrBinary)
	}

	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	return &Document{
		Path:    abs,
		Kind:    DetectKind(abs),
		Text:    text,
		Hash:    xxhash.Sum64String(text),
		ModTime: info.ModTime(),
	}, nil
}
