// Package markdown renders markdown documents to styled terminal lines.
package markdown

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/cellbuf"
)

const (
	// MinWidthForMarkdown is the narrowest wrap width glamour is used for.
	// Below this, falls back to plain text wrapping.
	MinWidthForMarkdown = 30

	// MaxCacheEntries is the maximum number of cached renders before eviction.
	MaxCacheEntries = 32
)

// Renderer wraps glamour with a render cache keyed by content, width and
// theme.
type Renderer struct {
	mu       sync.Mutex
	theme    string
	logger   *slog.Logger
	renderer *glamour.TermRenderer
	width    int
	cache    map[uint64][]string
}

// NewRenderer creates a renderer for the given glamour style name.
func NewRenderer(theme string, logger *slog.Logger) *Renderer {
	if theme == "" {
		theme = "dark"
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Renderer{
		theme:  theme,
		logger: logger,
		cache:  make(map[uint64][]string),
	}
}

// Render renders content to lines. width 0 disables word wrapping; a
// positive width narrower than MinWidthForMarkdown falls back to plain
// wrapping.
func (r *Renderer) Render(content string, width int) []string {
	if content == "" {
		return []string{}
	}
	if width > 0 && width < MinWidthForMarkdown {
		return WrapText(content, width)
	}

	key := cacheKey(content, width)

	r.mu.Lock()
	defer r.mu.Unlock()

	if cached, ok := r.cache[key]; ok {
		return cached
	}

	renderer, err := r.rendererFor(width)
	if err != nil {
		r.logger.Warn("markdown: create renderer", "theme", r.theme, "err", err)
		return WrapText(content, width)
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		r.logger.Warn("markdown: render", "err", err)
		return WrapText(content, width)
	}

	rendered = strings.TrimRight(rendered, "\n\r\t ")
	lines := strings.Split(rendered, "\n")

	if len(r.cache) >= MaxCacheEntries {
		r.cache = make(map[uint64][]string)
	}
	r.cache[key] = lines
	return lines
}

// CacheLen returns the number of cached renders.
func (r *Renderer) CacheLen() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.cache)
}

func cacheKey(content string, width int) uint64 {
	h := xxhash.New()
	_, _ = h.WriteString(content)
	_, _ = h.Write([]byte{byte(width >> 8), byte(width)})
	return h.Sum64()
}

// rendererFor returns a glamour renderer for width, recreating it (and
// dropping the cache) when the width changes. Called with mu held.
func (r *Renderer) rendererFor(width int) (*glamour.TermRenderer, error) {
	if r.renderer != nil && r.width == width {
		return r.renderer, nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(r.theme),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}

	r.renderer = renderer
	r.width = width
	r.cache = make(map[uint64][]string)
	return renderer, nil
}

// WrapText soft-wraps plain text to maxWidth, keeping paragraph breaks.
func WrapText(text string, maxWidth int) []string {
	if maxWidth > 0 {
		text = cellbuf.Wrap(text, maxWidth, "")
	}
	return strings.Split(strings.TrimRight(text, "\n"), "\n")
}
