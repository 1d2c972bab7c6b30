package browser

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	defaultRenderWidth = 80
	maxContentWidth    = 120
	renderCacheSize    = 64
)

// Renderer turns Content into styled terminal text with glamour. The
// glamour renderer is rebuilt only when the width changes, and rendered
// output is kept in an LRU cache keyed by content hash and width.
type Renderer struct {
	mu    sync.Mutex
	style string
	term  *glamour.TermRenderer
	width int
	cache *lru.Cache[string, string]
}

// NewRenderer creates a Renderer using the named glamour style. An empty
// style or "auto" picks one from the terminal background.
func NewRenderer(style string) *Renderer {
	cache, _ := lru.New[string, string](renderCacheSize)
	return &Renderer{style: style, cache: cache}
}

// Render renders c for a terminal width columns wide. Text that is not
// Markdown is shown verbatim in a code block.
func (r *Renderer) Render(c Content, width int) (string, error) {
	if width <= 0 {
		width = defaultRenderWidth
	}
	contentWidth := width - 4
	if contentWidth > maxContentWidth {
		contentWidth = maxContentWidth
	}
	if contentWidth < 10 {
		contentWidth = 10
	}

	source := c.Text
	if !c.Markdown {
		source = fence(source)
	}

	key := cacheKey(source, contentWidth)
	if out, ok := r.cache.Get(key); ok {
		return out, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.term == nil || r.width != contentWidth {
		term, err := glamour.NewTermRenderer(r.styleOption(), glamour.WithWordWrap(contentWidth))
		if err != nil {
			return "", fmt.Errorf("creating markdown renderer: %w", err)
		}
		r.term = term
		r.width = contentWidth
	}

	out, err := r.term.Render(source)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	r.cache.Add(key, out)
	return out, nil
}

// Purge drops every cached rendering.
func (r *Renderer) Purge() {
	r.cache.Purge()
}

// SetStyle switches to another glamour style, dropping cached output.
func (r *Renderer) SetStyle(style string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if style == r.style {
		return
	}
	r.style = style
	r.term = nil
	r.cache.Purge()
}

// Style returns the glamour style in use.
func (r *Renderer) Style() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.style
}

func (r *Renderer) styleOption() glamour.TermRendererOption {
	if r.style == "" || r.style == "auto" {
		return glamour.WithAutoStyle()
	}
	return glamour.WithStandardStyle(r.style)
}

// fence wraps text in a code block whose fence is longer than any run of
// backticks inside it.
func fence(text string) string {
	longest, run := 0, 0
	for _, ch := range text {
		if ch == '`' {
			run++
			longest = max(longest, run)
			continue
		}
		run = 0
	}
	marker := strings.Repeat("`", max(3, longest+1))
	return marker + "\n" + strings.TrimRight(text, "\n") + "\n" + marker + "\n"
}

func cacheKey(source string, width int) string {
	sum := sha256.Sum256([]byte(source))
	return fmt.Sprintf("%d:%s", width, hex.EncodeToString(sum[:]))
}
