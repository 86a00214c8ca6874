package renderer

import (
	"fmt"
	"io"
	"sync"

	"github.com/x3t/openapi-diff/differ"
)

// Renderer writes one report for a comparison result. Implementations must
// not modify the result and must produce identical output for identical input.
type Renderer interface {
	Render(w io.Writer, result *differ.DiffResult) error
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(w io.Writer, result *differ.DiffResult) error

// Render calls f(w, result).
func (f RendererFunc) Render(w io.Writer, result *differ.DiffResult) error {
	return f(w, result)
}

// Entry binds a format to its file extension and renderer.
type Entry struct {
	Format    Format
	Extension string
	Renderer  Renderer
}

// Registry maps formats to renderers. Registration order is preserved and is
// the order in which reports are produced.
type Registry struct {
	mu      sync.RWMutex
	entries []Entry
	index   map[Format]int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[Format]int)}
}

// DefaultRegistry returns a new registry holding the five built-in formats.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	_ = r.Register(FormatHTML, ".html", RendererFunc(RenderHTML))
	_ = r.Register(FormatJSON, ".json", RendererFunc(RenderJSON))
	_ = r.Register(FormatText, ".txt", RendererFunc(RenderText))
	_ = r.Register(FormatMarkdown, ".md", RendererFunc(RenderMarkdown))
	_ = r.Register(FormatAsciiDoc, ".adoc", RendererFunc(RenderAsciiDoc))
	return r
}

var defaultRegistry = DefaultRegistry()

// Register adds a format. Registering a format twice replaces its entry in place.
func (r *Registry) Register(f Format, ext string, rend Renderer) error {
	if f == "" {
		return fmt.Errorf("renderer: format name is empty")
	}
	if rend == nil {
		return fmt.Errorf("renderer: nil renderer for format %s", f)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	e := Entry{Format: f, Extension: ext, Renderer: rend}
	if i, ok := r.index[f]; ok {
		r.entries[i] = e
		return nil
	}
	r.index[f] = len(r.entries)
	r.entries = append(r.entries, e)
	return nil
}

// Lookup returns the entry for f.
func (r *Registry) Lookup(f Format) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.index[f]
	if !ok {
		return Entry{}, false
	}
	return r.entries[i], true
}

// Entries returns all entries in registration order.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Entry(nil), r.entries...)
}

// Names returns the registered format names in registration order.
func (r *Registry) Names() []string {
	entries := r.Entries()
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = string(e.Format)
	}
	return names
}

// Order sorts and de-duplicates formats by registration order. Formats
// missing from the registry are returned separately, in input order.
func (r *Registry) Order(formats []Format) (known, unknown []Format) {
	seen := make(map[Format]bool, len(formats))
	for _, f := range formats {
		if seen[f] {
			continue
		}
		seen[f] = true
		if _, ok := r.Lookup(f); !ok {
			unknown = append(unknown, f)
		}
	}
	for _, e := range r.Entries() {
		if seen[e.Format] {
			known = append(known, e.Format)
		}
	}
	return known, unknown
}
