// Package assets keeps the stylesheets a page asks for.
package assets

import (
	"html"
	"strings"
)

// Style is a registered stylesheet. Src may be empty for inline only styles.
type Style struct {
	Handle string
	Src    string
	Inline []string
}

// Styles is the stylesheet queue of one request. It is not safe for concurrent use.
type Styles struct {
	registered map[string]*Style
	queue      []string
}

// NewStyles returns an empty queue.
func NewStyles() *Styles {
	return &Styles{registered: make(map[string]*Style)}
}

// Register adds a stylesheet under handle. It returns false if the handle is taken.
func (s *Styles) Register(handle, src string) bool {
	if handle == "" {
		return false
	}

	if _, ok := s.registered[handle]; ok {
		return false
	}

	s.registered[handle] = &Style{Handle: handle, Src: src}

	return true
}

// Enqueue marks a registered stylesheet for output. Unknown handles are ignored.
func (s *Styles) Enqueue(handle string) {
	if _, ok := s.registered[handle]; !ok || s.IsEnqueued(handle) {
		return
	}

	s.queue = append(s.queue, handle)
}

// IsEnqueued reports whether handle will be printed.
func (s *Styles) IsEnqueued(handle string) bool {
	for _, h := range s.queue {
		if h == handle {
			return true
		}
	}

	return false
}

// AddInline attaches css to a registered handle. Adding the same css twice is a no-op.
func (s *Styles) AddInline(handle, css string) bool {
	st, ok := s.registered[handle]
	if !ok {
		return false
	}

	css = strings.TrimSpace(css)
	if css == "" {
		return false
	}

	for _, existing := range st.Inline {
		if existing == css {
			return true
		}
	}

	st.Inline = append(st.Inline, css)

	return true
}

// Render prints the queued stylesheets in enqueue order.
func (s *Styles) Render() string {
	var b strings.Builder

	for _, handle := range s.queue {
		st := s.registered[handle]
		id := html.EscapeString(handle)

		if st.Src != "" {
			b.WriteString(`<link rel="stylesheet" id="` + id + `-css" href="` + html.EscapeString(st.Src) + `" />` + "\n")
		}

		if len(st.Inline) > 0 {
			b.WriteString(`<style id="` + id + `-inline-css">` + "\n")
			b.WriteString(strings.Join(st.Inline, "\n"))
			b.WriteString("\n</style>\n")
		}
	}

	return b.String()
}
