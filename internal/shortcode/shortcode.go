// Package shortcode expands bracketed tokens such as [name key="value"] in post content.
//
// A shortcode is either self-closing, [name] or [name/], or encloses content up to
// the first [/name]. Doubling the brackets, [[name]], prints the token literally.
// Only registered names are recognised, everything else is left untouched.
package shortcode

import (
	"errors"
	"html"
	"strconv"
	"strings"
	"sync"

	"github.com/eq-toolbox/eq-toolbox/internal/request"
)

// ErrInvalidTag is returned when registering a name that can never match.
var ErrInvalidTag = errors.New("invalid shortcode tag")

// Attributes are the key/value pairs of a shortcode. Keys are lower case;
// values without a key are stored under their position, "0", "1", ...
type Attributes map[string]string

// Handler returns the replacement for one shortcode occurrence.
type Handler func(atts Attributes, content string, req *request.Context) string

// Registry maps tags to handlers.
type Registry struct {
	mu   sync.RWMutex
	tags map[string]Handler
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{tags: make(map[string]Handler)}
}

// Add registers h for tag, replacing any previous handler.
func (r *Registry) Add(tag string, h Handler) error {
	if tag == "" || h == nil {
		return ErrInvalidTag
	}

	for i := 0; i < len(tag); i++ {
		if !isNameChar(tag[i]) {
			return ErrInvalidTag
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.tags[tag] = h

	return nil
}

// Exists reports whether tag is registered.
func (r *Registry) Exists(tag string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.tags[tag]

	return ok
}

func (r *Registry) snapshot() map[string]Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]Handler, len(r.tags))
	for k, v := range r.tags {
		out[k] = v
	}

	return out
}

// Has reports whether content uses the registered shortcode tag,
// including inside the content of enclosing shortcodes. Escaped
// occurrences do not count.
func (r *Registry) Has(content, tag string) bool {
	tags := r.snapshot()
	if _, ok := tags[tag]; !ok {
		return false
	}

	return has(tags, content, tag)
}

func has(tags map[string]Handler, content, tag string) bool {
	pos := 0

	for {
		m, ok := next(tags, content, pos)
		if !ok {
			return false
		}

		if !m.escaped {
			if m.tag == tag {
				return true
			}

			if m.content != "" && has(tags, m.content, tag) {
				return true
			}
		}

		pos = m.end
	}
}

// Do replaces every registered shortcode in content with its handler output.
// Enclosed content is handed to the handler unexpanded.
func (r *Registry) Do(content string, req *request.Context) string {
	if !strings.Contains(content, "[") {
		return content
	}

	tags := r.snapshot()
	if len(tags) == 0 {
		return content
	}

	var (
		b   strings.Builder
		pos int
	)

	for {
		m, ok := next(tags, content, pos)
		if !ok {
			break
		}

		b.WriteString(content[pos:m.start])

		if m.escaped {
			b.WriteString(content[m.start+1 : m.end-1])
		} else {
			b.WriteString(tags[m.tag](m.atts, m.content, req))
		}

		pos = m.end
	}

	b.WriteString(content[pos:])

	return b.String()
}

// Atts merges atts over defaults. Keys unknown to defaults are dropped.
func Atts(defaults, atts Attributes) Attributes {
	out := make(Attributes, len(defaults))

	for k, v := range defaults {
		out[k] = v

		if given, ok := atts[k]; ok {
			out[k] = given
		}
	}

	return out
}

type match struct {
	tag     string
	atts    Attributes
	content string
	start   int
	end     int
	escaped bool
}

// next finds the first registered shortcode at or after from.
func next(tags map[string]Handler, s string, from int) (match, bool) {
	for i := from; i < len(s); i++ {
		idx := strings.IndexByte(s[i:], '[')
		if idx < 0 {
			return match{}, false
		}

		i += idx

		if i+1 < len(s) && s[i+1] == '[' {
			m, ok := parseAt(tags, s, i+1)
			if ok && m.end < len(s) && s[m.end] == ']' {
				m.start = i
				m.end++
				m.escaped = true

				return m, true
			}

			continue
		}

		if m, ok := parseAt(tags, s, i); ok {
			return m, true
		}
	}

	return match{}, false
}

// parseAt parses the shortcode opening at s[i] == '['.
func parseAt(tags map[string]Handler, s string, i int) (match, bool) {
	nameEnd := i + 1
	for nameEnd < len(s) && isNameChar(s[nameEnd]) {
		nameEnd++
	}

	if nameEnd == i+1 || nameEnd >= len(s) {
		return match{}, false
	}

	tag := s[i+1 : nameEnd]
	if _, ok := tags[tag]; !ok {
		return match{}, false
	}

	if c := s[nameEnd]; c != ']' && c != '/' && !isSpace(c) {
		return match{}, false
	}

	atts, end, selfClosing, ok := parseAttrs(s, nameEnd)
	if !ok {
		return match{}, false
	}

	m := match{tag: tag, atts: atts, start: i, end: end}
	if selfClosing {
		return m, true
	}

	closing := "[/" + tag + "]"
	if idx := strings.Index(s[end:], closing); idx >= 0 {
		m.content = s[end : end+idx]
		m.end = end + idx + len(closing)
	}

	return m, true
}

// parseAttrs reads attributes from s[p:] up to the closing bracket and returns
// the index after it.
func parseAttrs(s string, p int) (Attributes, int, bool, bool) {
	atts := Attributes{}
	positional := 0

	isClose := func(p int) bool {
		return s[p] == '/' && p+1 < len(s) && s[p+1] == ']'
	}

	for p < len(s) {
		for p < len(s) && isSpace(s[p]) {
			p++
		}

		if p >= len(s) {
			break
		}

		if s[p] == ']' {
			return atts, p + 1, false, true
		}

		if isClose(p) {
			return atts, p + 2, true, true
		}

		if q := quoteAt(s, p); q != "" {
			value, after, ok := quoted(s, p, q)
			if !ok {
				return nil, 0, false, false
			}

			atts[strconv.Itoa(positional)] = value
			positional++
			p = after

			continue
		}

		start := p
		for p < len(s) && !isSpace(s[p]) && s[p] != '=' && s[p] != ']' && !isClose(p) {
			p++
		}

		name := s[start:p]
		if name == "" {
			// stray '='
			p++
			continue
		}

		eq := p
		for eq < len(s) && isSpace(s[eq]) {
			eq++
		}

		if eq >= len(s) || s[eq] != '=' {
			atts[strconv.Itoa(positional)] = name
			positional++

			continue
		}

		p = eq + 1
		for p < len(s) && isSpace(s[p]) {
			p++
		}

		if p >= len(s) {
			break
		}

		var value string

		if q := quoteAt(s, p); q != "" {
			v, after, ok := quoted(s, p, q)
			if !ok {
				return nil, 0, false, false
			}

			value, p = v, after
		} else {
			vs := p
			for p < len(s) && !isSpace(s[p]) && s[p] != ']' && !isClose(p) {
				p++
			}

			value = s[vs:p]
		}

		atts[strings.ToLower(name)] = value
	}

	return nil, 0, false, false
}

// entityQuotes are quote characters as escaped by HTML renderers such as markdown.
var entityQuotes = []string{"&quot;", "&#34;", "&#39;", "&#039;", "&apos;"} //nolint:gochecknoglobals

// quoteAt returns the quote opening a value at p, or "".
func quoteAt(s string, p int) string {
	if s[p] == '"' || s[p] == '\'' {
		return s[p : p+1]
	}

	for _, q := range entityQuotes {
		if strings.HasPrefix(s[p:], q) {
			return q
		}
	}

	return ""
}

// quoted reads the value opened by q at p. Values between escaped quotes
// are unescaped.
func quoted(s string, p int, q string) (string, int, bool) {
	start := p + len(q)

	end := strings.Index(s[start:], q)
	if end < 0 {
		return "", 0, false
	}

	value := s[start : start+end]
	if len(q) > 1 {
		value = html.UnescapeString(value)
	}

	return value, start + end + len(q), true
}

func isNameChar(c byte) bool {
	return c == '_' || c == '-' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}
