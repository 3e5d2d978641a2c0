// Package markup turns author supplied text into safe post HTML.
package markup

import (
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	blankLines = regexp.MustCompile(`\n[ \t]*\n\s*`)
	blockStart = regexp.MustCompile(
		`(?i)^<(?:p|div|ul|ol|li|h[1-6]|blockquote|pre|table|figure|hr|section|article|aside|header|footer|address)(?:[\s>/]|$)`,
	)

	policy     *bluemonday.Policy //nolint:gochecknoglobals
	policyOnce sync.Once          //nolint:gochecknoglobals
)

// postPolicy allows the elements and attributes normally accepted in post content.
func postPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		p := bluemonday.NewPolicy()

		p.RequireParseableURLs(true)
		p.AllowRelativeURLs(true)
		p.AllowURLSchemes("mailto", "http", "https")
		p.AllowElements(
			"p", "br", "span", "div", "strong", "em", "b", "i", "u", "s", "del", "ins",
			"small", "mark", "code", "sub", "sup", "abbr", "cite", "q",
			"blockquote", "pre", "hr", "address",
			"ul", "ol", "li", "dl", "dt", "dd",
			"h1", "h2", "h3", "h4", "h5", "h6",
			"table", "caption", "thead", "tbody", "tfoot", "tr", "th", "td",
			"figure", "figcaption", "a",
		)
		p.AllowAttrs("class", "title").Globally()
		p.AllowAttrs("href", "target", "rel").OnElements("a")
		p.AllowAttrs("src", "alt", "width", "height").OnElements("img")
		p.AllowAttrs("colspan", "rowspan").OnElements("th", "td")

		policy = p
	})

	return policy
}

// Sanitize strips everything from html that is not allowed in post content:
// scripts, styles, frames, event handler attributes and unsafe URLs.
func Sanitize(html string) string {
	return postPolicy().Sanitize(html)
}

// AutoP wraps blank line separated blocks of text in paragraphs.
// Single line breaks inside a paragraph become <br>. Blocks that already
// start with a block level element are kept as they are.
func AutoP(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSpace(text)

	if text == "" {
		return ""
	}

	blocks := blankLines.Split(text, -1)
	out := make([]string, 0, len(blocks))

	for _, block := range blocks {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}

		if blockStart.MatchString(block) {
			out = append(out, block)
			continue
		}

		lines := strings.Split(block, "\n")
		for i, line := range lines {
			lines[i] = strings.TrimSpace(line)
		}

		out = append(out, "<p>"+strings.Join(lines, "<br>\n")+"</p>")
	}

	return strings.Join(out, "\n")
}
