package markup

import (
	"bytes"

	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var md = goldmark.New(goldmark.WithExtensions(extension.GFM)) //nolint:gochecknoglobals

// Markdown converts src to HTML. Raw HTML inside src is not passed through.
func Markdown(src string) (string, error) {
	var buf bytes.Buffer

	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", errors.Wrap(err, "convert markdown")
	}

	return buf.String(), nil
}
