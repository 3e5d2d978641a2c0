package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdown(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "paragraph", in: "Hello world", want: "<p>Hello world</p>\n"},
		{name: "emphasis", in: "Hello **world**", want: "<p>Hello <strong>world</strong></p>\n"},
		{name: "shortcode kept", in: "Read on [eq_cta]", want: "<p>Read on [eq_cta]</p>\n"},
		{name: "raw html omitted", in: "<script>x()</script>", want: "<!-- raw HTML omitted -->\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Markdown(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
