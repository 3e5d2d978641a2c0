package handler

import (
	"html/template"

	"github.com/pkg/errors"

	"github.com/eq-toolbox/eq-toolbox/internal/db/models"
	"github.com/eq-toolbox/eq-toolbox/internal/host"
	"github.com/eq-toolbox/eq-toolbox/internal/markup"
	"github.com/eq-toolbox/eq-toolbox/internal/request"
)

// Content renders the body of p and runs it through the_content for req.
func Content(h *host.Host, p *models.Post, req *request.Context) (template.HTML, error) {
	body := p.Content

	if p.Format == models.FormatMarkdown {
		var err error
		if body, err = markup.Markdown(body); err != nil {
			return "", errors.Wrapf(err, "render post %s", p.Slug)
		}
	}

	return template.HTML(h.TheContent(body, req)), nil //nolint:gosec
}

// Styles returns the stylesheets queued for req.
func Styles(req *request.Context) template.HTML {
	if req == nil || req.Styles == nil {
		return ""
	}

	return template.HTML(req.Styles.Render()) //nolint:gosec
}
