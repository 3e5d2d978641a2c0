// Package request describes what kind of page the current request renders.
package request

import "github.com/eq-toolbox/eq-toolbox/internal/assets"

// Context carries the conditional flags hooks use to decide whether to act.
// A nil *Context answers false to every question.
type Context struct {
	Admin     bool
	Feed      bool
	MainQuery bool
	InLoop    bool
	Singular  bool
	PostType  string

	// Styles is the per request stylesheet queue, nil where nothing is printed.
	Styles *assets.Styles
}

// Singular returns the context of a single post view of postType,
// rendered by the main query inside the loop.
func Singular(postType string) *Context {
	return &Context{
		MainQuery: true,
		InLoop:    true,
		Singular:  true,
		PostType:  postType,
		Styles:    assets.NewStyles(),
	}
}

// Archive returns the context of a post listing.
func Archive() *Context {
	return &Context{
		MainQuery: true,
		InLoop:    true,
		Styles:    assets.NewStyles(),
	}
}

// Feed returns the context of a syndication feed.
func Feed() *Context {
	return &Context{
		Feed:      true,
		MainQuery: true,
		InLoop:    true,
	}
}

// Admin returns the context of an admin screen.
func Admin() *Context {
	return &Context{Admin: true}
}

// IsAdmin reports whether the request targets the admin area.
func (c *Context) IsAdmin() bool {
	return c != nil && c.Admin
}

// IsFeed reports whether a feed is rendered.
func (c *Context) IsFeed() bool {
	return c != nil && c.Feed
}

// IsMainQuery reports whether content comes from the main query.
func (c *Context) IsMainQuery() bool {
	return c != nil && c.MainQuery
}

// InTheLoop reports whether rendering happens inside the content loop.
func (c *Context) InTheLoop() bool {
	return c != nil && c.InLoop
}

// IsSingular reports whether a single item is viewed. With postTypes given
// the item must also be of one of them.
func (c *Context) IsSingular(postTypes ...string) bool {
	if c == nil || !c.Singular {
		return false
	}

	if len(postTypes) == 0 {
		return true
	}

	for _, t := range postTypes {
		if t == c.PostType {
			return true
		}
	}

	return false
}
