package handler

import "errors"

const (
	// BaseLayout is the default path for layout templates.
	BaseLayout = "layouts/base"

	// RootPath is the root path the route group.
	RootPath = "/"
)

// ErrNilDeps is returned by Init if app, cfg, db or host is nil.
var ErrNilDeps = errors.New("app, cfg, db or host is nil")
