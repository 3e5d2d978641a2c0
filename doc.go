// Package main provides the entry point of EQ Toolbox.
// It runs a small Fiber web server rendering blog posts stored with gorm.
// A plugin host exposes filters, actions, shortcodes and settings, and the
// bundled CTA plugin appends a call to action block to single posts. The
// block text and its switch are edited on the admin "Reading" screen.
package main
