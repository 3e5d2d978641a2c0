package models

import "time"

// Post types known to the host.
const (
	PostTypePost = "post"
	PostTypePage = "page"
)

// Body formats of a post.
const (
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
)

// Post is a piece of published content.
type Post struct {
	ID        uint64    `gorm:"primaryKey"`
	Slug      string    `gorm:"uniqueIndex;size:191"`
	Title     string    `gorm:"size:255"`
	Content   string    `gorm:"type:text"`
	Type      string    `gorm:"size:20;index;default:post"`
	Format    string    `gorm:"size:20;default:html"`
	CreatedAt time.Time `gorm:"index"`
}
