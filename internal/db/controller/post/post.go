// Package post reads and writes host content.
package post

import (
	"errors"

	"gorm.io/gorm"

	"github.com/eq-toolbox/eq-toolbox/internal/db/models"
)

var (
	// ErrPostNotFound is returned when no post matches.
	ErrPostNotFound = errors.New("post not found")
	// ErrSlugEmpty is returned for an empty slug.
	ErrSlugEmpty = errors.New("post slug cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// GetBySlug returns the post of the given type with slug.
func GetBySlug(db *gorm.DB, postType, slug string) (*models.Post, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if slug == "" {
		return nil, ErrSlugEmpty
	}

	var p models.Post
	result := db.Where("slug = ? AND type = ?", slug, postType).First(&p)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, result.Error
	}

	return &p, nil
}

// List returns up to limit posts of postType, newest first.
func List(db *gorm.DB, postType string, limit int) ([]models.Post, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var posts []models.Post
	result := db.Where("type = ?", postType).Order("created_at DESC, id DESC").Limit(limit).Find(&posts)
	if result.Error != nil {
		return nil, result.Error
	}

	return posts, nil
}

// Create stores p.
func Create(db *gorm.DB, p *models.Post) error {
	if db == nil {
		return ErrDBNil
	}
	if p.Slug == "" {
		return ErrSlugEmpty
	}
	if p.Type == "" {
		p.Type = models.PostTypePost
	}

	return db.Create(p).Error
}

// Count returns the number of stored posts of any type.
func Count(db *gorm.DB) (int64, error) {
	if db == nil {
		return 0, ErrDBNil
	}

	var n int64
	err := db.Model(&models.Post{}).Count(&n).Error

	return n, err
}
