// Package option provides access to the named values of the options table.
package option

import (
	"errors"

	"gorm.io/gorm"

	"github.com/eq-toolbox/eq-toolbox/internal/db/models"
)

const (
	nameQueryPattern = "name = ?"
)

var (
	// ErrOptionNotFound is returned when an option is not stored.
	ErrOptionNotFound = errors.New("option not found")
	// ErrOptionNameEmpty is returned when an option name is empty.
	ErrOptionNameEmpty = errors.New("option name cannot be empty")
	// ErrOptionAlreadyExists is returned when creating an option that already exists.
	ErrOptionAlreadyExists = errors.New("option already exists")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Get retrieves an option by its name.
func Get(db *gorm.DB, name string) (*models.Option, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if name == "" {
		return nil, ErrOptionNameEmpty
	}

	var opt models.Option
	result := db.Where(nameQueryPattern, name).First(&opt)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrOptionNotFound
		}
		return nil, result.Error
	}

	return &opt, nil
}

// GetAll retrieves all options ordered by name.
func GetAll(db *gorm.DB) ([]models.Option, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var opts []models.Option
	result := db.Order("name").Find(&opts)
	if result.Error != nil {
		return nil, result.Error
	}

	return opts, nil
}

// Create stores a new option.
func Create(db *gorm.DB, name string, value []byte) (*models.Option, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if name == "" {
		return nil, ErrOptionNameEmpty
	}

	var existing models.Option
	result := db.Where(nameQueryPattern, name).First(&existing)
	if result.Error == nil {
		return nil, ErrOptionAlreadyExists
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	opt := &models.Option{
		Name:  name,
		Value: value,
	}

	result = db.Create(opt)
	if result.Error != nil {
		return nil, result.Error
	}

	return opt, nil
}

// Set creates or overwrites an option by name.
func Set(db *gorm.DB, name string, value []byte) (*models.Option, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if name == "" {
		return nil, ErrOptionNameEmpty
	}

	var opt models.Option
	result := db.Where(nameQueryPattern, name).First(&opt)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return Create(db, name, value)
	}
	if result.Error != nil {
		return nil, result.Error
	}

	opt.Value = value
	result = db.Save(&opt)
	if result.Error != nil {
		return nil, result.Error
	}

	return &opt, nil
}

// Store adapts the package functions to a key/value interface.
type Store struct {
	DB *gorm.DB
}

// Get returns the raw value of name or ErrOptionNotFound.
func (s Store) Get(name string) ([]byte, error) {
	opt, err := Get(s.DB, name)
	if err != nil {
		return nil, err
	}

	return opt.Value, nil
}

// Set stores value under name.
func (s Store) Set(name string, value []byte) error {
	_, err := Set(s.DB, name, value)

	return err
}
