// Package models contains database model definitions.
package models

// Option is one named value of the options store.
// Values are JSON encoded by the settings layer.
type Option struct {
	ID    uint64 `gorm:"primaryKey"`
	Name  string `gorm:"uniqueIndex;size:191"`
	Value []byte `gorm:"type:blob"`
}
