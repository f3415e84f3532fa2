package models

import (
	"strings"

	"gorm.io/gorm"
)

// Category is a label for envelopes and transactions.
type Category struct {
	DefaultModel
	Position int    `gorm:"index"`
	Name     string `gorm:"uniqueIndex"`
}

func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	return nil
}
