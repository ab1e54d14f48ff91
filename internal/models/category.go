package models

import "time"

// Category represents a sneaker category (e.g. "running").
type Category struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=2,max=100"`
	Slug      string    `json:"slug" gorm:"uniqueIndex;type:varchar(100)"`
	Image     string    `json:"image" gorm:"type:text"`
	IsBest    bool      `json:"is_best"`
	IsActive  bool      `json:"is_active"`
	Sneakers  []Sneaker `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
