package models

import "time"

// Brand represents a sneaker brand. The slug is recomputed from the name
// before every write, so it is never accepted from clients.
type Brand struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=2,max=100"`
	Slug      string    `json:"slug" gorm:"uniqueIndex;type:varchar(100)"`
	Image     string    `json:"image" gorm:"type:text" validate:"required"`
	Sneakers  []Sneaker `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
