package models

import "time"

// Sneaker is the authoritative relational record for a catalog entry.
// The document store keeps a denormalized projection of it (see
// SneakerDocument) with the brand and category names resolved.
type Sneaker struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=2,max=100"`
	Slug        string    `json:"slug" gorm:"uniqueIndex;type:varchar(100)"`
	Description string    `json:"description" gorm:"type:text" validate:"omitempty,max=1000"`
	Price       float64   `json:"price" validate:"required,gt=0"`
	CategoryID  uint      `json:"category_id" validate:"required"`
	BrandID     uint      `json:"brand_id" validate:"required"`
	Category    Category  `json:"-"`
	Brand       Brand     `json:"-"`
	Variants    []Variant `json:"variants" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Variant is one purchasable (color, size) combination of a sneaker.
type Variant struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	SneakerID uint   `json:"sneaker_id"`
	Color     string `json:"color" gorm:"type:varchar(50)" validate:"required"`
	Size      string `json:"size" gorm:"type:varchar(10)" validate:"required"`
	Stock     int    `json:"stock" validate:"gte=0"`
}
