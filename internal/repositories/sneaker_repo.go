package repositories

import "sneakstore/internal/models"

// SneakerRepository defines the interface for sneaker data access.
// Read methods return sneakers with Brand, Category and Variants loaded so
// the read-model projection can be built without further queries.
type SneakerRepository interface {
	GetByID(id uint) (*models.Sneaker, error)
	FindByName(name string) (*models.Sneaker, error)
	FindAllByBrandID(brandID uint) ([]models.Sneaker, error)
	FindAllByCategoryID(categoryID uint) ([]models.Sneaker, error)
	Create(sneaker *models.Sneaker) error
	UpdateOrCreate(id uint, fields *models.Sneaker) (bool, *models.Sneaker, error)
	PartialUpdate(id uint, fields *models.Sneaker) (*models.Sneaker, error)
	Delete(id uint) error
	GetVariantByID(id uint) (*models.Variant, error)
	DecrementVariantStock(id uint, quantity int) error
}
