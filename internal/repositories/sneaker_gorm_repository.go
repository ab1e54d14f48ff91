package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"sneakstore/internal/models"
)

// GORMSneakerRepository is a GORM implementation of SneakerRepository.
type GORMSneakerRepository struct {
	db *gorm.DB
}

// NewGORMSneakerRepository creates a new instance of GORMSneakerRepository.
func NewGORMSneakerRepository(db *gorm.DB) *GORMSneakerRepository {
	return &GORMSneakerRepository{db: db}
}

func (r *GORMSneakerRepository) withAssociations() *gorm.DB {
	return r.db.Preload("Variants").Preload("Brand").Preload("Category")
}

// GetByID retrieves a single sneaker with its associations loaded.
func (r *GORMSneakerRepository) GetByID(id uint) (*models.Sneaker, error) {
	var sneaker models.Sneaker
	if err := r.withAssociations().First(&sneaker, "sneakers.id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("sneaker with ID %d not found: %w", id, err)
		}
		return nil, fmt.Errorf("failed to get sneaker by ID %d: %w", id, err)
	}
	return &sneaker, nil
}

// FindByName retrieves a sneaker by its exact name. Used for the uniqueness
// pre-check, which must run against the relational store, not the read model.
func (r *GORMSneakerRepository) FindByName(name string) (*models.Sneaker, error) {
	var sneaker models.Sneaker
	if err := r.db.First(&sneaker, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("sneaker with name %s not found: %w", name, err)
		}
		return nil, fmt.Errorf("failed to get sneaker by name %s: %w", name, err)
	}
	return &sneaker, nil
}

// FindAllByBrandID retrieves every sneaker referencing the given brand.
func (r *GORMSneakerRepository) FindAllByBrandID(brandID uint) ([]models.Sneaker, error) {
	var sneakers []models.Sneaker
	if err := r.withAssociations().Find(&sneakers, "brand_id = ?", brandID).Error; err != nil {
		return nil, fmt.Errorf("failed to get sneakers for brand %d: %w", brandID, err)
	}
	return sneakers, nil
}

// FindAllByCategoryID retrieves every sneaker referencing the given category.
func (r *GORMSneakerRepository) FindAllByCategoryID(categoryID uint) ([]models.Sneaker, error) {
	var sneakers []models.Sneaker
	if err := r.withAssociations().Find(&sneakers, "category_id = ?", categoryID).Error; err != nil {
		return nil, fmt.Errorf("failed to get sneakers for category %d: %w", categoryID, err)
	}
	return sneakers, nil
}

// Create creates a new sneaker, including its variants.
func (r *GORMSneakerRepository) Create(sneaker *models.Sneaker) error {
	if err := r.db.Create(sneaker).Error; err != nil {
		return fmt.Errorf("failed to create sneaker: %w", err)
	}
	return nil
}

// UpdateOrCreate updates the sneaker with the given ID in place, or creates
// it when no such row exists. The returned bool reports which branch ran.
func (r *GORMSneakerRepository) UpdateOrCreate(id uint, fields *models.Sneaker) (bool, *models.Sneaker, error) {
	var existing models.Sneaker
	err := r.db.First(&existing, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		fields.ID = id
		if err := r.db.Create(fields).Error; err != nil {
			return false, nil, fmt.Errorf("failed to create sneaker: %w", err)
		}
		created, err := r.GetByID(fields.ID)
		return true, created, err
	}
	if err != nil {
		return false, nil, fmt.Errorf("failed to get sneaker by ID %d: %w", id, err)
	}

	existing.Name = fields.Name
	existing.Slug = fields.Slug
	existing.Description = fields.Description
	existing.Price = fields.Price
	existing.CategoryID = fields.CategoryID
	existing.BrandID = fields.BrandID
	if err := r.db.Save(&existing).Error; err != nil {
		return false, nil, fmt.Errorf("failed to update sneaker: %w", err)
	}
	updated, err := r.GetByID(existing.ID)
	return false, updated, err
}

// PartialUpdate merges the non-zero fields into the existing row and
// replaces the variants when the patch carries any.
func (r *GORMSneakerRepository) PartialUpdate(id uint, fields *models.Sneaker) (*models.Sneaker, error) {
	var existing models.Sneaker
	if err := r.db.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("sneaker with ID %d not found for update: %w", id, gorm.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to get sneaker by ID %d: %w", id, err)
	}

	if err := r.db.Model(&existing).Updates(models.Sneaker{
		Name:        fields.Name,
		Slug:        fields.Slug,
		Description: fields.Description,
		Price:       fields.Price,
		CategoryID:  fields.CategoryID,
		BrandID:     fields.BrandID,
	}).Error; err != nil {
		return nil, fmt.Errorf("failed to update sneaker %d: %w", id, err)
	}

	if fields.Variants != nil {
		for i := range fields.Variants {
			fields.Variants[i].SneakerID = id
		}
		if err := r.db.Model(&existing).Association("Variants").Replace(fields.Variants); err != nil {
			return nil, fmt.Errorf("failed to replace variants of sneaker %d: %w", id, err)
		}
	}

	return r.GetByID(id)
}

// Delete deletes a sneaker and its variants by ID.
func (r *GORMSneakerRepository) Delete(id uint) error {
	res := r.db.Select("Variants").Delete(&models.Sneaker{ID: id})
	if res.Error != nil {
		return fmt.Errorf("failed to delete sneaker: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("sneaker with ID %d not found for deletion: %w", id, gorm.ErrRecordNotFound)
	}
	return nil
}

// GetVariantByID retrieves a single variant row.
func (r *GORMSneakerRepository) GetVariantByID(id uint) (*models.Variant, error) {
	var variant models.Variant
	if err := r.db.First(&variant, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("variant with ID %d not found: %w", id, err)
		}
		return nil, fmt.Errorf("failed to get variant by ID %d: %w", id, err)
	}
	return &variant, nil
}

// DecrementVariantStock reduces the stock of a variant, refusing to go
// negative.
func (r *GORMSneakerRepository) DecrementVariantStock(id uint, quantity int) error {
	res := r.db.Model(&models.Variant{}).
		Where("id = ? AND stock >= ?", id, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if res.Error != nil {
		return fmt.Errorf("failed to decrement stock of variant %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("insufficient stock for variant %d", id)
	}
	return nil
}
