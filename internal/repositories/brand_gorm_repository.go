package repositories

import (
	"fmt"

	"gorm.io/gorm"

	"sneakstore/internal/models"
)

// GORMBrandRepository is a GORM implementation of BrandRepository.
type GORMBrandRepository struct {
	db *gorm.DB
}

// NewGORMBrandRepository creates a new instance of GORMBrandRepository.
func NewGORMBrandRepository(db *gorm.DB) *GORMBrandRepository {
	return &GORMBrandRepository{db: db}
}

// GetAll retrieves all brands from the database.
func (r *GORMBrandRepository) GetAll() ([]models.Brand, error) {
	var brands []models.Brand
	if err := r.db.Find(&brands).Error; err != nil {
		return nil, fmt.Errorf("failed to get all brands: %w", err)
	}
	return brands, nil
}

// GetByID retrieves a single brand by its ID from the database.
func (r *GORMBrandRepository) GetByID(id uint) (*models.Brand, error) {
	var brand models.Brand
	if err := r.db.First(&brand, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("brand with ID %d not found: %w", id, err)
		}
		return nil, fmt.Errorf("failed to get brand by ID %d: %w", id, err)
	}
	return &brand, nil
}

// FindByName retrieves a brand by its exact name.
func (r *GORMBrandRepository) FindByName(name string) (*models.Brand, error) {
	var brand models.Brand
	if err := r.db.First(&brand, "name = ?", name).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("brand with name %s not found: %w", name, err)
		}
		return nil, fmt.Errorf("failed to get brand by name %s: %w", name, err)
	}
	return &brand, nil
}

// Create creates a new brand in the database.
func (r *GORMBrandRepository) Create(brand *models.Brand) error {
	if err := r.db.Create(brand).Error; err != nil {
		return fmt.Errorf("failed to create brand: %w", err)
	}
	return nil
}

// Update updates an existing brand in the database.
func (r *GORMBrandRepository) Update(brand *models.Brand) error {
	res := r.db.Save(brand)
	if res.Error != nil {
		return fmt.Errorf("failed to update brand: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("brand with ID %d not found for update: %w", brand.ID, gorm.ErrRecordNotFound)
	}
	return nil
}

// Delete deletes a brand by its ID. Dependent sneakers go with it through
// the OnDelete:CASCADE constraint.
func (r *GORMBrandRepository) Delete(id uint) error {
	res := r.db.Select("Sneakers").Delete(&models.Brand{ID: id})
	if res.Error != nil {
		return fmt.Errorf("failed to delete brand: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("brand with ID %d not found for deletion: %w", id, gorm.ErrRecordNotFound)
	}
	return nil
}
