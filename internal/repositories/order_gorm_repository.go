package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"sneakstore/internal/models"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{db: db}
}

// Create creates a new order with its line items.
func (r *GORMOrderRepository) Create(order *models.Order) error {
	if err := r.db.Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// FindAllByUserID retrieves a user's order history, newest first.
func (r *GORMOrderRepository) FindAllByUserID(userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").Order("created_at DESC").Find(&orders, "user_id = ?", userID).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get orders for user %d: %w", userID, err)
	}
	return orders, nil
}

// FindByReference retrieves an order by its user-facing reference.
func (r *GORMOrderRepository) FindByReference(reference string) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").First(&order, "reference = ?", reference).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order with reference %s not found: %w", reference, err)
		}
		return nil, fmt.Errorf("failed to get order by reference %s: %w", reference, err)
	}
	return &order, nil
}

// UpdateStatus updates the status of an existing order.
func (r *GORMOrderRepository) UpdateStatus(reference string, status string) error {
	res := r.db.Model(&models.Order{}).Where("reference = ?", reference).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update status of order %s: %w", reference, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order with reference %s not found for update: %w", reference, gorm.ErrRecordNotFound)
	}
	return nil
}
