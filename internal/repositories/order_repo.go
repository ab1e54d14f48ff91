package repositories

import "sneakstore/internal/models"

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	Create(order *models.Order) error
	FindAllByUserID(userID uint) ([]models.Order, error)
	FindByReference(reference string) (*models.Order, error)
	UpdateStatus(reference string, status string) error
}
