package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sneakstore/internal/apperrors"
	"sneakstore/internal/models"
	"sneakstore/internal/repositories"
	"sneakstore/pkg/rabbitmq"
)

// OrderService handles checkout and the order history read surface.
type OrderService struct {
	orders   repositories.OrderRepository
	sneakers repositories.SneakerRepository
	cart     *CartService
	mqClient *rabbitmq.Client
}

// NewOrderService creates a new OrderService.
func NewOrderService(orders repositories.OrderRepository, sneakers repositories.SneakerRepository, cart *CartService, mqClient *rabbitmq.Client) *OrderService {
	return &OrderService{orders: orders, sneakers: sneakers, cart: cart, mqClient: mqClient}
}

// Checkout turns the user's cart into an order: stock is verified per
// variant, prices are re-read from the relational store and snapshotted
// into the line items, stock is decremented and the cart cleared.
func (s *OrderService) Checkout(ctx context.Context, userID uint, shipping, billing models.Address) (*models.Order, error) {
	cart, err := s.cart.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, apperrors.UnprocessableEntity("cart_empty")
	}

	var total float64
	items := make([]models.OrderItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		sneaker, err := s.sneakers.GetByID(line.SneakerID)
		if err != nil {
			return nil, apperrors.UnprocessableEntity("sneaker_unavailable")
		}
		variant, err := s.sneakers.GetVariantByID(line.VariantID)
		if err != nil {
			return nil, apperrors.UnprocessableEntity("variant_unavailable")
		}
		if variant.Stock < line.Quantity {
			return nil, apperrors.UnprocessableEntity("insufficient_stock")
		}

		// Price at the time of order, from the authoritative store.
		items = append(items, models.OrderItem{
			SneakerID: sneaker.ID,
			VariantID: variant.ID,
			Name:      sneaker.Name,
			Color:     variant.Color,
			Size:      variant.Size,
			Quantity:  line.Quantity,
			UnitPrice: sneaker.Price,
		})
		total += sneaker.Price * float64(line.Quantity)
	}

	order := &models.Order{
		Reference:     uuid.New().String(),
		UserID:        userID,
		Status:        models.OrderStatusPending,
		PaymentStatus: "pending",
		Total:         total,
		Shipping:      shipping,
		Billing:       billing,
		Items:         items,
	}
	if err := s.orders.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create order in repository: %w", err)
	}

	for _, item := range order.Items {
		if err := s.sneakers.DecrementVariantStock(item.VariantID, item.Quantity); err != nil {
			log.Printf("Warning: failed to decrement stock of variant %d for order %s: %v", item.VariantID, order.Reference, err)
		}
	}

	s.publishOrderCreated(order)

	if err := s.cart.Clear(ctx, userID); err != nil {
		log.Printf("Warning: failed to clear cart of user %d after checkout: %v", userID, err)
	}
	return order, nil
}

// GetAllForUser retrieves a user's order history.
func (s *OrderService) GetAllForUser(userID uint) ([]models.Order, error) {
	return s.orders.FindAllByUserID(userID)
}

// GetByReference retrieves one order, refusing to serve orders belonging to
// other users.
func (s *OrderService) GetByReference(userID uint, reference string) (*models.Order, error) {
	order, err := s.orders.FindByReference(reference)
	if err != nil {
		return nil, apperrors.NotFound("order_not_found")
	}
	if order.UserID != userID {
		return nil, apperrors.Forbidden("forbidden")
	}
	return order, nil
}

// UpdateStatus updates the status of an existing order.
func (s *OrderService) UpdateStatus(reference string, status string) error {
	validStatuses := map[string]bool{
		models.OrderStatusPending:   true,
		models.OrderStatusPaid:      true,
		models.OrderStatusShipped:   true,
		models.OrderStatusDelivered: true,
		models.OrderStatusCancelled: true,
	}
	if !validStatuses[status] {
		return apperrors.New(400, "invalid_order_status")
	}
	if err := s.orders.UpdateStatus(reference, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("order_not_found")
		}
		return fmt.Errorf("failed to update order status for order %s: %w", reference, err)
	}
	return nil
}

func (s *OrderService) publishOrderCreated(order *models.Order) {
	if s.mqClient == nil {
		log.Println("RabbitMQ client is not initialized. Skipping message publication.")
		return
	}

	event := map[string]interface{}{
		"reference": order.Reference,
		"userID":    order.UserID,
		"status":    order.Status,
		"total":     order.Total,
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal order event to JSON: %v", err)
		return
	}
	if err := s.mqClient.PublishOrderCreated(body); err != nil {
		log.Printf("Warning: Failed to publish order created event for order %s: %v", order.Reference, err)
	} else {
		log.Printf("Successfully published order created event for order %s", order.Reference)
	}
}
