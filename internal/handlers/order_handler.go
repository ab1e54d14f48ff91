package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"sneakstore/internal/models"
	"sneakstore/internal/services"
)

// OrderHandler handles checkout and the user's order history.
type OrderHandler struct {
	orderService *services.OrderService
	validate     *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		validate:     validator.New(),
	}
}

// RegisterRoutes registers the order routes on the authenticated and admin
// routers.
func (h *OrderHandler) RegisterRoutes(protected, admin fiber.Router) {
	protected.Post("/checkout", h.HandleCheckout)
	protected.Get("/profile/orders", h.HandleListOrders)
	protected.Get("/profile/orders/:reference", h.HandleGetOrder)

	admin.Patch("/orders/:reference/status", h.HandleUpdateStatus)
}

// CheckoutRequest carries the addresses captured at checkout.
type CheckoutRequest struct {
	Shipping models.Address `json:"shipping" validate:"required"`
	Billing  models.Address `json:"billing" validate:"required"`
}

// HandleCheckout turns the user's cart into an order.
func (h *OrderHandler) HandleCheckout(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	order, err := h.orderService.Checkout(c.Context(), userID, req.Shipping, req.Billing)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleListOrders returns the user's order history.
func (h *OrderHandler) HandleListOrders(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, err)
	}
	orders, err := h.orderService.GetAllForUser(userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}

// OrderStatusRequest carries the new status for an order.
type OrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// HandleUpdateStatus moves an order to a new status.
func (h *OrderHandler) HandleUpdateStatus(c *fiber.Ctx) error {
	var req OrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	reference := c.Params("reference")
	if err := h.orderService.UpdateStatus(reference, req.Status); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"reference": reference, "status": req.Status})
}

// HandleGetOrder returns one of the user's orders by reference.
func (h *OrderHandler) HandleGetOrder(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, err)
	}
	order, err := h.orderService.GetByReference(userID, c.Params("reference"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}
