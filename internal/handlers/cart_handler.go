package handlers

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"sneakstore/internal/apperrors"
	"sneakstore/internal/services"
)

// CartHandler handles the authenticated user's shopping cart.
type CartHandler struct {
	cartService *services.CartService
	validate    *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(cartService *services.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the cart routes on the authenticated router.
func (h *CartHandler) RegisterRoutes(protected fiber.Router) {
	protected.Get("/cart", h.HandleGet)
	protected.Post("/cart/items", h.HandleAddItem)
	protected.Delete("/cart/items/:variantId", h.HandleRemoveItem)
	protected.Delete("/cart", h.HandleClear)
}

// currentUserID reads the user id stored by the auth middleware.
func currentUserID(c *fiber.Ctx) (uint, error) {
	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return 0, apperrors.Unauthorized("unauthorized")
	}
	return userID, nil
}

// HandleGet returns the user's cart.
func (h *CartHandler) HandleGet(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, err)
	}
	cart, err := h.cartService.Get(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cart)
}

// AddItemRequest is the request body for adding a variant to the cart.
type AddItemRequest struct {
	SneakerID uint `json:"sneaker_id" validate:"required"`
	VariantID uint `json:"variant_id" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,gt=0"`
}

// HandleAddItem adds units of a variant to the cart.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	cart, err := h.cartService.AddItem(c.Context(), userID, req.SneakerID, req.VariantID, req.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cart)
}

// HandleRemoveItem removes the line for a variant from the cart.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, err)
	}

	variantID, err := strconv.ParseUint(c.Params("variantId"), 10, 32)
	if err != nil {
		return respondError(c, apperrors.New(fiber.StatusBadRequest, "invalid_id"))
	}

	cart, err := h.cartService.RemoveItem(c.Context(), userID, uint(variantID))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cart)
}

// HandleClear empties the cart.
func (h *CartHandler) HandleClear(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.cartService.Clear(c.Context(), userID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
