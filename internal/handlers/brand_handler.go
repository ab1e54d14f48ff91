package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"sneakstore/internal/models"
	"sneakstore/internal/services"
)

// BrandHandler handles HTTP requests for brands.
type BrandHandler struct {
	brandService *services.BrandService
	validate     *validator.Validate
}

// NewBrandHandler creates a new BrandHandler.
func NewBrandHandler(brandService *services.BrandService) *BrandHandler {
	return &BrandHandler{
		brandService: brandService,
		validate:     validator.New(),
	}
}

// RegisterRoutes registers the brand routes.
func (h *BrandHandler) RegisterRoutes(public fiber.Router, admin fiber.Router) {
	public.Get("/brands", h.HandleList)
	public.Get("/brands/:slug", h.HandleGetBySlug)

	admin.Post("/brands", h.HandleCreate)
	admin.Put("/brands/:id", h.HandleUpdate)
	admin.Delete("/brands/:id", h.HandleDelete)
}

// HandleList returns all brand projections.
func (h *BrandHandler) HandleList(c *fiber.Ctx) error {
	brands, err := h.brandService.GetAll(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(brands)
}

// HandleGetBySlug returns a single brand projection.
func (h *BrandHandler) HandleGetBySlug(c *fiber.Ctx) error {
	brand, err := h.brandService.FindBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		return respondError(c, err)
	}
	if brand == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "brand_not_found"})
	}
	return c.JSON(brand)
}

// BrandRequest is the request body for creating or updating a brand.
type BrandRequest struct {
	Name  string `json:"name" validate:"required,min=2,max=100"`
	Image string `json:"image" validate:"required"`
}

// HandleCreate creates a brand.
func (h *BrandHandler) HandleCreate(c *fiber.Ctx) error {
	var req BrandRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	brand := &models.Brand{Name: req.Name, Image: req.Image}
	if err := h.brandService.Create(c.Context(), brand); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(brand)
}

// HandleUpdate renames a brand, cascading into sneaker projections.
func (h *BrandHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req BrandRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	brand, err := h.brandService.Update(c.Context(), id, &models.Brand{Name: req.Name, Image: req.Image})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(brand)
}

// HandleDelete removes a brand and its dependent sneakers.
func (h *BrandHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.brandService.Delete(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
