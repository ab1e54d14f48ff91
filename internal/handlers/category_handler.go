package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"sneakstore/internal/models"
	"sneakstore/internal/services"
)

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	categoryService *services.CategoryService
	validate        *validator.Validate
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		validate:        validator.New(),
	}
}

// RegisterRoutes registers the category routes.
func (h *CategoryHandler) RegisterRoutes(public fiber.Router, admin fiber.Router) {
	public.Get("/categories", h.HandleList)
	public.Get("/categories/:slug", h.HandleGetBySlug)

	admin.Post("/categories", h.HandleCreate)
	admin.Put("/categories/:id", h.HandleUpdate)
	admin.Delete("/categories/:id", h.HandleDelete)
}

// HandleList returns all category projections.
func (h *CategoryHandler) HandleList(c *fiber.Ctx) error {
	categories, err := h.categoryService.GetAll(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(categories)
}

// HandleGetBySlug returns a single category projection.
func (h *CategoryHandler) HandleGetBySlug(c *fiber.Ctx) error {
	category, err := h.categoryService.FindBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		return respondError(c, err)
	}
	if category == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "category_not_found"})
	}
	return c.JSON(category)
}

// CategoryRequest is the request body for creating or updating a category.
type CategoryRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Image    string `json:"image"`
	IsBest   bool   `json:"is_best"`
	IsActive bool   `json:"is_active"`
}

func (r *CategoryRequest) toModel() *models.Category {
	return &models.Category{
		Name:     r.Name,
		Image:    r.Image,
		IsBest:   r.IsBest,
		IsActive: r.IsActive,
	}
}

// HandleCreate creates a category.
func (h *CategoryHandler) HandleCreate(c *fiber.Ctx) error {
	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	category := req.toModel()
	if err := h.categoryService.Create(c.Context(), category); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// HandleUpdate renames a category, cascading into sneaker projections.
func (h *CategoryHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	category, err := h.categoryService.Update(c.Context(), id, req.toModel())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(category)
}

// HandleDelete removes a category and its dependent sneakers.
func (h *CategoryHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.categoryService.Delete(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
