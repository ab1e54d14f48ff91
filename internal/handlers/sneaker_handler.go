package handlers

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"sneakstore/internal/apperrors"
	"sneakstore/internal/models"
	"sneakstore/internal/services"
)

// Query parameters consumed by the listing endpoints themselves; everything
// else is passed through as a document filter.
var reservedQueryParams = map[string]bool{
	"q": true, "page": true, "limit": true, "sort": true, "order": true,
}

// SneakerHandler handles HTTP requests for the sneaker catalog.
type SneakerHandler struct {
	sneakerService *services.SneakerService
	validate       *validator.Validate
}

// NewSneakerHandler creates a new SneakerHandler.
func NewSneakerHandler(sneakerService *services.SneakerService) *SneakerHandler {
	return &SneakerHandler{
		sneakerService: sneakerService,
		validate:       validator.New(),
	}
}

// RegisterRoutes registers the sneaker routes. Listing and lookup are
// public; mutations go on the admin router.
func (h *SneakerHandler) RegisterRoutes(public fiber.Router, admin fiber.Router) {
	public.Get("/sneakers", h.HandleList)
	public.Get("/sneakers/variants", h.HandleListVariants)
	public.Get("/sneakers/:slug", h.HandleGetBySlug)

	admin.Post("/sneakers", h.HandleCreate)
	admin.Put("/sneakers/:id", h.HandleCreateOrUpdate)
	admin.Patch("/sneakers/:id", h.HandlePartialUpdate)
	admin.Delete("/sneakers/:id", h.HandleDelete)
}

func listParams(c *fiber.Ctx) (q string, page, limit int, sortField, sortOrder string, filters map[string]string) {
	q = c.Query("q")
	page = c.QueryInt("page", 1)
	limit = c.QueryInt("limit", 10)
	sortField = c.Query("sort", "name")
	sortOrder = c.Query("order", "asc")

	filters = make(map[string]string)
	for key, value := range c.Queries() {
		if !reservedQueryParams[key] {
			filters[key] = value
		}
	}
	return
}

// HandleList returns one page of sneaker documents.
func (h *SneakerHandler) HandleList(c *fiber.Ctx) error {
	q, page, limit, sortField, sortOrder, filters := listParams(c)
	result, err := h.sneakerService.GetPaginated(c.Context(), q, page, limit, sortField, sortOrder, filters)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// HandleListVariants returns one page of the flattened per-variant view.
func (h *SneakerHandler) HandleListVariants(c *fiber.Ctx) error {
	q, page, limit, sortField, sortOrder, filters := listParams(c)
	result, err := h.sneakerService.GetVariantsPaginated(c.Context(), q, page, limit, sortField, sortOrder, filters)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// HandleGetBySlug returns a single sneaker document.
func (h *SneakerHandler) HandleGetBySlug(c *fiber.Ctx) error {
	doc, err := h.sneakerService.FindBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		return respondError(c, err)
	}
	if doc == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "sneaker_not_found"})
	}
	return c.JSON(doc)
}

// SneakerRequest is the request body for creating or replacing a sneaker.
type SneakerRequest struct {
	Name        string           `json:"name" validate:"required,min=2,max=100"`
	Description string           `json:"description" validate:"omitempty,max=1000"`
	Price       float64          `json:"price" validate:"required,gt=0"`
	CategoryID  uint             `json:"category_id" validate:"required"`
	BrandID     uint             `json:"brand_id" validate:"required"`
	Variants    []models.Variant `json:"variants" validate:"omitempty,dive"`
}

// SneakerPatchRequest is the request body for a partial update; every field
// is optional.
type SneakerPatchRequest struct {
	Name        string           `json:"name" validate:"omitempty,min=2,max=100"`
	Description string           `json:"description" validate:"omitempty,max=1000"`
	Price       float64          `json:"price" validate:"omitempty,gt=0"`
	CategoryID  uint             `json:"category_id"`
	BrandID     uint             `json:"brand_id"`
	Variants    []models.Variant `json:"variants" validate:"omitempty,dive"`
}

func (r *SneakerRequest) toModel() *models.Sneaker {
	return &models.Sneaker{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		CategoryID:  r.CategoryID,
		BrandID:     r.BrandID,
		Variants:    r.Variants,
	}
}

// HandleCreate creates a sneaker.
func (h *SneakerHandler) HandleCreate(c *fiber.Ctx) error {
	var req SneakerRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	sneaker, err := h.sneakerService.Create(c.Context(), req.toModel())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sneaker)
}

// HandleCreateOrUpdate upserts the sneaker under the path ID and reports
// which branch ran through the response status (201 vs 200).
func (h *SneakerHandler) HandleCreateOrUpdate(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req SneakerRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	created, sneaker, err := h.sneakerService.CreateOrUpdate(c.Context(), id, req.toModel())
	if err != nil {
		return respondError(c, err)
	}
	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{"created": created, "sneaker": sneaker})
}

// HandlePartialUpdate merges the provided fields into an existing sneaker.
func (h *SneakerHandler) HandlePartialUpdate(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req SneakerPatchRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	sneaker, err := h.sneakerService.PartialUpdate(c.Context(), id, &models.Sneaker{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
		BrandID:     req.BrandID,
		Variants:    req.Variants,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sneaker)
}

// HandleDelete removes a sneaker.
func (h *SneakerHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.sneakerService.Delete(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// parseID reads the numeric :id path parameter.
func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, apperrors.New(fiber.StatusBadRequest, "invalid_id")
	}
	return uint(id), nil
}
