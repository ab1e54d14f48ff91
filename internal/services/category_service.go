package services

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"sneakstore/internal/apperrors"
	"sneakstore/internal/models"
	"sneakstore/internal/readmodel"
	"sneakstore/internal/repositories"
	"sneakstore/pkg/slugify"
)

// CategoryService handles business logic related to categories. Category
// mutations fan out to sneaker projections exactly like brand mutations do,
// since the projection embeds the category name too.
type CategoryService struct {
	categories repositories.CategoryRepository
	sneakers   repositories.SneakerRepository
	docs       *repositories.CatalogDocumentRepository
	sync       readmodel.Sync
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(categories repositories.CategoryRepository, sneakers repositories.SneakerRepository, docs *repositories.CatalogDocumentRepository, sync readmodel.Sync) *CategoryService {
	return &CategoryService{categories: categories, sneakers: sneakers, docs: docs, sync: sync}
}

// GetAll lists category projections from the read model.
func (s *CategoryService) GetAll(ctx context.Context) ([]models.CategoryDocument, error) {
	return s.docs.GetAllCategories(ctx)
}

// FindBySlug returns the category projection with the given slug, or nil.
func (s *CategoryService) FindBySlug(ctx context.Context, slug string) (*models.CategoryDocument, error) {
	return s.docs.FindCategoryBySlug(ctx, slug)
}

// Create creates a category with a slug recomputed from its name.
func (s *CategoryService) Create(ctx context.Context, category *models.Category) error {
	category.Slug = slugify.Make(category.Name)

	if existing, err := s.categories.FindByName(category.Name); err == nil && existing != nil {
		return apperrors.UnprocessableEntity("category_name_already_exists")
	}
	if err := s.categories.Create(category); err != nil {
		return err
	}

	if err := s.sync.ProjectCategory(ctx, category); err != nil {
		log.Printf("Warning: failed to sync category %d to read model: %v", category.ID, err)
	}
	return nil
}

// Update renames a category and refreshes dependent sneaker projections.
func (s *CategoryService) Update(ctx context.Context, id uint, fields *models.Category) (*models.Category, error) {
	category, err := s.categories.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("category_not_found")
		}
		return nil, err
	}

	if fields.Name != category.Name {
		if existing, err := s.categories.FindByName(fields.Name); err == nil && existing != nil {
			return nil, apperrors.UnprocessableEntity("category_name_already_exists")
		}
	}

	category.Name = fields.Name
	category.Image = fields.Image
	category.IsBest = fields.IsBest
	category.IsActive = fields.IsActive
	category.Slug = slugify.Make(category.Name)
	if err := s.categories.Update(category); err != nil {
		return nil, err
	}

	if err := s.sync.ProjectCategory(ctx, category); err != nil {
		log.Printf("Warning: failed to sync category %d to read model: %v", category.ID, err)
	}
	if err := s.sync.ProjectCategorySneakers(ctx, category.ID); err != nil {
		log.Printf("Warning: failed to fan out category %d update to sneaker projections: %v", category.ID, err)
	}
	return category, nil
}

// Delete removes a category, its sneakers and their projections.
func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	if _, err := s.categories.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("category_not_found")
		}
		return err
	}

	dependents, err := s.sneakers.FindAllByCategoryID(id)
	if err != nil {
		return err
	}
	if err := s.categories.Delete(id); err != nil {
		return err
	}

	if err := s.sync.RemoveCategory(ctx, id); err != nil {
		log.Printf("Warning: failed to remove category %d from read model: %v", id, err)
	}
	if err := s.sync.RemoveSneakerProjections(ctx, dependents); err != nil {
		log.Printf("Warning: failed to fan out category %d deletion to sneaker projections: %v", id, err)
	}
	return nil
}
