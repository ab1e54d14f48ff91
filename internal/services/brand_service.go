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

// BrandService handles business logic related to brands. Reads come from
// the document store; writes go to the relational store and are then pushed
// into the read model, fanning out to dependent sneaker projections.
type BrandService struct {
	brands   repositories.BrandRepository
	sneakers repositories.SneakerRepository
	docs     *repositories.CatalogDocumentRepository
	sync     readmodel.Sync
}

// NewBrandService creates a new BrandService.
func NewBrandService(brands repositories.BrandRepository, sneakers repositories.SneakerRepository, docs *repositories.CatalogDocumentRepository, sync readmodel.Sync) *BrandService {
	return &BrandService{brands: brands, sneakers: sneakers, docs: docs, sync: sync}
}

// GetAll lists brand projections from the read model.
func (s *BrandService) GetAll(ctx context.Context) ([]models.BrandDocument, error) {
	return s.docs.GetAllBrands(ctx)
}

// FindBySlug returns the brand projection with the given slug, or nil.
func (s *BrandService) FindBySlug(ctx context.Context, slug string) (*models.BrandDocument, error) {
	return s.docs.FindBrandBySlug(ctx, slug)
}

// Create creates a brand. The slug is recomputed from the name, never taken
// from the caller, and the name must not already exist in the relational
// store (the read model may lag and is never consulted for uniqueness).
func (s *BrandService) Create(ctx context.Context, brand *models.Brand) error {
	brand.Slug = slugify.Make(brand.Name)

	if existing, err := s.brands.FindByName(brand.Name); err == nil && existing != nil {
		return apperrors.UnprocessableEntity("brand_name_already_exists")
	}
	if err := s.brands.Create(brand); err != nil {
		return err
	}

	if err := s.sync.ProjectBrand(ctx, brand); err != nil {
		log.Printf("Warning: failed to sync brand %d to read model: %v", brand.ID, err)
	}
	return nil
}

// Update renames a brand (recomputing the slug) and refreshes every sneaker
// projection embedding the old brand name.
func (s *BrandService) Update(ctx context.Context, id uint, fields *models.Brand) (*models.Brand, error) {
	brand, err := s.brands.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("brand_not_found")
		}
		return nil, err
	}

	if fields.Name != brand.Name {
		if existing, err := s.brands.FindByName(fields.Name); err == nil && existing != nil {
			return nil, apperrors.UnprocessableEntity("brand_name_already_exists")
		}
	}

	brand.Name = fields.Name
	brand.Image = fields.Image
	brand.Slug = slugify.Make(brand.Name)
	if err := s.brands.Update(brand); err != nil {
		return nil, err
	}

	if err := s.sync.ProjectBrand(ctx, brand); err != nil {
		log.Printf("Warning: failed to sync brand %d to read model: %v", brand.ID, err)
	}
	if err := s.sync.ProjectBrandSneakers(ctx, brand.ID); err != nil {
		log.Printf("Warning: failed to fan out brand %d update to sneaker projections: %v", brand.ID, err)
	}
	return brand, nil
}

// Delete removes a brand, its sneakers (relational cascade) and all of their
// projections. The dependent rows are captured before the cascade runs so
// their projections can still be identified.
func (s *BrandService) Delete(ctx context.Context, id uint) error {
	if _, err := s.brands.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("brand_not_found")
		}
		return err
	}

	dependents, err := s.sneakers.FindAllByBrandID(id)
	if err != nil {
		return err
	}
	if err := s.brands.Delete(id); err != nil {
		return err
	}

	if err := s.sync.RemoveBrand(ctx, id); err != nil {
		log.Printf("Warning: failed to remove brand %d from read model: %v", id, err)
	}
	if err := s.sync.RemoveSneakerProjections(ctx, dependents); err != nil {
		log.Printf("Warning: failed to fan out brand %d deletion to sneaker projections: %v", id, err)
	}
	return nil
}
