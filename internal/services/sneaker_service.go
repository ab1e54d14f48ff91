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

// SneakerService handles business logic related to sneakers. Listing and
// lookup reads run against the document store; every mutation writes the
// relational store first and then pushes the new state into the read model.
type SneakerService struct {
	sneakers repositories.SneakerRepository
	docs     *repositories.SneakerDocumentRepository
	sync     readmodel.Sync
}

// NewSneakerService creates a new SneakerService.
func NewSneakerService(sneakers repositories.SneakerRepository, docs *repositories.SneakerDocumentRepository, sync readmodel.Sync) *SneakerService {
	return &SneakerService{sneakers: sneakers, docs: docs, sync: sync}
}

// GetPaginated returns one page of sneaker documents. A non-empty q is
// matched case-insensitively against name, category, brand, description and
// variant color/size; explicit filters are ANDed on top.
func (s *SneakerService) GetPaginated(ctx context.Context, q string, page, limit int, sortField, sortOrder string, filters map[string]string) (*repositories.PaginatedSneakers, error) {
	return s.docs.GetPaginated(ctx, q, page, limit, sortField, sortOrder, filters)
}

// GetVariantsPaginated is GetPaginated over the flattened per-variant view.
func (s *SneakerService) GetVariantsPaginated(ctx context.Context, q string, page, limit int, sortField, sortOrder string, filters map[string]string) (*repositories.PaginatedVariants, error) {
	return s.docs.GetVariantsPaginated(ctx, q, page, limit, sortField, sortOrder, filters)
}

// Find returns the first document matching the filters, failing with
// NotFound when nothing matches.
func (s *SneakerService) Find(ctx context.Context, filters map[string]string) (*models.SneakerDocument, error) {
	doc, err := s.docs.FindOne(ctx, filters)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, apperrors.NotFound("sneaker_not_found")
	}
	return doc, nil
}

// FindBySlug returns the document with the given slug, or nil when absent.
func (s *SneakerService) FindBySlug(ctx context.Context, slug string) (*models.SneakerDocument, error) {
	return s.docs.FindOneBySlug(ctx, slug)
}

// Create creates a sneaker. Name uniqueness is checked against the
// relational store before any write happens.
func (s *SneakerService) Create(ctx context.Context, sneaker *models.Sneaker) (*models.Sneaker, error) {
	sneaker.Slug = slugify.Make(sneaker.Name)

	if existing, err := s.sneakers.FindByName(sneaker.Name); err == nil && existing != nil {
		return nil, apperrors.UnprocessableEntity("sneaker_name_already_exists")
	}
	if err := s.sneakers.Create(sneaker); err != nil {
		return nil, err
	}

	created, err := s.sneakers.GetByID(sneaker.ID)
	if err != nil {
		return nil, err
	}
	if err := s.sync.ProjectSneaker(ctx, created); err != nil {
		log.Printf("Warning: failed to sync sneaker %d to read model: %v", created.ID, err)
	}
	return created, nil
}

// CreateOrUpdate upserts the sneaker under the given ID and reports whether
// a new row was created.
func (s *SneakerService) CreateOrUpdate(ctx context.Context, id uint, fields *models.Sneaker) (bool, *models.Sneaker, error) {
	fields.Slug = slugify.Make(fields.Name)

	created, sneaker, err := s.sneakers.UpdateOrCreate(id, fields)
	if err != nil {
		return false, nil, err
	}
	if err := s.sync.ProjectSneaker(ctx, sneaker); err != nil {
		log.Printf("Warning: failed to sync sneaker %d to read model: %v", sneaker.ID, err)
	}
	return created, sneaker, nil
}

// PartialUpdate merges the provided fields into an existing sneaker,
// failing with NotFound when no relational row has that ID.
func (s *SneakerService) PartialUpdate(ctx context.Context, id uint, fields *models.Sneaker) (*models.Sneaker, error) {
	if fields.Name != "" {
		fields.Slug = slugify.Make(fields.Name)
	}

	sneaker, err := s.sneakers.PartialUpdate(id, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("sneaker_not_found")
		}
		return nil, err
	}
	if err := s.sync.ProjectSneaker(ctx, sneaker); err != nil {
		log.Printf("Warning: failed to sync sneaker %d to read model: %v", sneaker.ID, err)
	}
	return sneaker, nil
}

// Delete removes a sneaker relationally and then its projection.
func (s *SneakerService) Delete(ctx context.Context, id uint) error {
	if err := s.sneakers.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("sneaker_not_found")
		}
		return err
	}
	if err := s.sync.RemoveSneaker(ctx, id); err != nil {
		log.Printf("Warning: failed to remove sneaker %d from read model: %v", id, err)
	}
	return nil
}
