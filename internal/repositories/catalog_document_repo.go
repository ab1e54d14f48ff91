package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"sneakstore/internal/models"
)

// CatalogDocumentRepository serves the brand and category listing reads
// from the document store, so the storefront never touches the relational
// store on the read path.
type CatalogDocumentRepository struct {
	store DocumentStore
}

// NewCatalogDocumentRepository creates a new CatalogDocumentRepository.
func NewCatalogDocumentRepository(store DocumentStore) *CatalogDocumentRepository {
	return &CatalogDocumentRepository{store: store}
}

// GetAllBrands lists every brand projection, sorted by name.
func (r *CatalogDocumentRepository) GetAllBrands(ctx context.Context) ([]models.BrandDocument, error) {
	raw, err := r.store.List(ctx, CollectionBrands)
	if err != nil {
		return nil, fmt.Errorf("failed to list brand documents: %w", err)
	}
	brands := make([]models.BrandDocument, 0, len(raw))
	for _, data := range raw {
		var doc models.BrandDocument
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to unmarshal brand document: %w", err)
		}
		brands = append(brands, doc)
	}
	sort.Slice(brands, func(i, j int) bool { return brands[i].Name < brands[j].Name })
	return brands, nil
}

// GetAllCategories lists every category projection, sorted by name.
func (r *CatalogDocumentRepository) GetAllCategories(ctx context.Context) ([]models.CategoryDocument, error) {
	raw, err := r.store.List(ctx, CollectionCategories)
	if err != nil {
		return nil, fmt.Errorf("failed to list category documents: %w", err)
	}
	categories := make([]models.CategoryDocument, 0, len(raw))
	for _, data := range raw {
		var doc models.CategoryDocument
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to unmarshal category document: %w", err)
		}
		categories = append(categories, doc)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

// FindBrandBySlug returns the brand projection with the given slug, or nil.
func (r *CatalogDocumentRepository) FindBrandBySlug(ctx context.Context, slug string) (*models.BrandDocument, error) {
	brands, err := r.GetAllBrands(ctx)
	if err != nil {
		return nil, err
	}
	for i := range brands {
		if brands[i].Slug == slug {
			return &brands[i], nil
		}
	}
	return nil, nil
}

// FindCategoryBySlug returns the category projection with the given slug, or nil.
func (r *CatalogDocumentRepository) FindCategoryBySlug(ctx context.Context, slug string) (*models.CategoryDocument, error) {
	categories, err := r.GetAllCategories(ctx)
	if err != nil {
		return nil, err
	}
	for i := range categories {
		if categories[i].Slug == slug {
			return &categories[i], nil
		}
	}
	return nil, nil
}
