package readmodel

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"sneakstore/internal/models"
	"sneakstore/internal/repositories"
)

// Sync propagates relational catalog mutations into the document read
// model. Every call is a full-state overwrite keyed by the relational id,
// so syncs are idempotent and a fan-out needs no ordering between its
// per-sneaker writes. Callers invoke it synchronously after a successful
// relational write; a failed sync leaves the read model stale but never
// rolls back or fails the relational mutation.
type Sync interface {
	ProjectBrand(ctx context.Context, brand *models.Brand) error
	RemoveBrand(ctx context.Context, id uint) error
	ProjectCategory(ctx context.Context, category *models.Category) error
	RemoveCategory(ctx context.Context, id uint) error
	ProjectSneaker(ctx context.Context, sneaker *models.Sneaker) error
	RemoveSneaker(ctx context.Context, id uint) error

	// Fan-out: a brand or category rename must refresh every sneaker
	// projection embedding its name; a deletion must remove them.
	ProjectBrandSneakers(ctx context.Context, brandID uint) error
	ProjectCategorySneakers(ctx context.Context, categoryID uint) error
	RemoveSneakerProjections(ctx context.Context, sneakers []models.Sneaker) error
}

// Bridge is the production Sync implementation over a DocumentStore.
type Bridge struct {
	store    repositories.DocumentStore
	sneakers repositories.SneakerRepository
}

// NewBridge creates a Bridge.
func NewBridge(store repositories.DocumentStore, sneakers repositories.SneakerRepository) *Bridge {
	return &Bridge{store: store, sneakers: sneakers}
}

func docID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// ProjectBrand overwrites the brand's document projection.
func (b *Bridge) ProjectBrand(ctx context.Context, brand *models.Brand) error {
	return b.store.Put(ctx, repositories.CollectionBrands, docID(brand.ID), models.NewBrandDocument(brand))
}

// RemoveBrand deletes the brand's document projection.
func (b *Bridge) RemoveBrand(ctx context.Context, id uint) error {
	return b.store.Delete(ctx, repositories.CollectionBrands, docID(id))
}

// ProjectCategory overwrites the category's document projection.
func (b *Bridge) ProjectCategory(ctx context.Context, category *models.Category) error {
	return b.store.Put(ctx, repositories.CollectionCategories, docID(category.ID), models.NewCategoryDocument(category))
}

// RemoveCategory deletes the category's document projection.
func (b *Bridge) RemoveCategory(ctx context.Context, id uint) error {
	return b.store.Delete(ctx, repositories.CollectionCategories, docID(id))
}

// ProjectSneaker overwrites the sneaker's document projection. The sneaker
// must have its Brand, Category and Variants associations loaded, since the
// projection embeds the resolved names.
func (b *Bridge) ProjectSneaker(ctx context.Context, sneaker *models.Sneaker) error {
	return b.store.Put(ctx, repositories.CollectionSneakers, docID(sneaker.ID), models.NewSneakerDocument(sneaker))
}

// RemoveSneaker deletes the sneaker's document projection.
func (b *Bridge) RemoveSneaker(ctx context.Context, id uint) error {
	return b.store.Delete(ctx, repositories.CollectionSneakers, docID(id))
}

// ProjectBrandSneakers re-projects every sneaker referencing the brand.
func (b *Bridge) ProjectBrandSneakers(ctx context.Context, brandID uint) error {
	sneakers, err := b.sneakers.FindAllByBrandID(brandID)
	if err != nil {
		return fmt.Errorf("failed to load sneakers of brand %d for sync: %w", brandID, err)
	}
	return b.projectAll(ctx, sneakers)
}

// ProjectCategorySneakers re-projects every sneaker referencing the category.
func (b *Bridge) ProjectCategorySneakers(ctx context.Context, categoryID uint) error {
	sneakers, err := b.sneakers.FindAllByCategoryID(categoryID)
	if err != nil {
		return fmt.Errorf("failed to load sneakers of category %d for sync: %w", categoryID, err)
	}
	return b.projectAll(ctx, sneakers)
}

// RemoveSneakerProjections deletes the projections of the given sneakers.
// The caller passes the rows it captured before the relational cascade
// removed them.
func (b *Bridge) RemoveSneakerProjections(ctx context.Context, sneakers []models.Sneaker) error {
	return b.forEach(sneakers, func(s *models.Sneaker) error {
		return b.RemoveSneaker(ctx, s.ID)
	})
}

func (b *Bridge) projectAll(ctx context.Context, sneakers []models.Sneaker) error {
	return b.forEach(sneakers, func(s *models.Sneaker) error {
		return b.ProjectSneaker(ctx, s)
	})
}

// forEach runs one sync per sneaker concurrently. A failing dependent never
// aborts its siblings; failures are collected and returned as one error for
// the caller to report.
func (b *Bridge) forEach(sneakers []models.Sneaker, fn func(*models.Sneaker) error) error {
	errs := make([]error, len(sneakers))
	var wg sync.WaitGroup
	for i := range sneakers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = fn(&sneakers[i])
		}(i)
	}
	wg.Wait()
	return errors.Join(errs...)
}
