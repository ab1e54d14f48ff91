package repositories_test

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"sneakstore/internal/models"
	"sneakstore/internal/repositories"
)

func seededSneakerRepo(t *testing.T) *repositories.SneakerDocumentRepository {
	t.Helper()
	store := repositories.NewMemoryDocumentStore()
	ctx := context.Background()

	docs := []models.SneakerDocument{
		{
			ID: 1, Name: "Nike Air Max 90", Slug: "nike-air-max-90",
			Description: "Classic runner", Brand: "Nike", Category: "Running", Price: 120,
			Variants: []models.VariantDocument{
				{ID: 10, Color: "Red", Size: "42", Stock: 5},
				{ID: 11, Color: "Blue", Size: "43", Stock: 0},
			},
		},
		{
			ID: 2, Name: "Adidas Samba", Slug: "adidas-samba",
			Description: "Indoor football heritage", Brand: "Adidas", Category: "Casual", Price: 90,
			Variants: []models.VariantDocument{
				{ID: 12, Color: "Black", Size: "41", Stock: 3},
			},
		},
		{
			ID: 3, Name: "Nike Dunk Low", Slug: "nike-dunk-low",
			Description: "Skate staple", Brand: "Nike", Category: "Skate", Price: 110,
			Variants: []models.VariantDocument{
				{ID: 13, Color: "White", Size: "42", Stock: 2},
				{ID: 14, Color: "Green", Size: "44", Stock: 1},
			},
		},
	}
	for _, doc := range docs {
		id := strconv.FormatUint(uint64(doc.ID), 10)
		assert.NoError(t, store.Put(ctx, repositories.CollectionSneakers, id, doc))
	}
	return repositories.NewSneakerDocumentRepository(store)
}

func TestGetPaginatedFreeTextSearch(t *testing.T) {
	repo := seededSneakerRepo(t)
	ctx := context.Background()

	result, err := repo.GetPaginated(ctx, "nike", 1, 10, "name", "asc", nil)
	assert.NoError(t, err)
	assert.Equal(t, 2, result.Total)
	assert.Len(t, result.Items, 2)

	// Search is case-insensitive and covers variant colors.
	result, err = repo.GetPaginated(ctx, "RED", 1, 10, "name", "asc", nil)
	assert.NoError(t, err)
	assert.Equal(t, 1, result.Total)
	assert.Equal(t, "Nike Air Max 90", result.Items[0].Name)

	// Descriptions are searched too.
	result, err = repo.GetPaginated(ctx, "heritage", 1, 10, "name", "asc", nil)
	assert.NoError(t, err)
	assert.Equal(t, 1, result.Total)
	assert.Equal(t, "Adidas Samba", result.Items[0].Name)
}

func TestGetPaginatedFiltersAreANDedOntoSearch(t *testing.T) {
	repo := seededSneakerRepo(t)
	ctx := context.Background()

	result, err := repo.GetPaginated(ctx, "nike", 1, 10, "name", "asc", map[string]string{"category": "Skate"})
	assert.NoError(t, err)
	assert.Equal(t, 1, result.Total)
	assert.Equal(t, "Nike Dunk Low", result.Items[0].Name)

	// Filter equality is case-insensitive.
	result, err = repo.GetPaginated(ctx, "", 1, 10, "name", "asc", map[string]string{"brand": "adidas"})
	assert.NoError(t, err)
	assert.Equal(t, 1, result.Total)
}

func TestGetPaginatedSortAndPagination(t *testing.T) {
	repo := seededSneakerRepo(t)
	ctx := context.Background()

	result, err := repo.GetPaginated(ctx, "", 1, 10, "price", "desc", nil)
	assert.NoError(t, err)
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, float64(120), result.Items[0].Price)
	assert.Equal(t, float64(90), result.Items[2].Price)

	// Page 2 with limit 2 holds the single remaining document; the total
	// still reflects every match.
	result, err = repo.GetPaginated(ctx, "", 2, 2, "name", "asc", nil)
	assert.NoError(t, err)
	assert.Equal(t, 3, result.Total)
	assert.Len(t, result.Items, 1)

	// A page past the end is empty, not an error.
	result, err = repo.GetPaginated(ctx, "", 9, 10, "name", "asc", nil)
	assert.NoError(t, err)
	assert.Len(t, result.Items, 0)
}

func TestGetPaginatedNonPositivePageAndLimit(t *testing.T) {
	repo := seededSneakerRepo(t)
	ctx := context.Background()

	// Client-supplied values; a negative limit yields an empty page, never
	// an inverted slice range.
	result, err := repo.GetPaginated(ctx, "", 1, -1, "name", "asc", nil)
	assert.NoError(t, err)
	assert.Equal(t, 3, result.Total)
	assert.Empty(t, result.Items)

	result, err = repo.GetPaginated(ctx, "", -3, 2, "name", "asc", nil)
	assert.NoError(t, err)
	assert.Len(t, result.Items, 2)

	result, err = repo.GetPaginated(ctx, "", 1, 0, "name", "asc", nil)
	assert.NoError(t, err)
	assert.Equal(t, 3, result.Total)
	assert.Empty(t, result.Items)

	variants, err := repo.GetVariantsPaginated(ctx, "", 1, -5, "name", "asc", nil)
	assert.NoError(t, err)
	assert.Equal(t, 5, variants.Total)
	assert.Empty(t, variants.Items)
}

func TestGetVariantsPaginatedFlattens(t *testing.T) {
	repo := seededSneakerRepo(t)
	ctx := context.Background()

	result, err := repo.GetVariantsPaginated(ctx, "", 1, 10, "name", "asc", nil)
	assert.NoError(t, err)
	assert.Equal(t, 5, result.Total)

	result, err = repo.GetVariantsPaginated(ctx, "nike", 1, 10, "name", "asc", nil)
	assert.NoError(t, err)
	assert.Equal(t, 4, result.Total)

	// The variant view does not search descriptions.
	result, err = repo.GetVariantsPaginated(ctx, "heritage", 1, 10, "name", "asc", nil)
	assert.NoError(t, err)
	assert.Equal(t, 0, result.Total)

	result, err = repo.GetVariantsPaginated(ctx, "", 1, 10, "name", "asc", map[string]string{"color": "Red"})
	assert.NoError(t, err)
	assert.Equal(t, 1, result.Total)
	assert.Equal(t, uint(10), result.Items[0].VariantID)
	assert.Equal(t, "Nike Air Max 90", result.Items[0].Name)
}

func TestFindOneBySlug(t *testing.T) {
	repo := seededSneakerRepo(t)
	ctx := context.Background()

	doc, err := repo.FindOneBySlug(ctx, "adidas-samba")
	assert.NoError(t, err)
	assert.NotNil(t, doc)
	assert.Equal(t, uint(2), doc.ID)

	doc, err = repo.FindOneBySlug(ctx, "does-not-exist")
	assert.NoError(t, err)
	assert.Nil(t, doc)
}
