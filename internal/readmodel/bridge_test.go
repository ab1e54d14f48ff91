package readmodel_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"sneakstore/internal/models"
	"sneakstore/internal/readmodel"
	"sneakstore/internal/repositories"
)

// MockSneakerRepository is a mock implementation of repositories.SneakerRepository
type MockSneakerRepository struct {
	mock.Mock
}

func (m *MockSneakerRepository) GetByID(id uint) (*models.Sneaker, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Sneaker), args.Error(1)
}

func (m *MockSneakerRepository) FindByName(name string) (*models.Sneaker, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Sneaker), args.Error(1)
}

func (m *MockSneakerRepository) FindAllByBrandID(brandID uint) ([]models.Sneaker, error) {
	args := m.Called(brandID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Sneaker), args.Error(1)
}

func (m *MockSneakerRepository) FindAllByCategoryID(categoryID uint) ([]models.Sneaker, error) {
	args := m.Called(categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Sneaker), args.Error(1)
}

func (m *MockSneakerRepository) Create(sneaker *models.Sneaker) error {
	args := m.Called(sneaker)
	return args.Error(0)
}

func (m *MockSneakerRepository) UpdateOrCreate(id uint, fields *models.Sneaker) (bool, *models.Sneaker, error) {
	args := m.Called(id, fields)
	if args.Get(1) == nil {
		return args.Bool(0), nil, args.Error(2)
	}
	return args.Bool(0), args.Get(1).(*models.Sneaker), args.Error(2)
}

func (m *MockSneakerRepository) PartialUpdate(id uint, fields *models.Sneaker) (*models.Sneaker, error) {
	args := m.Called(id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Sneaker), args.Error(1)
}

func (m *MockSneakerRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockSneakerRepository) GetVariantByID(id uint) (*models.Variant, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Variant), args.Error(1)
}

func (m *MockSneakerRepository) DecrementVariantStock(id uint, quantity int) error {
	args := m.Called(id, quantity)
	return args.Error(0)
}

// failingStore wraps a MemoryDocumentStore and fails writes for one id.
type failingStore struct {
	*repositories.MemoryDocumentStore
	failID string
}

func (s *failingStore) Put(ctx context.Context, collection, id string, doc any) error {
	if id == s.failID {
		return errors.New("write refused")
	}
	return s.MemoryDocumentStore.Put(ctx, collection, id, doc)
}

func getDocument[T any](t *testing.T, store repositories.DocumentStore, collection, id string) *T {
	t.Helper()
	data, err := store.Get(context.Background(), collection, id)
	assert.NoError(t, err)
	var doc T
	assert.NoError(t, json.Unmarshal(data, &doc))
	return &doc
}

func TestProjectBrand(t *testing.T) {
	store := repositories.NewMemoryDocumentStore()
	bridge := readmodel.NewBridge(store, new(MockSneakerRepository))

	brand := &models.Brand{ID: 7, Name: "Nike", Slug: "nike", Image: "nike.png"}
	assert.NoError(t, bridge.ProjectBrand(context.Background(), brand))

	doc := getDocument[models.BrandDocument](t, store, repositories.CollectionBrands, "7")
	assert.Equal(t, "Nike", doc.Name)
	assert.Equal(t, "nike", doc.Slug)

	assert.NoError(t, bridge.RemoveBrand(context.Background(), 7))
	_, err := store.Get(context.Background(), repositories.CollectionBrands, "7")
	assert.ErrorIs(t, err, repositories.ErrDocumentNotFound)
}

func TestProjectBrandSneakersFanOut(t *testing.T) {
	store := repositories.NewMemoryDocumentStore()
	mockRepo := new(MockSneakerRepository)
	bridge := readmodel.NewBridge(store, mockRepo)
	ctx := context.Background()

	// Stale projections carrying the old brand name.
	assert.NoError(t, store.Put(ctx, repositories.CollectionSneakers, "1",
		models.SneakerDocument{ID: 1, Name: "Air Max 90", Brand: "Nike"}))
	assert.NoError(t, store.Put(ctx, repositories.CollectionSneakers, "2",
		models.SneakerDocument{ID: 2, Name: "Dunk Low", Brand: "Nike"}))

	// The repository returns the rows as reloaded after the rename.
	renamed := models.Brand{ID: 5, Name: "Nike Sportswear"}
	mockRepo.On("FindAllByBrandID", uint(5)).Return([]models.Sneaker{
		{ID: 1, Name: "Air Max 90", BrandID: 5, Brand: renamed},
		{ID: 2, Name: "Dunk Low", BrandID: 5, Brand: renamed},
	}, nil).Once()

	assert.NoError(t, bridge.ProjectBrandSneakers(ctx, 5))

	for _, id := range []string{"1", "2"} {
		doc := getDocument[models.SneakerDocument](t, store, repositories.CollectionSneakers, id)
		assert.Equal(t, "Nike Sportswear", doc.Brand)
	}
	mockRepo.AssertExpectations(t)
}

func TestFanOutFailureIsolation(t *testing.T) {
	store := &failingStore{
		MemoryDocumentStore: repositories.NewMemoryDocumentStore(),
		failID:              "2",
	}
	mockRepo := new(MockSneakerRepository)
	bridge := readmodel.NewBridge(store, mockRepo)
	ctx := context.Background()

	category := models.Category{ID: 3, Name: "Running"}
	mockRepo.On("FindAllByCategoryID", uint(3)).Return([]models.Sneaker{
		{ID: 1, Name: "Air Max 90", CategoryID: 3, Category: category},
		{ID: 2, Name: "Pegasus", CategoryID: 3, Category: category},
		{ID: 3, Name: "Vomero", CategoryID: 3, Category: category},
	}, nil).Once()

	err := bridge.ProjectCategorySneakers(ctx, 3)
	assert.Error(t, err)

	// The failing dependent never aborts its siblings.
	for _, id := range []string{"1", "3"} {
		doc := getDocument[models.SneakerDocument](t, store, repositories.CollectionSneakers, id)
		assert.Equal(t, "Running", doc.Category)
	}
	_, getErr := store.Get(ctx, repositories.CollectionSneakers, "2")
	assert.ErrorIs(t, getErr, repositories.ErrDocumentNotFound)
}

func TestRemoveSneakerProjections(t *testing.T) {
	store := repositories.NewMemoryDocumentStore()
	bridge := readmodel.NewBridge(store, new(MockSneakerRepository))
	ctx := context.Background()

	assert.NoError(t, store.Put(ctx, repositories.CollectionSneakers, "1", models.SneakerDocument{ID: 1}))
	assert.NoError(t, store.Put(ctx, repositories.CollectionSneakers, "2", models.SneakerDocument{ID: 2}))

	err := bridge.RemoveSneakerProjections(ctx, []models.Sneaker{{ID: 1}, {ID: 2}})
	assert.NoError(t, err)

	for _, id := range []string{"1", "2"} {
		_, getErr := store.Get(ctx, repositories.CollectionSneakers, id)
		assert.ErrorIs(t, getErr, repositories.ErrDocumentNotFound)
	}
}
