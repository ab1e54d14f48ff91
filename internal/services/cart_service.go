package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"sneakstore/internal/apperrors"
	"sneakstore/internal/models"
	"sneakstore/internal/repositories"
)

// CartService keeps per-user shopping carts in the document store. The name
// and unit price of a line are resolved from the relational store when the
// item is added, so the cart survives catalog read-model lag.
type CartService struct {
	store    repositories.DocumentStore
	sneakers repositories.SneakerRepository
}

// NewCartService creates a new CartService.
func NewCartService(store repositories.DocumentStore, sneakers repositories.SneakerRepository) *CartService {
	return &CartService{store: store, sneakers: sneakers}
}

func cartID(userID uint) string {
	return strconv.FormatUint(uint64(userID), 10)
}

// Get returns the user's cart, empty when none has been stored yet.
func (s *CartService) Get(ctx context.Context, userID uint) (*models.Cart, error) {
	data, err := s.store.Get(ctx, repositories.CollectionCarts, cartID(userID))
	if errors.Is(err, repositories.ErrDocumentNotFound) {
		return &models.Cart{UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}

	var cart models.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart of user %d: %w", userID, err)
	}
	return &cart, nil
}

// AddItem puts quantity units of a variant into the cart, merging with an
// existing line for the same variant. The requested total must not exceed
// the variant's current stock.
func (s *CartService) AddItem(ctx context.Context, userID, sneakerID, variantID uint, quantity int) (*models.Cart, error) {
	if quantity <= 0 {
		return nil, apperrors.New(400, "invalid_quantity")
	}

	sneaker, err := s.sneakers.GetByID(sneakerID)
	if err != nil {
		return nil, apperrors.NotFound("sneaker_not_found")
	}
	var variant *models.Variant
	for i := range sneaker.Variants {
		if sneaker.Variants[i].ID == variantID {
			variant = &sneaker.Variants[i]
			break
		}
	}
	if variant == nil {
		return nil, apperrors.NotFound("variant_not_found")
	}

	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	requested := quantity
	merged := false
	for i := range cart.Items {
		if cart.Items[i].VariantID == variantID {
			requested += cart.Items[i].Quantity
			cart.Items[i].Quantity = requested
			merged = true
			break
		}
	}
	if requested > variant.Stock {
		return nil, apperrors.UnprocessableEntity("insufficient_stock")
	}
	if !merged {
		cart.Items = append(cart.Items, models.CartItem{
			SneakerID: sneaker.ID,
			VariantID: variant.ID,
			Name:      sneaker.Name,
			Color:     variant.Color,
			Size:      variant.Size,
			UnitPrice: sneaker.Price,
			Quantity:  quantity,
		})
	}

	if err := s.store.Put(ctx, repositories.CollectionCarts, cartID(userID), cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveItem drops the line for a variant from the cart.
func (s *CartService) RemoveItem(ctx context.Context, userID, variantID uint) (*models.Cart, error) {
	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := cart.Items[:0]
	for _, item := range cart.Items {
		if item.VariantID != variantID {
			items = append(items, item)
		}
	}
	cart.Items = items

	if err := s.store.Put(ctx, repositories.CollectionCarts, cartID(userID), cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Clear empties the user's cart.
func (s *CartService) Clear(ctx context.Context, userID uint) error {
	return s.store.Delete(ctx, repositories.CollectionCarts, cartID(userID))
}
