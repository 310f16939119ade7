package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/condratcatalina/Afaceri-electronice/internal/models"
)

// CartRepository is the slice of storage the cart service needs; *repo.GormRepo
// satisfies it.
type CartRepository interface {
	ListCart(ctx context.Context, userID uint) ([]models.CartItem, error)
	UpsertCartItem(ctx context.Context, item *models.CartItem) error
	UpdateCartItemQuantity(ctx context.Context, id, userID, quantity uint) (*models.CartItem, error)
	ClearCart(ctx context.Context, userID uint) error
}

type CartService struct {
	Repo CartRepository
}

func (s *CartService) GetCart(ctx context.Context, userID uint) ([]models.CartItem, error) {
	return s.Repo.ListCart(ctx, userID)
}

// AddToCart upserts a (user, product) row: repeat adds merge quantities
// instead of creating duplicates. A zero quantity defaults to 1.
func (s *CartService) AddToCart(ctx context.Context, userID, productID, quantity uint) (*models.CartItem, error) {
	if productID == 0 {
		return nil, fmt.Errorf("product id is not valid: %w", ErrValidation)
	}
	if quantity == 0 {
		quantity = 1
	}

	item := models.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}
	if err := s.Repo.UpsertCartItem(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateQuantity overwrites the quantity of an entry the user owns. The
// value is taken as given; the column check constraint is the only floor.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, itemID, quantity uint) (*models.CartItem, error) {
	if itemID == 0 {
		return nil, fmt.Errorf("cart item id is not valid: %w", ErrValidation)
	}

	item, err := s.Repo.UpdateCartItemQuantity(ctx, itemID, userID, quantity)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("cart item not found: %w", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *CartService) ClearCart(ctx context.Context, userID uint) error {
	return s.Repo.ClearCart(ctx, userID)
}
