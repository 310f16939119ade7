package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/condratcatalina/Afaceri-electronice/internal/models"
)

type FavoritesRepository interface {
	ListFavorites(ctx context.Context, userID uint) ([]models.FavoriteItem, error)
	FindFavorite(ctx context.Context, userID, productID uint) (*models.FavoriteItem, error)
	CreateFavorite(ctx context.Context, item *models.FavoriteItem) error
	DeleteFavorite(ctx context.Context, id, userID uint) error
}

type FavoritesService struct {
	Repo FavoritesRepository
}

func (s *FavoritesService) GetFavorites(ctx context.Context, userID uint) ([]models.FavoriteItem, error) {
	return s.Repo.ListFavorites(ctx, userID)
}

// AddFavorite rejects duplicates: favoriting the same product twice is a
// conflict, not a merge. The unique (user, product) index backs this up for
// concurrent requests.
func (s *FavoritesService) AddFavorite(ctx context.Context, userID, productID uint) (*models.FavoriteItem, error) {
	if productID == 0 {
		return nil, fmt.Errorf("product id required: %w", ErrValidation)
	}

	_, err := s.Repo.FindFavorite(ctx, userID, productID)
	if err == nil {
		return nil, fmt.Errorf("product already in favorites: %w", ErrConflict)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	item := models.FavoriteItem{
		UserID:    userID,
		ProductID: productID,
	}
	if err := s.Repo.CreateFavorite(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *FavoritesService) RemoveFavorite(ctx context.Context, userID, itemID uint) error {
	if itemID == 0 {
		return fmt.Errorf("favorite id is not valid: %w", ErrValidation)
	}

	err := s.Repo.DeleteFavorite(ctx, itemID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("favorite not found: %w", ErrNotFound)
	}
	return err
}
