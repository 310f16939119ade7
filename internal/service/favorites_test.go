package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoritesService_AddFavorite(t *testing.T) {
	svc := &FavoritesService{Repo: newTestRepo(t)}
	ctx := context.Background()

	item, err := svc.AddFavorite(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, uint(1), item.UserID)
	assert.Equal(t, uint(10), item.ProductID)
}

func TestFavoritesService_AddFavorite_DuplicateIsConflict(t *testing.T) {
	svc := &FavoritesService{Repo: newTestRepo(t)}
	ctx := context.Background()

	_, err := svc.AddFavorite(ctx, 1, 10)
	require.NoError(t, err)

	_, err = svc.AddFavorite(ctx, 1, 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)

	items, err := svc.GetFavorites(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestFavoritesService_AddFavorite_SameProductDifferentUsers(t *testing.T) {
	svc := &FavoritesService{Repo: newTestRepo(t)}
	ctx := context.Background()

	_, err := svc.AddFavorite(ctx, 1, 10)
	require.NoError(t, err)
	_, err = svc.AddFavorite(ctx, 2, 10)
	require.NoError(t, err)
}

func TestFavoritesService_AddFavorite_Validation(t *testing.T) {
	svc := &FavoritesService{Repo: newTestRepo(t)}

	_, err := svc.AddFavorite(context.Background(), 1, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestFavoritesService_RemoveFavorite(t *testing.T) {
	svc := &FavoritesService{Repo: newTestRepo(t)}
	ctx := context.Background()

	item, err := svc.AddFavorite(ctx, 1, 10)
	require.NoError(t, err)

	require.NoError(t, svc.RemoveFavorite(ctx, 1, item.ID))

	items, err := svc.GetFavorites(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, items, 0)
}

func TestFavoritesService_RemoveFavorite_Missing(t *testing.T) {
	svc := &FavoritesService{Repo: newTestRepo(t)}

	err := svc.RemoveFavorite(context.Background(), 1, 42)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFavoritesService_RemoveFavorite_NotOwned(t *testing.T) {
	svc := &FavoritesService{Repo: newTestRepo(t)}
	ctx := context.Background()

	item, err := svc.AddFavorite(ctx, 2, 10)
	require.NoError(t, err)

	err = svc.RemoveFavorite(ctx, 1, item.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)

	items, err := svc.GetFavorites(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}
