package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/condratcatalina/Afaceri-electronice/internal/models"
)

func (r *GormRepo) ListFavorites(ctx context.Context, userID uint) ([]models.FavoriteItem, error) {
	items := make([]models.FavoriteItem, 0)
	if err := r.DB.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) FindFavorite(ctx context.Context, userID, productID uint) (*models.FavoriteItem, error) {
	var item models.FavoriteItem
	if err := r.DB.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormRepo) CreateFavorite(ctx context.Context, item *models.FavoriteItem) error {
	return r.DB.WithContext(ctx).Create(item).Error
}

func (r *GormRepo) DeleteFavorite(ctx context.Context, id, userID uint) error {
	res := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.FavoriteItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
