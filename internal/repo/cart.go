package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/condratcatalina/Afaceri-electronice/internal/models"
)

func (r *GormRepo) ListCart(ctx context.Context, userID uint) ([]models.CartItem, error) {
	items := make([]models.CartItem, 0)
	if err := r.DB.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// UpsertCartItem merges the quantity into an existing (user, product) row
// or creates one, as a single atomic step. The server-side increment keeps
// concurrent adds from the same user from losing updates or producing a
// second row.
func (r *GormRepo) UpsertCartItem(ctx context.Context, item *models.CartItem) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.CartItem{}).
			Where("user_id = ? AND product_id = ?", item.UserID, item.ProductID).
			Update("quantity", gorm.Expr("quantity + ?", item.Quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			if err := tx.Create(item).Error; err != nil {
				return err
			}
		}
		return tx.Preload("Product").
			Where("user_id = ? AND product_id = ?", item.UserID, item.ProductID).
			First(item).Error
	})
}

func (r *GormRepo) UpdateCartItemQuantity(ctx context.Context, id, userID, quantity uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", id, userID).
			First(&item).Error; err != nil {
			return err
		}
		if err := tx.Model(&item).Update("quantity", quantity).Error; err != nil {
			return err
		}
		return tx.Preload("Product").First(&item, item.ID).Error
	}); err != nil {
		return nil, err
	}
	return &item, nil
}

// ClearCart removes every row the user owns; clearing an empty cart is a
// no-op, not an error.
func (r *GormRepo) ClearCart(ctx context.Context, userID uint) error {
	return r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.CartItem{}).Error
}
