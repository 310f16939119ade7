package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/condratcatalina/Afaceri-electronice/internal/models"
)

func (r *GormRepo) CreateUser(ctx context.Context, user *models.User) error {
	return r.DB.WithContext(ctx).Create(user).Error
}

func (r *GormRepo) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) FindUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes the user together with their cart, favorites and
// refresh tokens in one transaction.
func (r *GormRepo) DeleteUser(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.User{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.FavoriteItem{}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", id).Delete(&models.RefreshToken{}).Error
	})
}

func (r *GormRepo) SaveRefreshToken(ctx context.Context, token string, userID uint, expiresAt time.Time) error {
	rec := models.RefreshToken{
		Token:     token,
		UserID:    userID,
		ExpiresAt: expiresAt.Unix(),
	}
	return r.DB.WithContext(ctx).Create(&rec).Error
}

func (r *GormRepo) FindRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	var rec models.RefreshToken
	if err := r.DB.WithContext(ctx).Where("token = ?", token).First(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *GormRepo) RevokeRefreshToken(ctx context.Context, token string) error {
	return r.DB.WithContext(ctx).
		Model(&models.RefreshToken{}).
		Where("token = ?", token).
		Update("revoked", true).Error
}
