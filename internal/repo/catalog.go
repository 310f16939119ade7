package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/condratcatalina/Afaceri-electronice/internal/models"
	"github.com/condratcatalina/Afaceri-electronice/internal/transport"
)

func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) ListProducts(ctx context.Context, category, sortPrice string, offset, limit int) (int64, []models.Product, error) {
	q := r.DB.WithContext(ctx).Model(&models.Product{})
	if category != "" {
		q = q.Where("category = ?", category)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	switch sortPrice {
	case "asc":
		q = q.Order("price ASC")
	case "desc":
		q = q.Order("price DESC")
	default:
		q = q.Order("id ASC")
	}

	var items []models.Product
	if err := q.Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}

	return total, items, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product) error {
	return r.DB.WithContext(ctx).Create(prod).Error
}

func (r *GormRepo) PatchProduct(ctx context.Context, req transport.PatchProductRequest, id uint) (*models.Product, error) {
	var prod models.Product
	if err := r.DB.WithContext(ctx).First(&prod, id).Error; err != nil {
		return nil, err
	}

	if req.Name != nil {
		prod.Name = *req.Name
	}
	if req.Description != nil {
		prod.Description = *req.Description
	}
	if req.Price != nil {
		prod.Price = *req.Price
	}
	if req.Category != nil {
		prod.Category = *req.Category
	}
	if req.Image != nil {
		prod.Image = *req.Image
	}

	if err := r.DB.WithContext(ctx).Save(&prod).Error; err != nil {
		return nil, err
	}

	return &prod, nil
}

// DeleteProduct removes the product and every cart/favorite row that
// references it, in one transaction. The referential-integrity invariant is
// enforced here explicitly instead of leaning on declarative FK cascades.
func (r *GormRepo) DeleteProduct(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Product{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Where("product_id = ?", id).Delete(&models.FavoriteItem{}).Error
	})
}
