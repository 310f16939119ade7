package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/condratcatalina/Afaceri-electronice/internal/logging"
	"github.com/condratcatalina/Afaceri-electronice/internal/models"
	"github.com/condratcatalina/Afaceri-electronice/internal/service/search"
	"github.com/condratcatalina/Afaceri-electronice/internal/transport"
)

type CatalogRepository interface {
	GetProduct(ctx context.Context, id uint) (*models.Product, error)
	ListProducts(ctx context.Context, category, sortPrice string, offset, limit int) (int64, []models.Product, error)
	CreateProduct(ctx context.Context, prod *models.Product) error
	PatchProduct(ctx context.Context, req transport.PatchProductRequest, id uint) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uint) error
}

// CatalogService owns product reads and admin mutations. When an ES client
// is configured, mutations keep the search index in step best-effort; an
// index failure never fails the catalog write.
type CatalogService struct {
	Repo    CatalogRepository
	ES      *elasticsearch.Client
	ESIndex string
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	return s.Repo.GetProduct(ctx, id)
}

func (s *CatalogService) GetProducts(ctx context.Context, category, sortPrice string, offset, limit int) (int64, []models.Product, error) {
	return s.Repo.ListProducts(ctx, category, sortPrice, offset, limit)
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("name required: %w", ErrValidation)
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("price cannot be negative: %w", ErrValidation)
	}

	prod := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Image:       req.Image,
	}
	if err := s.Repo.CreateProduct(ctx, &prod); err != nil {
		return nil, err
	}

	s.indexProduct(ctx, &prod)
	return &prod, nil
}

func (s *CatalogService) PatchProduct(ctx context.Context, req transport.PatchProductRequest, id uint) (*models.Product, error) {
	if req.Price != nil && *req.Price < 0 {
		return nil, fmt.Errorf("price cannot be negative: %w", ErrValidation)
	}

	prod, err := s.Repo.PatchProduct(ctx, req, id)
	if err != nil {
		return nil, err
	}

	s.indexProduct(ctx, prod)
	return prod, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		return err
	}

	if s.ES != nil {
		if err := search.DeleteProduct(ctx, s.ES, s.ESIndex, id); err != nil {
			logging.FromContext(ctx).Warn("search index delete failed", "product_id", id, "error", err)
		}
	}
	return nil
}

func (s *CatalogService) SearchProducts(ctx context.Context, query string, from, size int) (int64, []models.Product, error) {
	if strings.TrimSpace(query) == "" {
		return 0, nil, fmt.Errorf("query required: %w", ErrValidation)
	}
	return search.Search(ctx, s.ES, s.ESIndex, query, from, size)
}

func (s *CatalogService) indexProduct(ctx context.Context, prod *models.Product) {
	if s.ES == nil {
		return
	}
	if err := search.IndexProduct(ctx, s.ES, s.ESIndex, prod); err != nil {
		logging.FromContext(ctx).Warn("search index update failed", "product_id", prod.ID, "error", err)
	}
}
