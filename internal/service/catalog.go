package service

import (
	"context"
	"fmt"
	"supermercado-api/internal/model"
	"supermercado-api/internal/repository"
	"time"

	"go.uber.org/zap"
)

type ProductPage struct {
	Count    int64            `json:"count"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
	Results  []*model.Product `json:"results"`
}

type CatalogService interface {
	ListCategories(ctx context.Context) ([]*model.Category, error)
	GetCategory(ctx context.Context, id uint) (*model.Category, error)
	ListProducts(ctx context.Context, filter repository.ProductFilter) (*ProductPage, error)
	GetProduct(ctx context.Context, id uint) (*model.Product, error)
	ListAnnouncements(ctx context.Context) ([]*model.Announcement, error)
	// DeleteProduct hard-deletes a product; it fails with
	// repository.ErrProductReferenced while any order item points at it.
	DeleteProduct(ctx context.Context, id uint) error
}

type catalogServiceImpl struct {
	productRepo      repository.ProductRepository
	categoryRepo     repository.CategoryRepository
	announcementRepo repository.AnnouncementRepository
	logger           *zap.Logger
}

func NewCatalogService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	announcementRepo repository.AnnouncementRepository,
	logger *zap.Logger,
) CatalogService {
	return &catalogServiceImpl{
		productRepo:      productRepo,
		categoryRepo:     categoryRepo,
		announcementRepo: announcementRepo,
		logger:           logger,
	}
}

func (s *catalogServiceImpl) ListCategories(ctx context.Context) ([]*model.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, classifyStoreError(fmt.Errorf("list categories: %w", err))
	}
	return categories, nil
}

func (s *catalogServiceImpl) GetCategory(ctx context.Context, id uint) (*model.Category, error) {
	return s.categoryRepo.FindByID(ctx, id)
}

func (s *catalogServiceImpl) ListProducts(ctx context.Context, filter repository.ProductFilter) (*ProductPage, error) {
	products, total, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return nil, classifyStoreError(fmt.Errorf("list products: %w", err))
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	return &ProductPage{
		Count:    total,
		Page:     page,
		PageSize: pageSize,
		Results:  products,
	}, nil
}

func (s *catalogServiceImpl) GetProduct(ctx context.Context, id uint) (*model.Product, error) {
	return s.productRepo.FindByID(ctx, id)
}

func (s *catalogServiceImpl) ListAnnouncements(ctx context.Context) ([]*model.Announcement, error) {
	announcements, err := s.announcementRepo.ListActive(ctx, time.Now())
	if err != nil {
		return nil, classifyStoreError(fmt.Errorf("list announcements: %w", err))
	}
	return announcements, nil
}

func (s *catalogServiceImpl) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("product deleted", zap.Uint("product_id", id))
	return nil
}
