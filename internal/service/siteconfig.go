package service

import (
	"context"
	"fmt"
	"sync"
	"supermercado-api/internal/dto"
	"supermercado-api/internal/model"
	"supermercado-api/internal/repository"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type SiteConfigService interface {
	Get(ctx context.Context) (*model.SiteConfig, error)
	ShippingCost(ctx context.Context) (decimal.Decimal, error)
	Update(ctx context.Context, req *dto.UpdateSiteConfigRequest) (*model.SiteConfig, error)
}

// siteConfigServiceImpl is a read-through cache over the single config row.
// Update invalidates synchronously; the TTL only bounds staleness against
// out-of-band writes.
type siteConfigServiceImpl struct {
	repo   repository.SiteConfigRepository
	ttl    time.Duration
	logger *zap.Logger

	mu        sync.RWMutex
	cached    *model.SiteConfig
	fetchedAt time.Time
}

func NewSiteConfigService(repo repository.SiteConfigRepository, ttl time.Duration, logger *zap.Logger) SiteConfigService {
	return &siteConfigServiceImpl{
		repo:   repo,
		ttl:    ttl,
		logger: logger,
	}
}

func (s *siteConfigServiceImpl) Get(ctx context.Context) (*model.SiteConfig, error) {
	s.mu.RLock()
	if s.cached != nil && time.Since(s.fetchedAt) < s.ttl {
		cfg := *s.cached
		s.mu.RUnlock()
		return &cfg, nil
	}
	s.mu.RUnlock()

	cfg, err := s.repo.First(ctx)
	if err != nil {
		return nil, fmt.Errorf("load site config: %w", err)
	}
	if cfg == nil {
		// no row yet; serve zero-value defaults without caching the miss
		return &model.SiteConfig{ShippingCost: decimal.Zero}, nil
	}

	s.mu.Lock()
	s.cached = cfg
	s.fetchedAt = time.Now()
	s.mu.Unlock()

	out := *cfg
	return &out, nil
}

func (s *siteConfigServiceImpl) ShippingCost(ctx context.Context) (decimal.Decimal, error) {
	cfg, err := s.Get(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return cfg.ShippingCost, nil
}

func (s *siteConfigServiceImpl) Update(ctx context.Context, req *dto.UpdateSiteConfigRequest) (*model.SiteConfig, error) {
	if req.ShippingCost.IsNegative() {
		return nil, newValidationError("shipping_cost", "must not be negative")
	}

	cfg := &model.SiteConfig{
		WhatsappPhone: req.WhatsappPhone,
		AliasOrCBU:    req.AliasOrCBU,
		ShippingCost:  req.ShippingCost,
	}
	if err := s.repo.Save(ctx, cfg); err != nil {
		return nil, classifyStoreError(fmt.Errorf("save site config: %w", err))
	}

	s.invalidate()
	s.logger.Info("site config updated",
		zap.String("shipping_cost", cfg.ShippingCost.String()))

	return cfg, nil
}

func (s *siteConfigServiceImpl) invalidate() {
	s.mu.Lock()
	s.cached = nil
	s.fetchedAt = time.Time{}
	s.mu.Unlock()
}
