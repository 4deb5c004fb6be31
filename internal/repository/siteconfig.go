package repository

import (
	"context"
	"errors"
	"supermercado-api/internal/model"

	"gorm.io/gorm"
)

type SiteConfigRepository interface {
	// First returns the first config row, or nil when none exists yet.
	First(ctx context.Context) (*model.SiteConfig, error)
	// Save updates the first config row, creating it on first write.
	Save(ctx context.Context, cfg *model.SiteConfig) error
}

type siteConfigRepoImpl struct {
	db *gorm.DB
}

func NewSiteConfigRepository(db *gorm.DB) SiteConfigRepository {
	return &siteConfigRepoImpl{db: db}
}

func (r *siteConfigRepoImpl) First(ctx context.Context) (*model.SiteConfig, error) {
	var cfg model.SiteConfig
	err := r.db.WithContext(ctx).Order("id").First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (r *siteConfigRepoImpl) Save(ctx context.Context, cfg *model.SiteConfig) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.SiteConfig
		err := tx.Order("id").First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(cfg).Error
		}
		if err != nil {
			return err
		}

		cfg.ID = existing.ID
		return tx.Model(&existing).Updates(map[string]interface{}{
			"whatsapp_phone": cfg.WhatsappPhone,
			"alias_or_cbu":   cfg.AliasOrCBU,
			"shipping_cost":  cfg.ShippingCost,
		}).Error
	})
}
