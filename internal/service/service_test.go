package service_test

import (
	"path/filepath"
	"supermercado-api/internal/client"
	"supermercado-api/internal/model"
	"supermercado-api/internal/repository"
	"supermercado-api/internal/service"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, client.Migrate(db))

	return db
}

type fixture struct {
	db         *gorm.DB
	checkout   service.CheckoutService
	siteConfig service.SiteConfigService
	coupons    service.CouponService
	stats      service.StatsService
	catalog    service.CatalogService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := setupDB(t)
	log := zap.NewNop()

	productRepo := repository.NewProductRepository(db)
	couponRepo := repository.NewCouponRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	siteConfigRepo := repository.NewSiteConfigRepository(db)
	announcementRepo := repository.NewAnnouncementRepository(db)

	siteConfig := service.NewSiteConfigService(siteConfigRepo, 5*time.Minute, log)

	return &fixture{
		db:         db,
		checkout:   service.NewCheckoutService(db, productRepo, couponRepo, orderRepo, siteConfig, log),
		siteConfig: siteConfig,
		coupons:    service.NewCouponService(couponRepo),
		stats:      service.NewStatsService(orderRepo),
		catalog:    service.NewCatalogService(productRepo, categoryRepo, announcementRepo, log),
	}
}

func (f *fixture) seedCategory(t *testing.T, name, slug string) *model.Category {
	t.Helper()
	category := &model.Category{Name: name, Slug: slug}
	require.NoError(t, f.db.Create(category).Error)
	return category
}

func (f *fixture) seedProduct(t *testing.T, categoryID uint, name string, price string, stock int) *model.Product {
	t.Helper()
	product := &model.Product{
		CategoryID: categoryID,
		Name:       name,
		Price:      mustDecimal(t, price),
		Stock:      stock,
		IsActive:   true,
	}
	require.NoError(t, f.db.Create(product).Error)
	return product
}

func (f *fixture) seedShippingCost(t *testing.T, cost string) {
	t.Helper()
	require.NoError(t, f.db.Create(&model.SiteConfig{
		ShippingCost: mustDecimal(t, cost),
	}).Error)
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func requireDecimalEqual(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.True(t, mustDecimal(t, want).Equal(got),
		"expected %s, got %s", want, got.String())
}
