package repository_test

import (
	"path/filepath"
	"supermercado-api/internal/client"
	"supermercado-api/internal/model"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
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

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func createProduct(t *testing.T, db *gorm.DB, name string, price string, stock int) *model.Product {
	t.Helper()

	category := &model.Category{Name: name + " cat", Slug: name + "-cat"}
	require.NoError(t, db.Create(category).Error)

	product := &model.Product{
		CategoryID: category.ID,
		Name:       name,
		Price:      mustDecimal(t, price),
		Stock:      stock,
		IsActive:   true,
	}
	require.NoError(t, db.Create(product).Error)

	return product
}
