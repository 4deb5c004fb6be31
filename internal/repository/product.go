package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"supermercado-api/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrProductReferenced is returned when deleting a product that order items
// still point at.
var ErrProductReferenced = errors.New("product is referenced by order items")

type ProductFilter struct {
	CategoryID uint
	Promoted   *bool
	Search     string
	Page       int
	PageSize   int
}

type ProductRepository interface {
	FindByID(ctx context.Context, id uint) (*model.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*model.Product, int64, error)
	// LockActiveByIDs fetches the active products among ids under a row-level
	// exclusive lock held until tx commits or rolls back.
	LockActiveByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]*model.Product, error)
	// DecrementStock subtracts the given quantity per product id in a single
	// batch update. Callers must hold the row locks and have checked stock.
	DecrementStock(ctx context.Context, tx *gorm.DB, quantities map[uint]int) error
	Delete(ctx context.Context, id uint) error
}

type productRepoImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepoImpl{db: db}
}

func (r *productRepoImpl) FindByID(ctx context.Context, id uint) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("id = ? AND is_active = ?", id, true).
		First(&product).Error

	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) List(ctx context.Context, filter ProductFilter) ([]*model.Product, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Product{}).Where("is_active = ?", true)

	if filter.CategoryID != 0 {
		q = q.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Promoted != nil {
		q = q.Where("promoted = ?", *filter.Promoted)
	}
	if term := strings.TrimSpace(filter.Search); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var products []*model.Product
	err := q.Preload("Category").
		Order("CASE WHEN stock > 0 THEN 0 ELSE 1 END").
		Order("CASE WHEN offer_price IS NOT NULL THEN 0 ELSE 1 END").
		Order("offer_price").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&products).Error

	if err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *productRepoImpl) LockActiveByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]*model.Product, error) {
	q := tx.WithContext(ctx)
	// sqlite has no row locks; its single-writer lock already serializes
	// concurrent checkouts, and SELECT ... FOR UPDATE is a syntax error there.
	if tx.Dialector.Name() != "sqlite" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var products []*model.Product
	err := q.Where("id IN ? AND is_active = ?", ids, true).
		Find(&products).Error

	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) DecrementStock(ctx context.Context, tx *gorm.DB, quantities map[uint]int) error {
	if len(quantities) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(quantities))
	var caseExpr strings.Builder
	caseExpr.WriteString("CASE id")
	args := make([]interface{}, 0, len(quantities)*2)
	for id, qty := range quantities {
		ids = append(ids, id)
		caseExpr.WriteString(" WHEN ? THEN stock - ?")
		args = append(args, id, qty)
	}
	caseExpr.WriteString(" ELSE stock END")

	res := tx.WithContext(ctx).Model(&model.Product{}).
		Where("id IN ?", ids).
		Update("stock", gorm.Expr(caseExpr.String(), args...))

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected != int64(len(ids)) {
		return fmt.Errorf("stock update touched %d of %d products", res.RowsAffected, len(ids))
	}

	return nil
}

func (r *productRepoImpl) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var refs int64
		err := tx.Model(&model.OrderItem{}).
			Where("product_id = ?", id).
			Count(&refs).Error
		if err != nil {
			return err
		}
		if refs > 0 {
			return ErrProductReferenced
		}

		res := tx.Delete(&model.Product{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
