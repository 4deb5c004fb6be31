package repository

import (
	"context"
	"supermercado-api/internal/model"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductSalesRow struct {
	ProductID uint
	Name      string
	Quantity  int
	Revenue   decimal.Decimal
}

type CategorySalesRow struct {
	CategoryID uint
	Name       string
	Quantity   int
	Revenue    decimal.Decimal
}

type DailySalesRow struct {
	Day     string
	Orders  int `gorm:"column:order_count"`
	Revenue decimal.Decimal
}

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, order *model.Order) error
	CreateOrderItems(ctx context.Context, tx *gorm.DB, items []*model.OrderItem) error
	// UpdateTotals writes the fields finalized at the end of checkout.
	UpdateTotals(ctx context.Context, tx *gorm.DB, order *model.Order) error
	FindByReference(ctx context.Context, reference string) (*model.Order, error)

	SalesByProduct(ctx context.Context, from, to *time.Time) ([]ProductSalesRow, error)
	SalesByCategory(ctx context.Context, from, to *time.Time) ([]CategorySalesRow, error)
	SalesByDay(ctx context.Context, from, to *time.Time) ([]DailySalesRow, error)
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{db: db}
}

func (r *orderRepoImpl) Create(ctx context.Context, tx *gorm.DB, order *model.Order) error {
	return tx.WithContext(ctx).Create(order).Error
}

func (r *orderRepoImpl) CreateOrderItems(ctx context.Context, tx *gorm.DB, items []*model.OrderItem) error {
	return tx.WithContext(ctx).Create(&items).Error
}

func (r *orderRepoImpl) UpdateTotals(ctx context.Context, tx *gorm.DB, order *model.Order) error {
	return tx.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", order.ID).
		Updates(map[string]interface{}{
			"total":          order.Total,
			"discount_total": order.DiscountTotal,
			"coupon_code":    order.CouponCode,
			"shipping_cost":  order.ShippingCost,
		}).Error
}

func (r *orderRepoImpl) FindByReference(ctx context.Context, reference string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("reference = ?", reference).
		First(&order).Error

	if err != nil {
		return nil, err
	}

	return &order, nil
}

// itemsInRange scopes order_items joined to orders by creation date.
func (r *orderRepoImpl) itemsInRange(ctx context.Context, from, to *time.Time) *gorm.DB {
	q := r.db.WithContext(ctx).Table("order_items").
		Joins("JOIN orders ON orders.id = order_items.order_id")
	if from != nil {
		q = q.Where("orders.created_at >= ?", *from)
	}
	if to != nil {
		q = q.Where("orders.created_at < ?", *to)
	}
	return q
}

func (r *orderRepoImpl) SalesByProduct(ctx context.Context, from, to *time.Time) ([]ProductSalesRow, error) {
	var rows []ProductSalesRow
	err := r.itemsInRange(ctx, from, to).
		Joins("JOIN products ON products.id = order_items.product_id").
		Select(
			"order_items.product_id AS product_id",
			"products.name AS name",
			"SUM(order_items.quantity) AS quantity",
			"SUM(order_items.quantity * order_items.price) AS revenue",
		).
		Group("order_items.product_id, products.name").
		Order("revenue DESC").
		Scan(&rows).Error

	return rows, err
}

func (r *orderRepoImpl) SalesByCategory(ctx context.Context, from, to *time.Time) ([]CategorySalesRow, error) {
	var rows []CategorySalesRow
	err := r.itemsInRange(ctx, from, to).
		Joins("JOIN products ON products.id = order_items.product_id").
		Joins("JOIN categories ON categories.id = products.category_id").
		Select(
			"categories.id AS category_id",
			"categories.name AS name",
			"SUM(order_items.quantity) AS quantity",
			"SUM(order_items.quantity * order_items.price) AS revenue",
		).
		Group("categories.id, categories.name").
		Order("revenue DESC").
		Scan(&rows).Error

	return rows, err
}

func (r *orderRepoImpl) SalesByDay(ctx context.Context, from, to *time.Time) ([]DailySalesRow, error) {
	var rows []DailySalesRow
	err := r.itemsInRange(ctx, from, to).
		Select(
			"DATE(orders.created_at) AS day",
			"COUNT(DISTINCT orders.id) AS order_count",
			"SUM(order_items.quantity * order_items.price) AS revenue",
		).
		Group("DATE(orders.created_at)").
		Order("day").
		Scan(&rows).Error

	return rows, err
}
