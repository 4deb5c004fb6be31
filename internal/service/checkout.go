package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"supermercado-api/internal/dto"
	"supermercado-api/internal/model"
	"supermercado-api/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const maxCouponCodeLen = 40

type CheckoutService interface {
	PlaceOrder(ctx context.Context, req *dto.CheckoutRequest) (*dto.OrderResponse, error)
	// GetOrder looks a placed order up by the public reference returned to
	// the customer at checkout.
	GetOrder(ctx context.Context, reference string) (*dto.OrderResponse, error)
}

type checkoutServiceImpl struct {
	db          *gorm.DB
	productRepo repository.ProductRepository
	couponRepo  repository.CouponRepository
	orderRepo   repository.OrderRepository
	siteConfig  SiteConfigService
	logger      *zap.Logger
}

func NewCheckoutService(
	db *gorm.DB,
	productRepo repository.ProductRepository,
	couponRepo repository.CouponRepository,
	orderRepo repository.OrderRepository,
	siteConfig SiteConfigService,
	logger *zap.Logger,
) CheckoutService {
	return &checkoutServiceImpl{
		db:          db,
		productRepo: productRepo,
		couponRepo:  couponRepo,
		orderRepo:   orderRepo,
		siteConfig:  siteConfig,
		logger:      logger,
	}
}

// PlaceOrder runs the whole checkout as one transaction: lock and validate
// stock, snapshot prices onto the order items, decrement stock, and apply at
// most one coupon. Any validation failure rolls everything back.
func (s *checkoutServiceImpl) PlaceOrder(ctx context.Context, req *dto.CheckoutRequest) (*dto.OrderResponse, error) {
	quantities, ids, err := consolidateItems(req.Items)
	if err != nil {
		return nil, err
	}

	// The advisory pre-check lives in the handler; here a coupon that fails
	// qualification or loses the usage race is silently dropped, never a
	// failed order.
	code := strings.TrimSpace(req.CouponCode)
	if len(code) > maxCouponCodeLen {
		code = code[:maxCouponCodeLen]
	}

	deliveryMethod := req.DeliveryMethod
	if deliveryMethod == "" {
		deliveryMethod = model.DeliveryHome
	}

	shippingCost, err := s.siteConfig.ShippingCost(ctx)
	if err != nil {
		return nil, classifyStoreError(fmt.Errorf("resolve shipping cost: %w", err))
	}
	if deliveryMethod == model.DeliveryPickup {
		shippingCost = decimal.Zero
	}

	order := &model.Order{
		Reference:      uuid.NewString(),
		Name:           req.Name,
		Phone:          req.Phone,
		Address:        req.Address,
		Notes:          req.Notes,
		PaymentMethod:  req.PaymentMethod,
		DeliveryMethod: deliveryMethod,
		ShippingCost:   shippingCost,
	}
	var orderItems []*model.OrderItem

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		products, err := s.productRepo.LockActiveByIDs(ctx, tx, ids)
		if err != nil {
			return fmt.Errorf("lock products: %w", err)
		}

		byID := make(map[uint]*model.Product, len(products))
		for _, p := range products {
			byID[p.ID] = p
		}
		if len(byID) != len(ids) {
			var missing []string
			for _, id := range ids {
				if _, ok := byID[id]; !ok {
					missing = append(missing, fmt.Sprint(id))
				}
			}
			return newValidationError("items", "invalid product(s): %s", strings.Join(missing, ", "))
		}

		subtotal := decimal.Zero
		orderItems = make([]*model.OrderItem, 0, len(ids))
		for _, id := range ids {
			product := byID[id]
			quantity := quantities[id]
			if product.Stock < quantity {
				return newValidationError("items",
					"insufficient stock for %s (available: %d)", product.Name, product.Stock)
			}
			price := product.EffectivePrice()
			subtotal = subtotal.Add(price.Mul(decimal.NewFromInt(int64(quantity))))
			orderItems = append(orderItems, &model.OrderItem{
				ProductID: id,
				Quantity:  quantity,
				Price:     price,
			})
		}

		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		for _, item := range orderItems {
			item.OrderID = order.ID
		}
		if err := s.orderRepo.CreateOrderItems(ctx, tx, orderItems); err != nil {
			return fmt.Errorf("create order items: %w", err)
		}

		if err := s.productRepo.DecrementStock(ctx, tx, quantities); err != nil {
			return fmt.Errorf("decrement stock: %w", err)
		}

		discount := decimal.Zero
		if code != "" {
			applied, err := s.applyCoupon(ctx, tx, order, code, subtotal)
			if err != nil {
				return err
			}
			discount = applied
		}

		order.DiscountTotal = discount
		order.Total = subtotal.Sub(discount).Add(order.ShippingCost)
		if err := s.orderRepo.UpdateTotals(ctx, tx, order); err != nil {
			return fmt.Errorf("finalize order: %w", err)
		}

		return nil
	})
	if err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			return nil, ve
		}
		return nil, classifyStoreError(err)
	}

	s.logger.Info("order placed",
		zap.Uint("order_id", order.ID),
		zap.String("reference", order.Reference),
		zap.String("total", order.Total.String()),
		zap.String("coupon_code", order.CouponCode),
	)

	return orderResponse(order, orderItems), nil
}

func (s *checkoutServiceImpl) GetOrder(ctx context.Context, reference string) (*dto.OrderResponse, error) {
	order, err := s.orderRepo.FindByReference(ctx, reference)
	if err != nil {
		return nil, err
	}

	items := make([]*model.OrderItem, 0, len(order.Items))
	for i := range order.Items {
		items = append(items, &order.Items[i])
	}

	return orderResponse(order, items), nil
}

// applyCoupon re-checks the coupon inside the transaction and grants the
// discount only if the conditional used_count increment lands. Losing the
// race for the last use leaves the order without a discount.
func (s *checkoutServiceImpl) applyCoupon(ctx context.Context, tx *gorm.DB, order *model.Order, code string, subtotal decimal.Decimal) (decimal.Decimal, error) {
	coupon, err := s.couponRepo.FindValid(ctx, tx, code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("re-check coupon: %w", err)
	}
	if subtotal.LessThan(coupon.MinSubtotal) {
		return decimal.Zero, nil
	}

	granted, err := s.couponRepo.ConsumeUse(ctx, tx, coupon)
	if err != nil {
		return decimal.Zero, fmt.Errorf("consume coupon use: %w", err)
	}
	if !granted {
		s.logger.Warn("coupon use lost to concurrent checkout",
			zap.String("code", coupon.Code))
		return decimal.Zero, nil
	}

	discount := decimal.Zero
	switch coupon.Type {
	case model.CouponFixed:
		discount = decimal.Min(coupon.Amount, subtotal)
	case model.CouponPercent:
		discount = subtotal.Mul(coupon.Percent).Div(decimal.NewFromInt(100))
		if coupon.PercentCap.IsPositive() {
			discount = decimal.Min(discount, coupon.PercentCap)
		}
		discount = decimal.Min(discount, subtotal)
	case model.CouponFreeShipping:
		order.ShippingCost = decimal.Zero
	}
	order.CouponCode = coupon.Code

	return discount, nil
}

// consolidateItems merges duplicate product ids, summing quantities, and
// returns the ids sorted so overlapping checkouts lock rows in one order.
func consolidateItems(items []dto.CheckoutItem) (map[uint]int, []uint, error) {
	if len(items) == 0 {
		return nil, nil, newValidationError("items", "at least one item is required")
	}

	quantities := make(map[uint]int, len(items))
	for _, item := range items {
		quantities[item.ProductID] += item.Quantity
	}

	ids := make([]uint, 0, len(quantities))
	var invalid []string
	for id, qty := range quantities {
		if qty <= 0 {
			invalid = append(invalid, fmt.Sprint(id))
			continue
		}
		ids = append(ids, id)
	}
	if len(invalid) > 0 {
		sort.Strings(invalid)
		return nil, nil, newValidationError("items", "invalid quantity for product(s): %s", strings.Join(invalid, ", "))
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return quantities, ids, nil
}

func orderResponse(order *model.Order, items []*model.OrderItem) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:             order.ID,
		Reference:      order.Reference,
		Name:           order.Name,
		Phone:          order.Phone,
		Address:        order.Address,
		Notes:          order.Notes,
		PaymentMethod:  order.PaymentMethod,
		DeliveryMethod: order.DeliveryMethod,
		Total:          order.Total,
		DiscountTotal:  order.DiscountTotal,
		CouponCode:     order.CouponCode,
		ShippingCost:   order.ShippingCost,
		CreatedAt:      order.CreatedAt,
		Items:          make([]dto.OrderItemResponse, 0, len(items)),
	}
	for _, item := range items {
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	return resp
}
