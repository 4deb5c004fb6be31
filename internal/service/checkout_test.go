package service_test

import (
	"context"
	"supermercado-api/internal/dto"
	"supermercado-api/internal/model"
	"supermercado-api/internal/service"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkoutRequest(items ...dto.CheckoutItem) *dto.CheckoutRequest {
	return &dto.CheckoutRequest{
		Name:           "Ana García",
		Phone:          "5493511234567",
		Address:        "Av. Colón 1234",
		PaymentMethod:  model.PaymentCash,
		DeliveryMethod: model.DeliveryPickup,
		Items:          items,
	}
}

func (f *fixture) seedCoupon(t *testing.T, coupon *model.Coupon) *model.Coupon {
	t.Helper()
	require.NoError(t, f.db.Create(coupon).Error)
	return coupon
}

func (f *fixture) productStock(t *testing.T, id uint) int {
	t.Helper()
	var product model.Product
	require.NoError(t, f.db.First(&product, id).Error)
	return product.Stock
}

func (f *fixture) countRows(t *testing.T, value interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(value).Count(&n).Error)
	return n
}

func TestPlaceOrderPickupNoCoupon(t *testing.T) {
	f := newFixture(t)
	cat := f.seedCategory(t, "Almacén", "almacen")
	product := f.seedProduct(t, cat.ID, "Yerba", "10.00", 10)
	f.seedShippingCost(t, "3.50")

	resp, err := f.checkout.PlaceOrder(context.Background(), checkoutRequest(
		dto.CheckoutItem{ProductID: product.ID, Quantity: 3},
	))
	require.NoError(t, err)

	requireDecimalEqual(t, "0", resp.ShippingCost)
	requireDecimalEqual(t, "0", resp.DiscountTotal)
	requireDecimalEqual(t, "30.00", resp.Total)
	assert.Empty(t, resp.CouponCode)
	assert.NotEmpty(t, resp.Reference)
	require.Len(t, resp.Items, 1)
	requireDecimalEqual(t, "10.00", resp.Items[0].Price)

	assert.Equal(t, 7, f.productStock(t, product.ID))
}

func TestPlaceOrderDeliveryChargesConfiguredShipping(t *testing.T) {
	f := newFixture(t)
	cat := f.seedCategory(t, "Almacén", "almacen")
	product := f.seedProduct(t, cat.ID, "Yerba", "10.00", 10)
	f.seedShippingCost(t, "3.50")

	req := checkoutRequest(dto.CheckoutItem{ProductID: product.ID, Quantity: 2})
	req.DeliveryMethod = model.DeliveryHome

	resp, err := f.checkout.PlaceOrder(context.Background(), req)
	require.NoError(t, err)

	requireDecimalEqual(t, "3.50", resp.ShippingCost)
	requireDecimalEqual(t, "23.50", resp.Total)
}

func TestPlaceOrderUsesOfferPriceSnapshot(t *testing.T) {
	f := newFixture(t)
	cat := f.seedCategory(t, "Almacén", "almacen")
	product := f.seedProduct(t, cat.ID, "Aceite", "12.00", 5)
	offer := mustDecimal(t, "9.50")
	require.NoError(t, f.db.Model(product).Update("offer_price", offer).Error)

	resp, err := f.checkout.PlaceOrder(context.Background(), checkoutRequest(
		dto.CheckoutItem{ProductID: product.ID, Quantity: 2},
	))
	require.NoError(t, err)

	requireDecimalEqual(t, "9.50", resp.Items[0].Price)
	requireDecimalEqual(t, "19.00", resp.Total)
}

func TestPlaceOrderPriceSnapshotSurvivesPriceChange(t *testing.T) {
	f := newFixture(t)
	cat := f.seedCategory(t, "Almacén", "almacen")
	product := f.seedProduct(t, cat.ID, "Harina", "4.00", 10)

	resp, err := f.checkout.PlaceOrder(context.Background(), checkoutRequest(
		dto.CheckoutItem{ProductID: product.ID, Quantity: 2},
	))
	require.NoError(t, err)

	require.NoError(t, f.db.Model(product).Update("price", mustDecimal(t, "99.00")).Error)

	var item model.OrderItem
	require.NoError(t, f.db.Where("order_id = ?", resp.ID).First(&item).Error)
	requireDecimalEqual(t, "4.00", item.Price)

	var order model.Order
	require.NoError(t, f.db.First(&order, resp.ID).Error)
	requireDecimalEqual(t, "8.00", order.Total)
}

func TestPlaceOrderConsolidatesDuplicateLines(t *testing.T) {
	f := newFixture(t)
	cat := f.seedCategory(t, "Almacén", "almacen")
	product := f.seedProduct(t, cat.ID, "Arroz", "5.00", 10)

	resp, err := f.checkout.PlaceOrder(context.Background(), checkoutRequest(
		dto.CheckoutItem{ProductID: product.ID, Quantity: 2},
		dto.CheckoutItem{ProductID: product.ID, Quantity: 3},
	))
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.Equal(t, 5, resp.Items[0].Quantity)
	requireDecimalEqual(t, "25.00", resp.Total)
	assert.Equal(t, 5, f.productStock(t, product.ID))
}

func TestPlaceOrderRejectsNonPositiveConsolidatedQuantity(t *testing.T) {
	f := newFixture(t)
	cat := f.seedCategory(t, "Almacén", "almacen")
	product := f.seedProduct(t, cat.ID, "Arroz", "5.00", 10)

	_, err := f.checkout.PlaceOrder(context.Background(), checkoutRequest(
		dto.CheckoutItem{ProductID: product.ID, Quantity: 2},
		dto.CheckoutItem{ProductID: product.ID, Quantity: -2},
	))

	var ve *service.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "items", ve.Field)
	assert.Equal(t, 10, f.productStock(t, product.ID))
}

func TestPlaceOrderInsufficientStockLeavesNothingBehind(t *testing.T) {
	f := newFixture(t)
	cat := f.seedCategory(t, "Almacén", "almacen")
	product := f.seedProduct(t, cat.ID, "Azúcar", "3.00", 10)

	_, err := f.checkout.PlaceOrder(context.Background(), checkoutRequest(
		dto.CheckoutItem{ProductID: product.ID, Quantity: 11},
	))

	var ve *service.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "items", ve.Field)
	assert.Contains(t, ve.Message, "Azúcar")

	assert.Equal(t, 10, f.productStock(t, product.ID))
	assert.Zero(t, f.countRows(t, &model.Order{}))
	assert.Zero(t, f.countRows(t, &model.OrderItem{}))
}

func TestPlaceOrderFailingLineRollsBackWholeCart(t *testing.T) {
	f := newFixture(t)
	cat := f.seedCategory(t, "Almacén", "almacen")
	ok := f.seedProduct(t, cat.ID, "Fideos", "2.00", 10)
	scarce := f.seedProduct(t, cat.ID, "Café", "8.00", 1)

	_, err := f.checkout.PlaceOrder(context.Background(), checkoutRequest(
		dto.CheckoutItem{ProductID: ok.ID, Quantity: 2},
		dto.CheckoutItem{ProductID: scarce.ID, Quantity: 5},
	))

	var ve *service.ValidationError
	require.ErrorAs(t, err, &ve)

	assert.Equal(t, 10, f.productStock(t, ok.ID))
	assert.Equal(t, 1, f.productStock(t, scarce.ID))
	assert.Zero(t, f.countRows(t, &model.Order{}))
	assert.Zero(t, f.countRows(t, &model.OrderItem{}))
}

func TestPlaceOrderRejectsUnknownOrInactiveProducts(t *testing.T) {
	f := newFixture(t)
	cat := f.seedCategory(t, "Almacén", "almacen")
	inactive := f.seedProduct(t, cat.ID, "Descatalogado", "5.00", 10)
	require.NoError(t, f.db.Model(inactive).Update("is_active", false).Error)

	_, err := f.checkout.PlaceOrder(context.Background(), checkoutRequest(
		dto.CheckoutItem{ProductID: inactive.ID, Quantity: 1},
		dto.CheckoutItem{ProductID: 9999, Quantity: 1},
	))

	var ve *service.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "items", ve.Field)
	assert.Contains(t, ve.Message, "9999")
	assert.Zero(t, f.countRows(t, &model.Order{}))
}

func TestPlaceOrderAppliesFixedCoupon(t *testing.T) {
	f := newFixture(t)
	cat := f.seedCategory(t, "Almacén", "almacen")
	product := f.seedProduct(t, cat.ID, "Yerba", "10.00", 10)
	coupon := f.seedCoupon(t, &model.Coupon{
		Code:        "AHORRO5",
		Type:        model.CouponFixed,
		Amount:      mustDecimal(t, "5.00"),
		MinSubtotal: mustDecimal(t, "20.00"),
		Active:      true,
	})

	req := checkoutRequest(dto.CheckoutItem{ProductID: product.ID, Quantity: 3})
	req.CouponCode = "ahorro5" // case-insensitive

	resp, err := f.checkout.PlaceOrder(context.Background(), req)
	require.NoError(t, err)

	requireDecimalEqual(t, "5.00", resp.DiscountTotal)
	requireDecimalEqual(t, "25.00", resp.Total)
	assert.Equal(t, "AHORRO5", resp.CouponCode)

	var reloaded model.Coupon
	require.NoError(t, f.db.First(&reloaded, coupon.ID).Error)
	assert.Equal(t, 1, reloaded.UsedCount)
}

func TestPlaceOrderFixedCouponCappedAtSubtotal(t *testing.T) {
	f := newFixture(t)
	cat := f.seedCategory(t, "Almacén", "almacen")
	product := f.seedProduct(t, cat.ID, "Sal", "1.00", 10)
	f.seedCoupon(t, &model.Coupon{
		Code:   "GRANDE",
		Type:   model.CouponFixed,
		Amount: mustDecimal(t, "50.00"),
		Active: true,
	})

	req := checkoutRequest(dto.CheckoutItem{ProductID: product.ID, Quantity: 2})
	req.CouponCode = "GRANDE"

	resp, err := f.checkout.PlaceOrder(context.Background(), req)
	require.NoError(t, err)

	requireDecimalEqual(t, "2.00", resp.DiscountTotal)
	requireDecimalEqual(t, "0.00", resp.Total)
}

func TestPlaceOrderAppliesPercentCouponWithCap(t *testing.T) {
	f := newFixture(t)
	cat := f.seedCategory(t, "Almacén", "almacen")
	product := f.seedProduct(t, cat.ID, "Vino", "100.00", 10)
	f.seedCoupon(t, &model.Coupon{
		Code:       "DESC20",
		Type:       model.CouponPercent,
		Percent:    mustDecimal(t, "20"),
		PercentCap: mustDecimal(t, "15.00"),
		Active:     true,
	})

	req := checkoutRequest(dto.CheckoutItem{ProductID: product.ID, Quantity: 1})
	req.CouponCode = "DESC20"

	resp, err := f.checkout.PlaceOrder(context.Background(), req)
	require.NoError(t, err)

	// 20% of 100 is 20, capped at 15
	requireDecimalEqual(t, "15.00", resp.DiscountTotal)
	requireDecimalEqual(t, "85.00", resp.Total)
}

func TestPlaceOrderFreeShippingCouponZeroesShippingOnly(t *testing.T) {
	f := newFixture(t)
	cat := f.seedCategory(t, "Almacén", "almacen")
	product := f.seedProduct(t, cat.ID, "Leche", "6.00", 10)
	f.seedShippingCost(t, "4.00")
	f.seedCoupon(t, &model.Coupon{
		Code:   "ENVIOGRATIS",
		Type:   model.CouponFreeShipping,
		Active: true,
	})

	req := checkoutRequest(dto.CheckoutItem{ProductID: product.ID, Quantity: 2})
	req.DeliveryMethod = model.DeliveryHome
	req.CouponCode = "ENVIOGRATIS"

	resp, err := f.checkout.PlaceOrder(context.Background(), req)
	require.NoError(t, err)

	requireDecimalEqual(t, "0", resp.ShippingCost)
	requireDecimalEqual(t, "0", resp.DiscountTotal)
	requireDecimalEqual(t, "12.00", resp.Total)
	assert.Equal(t, "ENVIOGRATIS", resp.CouponCode)
}

func TestPlaceOrderCouponBelowMinSubtotalIsIgnored(t *testing.T) {
	f := newFixture(t)
	cat := f.seedCategory(t, "Almacén", "almacen")
	product := f.seedProduct(t, cat.ID, "Pan", "5.00", 10)
	coupon := f.seedCoupon(t, &model.Coupon{
		Code:        "MINIMO50",
		Type:        model.CouponFixed,
		Amount:      mustDecimal(t, "10.00"),
		MinSubtotal: mustDecimal(t, "50.00"),
		Active:      true,
	})

	req := checkoutRequest(dto.CheckoutItem{ProductID: product.ID, Quantity: 2})
	req.CouponCode = "MINIMO50"

	resp, err := f.checkout.PlaceOrder(context.Background(), req)
	require.NoError(t, err)

	requireDecimalEqual(t, "0", resp.DiscountTotal)
	requireDecimalEqual(t, "10.00", resp.Total)
	assert.Empty(t, resp.CouponCode)

	var reloaded model.Coupon
	require.NoError(t, f.db.First(&reloaded, coupon.ID).Error)
	assert.Zero(t, reloaded.UsedCount)
}

func TestPlaceOrderExhaustedCouponOrderStillSucceeds(t *testing.T) {
	f := newFixture(t)
	cat := f.seedCategory(t, "Almacén", "almacen")
	product := f.seedProduct(t, cat.ID, "Queso", "10.00", 10)
	limit := 1
	coupon := f.seedCoupon(t, &model.Coupon{
		Code:       "UNICO",
		Type:       model.CouponFixed,
		Amount:     mustDecimal(t, "5.00"),
		Active:     true,
		UsageLimit: &limit,
		UsedCount:  1,
	})

	req := checkoutRequest(dto.CheckoutItem{ProductID: product.ID, Quantity: 3})
	req.CouponCode = "UNICO"

	resp, err := f.checkout.PlaceOrder(context.Background(), req)
	require.NoError(t, err)

	requireDecimalEqual(t, "0", resp.DiscountTotal)
	requireDecimalEqual(t, "30.00", resp.Total)
	assert.Empty(t, resp.CouponCode)

	var reloaded model.Coupon
	require.NoError(t, f.db.First(&reloaded, coupon.ID).Error)
	assert.Equal(t, 1, reloaded.UsedCount)
}

func TestPlaceOrderCouponUsageNeverExceedsLimit(t *testing.T) {
	f := newFixture(t)
	cat := f.seedCategory(t, "Almacén", "almacen")
	product := f.seedProduct(t, cat.ID, "Té", "10.00", 100)
	limit := 2
	coupon := f.seedCoupon(t, &model.Coupon{
		Code:       "DOSUSOS",
		Type:       model.CouponFixed,
		Amount:     mustDecimal(t, "1.00"),
		Active:     true,
		UsageLimit: &limit,
	})

	applied := 0
	for i := 0; i < 5; i++ {
		req := checkoutRequest(dto.CheckoutItem{ProductID: product.ID, Quantity: 1})
		req.CouponCode = "DOSUSOS"

		resp, err := f.checkout.PlaceOrder(context.Background(), req)
		require.NoError(t, err)
		if resp.CouponCode != "" {
			applied++
		}
	}

	assert.Equal(t, 2, applied)

	var reloaded model.Coupon
	require.NoError(t, f.db.First(&reloaded, coupon.ID).Error)
	assert.Equal(t, 2, reloaded.UsedCount)

	var carrying int64
	require.NoError(t, f.db.Model(&model.Order{}).
		Where("coupon_code = ?", "DOSUSOS").Count(&carrying).Error)
	assert.EqualValues(t, 2, carrying)
}

func TestPlaceOrderExpiredCouponIsIgnored(t *testing.T) {
	f := newFixture(t)
	cat := f.seedCategory(t, "Almacén", "almacen")
	product := f.seedProduct(t, cat.ID, "Miel", "10.00", 10)
	expired := time.Now().Add(-time.Hour)
	f.seedCoupon(t, &model.Coupon{
		Code:      "VENCIDO",
		Type:      model.CouponFixed,
		Amount:    mustDecimal(t, "5.00"),
		Active:    true,
		ExpiresAt: &expired,
	})

	req := checkoutRequest(dto.CheckoutItem{ProductID: product.ID, Quantity: 1})
	req.CouponCode = "VENCIDO"

	resp, err := f.checkout.PlaceOrder(context.Background(), req)
	require.NoError(t, err)

	requireDecimalEqual(t, "0", resp.DiscountTotal)
	assert.Empty(t, resp.CouponCode)
}
