package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CheckoutItem struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required"`
}

type CheckoutRequest struct {
	Name           string         `json:"name" validate:"required,max=140"`
	Phone          string         `json:"phone" validate:"required,max=30"`
	Address        string         `json:"address" validate:"max=240"`
	Notes          string         `json:"notes"`
	PaymentMethod  string         `json:"payment_method" validate:"required,oneof=cash transfer"`
	DeliveryMethod string         `json:"delivery_method" validate:"omitempty,oneof=delivery pickup"`
	CouponCode     string         `json:"coupon_code"`
	Items          []CheckoutItem `json:"items" validate:"required,min=1,dive"`
}

type OrderItemResponse struct {
	ProductID uint            `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type OrderResponse struct {
	ID             uint                `json:"id"`
	Reference      string              `json:"reference"`
	Name           string              `json:"name"`
	Phone          string              `json:"phone"`
	Address        string              `json:"address"`
	Notes          string              `json:"notes"`
	PaymentMethod  string              `json:"payment_method"`
	DeliveryMethod string              `json:"delivery_method"`
	Total          decimal.Decimal     `json:"total"`
	DiscountTotal  decimal.Decimal     `json:"discount_total"`
	CouponCode     string              `json:"coupon_code"`
	ShippingCost   decimal.Decimal     `json:"shipping_cost"`
	CreatedAt      time.Time           `json:"created_at"`
	Items          []OrderItemResponse `json:"items"`
}

type ValidateCouponRequest struct {
	Code string `json:"code"`
}

type ValidateCouponResponse struct {
	Valid       bool            `json:"valid"`
	Type        string          `json:"type,omitempty"`
	Amount      decimal.Decimal `json:"amount,omitempty"`
	Percent     decimal.Decimal `json:"percent,omitempty"`
	PercentCap  decimal.Decimal `json:"percent_cap,omitempty"`
	MinSubtotal decimal.Decimal `json:"min_subtotal,omitempty"`
}

type UpdateSiteConfigRequest struct {
	WhatsappPhone string          `json:"whatsapp_phone" validate:"max=20"`
	AliasOrCBU    string          `json:"alias_or_cbu" validate:"max=100"`
	ShippingCost  decimal.Decimal `json:"shipping_cost"`
}

type ProductSales struct {
	ProductID uint            `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Revenue   decimal.Decimal `json:"revenue"`
}

type CategorySales struct {
	CategoryID uint            `json:"category_id"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	Revenue    decimal.Decimal `json:"revenue"`
}

type DailySales struct {
	Day     string          `json:"day"`
	Orders  int             `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

type SalesStatsResponse struct {
	ByProduct  []ProductSales  `json:"by_product"`
	ByCategory []CategorySales `json:"by_category"`
	ByDay      []DailySales    `json:"by_day"`
}
