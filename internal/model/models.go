package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:120;not null" json:"name"`
	Slug string `gorm:"size:120;uniqueIndex;not null" json:"slug"`
}

type Product struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	CategoryID  uint             `gorm:"index;not null" json:"category_id"`
	Category    *Category        `json:"category,omitempty"`
	Name        string           `gorm:"size:200;not null" json:"name"`
	Description string           `gorm:"type:text" json:"description"`
	Price       decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"price"`
	// nil means no running offer; effective unit price = OfferPrice ?? Price
	OfferPrice    *decimal.Decimal `gorm:"type:decimal(10,2)" json:"offer_price"`
	Stock         int              `gorm:"not null;default:0" json:"stock"`
	IsActive      bool             `gorm:"index;not null;default:true" json:"is_active"`
	Promoted      bool             `gorm:"index;not null;default:false" json:"promoted"`
	PromotedUntil *time.Time       `gorm:"index" json:"promoted_until"`
	CreatedAt     time.Time        `gorm:"index" json:"created_at"`
}

// EffectivePrice is the unit price a checkout snapshots onto the order item.
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.OfferPrice != nil {
		return *p.OfferPrice
	}
	return p.Price
}

type SiteConfig struct {
	ID            uint            `gorm:"primaryKey" json:"-"`
	WhatsappPhone string          `gorm:"size:20" json:"whatsapp_phone"`
	AliasOrCBU    string          `gorm:"size:100" json:"alias_or_cbu"`
	ShippingCost  decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"shipping_cost"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type Announcement struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Title     string     `gorm:"size:140;not null" json:"title"`
	Message   string     `gorm:"type:text" json:"message"`
	Active    bool       `gorm:"index;not null;default:true" json:"active"`
	StartAt   *time.Time `gorm:"index" json:"start_at"`
	EndAt     *time.Time `gorm:"index" json:"end_at"`
	CreatedAt time.Time  `json:"created_at"`
}

const (
	PaymentCash     = "cash"
	PaymentTransfer = "transfer"

	DeliveryHome   = "delivery"
	DeliveryPickup = "pickup"
)

type Order struct {
	ID uint `gorm:"primaryKey" json:"id"`
	// public reference handed to the customer, never reused
	Reference      string          `gorm:"size:36;uniqueIndex;not null" json:"reference"`
	Name           string          `gorm:"size:140;not null" json:"name"`
	Phone          string          `gorm:"size:30;not null" json:"phone"`
	Address        string          `gorm:"size:240" json:"address"`
	Notes          string          `gorm:"type:text" json:"notes"`
	PaymentMethod  string          `gorm:"size:20;not null" json:"payment_method"`
	DeliveryMethod string          `gorm:"size:20;not null;default:delivery" json:"delivery_method"`
	Total          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"total"`
	DiscountTotal  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"discount_total"`
	CouponCode     string          `gorm:"size:40" json:"coupon_code"`
	ShippingCost   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"shipping_cost"`
	CreatedAt      time.Time       `gorm:"index" json:"created_at"`

	Items []OrderItem `json:"items,omitempty"`
}

type OrderItem struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	OrderID   uint `gorm:"index;not null" json:"order_id"`
	ProductID uint `gorm:"index;not null" json:"product_id"`
	Quantity  int  `gorm:"not null" json:"quantity"`
	// unit price at purchase time; later product price changes never touch this
	Price decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`

	CreatedAt time.Time `json:"created_at"`
}

const (
	CouponFixed        = "fixed"
	CouponPercent      = "percent"
	CouponFreeShipping = "free_shipping"
)

type Coupon struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Code        string          `gorm:"size:40;uniqueIndex;not null" json:"code"`
	Type        string          `gorm:"size:20;not null" json:"type"`
	Amount      decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"amount"`
	Percent     decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"percent"`
	PercentCap  decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"percent_cap"`
	MinSubtotal decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"min_subtotal"`
	Active      bool            `gorm:"index;not null;default:true" json:"active"`
	ExpiresAt   *time.Time      `json:"expires_at"`
	// nil means unlimited; used_count only moves up, via a conditional increment
	UsageLimit *int `json:"usage_limit"`
	UsedCount  int  `gorm:"not null;default:0" json:"used_count"`
}
