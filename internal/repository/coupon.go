package repository

import (
	"context"
	"supermercado-api/internal/model"
	"time"

	"gorm.io/gorm"
)

type CouponRepository interface {
	// FindValid returns the coupon matching code (case-insensitive) that is
	// active, not expired and under its usage limit, or ErrRecordNotFound.
	FindValid(ctx context.Context, tx *gorm.DB, code string) (*model.Coupon, error)
	// ConsumeUse increments used_count if the limit has not been reached.
	// The returned bool reports whether the use was actually granted; false
	// means a concurrent checkout took the last remaining use.
	ConsumeUse(ctx context.Context, tx *gorm.DB, coupon *model.Coupon) (bool, error)
}

type couponRepoImpl struct {
	db *gorm.DB
}

func NewCouponRepository(db *gorm.DB) CouponRepository {
	return &couponRepoImpl{db: db}
}

func (r *couponRepoImpl) FindValid(ctx context.Context, tx *gorm.DB, code string) (*model.Coupon, error) {
	if tx == nil {
		tx = r.db
	}

	var coupon model.Coupon
	err := tx.WithContext(ctx).
		Where("LOWER(code) = LOWER(?)", code).
		Where("active = ?", true).
		Where("expires_at IS NULL OR expires_at > ?", time.Now()).
		Where("usage_limit IS NULL OR used_count < usage_limit").
		First(&coupon).Error

	if err != nil {
		return nil, err
	}

	return &coupon, nil
}

func (r *couponRepoImpl) ConsumeUse(ctx context.Context, tx *gorm.DB, coupon *model.Coupon) (bool, error) {
	q := tx.WithContext(ctx).Model(&model.Coupon{}).
		Where("id = ?", coupon.ID)
	if coupon.UsageLimit != nil {
		q = q.Where("used_count < usage_limit")
	}

	res := q.Update("used_count", gorm.Expr("used_count + 1"))
	if res.Error != nil {
		return false, res.Error
	}

	return res.RowsAffected == 1, nil
}
