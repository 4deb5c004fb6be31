package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"supermercado-api/internal/dto"
	"supermercado-api/internal/repository"

	"gorm.io/gorm"
)

type CouponService interface {
	// Validate runs the advisory coupon check used before checkout. An
	// unknown or exhausted code is a valid=false response, not an error.
	Validate(ctx context.Context, code string) (*dto.ValidateCouponResponse, error)
}

type couponServiceImpl struct {
	couponRepo repository.CouponRepository
}

func NewCouponService(couponRepo repository.CouponRepository) CouponService {
	return &couponServiceImpl{couponRepo: couponRepo}
}

func (s *couponServiceImpl) Validate(ctx context.Context, code string) (*dto.ValidateCouponResponse, error) {
	code = strings.TrimSpace(code)
	if len(code) > maxCouponCodeLen {
		code = code[:maxCouponCodeLen]
	}
	if code == "" {
		return nil, newValidationError("code", "code is required")
	}

	coupon, err := s.couponRepo.FindValid(ctx, nil, code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &dto.ValidateCouponResponse{Valid: false}, nil
	}
	if err != nil {
		return nil, classifyStoreError(fmt.Errorf("find coupon: %w", err))
	}

	return &dto.ValidateCouponResponse{
		Valid:       true,
		Type:        coupon.Type,
		Amount:      coupon.Amount,
		Percent:     coupon.Percent,
		PercentCap:  coupon.PercentCap,
		MinSubtotal: coupon.MinSubtotal,
	}, nil
}
