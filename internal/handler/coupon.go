package handler

import (
	"net/http"
	"supermercado-api/internal/dto"
	"supermercado-api/internal/service"

	"github.com/labstack/echo/v4"
)

type CouponHandler struct {
	couponService service.CouponService
}

func NewCouponHandler(couponService service.CouponService) *CouponHandler {
	return &CouponHandler{couponService: couponService}
}

func (h *CouponHandler) Validate(c echo.Context) error {
	var req dto.ValidateCouponRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	resp, err := h.couponService.Validate(c.Request().Context(), req.Code)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, resp)
}
