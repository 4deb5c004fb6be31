package handler

import (
	"net/http"
	"supermercado-api/internal/dto"
	"supermercado-api/internal/service"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	checkoutService service.CheckoutService
	couponService   service.CouponService
}

func NewOrderHandler(checkoutService service.CheckoutService, couponService service.CouponService) *OrderHandler {
	return &OrderHandler{
		checkoutService: checkoutService,
		couponService:   couponService,
	}
}

func (h *OrderHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// advisory pre-check for early feedback; the engine re-checks inside the
	// transaction and tolerates the race by dropping the discount
	if req.CouponCode != "" {
		check, err := h.couponService.Validate(ctx, req.CouponCode)
		if err != nil {
			return writeError(c, err)
		}
		if !check.Valid {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"coupon_code": "invalid coupon",
			})
		}
	}

	order, err := h.checkoutService.PlaceOrder(ctx, &req)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) Get(c echo.Context) error {
	order, err := h.checkoutService.GetOrder(c.Request().Context(), c.Param("reference"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, order)
}
