package handler

import (
	"net/http"
	"supermercado-api/internal/service"

	"github.com/labstack/echo/v4"
)

type StatsHandler struct {
	statsService service.StatsService
}

func NewStatsHandler(statsService service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

func (h *StatsHandler) Sales(c echo.Context) error {
	resp, err := h.statsService.SalesStats(
		c.Request().Context(),
		c.QueryParam("start"),
		c.QueryParam("end"),
	)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, resp)
}
