package handler

import (
	"net/http"
	"supermercado-api/internal/dto"
	"supermercado-api/internal/service"

	"github.com/labstack/echo/v4"
)

type ConfigHandler struct {
	siteConfigService service.SiteConfigService
}

func NewConfigHandler(siteConfigService service.SiteConfigService) *ConfigHandler {
	return &ConfigHandler{siteConfigService: siteConfigService}
}

func (h *ConfigHandler) Get(c echo.Context) error {
	cfg, err := h.siteConfigService.Get(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, cfg)
}

func (h *ConfigHandler) Update(c echo.Context) error {
	var req dto.UpdateSiteConfigRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	cfg, err := h.siteConfigService.Update(c.Request().Context(), &req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, cfg)
}
