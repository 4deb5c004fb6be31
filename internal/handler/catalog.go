package handler

import (
	"errors"
	"net/http"
	"strconv"
	"supermercado-api/internal/repository"
	"supermercado-api/internal/service"

	"github.com/labstack/echo/v4"
)

type CatalogHandler struct {
	catalogService service.CatalogService
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func idParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

func (h *CatalogHandler) ListCategories(c echo.Context) error {
	categories, err := h.catalogService.ListCategories(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, categories)
}

func (h *CatalogHandler) GetCategory(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	category, err := h.catalogService.GetCategory(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, category)
}

func (h *CatalogHandler) ListProducts(c echo.Context) error {
	filter := repository.ProductFilter{
		Search: c.QueryParam("search"),
	}
	if v := c.QueryParam("category"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid category")
		}
		filter.CategoryID = uint(id)
	}
	if v := c.QueryParam("promoted"); v != "" {
		promoted := v == "true" || v == "1"
		filter.Promoted = &promoted
	}
	filter.Page, _ = strconv.Atoi(c.QueryParam("page"))
	filter.PageSize, _ = strconv.Atoi(c.QueryParam("page_size"))

	page, err := h.catalogService.ListProducts(c.Request().Context(), filter)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

func (h *CatalogHandler) GetProduct(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	product, err := h.catalogService.GetProduct(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHandler) ListAnnouncements(c echo.Context) error {
	announcements, err := h.catalogService.ListAnnouncements(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, announcements)
}

func (h *CatalogHandler) DeleteProduct(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	err = h.catalogService.DeleteProduct(c.Request().Context(), id)
	if errors.Is(err, repository.ErrProductReferenced) {
		return c.JSON(http.StatusConflict, map[string]string{
			"detail": "product is referenced by existing orders",
		})
	}
	if err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
