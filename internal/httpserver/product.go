package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/condratcatalina/Afaceri-electronice/internal/events"
	"github.com/condratcatalina/Afaceri-electronice/internal/logging"
	"github.com/condratcatalina/Afaceri-electronice/internal/service"
	"github.com/condratcatalina/Afaceri-electronice/internal/transport"
	"github.com/condratcatalina/Afaceri-electronice/internal/util"
)

type CatalogHTTP struct {
	Svc      *service.CatalogService
	Producer *events.Producer
}

func (h *CatalogHTTP) publish(c echo.Context, event map[string]any) {
	ctx, cancel := publishTimeout(c)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, events.TopicProductEvents, fmt.Sprint(event["product_id"]), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("event publish failed", "topic", events.TopicProductEvents, "error", err)
	}
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		l.Warn("get_product_error", "status", 400, "reason", "id is not an integer")
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	product, err := h.Svc.GetProduct(ctx, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("get_product_error", "status", 404, "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		l.Error("get_product_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get product")
	}

	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.list")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	category := c.QueryParam("category")
	sortPrice := c.QueryParam("sortPrice")

	total, items, err := h.Svc.GetProducts(ctx, category, sortPrice, offset, limit)
	if err != nil {
		l.Error("list_products_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get products")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": map[string]any{
			"page":        page,
			"size":        limit,
			"total":       total,
			"total_pages": (total + int64(limit) - 1) / int64(limit),
			"has_prev":    page > 1,
			"has_next":    int64(offset+limit) < total,
		},
	})
}

func (h *CatalogHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search")

	q := c.QueryParam("q")
	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, limit := util.Calculate(page, size)

	total, products, err := h.Svc.SearchProducts(ctx, q, from, limit)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("search_products_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "query required")
		}
		l.Error("search_products_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "search failed")
	}

	return c.JSON(http.StatusOK, echo.Map{"total": total, "products": products})
}

func (h *CatalogHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_product_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	prod, err := h.Svc.CreateProduct(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("create_product_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
		}
		l.Error("create_product_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot add product")
	}

	h.publish(c, map[string]any{
		"type":       "product_created",
		"product_id": prod.ID,
		"name":       prod.Name,
	})

	l.Info("product_created", "product_id", prod.ID)
	return c.JSON(http.StatusCreated, prod)
}

func (h *CatalogHTTP) PatchProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.patch")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		l.Warn("patch_product_error", "status", 400, "reason", "id is not an integer")
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	var req transport.PatchProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("patch_product_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	prod, err := h.Svc.PatchProduct(ctx, req, uint(id))
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			l.Warn("patch_product_error", "status", 404, "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		case errors.Is(err, service.ErrValidation):
			l.Warn("patch_product_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
		default:
			l.Error("patch_product_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot update product")
		}
	}

	h.publish(c, map[string]any{
		"type":       "product_updated",
		"product_id": prod.ID,
		"name":       prod.Name,
	})

	return c.JSON(http.StatusOK, prod)
}

func (h *CatalogHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		l.Warn("delete_product_error", "status", 400, "reason", "id is not an integer")
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	if err := h.Svc.DeleteProduct(ctx, uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("delete_product_error", "status", 404, "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		l.Error("delete_product_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete product")
	}

	h.publish(c, map[string]any{
		"type":       "product_deleted",
		"product_id": id,
	})

	l.Info("product_deleted", "product_id", id)
	return c.NoContent(http.StatusNoContent)
}
