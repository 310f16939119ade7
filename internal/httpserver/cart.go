package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/condratcatalina/Afaceri-electronice/internal/events"
	"github.com/condratcatalina/Afaceri-electronice/internal/logging"
	"github.com/condratcatalina/Afaceri-electronice/internal/service"
	"github.com/condratcatalina/Afaceri-electronice/internal/transport"
)

type CartHTTP struct {
	Svc      *service.CartService
	Producer *events.Producer
}

func (h *CartHTTP) publish(c echo.Context, event map[string]any) {
	ctx, cancel := publishTimeout(c)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, events.TopicCartEvents, fmt.Sprint(event["user_id"]), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("event publish failed", "topic", events.TopicCartEvents, "error", err)
	}
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	uid, err := userID(c)
	if err != nil {
		l.Error("get_cart_error", "status", 401, "error", err)
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	items, err := h.Svc.GetCart(ctx, uid)
	if err != nil {
		l.Error("get_cart_error", "status", 500, "error", err)
		return fail(c, http.StatusInternalServerError, "error fetching cart")
	}

	return ok(c, http.StatusOK, "Cart retrieved successfully", items)
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	uid, err := userID(c)
	if err != nil {
		l.Error("add_to_cart_error", "status", 401, "error", err)
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	var req transport.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "error", err)
		return fail(c, http.StatusBadRequest, "invalid body")
	}

	item, err := h.Svc.AddToCart(ctx, uid, req.ProductID, req.Quantity)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("add_to_cart_error", "status", 400, "error", err)
			return fail(c, http.StatusBadRequest, "Product id is not valid")
		}
		l.Error("add_to_cart_error", "status", 500, "error", err)
		return fail(c, http.StatusInternalServerError, "error adding product to cart")
	}

	h.publish(c, map[string]any{
		"type":       "cart_item_added",
		"user_id":    uid,
		"product_id": item.ProductID,
		"quantity":   item.Quantity,
	})

	l.Info("cart_item_added", "product_id", item.ProductID, "quantity", item.Quantity)
	return ok(c, http.StatusCreated, "Product added to cart successfully", item)
}

func (h *CartHTTP) UpdateCartItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update")

	uid, err := userID(c)
	if err != nil {
		l.Error("update_cart_error", "status", 401, "error", err)
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		l.Warn("update_cart_error", "status", 400, "reason", "id is not valid")
		return fail(c, http.StatusBadRequest, "Cart item id is not valid")
	}

	var req transport.UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_cart_error", "status", 400, "error", err)
		return fail(c, http.StatusBadRequest, "invalid body")
	}

	item, err := h.Svc.UpdateQuantity(ctx, uid, uint(id), req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			l.Warn("update_cart_error", "status", 404, "error", err)
			return fail(c, http.StatusNotFound, "Cart item not found")
		case errors.Is(err, service.ErrValidation):
			l.Warn("update_cart_error", "status", 400, "error", err)
			return fail(c, http.StatusBadRequest, "Cart item id is not valid")
		default:
			l.Error("update_cart_error", "status", 500, "error", err)
			return fail(c, http.StatusInternalServerError, "error updating cart item")
		}
	}

	h.publish(c, map[string]any{
		"type":     "cart_item_updated",
		"user_id":  uid,
		"item_id":  item.ID,
		"quantity": item.Quantity,
	})

	return ok(c, http.StatusOK, "Cart item updated successfully", item)
}

func (h *CartHTTP) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.clear")

	uid, err := userID(c)
	if err != nil {
		l.Error("clear_cart_error", "status", 401, "error", err)
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	if err := h.Svc.ClearCart(ctx, uid); err != nil {
		l.Error("clear_cart_error", "status", 500, "error", err)
		return fail(c, http.StatusInternalServerError, "error clearing cart")
	}

	h.publish(c, map[string]any{
		"type":    "cart_cleared",
		"user_id": uid,
	})

	l.Info("cart_cleared")
	return ok(c, http.StatusOK, "Cart cleared successfully", nil)
}
