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

type FavoritesHTTP struct {
	Svc      *service.FavoritesService
	Producer *events.Producer
}

func (h *FavoritesHTTP) publish(c echo.Context, event map[string]any) {
	ctx, cancel := publishTimeout(c)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, events.TopicFavoriteEvents, fmt.Sprint(event["user_id"]), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("event publish failed", "topic", events.TopicFavoriteEvents, "error", err)
	}
}

func (h *FavoritesHTTP) GetFavorites(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "favorites.get")

	uid, err := userID(c)
	if err != nil {
		l.Error("get_favorites_error", "status", 401, "error", err)
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	items, err := h.Svc.GetFavorites(ctx, uid)
	if err != nil {
		l.Error("get_favorites_error", "status", 500, "error", err)
		return fail(c, http.StatusInternalServerError, "error fetching favorites")
	}

	return ok(c, http.StatusOK, "", items)
}

func (h *FavoritesHTTP) AddFavorite(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "favorites.add")

	uid, err := userID(c)
	if err != nil {
		l.Error("add_favorite_error", "status", 401, "error", err)
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	var req transport.AddFavoriteRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_favorite_error", "status", 400, "error", err)
		return fail(c, http.StatusBadRequest, "invalid body")
	}

	item, err := h.Svc.AddFavorite(ctx, uid, req.ProductID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("add_favorite_error", "status", 400, "error", err)
			return fail(c, http.StatusBadRequest, "Product ID required")
		case errors.Is(err, service.ErrConflict):
			l.Warn("add_favorite_error", "status", 400, "error", err)
			return fail(c, http.StatusBadRequest, "Product already in favorites")
		default:
			l.Error("add_favorite_error", "status", 500, "error", err)
			return fail(c, http.StatusInternalServerError, "error adding favorite")
		}
	}

	h.publish(c, map[string]any{
		"type":       "favorite_added",
		"user_id":    uid,
		"product_id": item.ProductID,
	})

	l.Info("favorite_added", "product_id", item.ProductID)
	return ok(c, http.StatusCreated, "", item)
}

func (h *FavoritesHTTP) RemoveFavorite(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "favorites.remove")

	uid, err := userID(c)
	if err != nil {
		l.Error("remove_favorite_error", "status", 401, "error", err)
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		l.Warn("remove_favorite_error", "status", 400, "reason", "id is not valid")
		return fail(c, http.StatusBadRequest, "Favorite id is not valid")
	}

	if err := h.Svc.RemoveFavorite(ctx, uid, uint(id)); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("remove_favorite_error", "status", 404, "error", err)
			return fail(c, http.StatusNotFound, "Not found")
		}
		l.Error("remove_favorite_error", "status", 500, "error", err)
		return fail(c, http.StatusInternalServerError, "error removing favorite")
	}

	h.publish(c, map[string]any{
		"type":    "favorite_removed",
		"user_id": uid,
		"item_id": id,
	})

	return ok(c, http.StatusOK, "Removed from favorites", nil)
}
