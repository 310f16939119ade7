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
	"github.com/condratcatalina/Afaceri-electronice/internal/tokens"
	"github.com/condratcatalina/Afaceri-electronice/internal/transport"
)

type AuthHTTP struct {
	Svc      *service.AuthService
	Producer *events.Producer
}

func (h *AuthHTTP) publish(c echo.Context, event map[string]any) {
	ctx, cancel := publishTimeout(c)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, events.TopicUserEvents, fmt.Sprint(event["user_id"]), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("event publish failed", "topic", events.TopicUserEvents, "error", err)
	}
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return fail(c, http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.Register(ctx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("register_error", "status", 400, "error", err)
			return fail(c, http.StatusBadRequest, "username and password required")
		case errors.Is(err, service.ErrConflict):
			l.Warn("register_error", "status", 409, "error", err)
			return fail(c, http.StatusConflict, "user already exists")
		default:
			l.Error("register_error", "status", 500, "error", err)
			return fail(c, http.StatusInternalServerError, "cannot register user")
		}
	}

	h.publish(c, map[string]any{
		"type":    "user_registered",
		"user_id": user.ID,
	})

	l.Info("user_registered", "user_id", user.ID)
	return ok(c, http.StatusCreated, "User registered successfully", user)
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return fail(c, http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Login(ctx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("login_error", "status", 400, "error", err)
			return fail(c, http.StatusBadRequest, "username and password required")
		case errors.Is(err, service.ErrUnauthorized):
			l.Warn("login_error", "status", 401)
			return fail(c, http.StatusUnauthorized, "invalid username or password")
		default:
			l.Error("login_error", "status", 500, "error", err)
			return fail(c, http.StatusInternalServerError, "cannot log in")
		}
	}

	c.SetCookie(tokens.CreateCookie("accessToken", res.AccessToken, "/", res.AccessExp))
	c.SetCookie(tokens.CreateCookie("refreshToken", res.RefreshToken, "/", res.RefreshExp))

	h.publish(c, map[string]any{
		"type":    "user_logged_in",
		"user_id": res.User.ID,
	})

	l.Info("user_logged_in", "user_id", res.User.ID)
	return ok(c, http.StatusOK, "Logged in successfully", map[string]any{
		"access_token":  res.AccessToken,
		"refresh_token": res.RefreshToken,
		"user":          res.User,
	})
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.logout")

	var refreshToken string
	if ck, err := c.Cookie("refreshToken"); err == nil {
		refreshToken = ck.Value
	}

	if err := h.Svc.Logout(ctx, refreshToken); err != nil {
		l.Error("logout_error", "status", 500, "error", err)
		return fail(c, http.StatusInternalServerError, "cannot log out")
	}

	c.SetCookie(tokens.DeleteCookie("accessToken", "/"))
	c.SetCookie(tokens.DeleteCookie("refreshToken", "/"))

	return ok(c, http.StatusOK, "Logged out successfully", nil)
}

// DeleteUser is the admin-side user removal; dependent cart/favorite rows
// go with the user.
func (h *AuthHTTP) DeleteUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.delete_user")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		l.Warn("delete_user_error", "status", 400, "reason", "id is not an integer")
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	if err := h.Svc.DeleteUser(ctx, uint(id)); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("delete_user_error", "status", 404, "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		l.Error("delete_user_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete user")
	}

	h.publish(c, map[string]any{
		"type":    "user_deleted",
		"user_id": id,
	})

	l.Info("user_deleted", "user_id", id)
	return c.NoContent(http.StatusNoContent)
}
