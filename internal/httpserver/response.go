package httpserver

import (
	"context"
	"errors"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/condratcatalina/Afaceri-electronice/internal/transport"
)

const publishDeadline = 5 * time.Second

func ok(c echo.Context, code int, message string, data any) error {
	return c.JSON(code, transport.Response{Success: true, Message: message, Data: data})
}

func fail(c echo.Context, code int, message string) error {
	return c.JSON(code, transport.Response{Success: false, Message: message})
}

// userID reads the identity the auth middleware stored on the context.
func userID(c echo.Context) (uint, error) {
	v := c.Get("user_id")
	id, okID := v.(uint)
	if !okID || id == 0 {
		return 0, errors.New("unauthorized")
	}
	return id, nil
}

func publishTimeout(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), publishDeadline)
}
