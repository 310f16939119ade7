package authmw

import (
	"errors"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/condratcatalina/Afaceri-electronice/internal/service"
	"github.com/condratcatalina/Afaceri-electronice/internal/tokens"
)

// AuthMiddleware guards routes behind the accessToken cookie. An expired
// access token is refreshed in-flight through the auth service when a valid
// refresh cookie rides along, so the SPA never sees the expiry.
type AuthMiddleware struct {
	JWTSecret []byte
	Auth      *service.AuthService
}

func New(secret []byte, auth *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		JWTSecret: secret,
		Auth:      auth,
	}
}

type ValidatorFunc func(claims *tokens.AccessClaims) error

func (m *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireAuthWithValidator(next, nil)
}

func (m *AuthMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireAuthWithValidator(next, func(claims *tokens.AccessClaims) error {
		if claims.Role != "admin" {
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
		return nil
	})
}

func (m *AuthMiddleware) requireAuthWithValidator(next echo.HandlerFunc, validator ValidatorFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		accessCookie, err := c.Cookie("accessToken")
		if err != nil || accessCookie.Value == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
		}

		claims, err := tokens.AccessClaimsFromToken(accessCookie.Value, m.JWTSecret)
		if err == nil && claims != nil {
			if validator != nil {
				if validationErr := validator(claims); validationErr != nil {
					return validationErr
				}
			}
			return withUserContext(c, next, claims)
		}

		if !errors.Is(err, jwt.ErrTokenExpired) {
			clearAuthCookies(c)
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
		}

		refreshCookie, rErr := c.Cookie("refreshToken")
		if rErr != nil || refreshCookie.Value == "" {
			clearAuthCookies(c)
			return echo.NewHTTPError(http.StatusUnauthorized, "refresh token missing")
		}

		res, refErr := m.Auth.Refresh(c.Request().Context(), refreshCookie.Value)
		if refErr != nil {
			clearAuthCookies(c)
			return echo.NewHTTPError(http.StatusUnauthorized, "refresh failed")
		}

		c.SetCookie(tokens.CreateCookie("accessToken", res.AccessToken, "/", res.AccessExp))
		c.SetCookie(tokens.CreateCookie("refreshToken", res.RefreshToken, "/", res.RefreshExp))

		newClaims, pErr := tokens.AccessClaimsFromToken(res.AccessToken, m.JWTSecret)
		if pErr != nil || newClaims == nil {
			clearAuthCookies(c)
			return echo.NewHTTPError(http.StatusUnauthorized, "new access token invalid")
		}
		if validator != nil {
			if validationErr := validator(newClaims); validationErr != nil {
				clearAuthCookies(c)
				return validationErr
			}
		}
		return withUserContext(c, next, newClaims)
	}
}

func withUserContext(c echo.Context, next echo.HandlerFunc, claims *tokens.AccessClaims) error {
	userID, err := claims.UserID()
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid subject claim")
	}
	c.Set("user_id", userID)
	c.Set("role", claims.Role)
	return next(c)
}

func clearAuthCookies(c echo.Context) {
	c.SetCookie(tokens.DeleteCookie("accessToken", "/"))
	c.SetCookie(tokens.DeleteCookie("refreshToken", "/"))
}
