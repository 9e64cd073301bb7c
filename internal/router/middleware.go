package router

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"tasktracker/internal/auth"
)

// requireActiveToken runs after the echo-jwt middleware. It pulls the typed
// claims out of the parsed token, rejects revoked tokens, and makes the
// claims available under auth.ClaimsContextKey.
func requireActiveToken(tokenStore auth.TokenStoreInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			claims, ok := token.Claims.(*auth.Claims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			if claims.ID != "" {
				revoked, err := tokenStore.IsAccessTokenRevoked(c.Request().Context(), claims.ID)
				if err == nil && revoked {
					return echo.NewHTTPError(http.StatusUnauthorized, "token revoked")
				}
			}

			c.Set(auth.ClaimsContextKey, claims)
			return next(c)
		}
	}
}
