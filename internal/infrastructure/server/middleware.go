package server

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	httpHandlers "github.com/nyaysathi/core/internal/adapters/http"
	"github.com/nyaysathi/core/internal/ports"
)

// adminClaims validates an optional bearer token. Requests without an
// Authorization header pass through anonymously; a present but invalid
// header is rejected.
func (s *Server) adminClaims(adminService ports.AdminService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return next(c)
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				return c.JSON(http.StatusUnauthorized, httpHandlers.ErrorResponse{Error: "Invalid authorization header format"})
			}

			claims, err := adminService.ValidateToken(tokenString)
			if err != nil {
				s.logger.LogSecurityEvent("invalid_token", "", c.RealIP(), map[string]interface{}{
					"error":    err.Error(),
					"endpoint": c.Request().URL.Path,
				})
				return c.JSON(http.StatusUnauthorized, httpHandlers.ErrorResponse{Error: "Invalid token"})
			}

			c.Set(httpHandlers.ClaimsContextKey, claims)
			return next(c)
		}
	}
}
