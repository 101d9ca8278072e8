package middleware

import (
	"net/http"

	"github.com/Phenoo/bookkeep-server/pkg/auth"
	"github.com/labstack/echo/v4"
)

const userKey = "user_id"

// JWTAuth rejects requests without a valid bearer token and stores the
// caller's subject in the request context.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sub, err := auth.ParseSubject(c.Request().Header.Get("Authorization"), secret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
			}
			c.Set(userKey, sub)
			return next(c)
		}
	}
}

// UserID returns the authenticated subject set by JWTAuth, empty when absent.
func UserID(c echo.Context) string {
	if v, ok := c.Get(userKey).(string); ok {
		return v
	}
	return ""
}
