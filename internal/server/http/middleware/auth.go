package middleware

import (
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tidex114/est-backend/internal/domain/model"
	pkgAuth "github.com/tidex114/est-backend/internal/pkg/auth"
	"github.com/tidex114/est-backend/internal/server/http/dto"
)

// CallerContextKey is a gin context key for the authenticated caller.
const CallerContextKey = "caller"

// TokenParser turns a bearer token into a caller.
type TokenParser interface {
	ParseToken(token string) (model.Caller, error)
}

// AuthRequired ensures the request carries a valid bearer token.
func AuthRequired(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			abort(c, http.StatusUnauthorized, "unauthorized", "missing bearer token")
			return
		}

		caller, err := parser.ParseToken(token)
		if err != nil {
			if errors.Is(err, pkgAuth.ErrInvalidToken) {
				abort(c, http.StatusUnauthorized, "unauthorized", "invalid bearer token")
				return
			}
			abort(c, http.StatusInternalServerError, "internal", "internal error")
			return
		}

		c.Set(CallerContextKey, caller)
		c.Next()
	}
}

// RequireRole rejects callers whose role is not listed.
func RequireRole(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := Caller(c)
		if !ok {
			abort(c, http.StatusUnauthorized, "unauthorized", "missing caller")
			return
		}
		if !slices.Contains(roles, caller.Role) {
			abort(c, http.StatusForbidden, "forbidden", "role "+string(caller.Role)+" is not allowed here")
			return
		}
		c.Next()
	}
}

// Caller returns the caller stored by AuthRequired.
func Caller(c *gin.Context) (model.Caller, bool) {
	val, ok := c.Get(CallerContextKey)
	if !ok {
		return model.Caller{}, false
	}
	caller, ok := val.(model.Caller)
	return caller, ok
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}

func abort(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Error: msg, Code: code})
}
