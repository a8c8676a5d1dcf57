package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/tikrarapp/tikrar-backend/internal/dto"
	"github.com/tikrarapp/tikrar-backend/internal/model"
)

const principalKey = "principal"

// Principal trusts the upstream gateway's identity headers (X-User-Id,
// X-User-Roles) and stores a model.Principal on the request context.
// Requests without a valid user id are rejected with 401.
func Principal() gin.HandlerFunc {
	return func(c *gin.Context) {
		rawID := c.GetHeader("X-User-Id")
		if rawID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Autentikasi diperlukan"})
			return
		}
		userID, err := uuid.Parse(rawID)
		if err != nil {
			log.Warn().Str("x_user_id", rawID).Msg("Malformed X-User-Id header")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Autentikasi diperlukan"})
			return
		}

		var roles []string
		for _, role := range strings.Split(c.GetHeader("X-User-Roles"), ",") {
			if role = strings.TrimSpace(role); role != "" {
				roles = append(roles, role)
			}
		}

		c.Set(principalKey, model.Principal{UserID: userID, Roles: roles})
		c.Next()
	}
}

// RequireAdmin aborts with 403 unless the principal carries the admin role.
// Must run after Principal.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := PrincipalFrom(c)
		if !principal.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Error: "Akses khusus admin"})
			return
		}
		c.Next()
	}
}

// PrincipalFrom returns the principal stored by the Principal middleware.
// A zero principal from a route missing the middleware has a nil UUID and no
// roles, so every ownership check fails closed.
func PrincipalFrom(c *gin.Context) model.Principal {
	if v, ok := c.Get(principalKey); ok {
		if principal, ok := v.(model.Principal); ok {
			return principal
		}
	}
	return model.Principal{}
}
