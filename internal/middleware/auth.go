package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/barber-bot/internal/httperr"
)

const (
	ContextAdminID   = "adminID"
	ContextAdminRole = "adminRole"

	RoleAdmin = "admin"
)

// AuthMiddleware accepts HS256 bearer tokens issued by the login handler
// and only lets admin-role subjects through.
func AuthMiddleware(secret string) gin.HandlerFunc {
	keyFunc := func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(secret), nil
	}

	return func(c *gin.Context) {
		raw, code := bearerToken(c.GetHeader("Authorization"))
		if code != "" {
			httperr.Abort(c, http.StatusUnauthorized, code, "Sign in to continue.")
			return
		}

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(raw, claims, keyFunc)
		if err != nil || !token.Valid {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_token", "Session expired or invalid.")
			return
		}

		sub, ok := claims["sub"].(float64)
		if !ok || sub <= 0 {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_token_payload", "Session expired or invalid.")
			return
		}

		role, _ := claims["role"].(string)
		if role != RoleAdmin {
			httperr.Abort(c, http.StatusForbidden, "forbidden", "Admin role required.")
			return
		}

		c.Set(ContextAdminID, uint(sub))
		c.Set(ContextAdminRole, role)

		c.Next()
	}
}

func bearerToken(header string) (string, string) {
	if header == "" {
		return "", "missing_authorization_header"
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", "invalid_authorization_header"
	}
	return strings.TrimSpace(token), ""
}
