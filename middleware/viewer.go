package middleware

import (
	"strings"

	"nearbuy/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
)

// Context keys for the optional viewer identity.
const (
	ViewerIDKey   = "viewerID"
	ViewerRoleKey = "viewerRole"
)

// OptionalViewerMiddleware extracts the viewer identity from a bearer token
// when one is present and valid. Anonymous browsing is fully supported: a
// missing or invalid token leaves the identity unset and never rejects the
// request.
func OptionalViewerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.Next()
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(config.AppConfig.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			c.Next()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.Next()
			return
		}
		if sub, ok := claims["sub"].(string); ok && sub != "" {
			c.Set(ViewerIDKey, sub)
		}
		if role, ok := claims["role"].(string); ok && role != "" {
			c.Set(ViewerRoleKey, role)
		}
		c.Next()
	}
}

// ViewerFromContext returns the authenticated viewer's id and role, or empty
// strings for an anonymous viewer.
func ViewerFromContext(c *gin.Context) (string, string) {
	return c.GetString(ViewerIDKey), c.GetString(ViewerRoleKey)
}
