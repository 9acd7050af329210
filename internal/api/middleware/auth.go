// Package middleware provides HTTP middleware for the API.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware validates admin JWTs for the management API.
type AuthMiddleware struct {
	secret []byte
}

// AdminClaims are the claims carried by an admin token. TenantID scopes
// the token to one tenant's resources.
type AdminClaims struct {
	TenantID string `json:"tenantId"`
	jwt.RegisteredClaims
}

// NewAuthMiddleware creates a new AuthMiddleware.
func NewAuthMiddleware(secret string) *AuthMiddleware {
	return &AuthMiddleware{secret: []byte(secret)}
}

// Authenticate returns a gin middleware that validates the Bearer token
// and checks that its tenant claim matches the path tenant.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    "UNAUTHORIZED",
				"message": "missing authorization header",
			})
			return
		}

		// Extract Bearer token
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    "UNAUTHORIZED",
				"message": "invalid authorization header format",
			})
			return
		}

		claims := &AdminClaims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return m.secret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    "UNAUTHORIZED",
				"message": "invalid token",
			})
			return
		}

		if tenantID := c.Param("tenantId"); tenantID != "" && claims.TenantID != tenantID {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"code":    "FORBIDDEN",
				"message": "token is not valid for this tenant",
			})
			return
		}

		c.Set("admin_tenant_id", claims.TenantID)
		c.Next()
	}
}

// GetAdminTenantID retrieves the authenticated tenant from the gin context.
func GetAdminTenantID(c *gin.Context) string {
	if tenantID, exists := c.Get("admin_tenant_id"); exists {
		return tenantID.(string)
	}
	return ""
}
