package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"asistencia/internal/domain"
	"asistencia/internal/service"
)

const (
	ContextKeySheetID = "sheet_id"
	ContextKeyClaims  = "claims"

	// AdminKeyHeader carries the plaintext admin key for archive routes.
	AdminKeyHeader = "X-Admin-Key"
)

// SheetAuth returns Gin middleware that validates the sheet session token and
// checks that it was issued for the sheet named by the :id path parameter.
func SheetAuth(sessions service.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "missing or invalid authorization header"},
			})
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := sessions.Validate(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "invalid or expired session token"},
			})
			return
		}

		sheetID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   gin.H{"code": "INVALID_ID", "message": "invalid sheet ID"},
			})
			return
		}
		if claims.SheetID != sheetID {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   gin.H{"code": "FORBIDDEN", "message": "session token does not belong to this sheet"},
			})
			return
		}

		c.Set(ContextKeySheetID, claims.SheetID)
		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// AdminKey returns middleware that compares the X-Admin-Key header against a
// bcrypt hash. An empty hash rejects every request.
func AdminKey(hash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(AdminKeyHeader)
		if hash == "" || key == "" ||
			bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)) != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "INVALID_ADMIN_KEY", "message": "missing or invalid admin key"},
			})
			return
		}
		c.Next()
	}
}

// GetSheetID extracts the authenticated sheet ID from the Gin context.
func GetSheetID(c *gin.Context) (uuid.UUID, error) {
	val, exists := c.Get(ContextKeySheetID)
	if !exists {
		return uuid.Nil, domain.ErrUnauthorized
	}
	return val.(uuid.UUID), nil
}
