package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	pkgAuth "github.com/lithoprint/printdesk/internal/pkg/auth"
)

const (
	// StaffSubjectContextKey is a gin context key for the authenticated
	// staff subject.
	StaffSubjectContextKey = "staffSubject"
	staffCookieName        = "printdesk_token"
)

// TokenParser validates staff tokens.
type TokenParser interface {
	ParseToken(token string) (string, error)
}

// StaffRequired guards dashboard routes with the static staff token.
func StaffRequired(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		subject, err := parser.ParseToken(token)
		if err != nil {
			if err == pkgAuth.ErrInvalidToken {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		c.Set(StaffSubjectContextKey, subject)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}

	if cookie, err := c.Cookie(staffCookieName); err == nil {
		return cookie
	}
	return ""
}
