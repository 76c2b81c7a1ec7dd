package middleware

import (
	"net/http"
	"strings"

	"github.com/Eurie-R/IMS-CristinaVilla/services"

	"github.com/gin-gonic/gin"
)

const (
	// AccessCookie carries the access token for the HTML pages.
	AccessCookie = "access_token"

	claimsKey = "claims"
)

// TokenParser validates an access token.
type TokenParser interface {
	ParseAccess(token string) (*services.Claims, error)
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	if cookie, err := c.Cookie(AccessCookie); err == nil {
		return cookie
	}
	return ""
}

func authenticate(c *gin.Context, parser TokenParser) bool {
	claims, err := parser.ParseAccess(bearerToken(c))
	if err != nil {
		return false
	}
	c.Set(claimsKey, claims)
	return true
}

// RequireAuth rejects requests without a valid access token with 401.
func RequireAuth(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authenticate(c, parser) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authentication credentials were not provided or are invalid",
			})
			return
		}
		c.Next()
	}
}

// RequirePageAuth sends unauthenticated browsers to the login page.
func RequirePageAuth(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authenticate(c, parser) {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentClaims returns the claims stored by RequireAuth.
func CurrentClaims(c *gin.Context) (*services.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*services.Claims)
	return claims, ok
}

// CurrentUserID returns the authenticated user id, or nil.
func CurrentUserID(c *gin.Context) *uint {
	claims, ok := CurrentClaims(c)
	if !ok {
		return nil
	}
	id := claims.UserID
	return &id
}
