package rest

import (
	"net/http"
	"strings"

	"github.com/dmitrijs2005/gatekeeper/internal/common"
	"github.com/dmitrijs2005/gatekeeper/internal/server/auth"
	"github.com/gin-gonic/gin"
)

const claimsKey = "auth.claims"

// restrict lets a request through only if it carries a validly signed token
// whose role equals role. The token is read from the "token" cookie, or from
// an "Authorization: Bearer" header when the cookie is absent. Every failure
// gets the same 401 body.
func (s *Server) restrict(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		token := tokenFromRequest(c)
		if token == "" {
			s.logger.Debug(ctx, "access denied", "reason", "missing token", "path", c.Request.URL.Path)
			reject(c)
			return
		}

		claims, err := s.tokens.Parse(token)
		if err != nil {
			s.logger.Debug(ctx, "access denied", "reason", "invalid token", "error", err)
			reject(c)
			return
		}

		if claims.UserRole != role {
			s.logger.Debug(ctx, "access denied", "reason", "role mismatch", "role", claims.UserRole, "required", role)
			reject(c)
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// claimsFrom returns the claims stored by the guard for this request.
func claimsFrom(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}

func tokenFromRequest(c *gin.Context) string {
	if v, err := c.Cookie(common.TokenCookieName); err == nil && v != "" {
		return v
	}

	scheme, token, ok := strings.Cut(c.GetHeader("Authorization"), " ")
	if ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}

	return ""
}

func reject(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, messageResponse{Message: msgRejected})
}
