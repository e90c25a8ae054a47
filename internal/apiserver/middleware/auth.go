package middleware

import (
	"strings"

	"github.com/amoylab/rentboard/internal/auth/jwt"
	"github.com/amoylab/rentboard/internal/common/cnst"
	"github.com/amoylab/rentboard/internal/i18n"
	"github.com/gin-gonic/gin"
)

// JWTAuthMiddleware verifies the bearer token and attaches its claims to the context.
// A missing or malformed header is 401; a token that fails verification is 403.
func JWTAuthMiddleware(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			i18n.RespondWithError(c, i18n.ErrUnauthorized)
			return
		}

		scheme, token, ok := strings.Cut(authHeader, " ")
		if !ok || scheme != "Bearer" || token == "" || strings.Contains(token, " ") {
			i18n.RespondWithError(c, i18n.ErrUnauthorized)
			return
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			i18n.RespondWithError(c, i18n.ErrInvalidToken)
			return
		}

		c.Set(cnst.CtxKeyClaims, claims)
		c.Next()
	}
}

// RequireRoles allows the request through only when the identity holds one of roles.
// It must run after JWTAuthMiddleware.
func RequireRoles(roles ...cnst.Role) gin.HandlerFunc {
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, string(r))
	}
	required := strings.Join(names, ", ")

	return func(c *gin.Context) {
		claims, ok := IdentityFrom(c)
		if !ok {
			i18n.RespondWithError(c, i18n.ErrUnauthorized)
			return
		}
		for _, r := range roles {
			if claims.Role == string(r) {
				c.Next()
				return
			}
		}
		i18n.Error(i18n.ErrRoleRequired).WithParam("roles", required).Send(c)
	}
}

// IdentityFrom returns the claims attached by JWTAuthMiddleware
func IdentityFrom(c *gin.Context) (*jwt.Claims, bool) {
	v, exists := c.Get(cnst.CtxKeyClaims)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	return claims, ok && claims != nil
}
