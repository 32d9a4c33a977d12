package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/prompthub-dev/prompthub/internal/auth"
	"github.com/prompthub-dev/prompthub/internal/types"
)

// extractToken pulls the session token from the Authorization header,
// falling back to the session cookie set at login.
func extractToken(ctx *gin.Context) string {
	authHeader := ctx.GetHeader("Authorization")

	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)

		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}

		return ""
	}

	cookie, err := ctx.Cookie(types.SessionCookieName)

	if err != nil {
		return ""
	}

	return cookie
}

// authenticate resolves the request's session token and stores the
// principal in the context. Aborts with 401 and returns false on failure.
func authenticate(ctx *gin.Context, resolver auth.PrincipalResolver) (auth.Principal, bool) {
	tokenString := extractToken(ctx)

	if tokenString == "" {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token is required"})
		return auth.Principal{}, false
	}

	principal, err := resolver.Resolve(tokenString)

	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return auth.Principal{}, false
	}

	ctx.Set(types.ContextUserKey, principal)
	return principal, true
}

// RequireAuth rejects requests without a valid session token resolving to
// an existing user.
func RequireAuth(resolver auth.PrincipalResolver) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if _, ok := authenticate(ctx, resolver); !ok {
			return
		}

		ctx.Next()
	}
}

// RequireAdmin is RequireAuth plus a 403 for non-admin principals.
func RequireAdmin(resolver auth.PrincipalResolver) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		principal, ok := authenticate(ctx, resolver)

		if !ok {
			return
		}

		if !principal.Admin {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}

		ctx.Next()
	}
}
