package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/devconnector/pkg/helpers"
	"github.com/oksasatya/devconnector/pkg/response"
)

const (
	// TokenHeader carries the bearer credential.
	TokenHeader = "x-auth-token"
	// CtxUserIDKey is the gin context key holding the authenticated owner id.
	CtxUserIDKey = "userID"

	msgNoToken      = "No token, authorization denied."
	msgInvalidToken = "Token isn't valid."
)

type userIDKey struct{}

// TokenVerifier recovers the identity carried by a token. helpers.JWTManager implements it.
type TokenVerifier interface {
	Verify(token string) (*helpers.Claims, error)
}

// Auth rejects requests without a valid token before any handler or store
// is reached. On success the owner id is available through c.GetString(CtxUserIDKey)
// and UserIDFromContext(c.Request.Context()).
func Auth(v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimSpace(c.GetHeader(TokenHeader))
		if token == "" {
			response.Unauthorized(c, msgNoToken)
			return
		}
		claims, err := v.Verify(token)
		if err != nil {
			response.Unauthorized(c, msgInvalidToken)
			return
		}

		c.Set(CtxUserIDKey, claims.User.ID)
		c.Request = c.Request.WithContext(WithUserID(c.Request.Context(), claims.User.ID))
		c.Next()
	}
}

func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey{}, id)
}

// UserIDFromContext returns the owner id attached by Auth.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey{}).(string)
	return id, ok && id != ""
}
