package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/teamly-api/internal/constants"
	apierrors "github.com/yukikurage/teamly-api/internal/errors"
	"github.com/yukikurage/teamly-api/internal/models"
	"github.com/yukikurage/teamly-api/internal/services"
	"github.com/yukikurage/teamly-api/internal/store"
)

// UserResolver turns a bearer token into its user.
type UserResolver interface {
	CurrentUser(ctx context.Context, token string) (*models.User, error)
}

// RequireAuth checks the bearer token, falling back to the session token
// when a session middleware is installed.
func RequireAuth(resolver UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		if token == "" {
			apierrors.Unauthorized(c, "Not authenticated")
			return
		}

		user, err := resolver.CurrentUser(c.Request.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidCredentials):
				apierrors.Unauthorized(c, "Could not validate credentials")
			case errors.Is(err, store.ErrStorageUnavailable):
				apierrors.ServiceUnavailable(c, "")
			default:
				apierrors.InternalError(c, "")
			}
			return
		}

		// Store user in context for easy access in handlers
		c.Set(constants.ContextKeyUser, user)
		c.Next()
	}
}

// BearerToken extracts the token from the Authorization header or the session.
func BearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if scheme, token, ok := strings.Cut(header, " "); ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}

	if _, ok := c.Get(sessions.DefaultKey); !ok {
		return ""
	}
	if token, ok := sessions.Default(c).Get(constants.SessionKeyToken).(string); ok {
		return token
	}
	return ""
}

// GetCurrentUser retrieves the authenticated user from context
func GetCurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok && user != nil
}
