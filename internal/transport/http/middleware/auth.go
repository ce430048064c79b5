package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Amlan029/FeedFormly/internal/core/domain"
)

// errorResponse matches handlers.APIResponse for failures.
type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	TraceID string `json:"trace_id,omitempty"`
}

// SessionLoader resolves the owner behind a session cookie.
type SessionLoader interface {
	Load(r *http.Request) (domain.Principal, bool)
}

// TokenAuthenticator resolves the owner behind a bearer token.
type TokenAuthenticator interface {
	Authenticate(raw string) (domain.Principal, error)
}

// RequireOwner attaches the signed-in owner to the request, taken from the session cookie or,
// failing that, from an "Authorization: Bearer" header. Anonymous requests get 401.
func RequireOwner(sessions SessionLoader, tokens TokenAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sessions != nil {
			if principal, ok := sessions.Load(c.Request); ok {
				SetPrincipal(c, principal)
				c.Next()
				return
			}
		}

		if tokens != nil {
			if raw, ok := bearerToken(c.GetHeader("Authorization")); ok {
				principal, err := tokens.Authenticate(raw)
				if err == nil && !principal.IsZero() {
					SetPrincipal(c, principal)
					c.Next()
					return
				}
			}
		}

		c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{
			Success: false,
			Message: "Not Authenticated",
			TraceID: GetTraceID(c),
		})
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
