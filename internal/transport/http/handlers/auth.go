package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Amlan029/FeedFormly/internal/core/domain"
	"github.com/Amlan029/FeedFormly/internal/infra/logger"
	"github.com/Amlan029/FeedFormly/internal/usecase"
)

var signInErrorCases = []ErrorCase{
	{Err: usecase.ErrInvalidInput, Status: http.StatusBadRequest, Message: "Identifier and password are required"},
	{Err: usecase.ErrInvalidCredentials, Status: http.StatusUnauthorized, Message: "Invalid credentials"},
	{Err: usecase.ErrAccountNotVerified, Status: http.StatusForbidden, Message: "Please verify your account before signing in"},
}

// SessionStore persists the signed-in owner in a browser cookie.
type SessionStore interface {
	Save(w http.ResponseWriter, r *http.Request, principal domain.Principal) error
	Clear(w http.ResponseWriter, r *http.Request) error
}

// AuthHandler exposes owner sign-in and sign-out.
type AuthHandler struct {
	auth     *usecase.AuthService
	sessions SessionStore
}

func NewAuthHandler(auth *usecase.AuthService, sessions SessionStore) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions}
}

// SignIn godoc
// @Summary Sign in
// @Description Authenticates by username or email, sets the session cookie and returns a bearer token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body SignInRequest true "Credentials"
// @Success 200 {object} SignInResponse
// @Failure 400 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Failure 403 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /api/sign-in [post]
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "Identifier and password are required"))
		return
	}

	result, err := h.auth.SignIn(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		RespondWithMappedError(c, err, signInErrorCases, http.StatusInternalServerError, "Error signing in")
		return
	}

	if h.sessions != nil {
		if err := h.sessions.Save(c.Writer, c.Request, result.Principal); err != nil {
			RespondWithMappedError(c, err, nil, http.StatusInternalServerError, "Error signing in")
			return
		}
	}

	c.JSON(http.StatusOK, SignInResponse{
		Success:     true,
		Message:     "Signed in successfully",
		AccessToken: result.AccessToken,
		TokenType:   "Bearer",
		ExpiresAt:   result.ExpiresAt.UTC(),
		Account: AccountSummary{
			ID:       result.Principal.AccountID,
			Username: result.Principal.Username,
		},
	})
}

// SignOut godoc
// @Summary Sign out
// @Description Clears the session cookie. Bearer tokens stay valid until they expire.
// @Tags Auth
// @Produce json
// @Success 200 {object} APIResponse
// @Router /api/sign-out [post]
func (h *AuthHandler) SignOut(c *gin.Context) {
	if h.sessions != nil {
		if err := h.sessions.Clear(c.Writer, c.Request); err != nil {
			logger.WithContext(c.Request.Context()).Warn("failed to clear session", zap.Error(err))
		}
	}
	c.JSON(http.StatusOK, NewSuccessResponse("Signed out"))
}
