package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Amlan029/FeedFormly/internal/core/domain"
	"github.com/Amlan029/FeedFormly/internal/transport/http/middleware"
)

// APIResponse is the envelope every JSON endpoint answers with.
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	TraceID string `json:"trace_id,omitempty"`
}

// NewErrorResponse creates a failure envelope carrying the request trace id.
func NewErrorResponse(c *gin.Context, message string) APIResponse {
	return APIResponse{
		Success: false,
		Message: message,
		TraceID: middleware.GetTraceID(c),
	}
}

// NewSuccessResponse creates a success envelope.
func NewSuccessResponse(message string) APIResponse {
	return APIResponse{Success: true, Message: message}
}

// SignUpRequest defines the payload for the sign-up endpoint.
type SignUpRequest struct {
	Username string `json:"username" binding:"required,username"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// UsernameQuery is bound from the check-username-unique query string.
type UsernameQuery struct {
	Username string `form:"username" binding:"required,username"`
}

// VerifyCodeRequest defines the payload for the verify-code endpoint. Username may be URL-encoded.
type VerifyCodeRequest struct {
	Username string `json:"username"`
	Code     string `json:"code"`
}

// SendMessageRequest defines the payload for anonymous message submission.
type SendMessageRequest struct {
	Username string `json:"username" binding:"required"`
	Content  string `json:"content" binding:"required"`
}

// SuggestMessagesRequest defines the optional prompt for suggestions.
type SuggestMessagesRequest struct {
	Prompt string `json:"prompt"`
}

// SignInRequest accepts either a username or an email as identifier.
type SignInRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// AccountSummary is the public view of the signed-in owner.
type AccountSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// SignInResponse carries the bearer token issued alongside the session cookie.
type SignInResponse struct {
	Success     bool           `json:"success"`
	Message     string         `json:"message"`
	AccessToken string         `json:"access_token"`
	TokenType   string         `json:"token_type"`
	ExpiresAt   time.Time      `json:"expires_at"`
	Account     AccountSummary `json:"account"`
}

// AcceptMessagesRequest toggles the acceptance gate.
type AcceptMessagesRequest struct {
	AcceptMessages *bool `json:"acceptMessages" binding:"required"`
}

// AcceptMessagesResponse reports the acceptance gate.
type AcceptMessagesResponse struct {
	Success             bool   `json:"success"`
	Message             string `json:"message,omitempty"`
	IsAcceptingMessages bool   `json:"isAcceptingMessages"`
}

// MessageView is an inbox entry as returned to its owner.
type MessageView struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// MessagesResponse lists the owner's inbox.
type MessagesResponse struct {
	Success  bool          `json:"success"`
	Messages []MessageView `json:"messages"`
}

func newMessageViews(messages []domain.Message) []MessageView {
	views := make([]MessageView, 0, len(messages))
	for _, msg := range messages {
		views = append(views, MessageView{ID: msg.ID, Content: msg.Content, CreatedAt: msg.CreatedAt.UTC()})
	}
	return views
}

// HealthResponse represents the liveness payload.
type HealthResponse struct {
	Status    string    `json:"status"`
	StartedAt time.Time `json:"started_at"`
}

// ReadinessResponse reports the state of each dependency.
type ReadinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
