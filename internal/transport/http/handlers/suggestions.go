package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Amlan029/FeedFormly/internal/usecase"
)

// SuggestionHandler proxies suggestion prompts to the text generator.
type SuggestionHandler struct {
	suggestions *usecase.SuggestionService
}

func NewSuggestionHandler(suggestions *usecase.SuggestionService) *SuggestionHandler {
	return &SuggestionHandler{suggestions: suggestions}
}

// SuggestMessages godoc
// @Summary Suggest anonymous messages
// @Description Returns "||"-separated suggestions as plain text. An empty or unreadable body uses the default prompt.
// @Tags Suggestions
// @Accept json
// @Produce plain
// @Param request body SuggestMessagesRequest false "Prompt"
// @Success 200 {string} string
// @Failure 500 {string} string
// @Router /api/suggest-messages [post]
func (h *SuggestionHandler) SuggestMessages(c *gin.Context) {
	var req SuggestMessagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req = SuggestMessagesRequest{}
	}

	text, err := h.suggestions.Suggest(c.Request.Context(), req.Prompt)
	if err != nil {
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, "Error getting Gemini response")
		return
	}

	c.String(http.StatusOK, text)
}
