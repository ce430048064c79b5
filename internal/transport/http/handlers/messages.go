package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Amlan029/FeedFormly/internal/transport/http/middleware"
	"github.com/Amlan029/FeedFormly/internal/usecase"
)

var sendMessageErrorCases = []ErrorCase{
	{Err: usecase.ErrAccountNotFound, Status: http.StatusNotFound, Message: "User not found"},
	{Err: usecase.ErrNotAcceptingMessages, Status: http.StatusForbidden, Message: "User is not accepting messages"},
}

var inboxErrorCases = []ErrorCase{
	{Err: usecase.ErrUnauthenticated, Status: http.StatusUnauthorized, Message: "Not Authenticated"},
	{Err: usecase.ErrAccountNotFound, Status: http.StatusNotFound, Message: "User not found"},
	{Err: usecase.ErrMessageNotFound, Status: http.StatusNotFound, Message: "Message not found or already deleted"},
}

// MessageHandler exposes anonymous intake and the owner's inbox.
type MessageHandler struct {
	intake *usecase.IntakeService
	inbox  *usecase.InboxService
}

func NewMessageHandler(intake *usecase.IntakeService, inbox *usecase.InboxService) *MessageHandler {
	return &MessageHandler{intake: intake, inbox: inbox}
}

// SendMessage godoc
// @Summary Send an anonymous message
// @Description Appends a message to the recipient's inbox when they accept messages. No sender data is stored.
// @Tags Messages
// @Accept json
// @Produce json
// @Param request body SendMessageRequest true "Message"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 403 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /api/send-message [post]
func (h *MessageHandler) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, validationMessage(err)))
		return
	}

	if _, err := h.intake.Submit(c.Request.Context(), req.Username, req.Content); err != nil {
		if isInvalidInput(err) {
			c.JSON(http.StatusBadRequest, NewErrorResponse(c, usecase.InputReason(err)))
			return
		}
		RespondWithMappedError(c, err, sendMessageErrorCases, http.StatusInternalServerError, "Error sending message")
		return
	}

	c.JSON(http.StatusOK, NewSuccessResponse("Message sent successfully"))
}

// GetMessages godoc
// @Summary List inbox messages
// @Description Returns the signed-in owner's messages, newest first.
// @Tags Messages
// @Produce json
// @Success 200 {object} MessagesResponse
// @Failure 401 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /api/get-messages [get]
func (h *MessageHandler) GetMessages(c *gin.Context) {
	owner, _ := middleware.CurrentPrincipal(c)

	messages, err := h.inbox.List(c.Request.Context(), owner, usecase.NewestFirst)
	if err != nil {
		RespondWithMappedError(c, err, inboxErrorCases, http.StatusInternalServerError, "Error getting messages")
		return
	}

	c.JSON(http.StatusOK, MessagesResponse{Success: true, Messages: newMessageViews(messages)})
}

// DeleteMessage godoc
// @Summary Delete an inbox message
// @Description Removes one of the signed-in owner's messages. Foreign or unknown ids answer 404.
// @Tags Messages
// @Produce json
// @Param messageId path string true "Message id"
// @Success 200 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /api/delete-message/{messageId} [delete]
func (h *MessageHandler) DeleteMessage(c *gin.Context) {
	owner, _ := middleware.CurrentPrincipal(c)

	if err := h.inbox.Delete(c.Request.Context(), owner, c.Param("messageId")); err != nil {
		RespondWithMappedError(c, err, inboxErrorCases, http.StatusInternalServerError, "Error deleting message")
		return
	}

	c.JSON(http.StatusOK, NewSuccessResponse("Message deleted"))
}

// GetAcceptMessages godoc
// @Summary Read the acceptance gate
// @Tags Messages
// @Produce json
// @Success 200 {object} AcceptMessagesResponse
// @Failure 401 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/accept-messages [get]
func (h *MessageHandler) GetAcceptMessages(c *gin.Context) {
	owner, _ := middleware.CurrentPrincipal(c)

	accepting, err := h.inbox.AcceptingMessages(c.Request.Context(), owner)
	if err != nil {
		RespondWithMappedError(c, err, inboxErrorCases, http.StatusInternalServerError, "Error retrieving message acceptance status")
		return
	}

	c.JSON(http.StatusOK, AcceptMessagesResponse{Success: true, IsAcceptingMessages: accepting})
}

// SetAcceptMessages godoc
// @Summary Update the acceptance gate
// @Tags Messages
// @Accept json
// @Produce json
// @Param request body AcceptMessagesRequest true "Gate state"
// @Success 200 {object} AcceptMessagesResponse
// @Failure 400 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/accept-messages [post]
func (h *MessageHandler) SetAcceptMessages(c *gin.Context) {
	var req AcceptMessagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, validationMessage(err)))
		return
	}
	owner, _ := middleware.CurrentPrincipal(c)

	if err := h.inbox.SetAcceptingMessages(c.Request.Context(), owner, *req.AcceptMessages); err != nil {
		RespondWithMappedError(c, err, inboxErrorCases, http.StatusInternalServerError, "Error updating message acceptance status")
		return
	}

	c.JSON(http.StatusOK, AcceptMessagesResponse{
		Success:             true,
		Message:             "Message acceptance status updated successfully",
		IsAcceptingMessages: *req.AcceptMessages,
	})
}
