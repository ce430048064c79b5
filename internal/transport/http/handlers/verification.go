package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Amlan029/FeedFormly/internal/usecase"
)

var verifyErrorCases = []ErrorCase{
	{Err: usecase.ErrAccountNotFound, Status: http.StatusNotFound, Message: "User not found"},
	{Err: usecase.ErrVerificationCodeExpired, Status: http.StatusBadRequest, Message: "Verification code has expired, please signup again to get a new code"},
	{Err: usecase.ErrVerificationCodeMismatch, Status: http.StatusBadRequest, Message: "Incorrect verification code"},
}

// VerificationHandler exposes code verification.
type VerificationHandler struct {
	verification *usecase.VerificationService
}

func NewVerificationHandler(verification *usecase.VerificationService) *VerificationHandler {
	return &VerificationHandler{verification: verification}
}

// VerifyCode godoc
// @Summary Verify an account
// @Description Checks the emailed code for the (URL-encoded) username and marks the account verified.
// @Tags Registration
// @Accept json
// @Produce json
// @Param request body VerifyCodeRequest true "Verification request"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /api/verify-code [post]
func (h *VerificationHandler) VerifyCode(c *gin.Context) {
	var req VerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "Username and code are required"))
		return
	}

	if _, err := h.verification.Verify(c.Request.Context(), req.Username, req.Code); err != nil {
		if isInvalidInput(err) {
			c.JSON(http.StatusBadRequest, NewErrorResponse(c, "Username and code are required"))
			return
		}
		RespondWithMappedError(c, err, verifyErrorCases, http.StatusInternalServerError, "Error verifying user")
		return
	}

	c.JSON(http.StatusOK, NewSuccessResponse("Account verified successfully"))
}

func isInvalidInput(err error) bool {
	return errors.Is(err, usecase.ErrInvalidInput)
}
