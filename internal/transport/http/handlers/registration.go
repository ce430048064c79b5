package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Amlan029/FeedFormly/internal/usecase"
)

var signUpErrorCases = []ErrorCase{
	{Err: usecase.ErrInvalidInput, Status: http.StatusBadRequest, Message: "Invalid sign-up details"},
	{Err: usecase.ErrUsernameTaken, Status: http.StatusConflict, Message: "Username is already taken"},
	{Err: usecase.ErrEmailTaken, Status: http.StatusConflict, Message: "User already exists with this email"},
	{Err: usecase.ErrVerificationDelivery, Status: http.StatusInternalServerError, Message: "Failed to send verification email"},
}

// RegistrationHandler exposes sign-up and username availability.
type RegistrationHandler struct {
	registration *usecase.RegistrationService
}

func NewRegistrationHandler(registration *usecase.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registration: registration}
}

// SignUp godoc
// @Summary Register an account
// @Description Creates an unverified account, or refreshes an unverified one with the same email, and emails a verification code.
// @Tags Registration
// @Accept json
// @Produce json
// @Param request body SignUpRequest true "Sign-up request"
// @Success 201 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /api/signUp [post]
func (h *RegistrationHandler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, validationMessage(err)))
		return
	}

	_, err := h.registration.SignUp(c.Request.Context(), usecase.SignUpInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if isInvalidInput(err) {
			c.JSON(http.StatusBadRequest, NewErrorResponse(c, usecase.InputReason(err)))
			return
		}
		RespondWithMappedError(c, err, signUpErrorCases, http.StatusInternalServerError, "Error registering user")
		return
	}

	c.JSON(http.StatusCreated, NewSuccessResponse("User registered successfully. Please verify your account."))
}

// CheckUsernameUnique godoc
// @Summary Check username availability
// @Description Reports whether a verified account already holds the username.
// @Tags Registration
// @Produce json
// @Param username query string true "Candidate username"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /api/check-username-unique [get]
func (h *RegistrationHandler) CheckUsernameUnique(c *gin.Context) {
	var query UsernameQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, validationMessage(err)))
		return
	}

	if err := h.registration.CheckUsernameUnique(c.Request.Context(), query.Username); err != nil {
		if isInvalidInput(err) {
			c.JSON(http.StatusBadRequest, NewErrorResponse(c, usecase.InputReason(err)))
			return
		}
		RespondWithMappedError(c, err, signUpErrorCases, http.StatusInternalServerError, "Error checking username")
		return
	}

	c.JSON(http.StatusOK, NewSuccessResponse("Username is available"))
}
