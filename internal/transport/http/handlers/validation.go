package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/Amlan029/FeedFormly/internal/usecase"
)

// RegisterValidators installs the "username" rule on gin's validator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("handlers: unexpected validator engine")
	}
	return v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usecase.ValidateUsername(fl.Field().String()) == nil
	})
}

// validationMessage turns a binding error into the first user-facing reason.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request payload"
	}

	fe := verrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "username":
		return usecase.InputReason(usecase.ValidateUsername(fmt.Sprint(fe.Value())))
	case "email":
		return "Invalid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
