package middleware

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/canteen/client/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// SetupValidator names binding errors after the JSON keys the kiosk sends
func SetupValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// HandleValidationError answers 400 with one detail per rejected field
func HandleValidationError(c *gin.Context, err error) {
	var details []dto.ValidationDetail
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, e := range fieldErrs {
			details = append(details, dto.ValidationDetail{
				Field:   e.Field(),
				Message: fieldMessage(e),
			})
		}
	}
	c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse("Please check the highlighted fields", GetRequestID(c), details))
}

// fieldMessage covers the tags used by the kiosk request DTOs: item ids,
// notes and chat text (required, max), payment method, role and mode
// (oneof), and table number (gt).
func fieldMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "Required"
	case "max":
		return "At most " + e.Param() + " characters"
	case "oneof":
		return "One of " + strings.ReplaceAll(e.Param(), " ", ", ")
	case "gt":
		return "Must be above " + e.Param()
	}
	return "Invalid value"
}
