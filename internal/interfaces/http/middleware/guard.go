package middleware

import (
	"errors"
	"net/http"

	"github.com/canteen/client/internal/domain/shared"
	"github.com/canteen/client/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// Guard refuses the request when check fails. check is usually
// AuthService.RequireAdmin or AuthService.RequireCustomer.
func Guard(check func() error) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := check()
		if err == nil {
			c.Next()
			return
		}
		code := dto.ErrCodeUnauthorized
		message := err.Error()
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) {
			code = dto.NormalizeErrorCode(domainErr.Code)
			message = domainErr.Message
		}
		status := dto.GetHTTPStatus(code)
		if status == http.StatusInternalServerError {
			status = http.StatusUnauthorized
		}
		c.AbortWithStatusJSON(status, dto.NewErrorResponseWithRequestID(code, message, GetRequestID(c)))
	}
}
