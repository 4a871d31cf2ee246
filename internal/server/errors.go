package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	invoicedomain "github.com/smallbiznis/invoicely/internal/invoice/domain"
)

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
)

type failureResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// ErrorHandlingMiddleware turns errors recorded on the gin context into one
// consistent failure payload, after the handler chain finishes.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.AbortWithStatusJSON(status, payload)
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, failureResponse) {
	switch {
	case isValidationError(err):
		return http.StatusBadRequest, failure("validation error", err)
	case isNotFoundError(err):
		return http.StatusNotFound, failure("not found", err)
	case errors.Is(err, ErrUnauthorized), errors.Is(err, invoicedomain.ErrInvalidUser):
		return http.StatusUnauthorized, failure("unauthorized", err)
	case errors.Is(err, invoicedomain.ErrDuplicateNumber):
		return http.StatusConflict, failure("conflict", err)
	case errors.Is(err, invoicedomain.ErrExportFailed):
		return http.StatusBadGateway, failure("export failed", err)
	default:
		return http.StatusInternalServerError, failureResponse{
			Message: "internal server error",
			Error:   "internal_error",
		}
	}
}

func failure(message string, err error) failureResponse {
	return failureResponse{Message: message, Error: sentinelCode(err)}
}

// sentinelCode unwraps to the innermost sentinel so the payload carries the
// stable snake_case code, not a wrapped chain.
func sentinelCode(err error) string {
	for {
		unwrapped := errors.Unwrap(err)
		if unwrapped == nil {
			return err.Error()
		}
		err = unwrapped
	}
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, invoicedomain.ErrInvalidInvoiceID),
		errors.Is(err, invoicedomain.ErrIndexOutOfRange),
		errors.Is(err, invoicedomain.ErrLastItem),
		errors.Is(err, invoicedomain.ErrInvalidItemField),
		errors.Is(err, invoicedomain.ErrInvalidModifierKind),
		errors.Is(err, invoicedomain.ErrInvalidStatus),
		errors.Is(err, invoicedomain.ErrSenderNameRequired),
		errors.Is(err, invoicedomain.ErrSenderEmailRequired),
		errors.Is(err, invoicedomain.ErrReceiverNameRequired),
		errors.Is(err, invoicedomain.ErrItemsRequired),
		errors.Is(err, invoicedomain.ErrInvalidPageToken):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, invoicedomain.ErrInvoiceNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

// classifyErrorForLog labels request log lines for the logging middleware.
func classifyErrorForLog(err error) (string, string) {
	status, payload := mapError(err)
	switch status {
	case http.StatusBadRequest:
		return "validation", payload.Error
	case http.StatusUnauthorized:
		return "unauthorized", payload.Error
	case http.StatusNotFound:
		return "not_found", payload.Error
	case http.StatusConflict:
		return "conflict", payload.Error
	case http.StatusBadGateway:
		return "export", payload.Error
	default:
		return "internal", payload.Error
	}
}
