package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	breakdowndomain "github.com/smallbiznis/storefront/internal/breakdown/domain"
	"github.com/smallbiznis/storefront/internal/commission"
	lineitemdomain "github.com/smallbiznis/storefront/internal/lineitem/domain"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrInternal       = errors.New("internal_error")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
	ErrTooLarge       = errors.New("payload_too_large")
)

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
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if isValidationError(err) {
		code := validationErrorCode(err)
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: validationErrorMessage(err, code),
				},
			},
		}
	}

	switch {
	case errors.Is(err, breakdowndomain.ErrBreakdownRejected):
		return http.StatusUnprocessableEntity, errorPayload{
			Type:    "breakdown_rejected",
			Message: "breakdown rejected",
			Errors:  rowValidationErrors(err),
		}
	case errors.Is(err, ErrTooLarge):
		return http.StatusRequestEntityTooLarge, errorPayload{
			Type:    "payload_too_large",
			Message: "payload too large",
		}
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func classifyErrorForLog(err error) (string, string) {
	status, payload := mapError(err)
	code := payload.Type
	if len(payload.Errors) > 0 {
		code = payload.Errors[0].Code
	}
	if status >= http.StatusInternalServerError {
		return "internal_error", code
	}
	return payload.Type, code
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, breakdowndomain.ErrInvalidRole),
		errors.Is(err, breakdowndomain.ErrInvalidCurrency),
		errors.Is(err, lineitemdomain.ErrInvalidRole),
		errors.Is(err, lineitemdomain.ErrInvalidSnapshot),
		errors.Is(err, lineitemdomain.ErrInvalidLineItem):
		return true
	default:
		return false
	}
}

func validationErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return "invalid_request"
	case errors.Is(err, breakdowndomain.ErrInvalidRole), errors.Is(err, lineitemdomain.ErrInvalidRole):
		return "invalid_role"
	case errors.Is(err, breakdowndomain.ErrInvalidCurrency):
		return "invalid_currency"
	case errors.Is(err, lineitemdomain.ErrInvalidLineItem):
		return "invalid_line_item"
	case errors.Is(err, lineitemdomain.ErrInvalidSnapshot):
		return "invalid_snapshot"
	default:
		return err.Error()
	}
}

func validationErrorField(code string) string {
	if code == "invalid_request" {
		return "request"
	}
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	return ""
}

func validationErrorMessage(err error, code string) string {
	switch code {
	case "invalid_request":
		return "invalid request"
	case "invalid_role":
		return "role must be customer or provider"
	case "invalid_currency":
		return "currency must be a 3-letter ISO 4217 code"
	case "invalid_line_item", "invalid_snapshot":
		return err.Error()
	default:
		return "invalid value"
	}
}

// rowValidationErrors lists each omitted row of a rejected breakdown.
func rowValidationErrors(err error) []ValidationError {
	var out []ValidationError
	for _, rowErr := range collectRowErrors(err) {
		code := "invalid_row"
		var invalid *commission.InvalidCommissionError
		switch {
		case errors.As(rowErr, &invalid):
			code = string(invalid.Reason)
		case errors.Is(rowErr, lineitemdomain.ErrMalformedLineTotal):
			code = lineitemdomain.ErrMalformedLineTotal.Error()
		}
		out = append(out, ValidationError{
			Field:   string(rowErr.Kind),
			Code:    code,
			Message: rowErr.Error(),
		})
	}
	return out
}

func collectRowErrors(err error) []*breakdowndomain.RowError {
	if err == nil {
		return nil
	}
	var rowErr *breakdowndomain.RowError
	if errors.As(err, &rowErr) {
		if joined, ok := err.(interface{ Unwrap() []error }); ok {
			var out []*breakdowndomain.RowError
			for _, inner := range joined.Unwrap() {
				out = append(out, collectRowErrors(inner)...)
			}
			return out
		}
		if direct, ok := err.(*breakdowndomain.RowError); ok {
			return []*breakdowndomain.RowError{direct}
		}
		return collectRowErrors(errors.Unwrap(err))
	}
	return nil
}
