package dto

import (
	"net/http"
	"time"

	"github.com/guttosm/translation-service/internal/domain/model"
)

const (
	// ErrCodeInvalidRequest indicates an invalid request.
	ErrCodeInvalidRequest = "invalid_request"
	// ErrCodeValidation indicates one or more fields failed validation.
	ErrCodeValidation = "validation_failed"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal = "internal_error"
	// ErrCodeUnauthorized indicates missing or invalid authentication.
	ErrCodeUnauthorized = "unauthorized"
	// ErrCodeForbidden indicates insufficient permissions.
	ErrCodeForbidden = "forbidden"
	// ErrCodeNotFound indicates a resource was not found.
	ErrCodeNotFound = "not_found"
	// ErrCodeRateLimit indicates rate limit exceeded.
	ErrCodeRateLimit = "rate_limit_exceeded"
	// ErrCodeConflict indicates a conflict with current state.
	ErrCodeConflict = "conflict"
	// ErrCodeTimeout indicates a request timeout.
	ErrCodeTimeout = "timeout"
	// ErrCodeUnavailable indicates a dependency is down.
	ErrCodeUnavailable = "service_unavailable"
)

// SuccessResponse wraps successful API responses.
// @Description Successful API response wrapper
type SuccessResponse struct {
	Data      interface{} `json:"data,omitempty" swaggertype:"object"`
	Message   string      `json:"message,omitempty" example:"Translation saved successfully."`
	Meta      interface{} `json:"meta,omitempty" swaggertype:"object"`
	Links     *PageLinks  `json:"links,omitempty"`
	RequestID string      `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp time.Time   `json:"timestamp" example:"2025-01-28T10:00:00Z"`
} // @name SuccessResponse

// ErrorResponse represents a standardized error response for the API.
// @Description Standardized error response
type ErrorResponse struct {
	Error     string            `json:"error" example:"validation_failed"`
	Message   string            `json:"message,omitempty" example:"The given data was invalid."`
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp time.Time         `json:"timestamp" example:"2025-01-28T10:00:00Z"`
} // @name ErrorResponse

// PageMeta describes the position of a page in a paginated list.
type PageMeta struct {
	CurrentPage int   `json:"current_page" example:"1"`
	LastPage    int   `json:"last_page" example:"5"`
	PerPage     int   `json:"per_page" example:"20"`
	Total       int64 `json:"total" example:"97"`
	From        *int  `json:"from"`
	To          *int  `json:"to"`
} // @name PageMeta

// PageLinks are absolute URLs to neighbouring pages; absent neighbours are null.
type PageLinks struct {
	First string  `json:"first"`
	Last  string  `json:"last"`
	Prev  *string `json:"prev"`
	Next  *string `json:"next"`
} // @name PageLinks

// ExportMeta accompanies an export payload.
type ExportMeta struct {
	CurrentLocale string             `json:"current_locale" example:"en_US"`
	OtherLocales  map[string]string  `json:"other_locales"`
	Performance   *model.ExportStats `json:"performance,omitempty"`
} // @name ExportMeta

// NewError creates a new ErrorResponse with the given code and message.
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{
		Error:     code,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// WithRequestID adds a request ID to the error response.
func (e ErrorResponse) WithRequestID(requestID string) ErrorResponse {
	e.RequestID = requestID
	return e
}

// ErrCodeFromStatus returns the appropriate error code for an HTTP status.
func ErrCodeFromStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return ErrCodeInvalidRequest
	case http.StatusUnprocessableEntity:
		return ErrCodeValidation
	case http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case http.StatusForbidden:
		return ErrCodeForbidden
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusConflict:
		return ErrCodeConflict
	case http.StatusTooManyRequests:
		return ErrCodeRateLimit
	case http.StatusGatewayTimeout, http.StatusRequestTimeout:
		return ErrCodeTimeout
	case http.StatusServiceUnavailable:
		return ErrCodeUnavailable
	default:
		return ErrCodeInternal
	}
}
