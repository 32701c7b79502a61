package dto

import (
	"errors"
	"net/http"
	"strings"

	"github.com/zencrm/backend/internal/domain/publishing"
)

// Cross-cutting error codes used by the HTTP layer itself
const (
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "INTERNAL_ERROR"
	// ErrCodeValidation is used when request binding or validation fails
	ErrCodeValidation = "VALIDATION_ERROR"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeUnauthorized is used when authentication is required but missing or invalid
	ErrCodeUnauthorized = "UNAUTHORIZED"
	// ErrCodeForbidden is used when the acting user lacks permission
	ErrCodeForbidden = "FORBIDDEN"
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "NOT_FOUND"
	// ErrCodeRateLimited is used when the rate limit is exceeded
	ErrCodeRateLimited = "RATE_LIMITED"
	// ErrCodeUpstreamFailed is used when an external portal or feed misbehaves
	ErrCodeUpstreamFailed = "UPSTREAM_FAILED"
	// ErrCodeNotConfigured is used when a server-side integration is missing credentials
	ErrCodeNotConfigured = "NOT_CONFIGURED"
)

// ErrorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes not listed here fall back to the prefix rules in GetHTTPStatus.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeValidation: http.StatusBadRequest,
	ErrCodeBadRequest: http.StatusBadRequest,

	ErrCodeUnauthorized:   http.StatusUnauthorized,
	ErrCodeForbidden:      http.StatusForbidden,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"INVALID_TOKEN":       http.StatusUnauthorized,
	"ACCOUNT_DEACTIVATED": http.StatusForbidden,

	ErrCodeNotFound:        http.StatusNotFound,
	"IMAGE_NOT_FOUND":      http.StatusNotFound,
	"ALREADY_EXISTS":       http.StatusConflict,
	"DUPLICATE_IMAGE":      http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,

	"INVALID_STATE":       http.StatusUnprocessableEntity,
	"IMAGE_LIMIT_REACHED": http.StatusUnprocessableEntity,
	"UPLOAD_NOT_FOUND":    http.StatusUnprocessableEntity,

	ErrCodeRateLimited: http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for a domain error code.
// Validation-style codes answer 400; anything unknown is treated as an
// internal error so broken invariants never leak as client mistakes.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	if strings.HasPrefix(code, "ALREADY_") {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// MapPublishingError translates publishing sentinel errors into an API error
// code and HTTP status. Missing server-side credentials answer 500 so a
// misconfigured integration is never mistaken for a client fault, while
// upstream outages answer 502.
func MapPublishingError(err error) (code string, status int, ok bool) {
	switch {
	case errors.Is(err, publishing.ErrRelayInvalidAction),
		errors.Is(err, publishing.ErrRelayMissingOffer),
		errors.Is(err, publishing.ErrRelayMissingOfferID),
		errors.Is(err, publishing.ErrRelayInvalidOffer):
		return ErrCodeBadRequest, http.StatusBadRequest, true

	case errors.Is(err, publishing.ErrPlatformUnknown):
		return ErrCodeNotFound, http.StatusNotFound, true

	case errors.Is(err, publishing.ErrPortalNotConfigured),
		errors.Is(err, publishing.ErrPortalNotEnabled),
		errors.Is(err, publishing.ErrFeedNotConfigured):
		return ErrCodeNotConfigured, http.StatusInternalServerError, true

	case errors.Is(err, publishing.ErrPortalAuthFailed),
		errors.Is(err, publishing.ErrFeedAuthFailed):
		return ErrCodeUpstreamFailed, http.StatusBadGateway, true

	case errors.Is(err, publishing.ErrPortalUnavailable),
		errors.Is(err, publishing.ErrPortalRequestFailed),
		errors.Is(err, publishing.ErrPortalInvalidResponse),
		errors.Is(err, publishing.ErrFeedUnavailable),
		errors.Is(err, publishing.ErrFeedInvalidBody):
		return ErrCodeUpstreamFailed, http.StatusBadGateway, true
	}
	return "", 0, false
}
