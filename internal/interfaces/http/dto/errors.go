package dto

import (
	"net/http"
	"strings"
)

// Boundary error codes for failures that originate in the HTTP layer itself
// rather than in the domain.
const (
	// ErrCodeBadRequest is used for malformed request bodies and parameters
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeUnauthorized is used when the session is missing or invalid
	ErrCodeUnauthorized = "UNAUTHORIZED"
	// ErrCodeInternal is used for uncategorized failures
	ErrCodeInternal = "INTERNAL"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes. Codes
// not listed here fall through to the shape-based rules in GetHTTPStatus.
var errorCodeHTTPStatus = map[string]int{
	// Absent resources
	"NOT_FOUND":          http.StatusNotFound,
	"ORDER_NOT_FOUND":    http.StatusNotFound,
	"LABEL_NOT_FOUND":    http.StatusNotFound,
	"TEMPLATE_NOT_FOUND": http.StatusNotFound,

	// State conflicts: the request was well-formed but the aggregate is not
	// in a state that permits it
	"ALREADY_EXISTS":        http.StatusConflict,
	"ORDER_ALREADY_SHIPPED": http.StatusConflict,
	"ORDER_NOT_SHIPPED":     http.StatusConflict,
	"INVALID_STATE":         http.StatusConflict,

	// Validation failures without an INVALID_ prefix
	"TEMPLATE_NO_VARIABLES": http.StatusBadRequest,

	// A generate call against a template whose variables the order cannot fill
	"TEMPLATE_VARIABLE_UNRESOLVED": http.StatusUnprocessableEntity,

	// Auth and downstream failures
	"UNAUTHORIZED":     http.StatusUnauthorized,
	"EXTERNAL_SERVICE": http.StatusBadGateway,

	ErrCodeBadRequest: http.StatusBadRequest,
	ErrCodeInternal:   http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for a domain error code.
// Unknown codes that look like validation errors map to 400; everything
// else is treated as internal.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	if strings.HasSuffix(code, "_NOT_FOUND") {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
