package dto

import (
	"net/http"
	"strings"
)

// Domain error codes are mapped onto HTTP status codes here so the handlers
// never switch on error strings themselves.

// errorCodeHTTPStatus maps domain error codes to HTTP status codes
var errorCodeHTTPStatus = map[string]int{
	// Missing resources -> 404 Not Found
	"NOT_FOUND":      http.StatusNotFound,
	"LINE_NOT_FOUND": http.StatusNotFound,

	// Write races and duplicates -> 409 Conflict
	"ALREADY_EXISTS":       http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,
	"COUPON_ALREADY_USED":  http.StatusConflict,

	// Business rule violations -> 422 Unprocessable Entity
	"INVALID_STATE":              http.StatusUnprocessableEntity,
	"INVALID_TRANSITION":         http.StatusUnprocessableEntity,
	"INVALID_COUPON_STATE":       http.StatusUnprocessableEntity,
	"INVALID_ORDER_STATE":        http.StatusUnprocessableEntity,
	"INVALID_TRADE_STATE":        http.StatusUnprocessableEntity,
	"INSUFFICIENT_STOCK":         http.StatusUnprocessableEntity,
	"PROMOTIONAL_LIMIT_EXCEEDED": http.StatusUnprocessableEntity,
	"TRADE_NOT_APPROVED":         http.StatusUnprocessableEntity,
	"TRADE_NOT_ALLOWED":          http.StatusUnprocessableEntity,
	"QUANTITY_EXCEEDS_ELIGIBLE":  http.StatusUnprocessableEntity,
	"EMPTY_CART":                 http.StatusUnprocessableEntity,
	"EMPTY_ORDER":                http.StatusUnprocessableEntity,
	"PRODUCT_INACTIVE":           http.StatusUnprocessableEntity,

	// Malformed input -> 400 Bad Request
	"INVALID_INPUT": http.StatusBadRequest,
	"BAD_REQUEST":   http.StatusBadRequest,

	// Internal failures
	"INTERNAL_ERROR": http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for a domain error code.
// Unmapped INVALID_* codes are treated as input validation failures; anything
// else unknown is reported as an internal error.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
