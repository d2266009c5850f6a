package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeValidationRequired is used when a required field is missing
	ErrCodeValidationRequired = "ERR_VALIDATION_REQUIRED"
	// ErrCodeValidationFormat is used when a field has invalid format
	ErrCodeValidationFormat = "ERR_VALIDATION_FORMAT"
	// ErrCodeValidationRange is used when a value is out of range
	ErrCodeValidationRange = "ERR_VALIDATION_RANGE"
	// ErrCodeValidationLength is used when a field length is invalid
	ErrCodeValidationLength = "ERR_VALIDATION_LENGTH"
)

// Authentication error codes
const (
	// ErrCodeUnauthorized is used when authentication is required but missing/invalid
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	// ErrCodeForbidden is used when the user lacks permission
	ErrCodeForbidden = "ERR_FORBIDDEN"
	// ErrCodeTokenExpired is used when the auth token has expired
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	// ErrCodeTokenInvalid is used when the auth token is invalid
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
	// ErrCodeConcurrencyConflict is used when optimistic locking fails
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
)

// Business rule error codes
const (
	// ErrCodeInvalidState is used when an operation is invalid for current state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	// ErrCodeBusinessRule is used for generic business rule violations
	ErrCodeBusinessRule = "ERR_BUSINESS_RULE"
	// ErrCodeInsufficientStock is used when a ledger entry has fewer units than requested
	ErrCodeInsufficientStock = "ERR_INSUFFICIENT_STOCK"
	// ErrCodeNoStockAvailable is used when a raffle's entire ledger is exhausted
	ErrCodeNoStockAvailable = "ERR_NO_STOCK_AVAILABLE"
	// ErrCodeInvalidStatusTransition is used for disallowed lifecycle moves
	ErrCodeInvalidStatusTransition = "ERR_INVALID_STATUS_TRANSITION"
	// ErrCodeMemberNotInRaffle is used when the target member is not on the roster
	ErrCodeMemberNotInRaffle = "ERR_MEMBER_NOT_IN_RAFFLE"
	// ErrCodeItemNotInRaffle is used when the target item is not on the ledger
	ErrCodeItemNotInRaffle = "ERR_ITEM_NOT_IN_RAFFLE"
	// ErrCodeDuplicateMember is used when a member would appear twice on a roster
	ErrCodeDuplicateMember = "ERR_DUPLICATE_MEMBER"
	// ErrCodeDuplicateStockEntry is used when an item would appear twice on a ledger
	ErrCodeDuplicateStockEntry = "ERR_DUPLICATE_STOCK_ENTRY"
	// ErrCodeHasDistributions is used when a sync or delete would orphan distribution records
	ErrCodeHasDistributions = "ERR_HAS_DISTRIBUTIONS"
	// ErrCodeCategoryInUse is used when deleting a category that items still reference
	ErrCodeCategoryInUse = "ERR_CATEGORY_IN_USE"
)

// Infrastructure error codes
const (
	// ErrCodeStorageUnavailable is used when the object store is not configured or down
	ErrCodeStorageUnavailable = "ERR_STORAGE_UNAVAILABLE"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
)

// Rate limiting error codes
const (
	// ErrCodeRateLimited is used when rate limit is exceeded
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
	// ErrCodeTooManyRequests is an alias for rate limiting
	ErrCodeTooManyRequests = "ERR_TOO_MANY_REQUESTS"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// General errors
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Validation errors -> 400 Bad Request
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeValidationRequired: http.StatusBadRequest,
	ErrCodeValidationFormat:   http.StatusBadRequest,
	ErrCodeValidationRange:    http.StatusBadRequest,
	ErrCodeValidationLength:   http.StatusBadRequest,

	// Auth errors
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,

	// Resource errors
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	// Business rule errors -> 422 Unprocessable Entity
	ErrCodeInvalidState:            http.StatusUnprocessableEntity,
	ErrCodeBusinessRule:            http.StatusUnprocessableEntity,
	ErrCodeInsufficientStock:       http.StatusUnprocessableEntity,
	ErrCodeNoStockAvailable:        http.StatusUnprocessableEntity,
	ErrCodeInvalidStatusTransition: http.StatusUnprocessableEntity,
	ErrCodeMemberNotInRaffle:       http.StatusUnprocessableEntity,
	ErrCodeItemNotInRaffle:         http.StatusUnprocessableEntity,
	ErrCodeDuplicateMember:         http.StatusUnprocessableEntity,
	ErrCodeDuplicateStockEntry:     http.StatusUnprocessableEntity,
	ErrCodeHasDistributions:        http.StatusUnprocessableEntity,
	ErrCodeCategoryInUse:           http.StatusUnprocessableEntity,

	// Infrastructure errors
	ErrCodeStorageUnavailable: http.StatusServiceUnavailable,

	// Input errors -> 400 Bad Request
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,

	// Rate limiting -> 429 Too Many Requests
	ErrCodeRateLimited:     http.StatusTooManyRequests,
	ErrCodeTooManyRequests: http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// LegacyErrorCodeMapping maps old error codes to new standardized codes
// This is for backward compatibility with existing domain errors
var LegacyErrorCodeMapping = map[string]string{
	"NOT_FOUND":            ErrCodeNotFound,
	"ALREADY_EXISTS":       ErrCodeAlreadyExists,
	"INVALID_INPUT":        ErrCodeInvalidInput,
	"INVALID_STATE":        ErrCodeInvalidState,
	"UNAUTHORIZED":         ErrCodeUnauthorized,
	"FORBIDDEN":            ErrCodeForbidden,
	"CONCURRENCY_CONFLICT": ErrCodeConcurrencyConflict,
	"VALIDATION_ERROR":     ErrCodeValidation,
	"BAD_REQUEST":          ErrCodeBadRequest,
	"INTERNAL_ERROR":       ErrCodeInternal,

	// Raffle lifecycle and allocation rules
	"INSUFFICIENT_STOCK":        ErrCodeInsufficientStock,
	"NO_STOCK_AVAILABLE":        ErrCodeNoStockAvailable,
	"INVALID_STATUS_TRANSITION": ErrCodeInvalidStatusTransition,
	"MEMBER_NOT_IN_RAFFLE":      ErrCodeMemberNotInRaffle,
	"ITEM_NOT_IN_RAFFLE":        ErrCodeItemNotInRaffle,
	"DUPLICATE_MEMBER":          ErrCodeDuplicateMember,
	"DUPLICATE_STOCK_ENTRY":     ErrCodeDuplicateStockEntry,
	"HAS_DISTRIBUTIONS":         ErrCodeHasDistributions,
	"CATEGORY_IN_USE":           ErrCodeCategoryInUse,
	"STORAGE_UNAVAILABLE":       ErrCodeStorageUnavailable,

	// Catalog input validation
	"INVALID_NAME":     ErrCodeInvalidInput,
	"INVALID_DATE":     ErrCodeInvalidInput,
	"INVALID_QUANTITY": ErrCodeInvalidInput,
	"INVALID_LEVEL":    ErrCodeInvalidInput,
	"INVALID_POWER":    ErrCodeInvalidInput,
	"INVALID_RARITY":   ErrCodeInvalidInput,
	"INVALID_CATEGORY": ErrCodeInvalidInput,
	"INVALID_MEMBER":   ErrCodeInvalidInput,
	"INVALID_ITEM":     ErrCodeInvalidInput,
	"INVALID_STATUS":   ErrCodeInvalidInput,
}

// NormalizeErrorCode converts a legacy error code to the standardized format
// If the code is already in the new format or unknown, returns it as-is
func NormalizeErrorCode(code string) string {
	if newCode, ok := LegacyErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}
