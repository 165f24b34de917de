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

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
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

// State machine error codes
const (
	// ErrCodeInvalidState is used when an operation is invalid for the current state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	// ErrCodeInvalidTransition is used when a status transition is not allowed
	ErrCodeInvalidTransition = "ERR_INVALID_TRANSITION"
)

// Ticketing error codes
const (
	// ErrCodeInsufficientStock is used when ticket stock cannot cover a booking
	ErrCodeInsufficientStock = "ERR_INSUFFICIENT_STOCK"
	// ErrCodeRegistrationClosed is used when an event does not accept bookings
	ErrCodeRegistrationClosed = "ERR_REGISTRATION_CLOSED"
	// ErrCodeGuestNotAllowed is used when an event requires an account to book
	ErrCodeGuestNotAllowed = "ERR_GUEST_NOT_ALLOWED"
	// ErrCodeTicketTypeNotOnSale is used when a ticket type is outside its sale window
	ErrCodeTicketTypeNotOnSale = "ERR_TICKET_TYPE_NOT_ON_SALE"
	// ErrCodeQuantityExceedsLimit is used when a booking breaks per-order limits
	ErrCodeQuantityExceedsLimit = "ERR_QUANTITY_EXCEEDS_LIMIT"
	// ErrCodeInvalidTicketType is used when a ticket type does not match the event
	ErrCodeInvalidTicketType = "ERR_INVALID_TICKET_TYPE"
)

// Incubation error codes
const (
	// ErrCodeCohortFull is used when a cohort has no remaining capacity
	ErrCodeCohortFull = "ERR_COHORT_FULL"
	// ErrCodeCohortNotOpen is used when a cohort does not accept applications
	ErrCodeCohortNotOpen = "ERR_COHORT_NOT_OPEN"
)

// Mentorship error codes
const (
	// ErrCodeMentorInactive is used when booking against a deactivated mentor
	ErrCodeMentorInactive = "ERR_MENTOR_INACTIVE"
	// ErrCodeMentorOverbooked is used when a mentor's weekly cap is reached
	ErrCodeMentorOverbooked = "ERR_MENTOR_OVERBOOKED"
	// ErrCodeSessionConflict is used when a session overlaps an existing one
	ErrCodeSessionConflict = "ERR_SESSION_CONFLICT"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Input errors -> 400 Bad Request
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,
	ErrCodeValidation:   http.StatusBadRequest,

	// Resource errors
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	// Business rule violations -> 422 Unprocessable Entity
	ErrCodeInvalidState:         http.StatusUnprocessableEntity,
	ErrCodeInvalidTransition:    http.StatusUnprocessableEntity,
	ErrCodeInsufficientStock:    http.StatusUnprocessableEntity,
	ErrCodeRegistrationClosed:   http.StatusUnprocessableEntity,
	ErrCodeGuestNotAllowed:      http.StatusUnprocessableEntity,
	ErrCodeTicketTypeNotOnSale:  http.StatusUnprocessableEntity,
	ErrCodeQuantityExceedsLimit: http.StatusUnprocessableEntity,
	ErrCodeInvalidTicketType:    http.StatusUnprocessableEntity,
	ErrCodeCohortFull:           http.StatusUnprocessableEntity,
	ErrCodeCohortNotOpen:        http.StatusUnprocessableEntity,
	ErrCodeMentorInactive:       http.StatusUnprocessableEntity,
	ErrCodeMentorOverbooked:     http.StatusUnprocessableEntity,

	// Scheduling conflicts -> 409 Conflict
	ErrCodeSessionConflict: http.StatusConflict,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not found.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain layer error codes to the
// standardized API codes
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":            ErrCodeNotFound,
	"ALREADY_EXISTS":       ErrCodeAlreadyExists,
	"CONCURRENCY_CONFLICT": ErrCodeConcurrencyConflict,

	"INVALID_STATE":      ErrCodeInvalidState,
	"INVALID_TRANSITION": ErrCodeInvalidTransition,

	"INSUFFICIENT_STOCK":      ErrCodeInsufficientStock,
	"REGISTRATION_CLOSED":     ErrCodeRegistrationClosed,
	"GUEST_NOT_ALLOWED":       ErrCodeGuestNotAllowed,
	"TICKET_TYPE_NOT_ON_SALE": ErrCodeTicketTypeNotOnSale,
	"QUANTITY_EXCEEDS_LIMIT":  ErrCodeQuantityExceedsLimit,
	"INVALID_TICKET_TYPE":     ErrCodeInvalidTicketType,

	"COHORT_FULL":     ErrCodeCohortFull,
	"COHORT_NOT_OPEN": ErrCodeCohortNotOpen,

	"MENTOR_INACTIVE":   ErrCodeMentorInactive,
	"MENTOR_OVERBOOKED": ErrCodeMentorOverbooked,
	"SESSION_CONFLICT":  ErrCodeSessionConflict,

	// constructor and input guards
	"INVALID_INPUT":          ErrCodeInvalidInput,
	"INVALID_NAME":           ErrCodeInvalidInput,
	"INVALID_SLUG":           ErrCodeInvalidInput,
	"INVALID_SCHEDULE":       ErrCodeInvalidInput,
	"INVALID_PRICE":          ErrCodeInvalidInput,
	"INVALID_QUANTITY":       ErrCodeInvalidInput,
	"INVALID_EVENT":          ErrCodeInvalidInput,
	"INVALID_EMAIL":          ErrCodeInvalidInput,
	"INVALID_DESCRIPTION":    ErrCodeInvalidInput,
	"INVALID_AMOUNT":         ErrCodeInvalidInput,
	"INVALID_CAPACITY":       ErrCodeInvalidInput,
	"INVALID_COHORT":         ErrCodeInvalidInput,
	"INVALID_CUSTOMER":       ErrCodeInvalidInput,
	"INVALID_FOUNDER_NAME":   ErrCodeInvalidInput,
	"INVALID_STARTUP_NAME":   ErrCodeInvalidInput,
	"INVALID_APPLICATION":    ErrCodeInvalidInput,
	"INVALID_MENTOR":         ErrCodeInvalidInput,
	"INVALID_INTERVIEW_TIME": ErrCodeInvalidInput,
	"INVALID_BILLABLE":       ErrCodeInvalidInput,
	"INVALID_INVOICE":        ErrCodeInvalidInput,
	"INVALID_NUMBER":         ErrCodeInvalidInput,
	"INVALID_ORDER_NUMBER":   ErrCodeInvalidInput,
	"INVALID_TAX_RATE":       ErrCodeInvalidInput,
	"NO_ITEMS":               ErrCodeInvalidInput,
}

// NormalizeErrorCode converts a domain error code to the standardized
// API format. Codes already in the new format or unknown codes are
// returned as-is.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := DomainErrorCodeMapping[code]; ok {
		return apiCode
	}
	return code
}
