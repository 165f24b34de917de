package shared

import "fmt"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewInvalidTransitionError is returned when a status transition is not
// allowed by the entity's transition graph
func NewInvalidTransitionError(entityType EntityType, from, to string) *DomainError {
	return &DomainError{
		Code:    "INVALID_TRANSITION",
		Message: fmt.Sprintf("%s cannot transition from %s to %s", entityType, from, to),
	}
}

// NewInsufficientStockError is returned when a reservation exceeds the
// remaining availability of a ticket type
func NewInsufficientStockError(requested, available int) *DomainError {
	return &DomainError{
		Code:    "INSUFFICIENT_STOCK",
		Message: fmt.Sprintf("requested %d tickets but only %d available", requested, available),
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrRegistrationClosed  = NewDomainError("REGISTRATION_CLOSED", "Registration is closed for this event")
	ErrGuestNotAllowed     = NewDomainError("GUEST_NOT_ALLOWED", "Guest checkout is not allowed for this event")
	ErrTicketTypeNotOnSale = NewDomainError("TICKET_TYPE_NOT_ON_SALE", "Ticket type is not currently on sale")
	ErrQuantityExceedsMax  = NewDomainError("QUANTITY_EXCEEDS_LIMIT", "Requested quantity exceeds the per-order limit")
	ErrCohortFull          = NewDomainError("COHORT_FULL", "Cohort has reached its capacity")
	ErrMentorInactive      = NewDomainError("MENTOR_INACTIVE", "Mentor is not accepting sessions")
	ErrMentorOverbooked    = NewDomainError("MENTOR_OVERBOOKED", "Mentor has reached the weekly session limit")
	ErrSessionConflict     = NewDomainError("SESSION_CONFLICT", "Requested slot overlaps an existing session")
)
