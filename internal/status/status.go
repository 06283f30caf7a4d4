package status

import "errors"

var (
	ErrNoSession         = errors.New("session: no session record")
	ErrLoginRequired     = errors.New("booking: please login and then proceed to booking")
	ErrBookingNotAllowed = errors.New("booking: only customers can book tickets")
	ErrTicketSelection   = errors.New("booking: please select a ticket category and number of tickets")
	ErrIncompleteDraft   = errors.New("event: required event fields are empty")
	ErrInvalidDraft      = errors.New("event: draft has invalid fields")
	ErrEventIDMissing    = errors.New("event: backend reply has no event id")
	ErrValidation        = errors.New("validation: please fix the errors before submitting")
	ErrNotFound          = errors.New("backend: resource not found")
)
