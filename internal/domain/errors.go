package domain

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrUnavailable        = errors.New("vehicle is not available for the requested dates")
	ErrInvalidDateRange   = errors.New("invalid date range")
	ErrAlreadyReturned    = errors.New("rental has already been returned")
	ErrInvalidReturnDate  = errors.New("return date is before the rental start date")
	ErrIO                 = errors.New("persistence failure")
	ErrDuplicateID        = errors.New("id already exists")
	ErrInvalidEntity      = errors.New("validation failed")
	ErrRentalLimitReached = errors.New("active rental limit reached")
	ErrHasActiveRentals   = errors.New("entity has active rentals")
	ErrSelfDeletion       = errors.New("staff cannot delete their own account")
	ErrForbidden          = errors.New("forbidden")
)
