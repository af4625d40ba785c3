package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// trip (by id or join code) does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing title, end date before start date, deadline
// not before the start date).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrInvalidCategory is returned when a category key is not one of the four
// fixed proposal categories.
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrInvalidCategory = errors.New("invalid category")

// ErrTripClosed is returned when a proposal or vote mutation is attempted on a
// trip whose voting deadline has passed.
// Handlers should map this to HTTP 409 Conflict.
var ErrTripClosed = errors.New("voting is closed for this trip")

// ErrPersistence wraps any failure of the underlying key-value store
// (quota, I/O, serialization). Nothing retries on it.
// Handlers should map this to HTTP 503 Service Unavailable.
var ErrPersistence = errors.New("persistence error")
