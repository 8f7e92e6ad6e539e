// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidTransition is returned when a revision record transition is
	// attempted on a record that is already in a terminal state.
	ErrInvalidTransition = errors.New("invalid revision record transition")

	// ErrInvalidDate is returned when a revision record is postponed to a
	// date that is not a future calendar day.
	ErrInvalidDate = errors.New("postpone date must be in the future")

	// ErrInvalidErrorType is returned when a failure's error category is not
	// one of the known values.
	ErrInvalidErrorType = errors.New("invalid error type")
)
