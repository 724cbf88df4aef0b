package amortization

import "errors"

// Input errors. They are deterministic given the input and never retryable;
// callers match them with errors.Is.
var (
	// ErrInvalidTerm is returned when the loan term is zero or negative.
	ErrInvalidTerm = errors.New("invalid loan term")

	// ErrInvalidAmount is returned when the principal is not positive.
	ErrInvalidAmount = errors.New("invalid loan amount")

	// ErrInvalidRate is returned when the annual interest rate is not positive.
	ErrInvalidRate = errors.New("invalid interest rate")

	// ErrInvalidDate is returned when the start date is missing or unparseable.
	ErrInvalidDate = errors.New("invalid start date")
)
