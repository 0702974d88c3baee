package services

import "errors"

// Failure categories shared across services. Handlers map these onto
// HTTP statuses; everything else surfaces as a 500.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNoCandidates = errors.New("no listings found for this category")
	ErrUnauthorized = errors.New("not allowed")
	ErrCodeMismatch = errors.New("verification code does not match")
	ErrNotFound     = errors.New("not found")
)
