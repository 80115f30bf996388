// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyInstruction is returned when a training pair has an empty instruction.
	ErrEmptyInstruction = errors.New("instruction cannot be empty")

	// ErrEmptyResponse is returned when a training pair has an empty response.
	ErrEmptyResponse = errors.New("response cannot be empty")

	// ErrEmptySourceText is returned when source text is empty or whitespace-only.
	ErrEmptySourceText = errors.New("source text cannot be empty")

	// ErrNoPairs is returned when a generation result would contain no pairs.
	ErrNoPairs = errors.New("result must contain at least one pair")
)
