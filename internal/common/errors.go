// Package common defines shared constants and sentinel errors used across
// userkeeper components. Callers should use errors.Is to match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrNotFound   = errors.New("not found")
	ErrEmailTaken = errors.New("email already taken")

	// Service-level errors.
	ErrInternal           = errors.New("internal error")
	ErrValidation         = errors.New("validation error")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")

	// Auth errors. A missing token and an invalid one are reported with
	// different HTTP statuses, so they stay distinct.
	ErrNoToken      = errors.New("no token provided")
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired wraps ErrInvalidToken.
	ErrTokenExpired = fmt.Errorf("%w: token expired", ErrInvalidToken)
)
