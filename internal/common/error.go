// Package common defines shared constants and sentinel errors used across
// the auth service layers. Callers should use errors.Is to match these
// values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Registration conflicts. Both match ErrorAlreadyExists.
	ErrorEmailTaken = fmt.Errorf("email %w", ErrorAlreadyExists)
	ErrorLoginTaken = fmt.Errorf("login %w", ErrorAlreadyExists)

	// Service-level errors (generic/internal flow control).
	ErrorInternal           = errors.New("internal error")
	ErrorInvalidCredentials = errors.New("invalid login or password")
	ErrorEmailNotVerified   = errors.New("email not verified")

	// Validation errors (boundary constraints).
	ErrorValidation = errors.New("validation error")

	// Token lifecycle errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
	ErrWrongPurpose = errors.New("wrong token purpose")
)
