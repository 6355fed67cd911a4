package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrInternal           = errors.New("internal error")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotConfirmed       = errors.New("email not confirmed")
	ErrAlreadyExists      = errors.New("already exists")

	ErrInvalidToken   = errors.New("invalid token")
	ErrExpiredToken   = errors.New("token expired")
	ErrWrongPurpose   = errors.New("wrong token purpose")
	ErrMalformedToken = errors.New("malformed token")

	ErrRevoked            = errors.New("token revoked")
	ErrUnknownSubject     = errors.New("unknown subject")
	ErrStaleRefreshToken  = errors.New("stale refresh token")
	ErrServiceUnavailable = errors.New("service unavailable")
)

func NewInvalidArgument(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, msg)
}

func WrapInternal(err error, context string) error {
	return fmt.Errorf("%w: %s: %v", ErrInternal, context, err)
}

// WrapUnavailable marks an error as a retryable infrastructure failure.
// Callers treat it as "cannot confirm", never as "confirmed absent".
func WrapUnavailable(err error, context string) error {
	return fmt.Errorf("%w: %s: %v", ErrServiceUnavailable, context, err)
}

func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

func IsInternal(err error) bool {
	return errors.Is(err, ErrInternal)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsInvalidCredentials(err error) bool {
	return errors.Is(err, ErrInvalidCredentials)
}

func IsNotConfirmed(err error) bool {
	return errors.Is(err, ErrNotConfirmed)
}

func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

func IsInvalidToken(err error) bool {
	return errors.Is(err, ErrInvalidToken)
}

func IsExpiredToken(err error) bool {
	return errors.Is(err, ErrExpiredToken)
}

func IsWrongPurpose(err error) bool {
	return errors.Is(err, ErrWrongPurpose)
}

func IsMalformedToken(err error) bool {
	return errors.Is(err, ErrMalformedToken)
}

func IsRevoked(err error) bool {
	return errors.Is(err, ErrRevoked)
}

func IsUnknownSubject(err error) bool {
	return errors.Is(err, ErrUnknownSubject)
}

func IsStaleRefreshToken(err error) bool {
	return errors.Is(err, ErrStaleRefreshToken)
}

func IsServiceUnavailable(err error) bool {
	return errors.Is(err, ErrServiceUnavailable)
}

// IsTokenError reports whether err is any of the decode-time failures.
func IsTokenError(err error) bool {
	return IsInvalidToken(err) || IsExpiredToken(err) ||
		IsWrongPurpose(err) || IsMalformedToken(err)
}
