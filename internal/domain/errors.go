package domain

import "errors"

// Domain errors
var (
	ErrInvalidIdentity = errors.New("caller has no handle")
	ErrInvalidAmount   = errors.New("amount must be a positive number")
	ErrInvalidRange    = errors.New("invalid date range")
	ErrDuplicateTag    = errors.New("tag already exists")
	ErrUnavailable     = errors.New("store unavailable")
	ErrUserNotFound    = errors.New("user not found")
	ErrTagNotFound     = errors.New("tag not found")
	ErrTagNameRequired = errors.New("tag name is required")
	ErrTagNameTooLong  = errors.New("tag name exceeds maximum length")
	ErrInvalidType     = errors.New("invalid transaction type")
)

// Validation constants
const (
	MaxTagNameLength = 64
)
