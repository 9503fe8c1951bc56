package common

import "errors"

// Sentinel errors shared across services. The HTTP boundary maps these to
// status codes with errors.Is; anything unclassified becomes a 500.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrConflict           = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrUpstream           = errors.New("upstream service unavailable")
)
