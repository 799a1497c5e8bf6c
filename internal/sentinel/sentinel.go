package sentinel

import "errors"

// Sentinel store errors. Ledger stores return these (optionally wrapped)
// so the service can translate them into domain errors exactly once.
var (
	ErrNotFound     = errors.New("not found")
	ErrAlreadyUsed  = errors.New("already used")
	ErrInvalidInput = errors.New("invalid input")
)
