package domain

import "errors"

// Domain errors (no external dependencies).
var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrAlreadyPosted    = errors.New("document already posted")
	ErrItemNotFound     = errors.New("stock item not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrUnauthorized     = errors.New("unauthorized")
)
