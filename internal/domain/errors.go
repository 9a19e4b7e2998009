package domain

import "errors"

// Sentinel errors for the domain layer.
var (
	ErrEmptyName   = errors.New("domain: name must not be empty")
	ErrDuplicateID = errors.New("domain: duplicate id")
)
