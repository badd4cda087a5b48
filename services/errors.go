package services

import "errors"

// Errors returned by the service layer. Engine errors from the brackets
// package pass through unchanged and are matched with errors.Is.
var (
	ErrValidationFailed    = errors.New("validation failed")
	ErrTournamentNotFound  = errors.New("tournament not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrTournamentConflict  = errors.New("tournament already exists")
	ErrTournamentCancelled = errors.New("tournament is cancelled")
	ErrDuplicateCategory   = errors.New("category name already used in this tournament")
)
