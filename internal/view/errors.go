package view

import (
	"errors"
	"strings"
)

var (
	ErrPropertyUnavailable = errors.New("property could not be loaded")
	ErrLoginRequired       = errors.New("login required")
	ErrValidation          = errors.New("validation failed")
	ErrFavoriteFailed      = errors.New("favorite update failed")
	ErrInquiryFailed       = errors.New("inquiry could not be sent")
	ErrViewClosed          = errors.New("view closed")

	ErrUnknownFilterField = errors.New("unknown filter field")
	ErrInvalidFilterValue = errors.New("invalid filter value")
	ErrUnknownAction      = errors.New("unknown filter action")
	ErrUnknownSortKey     = errors.New("unknown sort key")
	ErrUnknownViewMode    = errors.New("unknown view mode")
	ErrInvalidCategory    = errors.New("invalid search category")
)

// ValidationError lists the inquiry fields left empty.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "please fill in all required fields: " + strings.Join(e.Missing, ", ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
