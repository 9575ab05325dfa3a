package validation

import (
	"errors"
	"regexp"
)

var (
	ErrPropertyIDRequired = errors.New("property id is required")
	ErrPropertyIDInvalid  = errors.New("invalid property id")
)

const MaxPropertyIDLength = 64

var propertyIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidatePropertyID accepts the opaque ids the property API hands out:
// numeric, uuid or slug-like.
func ValidatePropertyID(id string) error {
	if id == "" {
		return ErrPropertyIDRequired
	}
	if len(id) > MaxPropertyIDLength || !propertyIDPattern.MatchString(id) {
		return ErrPropertyIDInvalid
	}
	return nil
}
