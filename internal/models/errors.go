package models

import (
	"errors"
	"fmt"
)

// ErrValidation tags structural validation failures so callers can map
// them to a bad-request outcome without matching message text.
var ErrValidation = errors.New("validation")

func fieldError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}
