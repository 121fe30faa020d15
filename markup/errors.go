package markup

import (
	"errors"
	"fmt"
)

// ErrInvalidValue is returned when an attribute value cannot be parsed.
var ErrInvalidValue = errors.New("markup: invalid attribute value")

// AttributeError describes an attribute whose value could not be parsed.
type AttributeError struct {
	Tag   string
	Name  string
	Value string
	Err   error
}

func (e *AttributeError) Error() string {
	return fmt.Sprintf("markup: <%s %s=%q>: %v", e.Tag, e.Name, e.Value, e.Err)
}

func (e *AttributeError) Unwrap() error {
	return e.Err
}
