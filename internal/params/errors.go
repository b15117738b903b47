package params

import (
	"errors"
	"fmt"
	"strings"
)

// Definition errors.
var (
	ErrEmptyName          = errors.New("parameter name is required")
	ErrEmptyDescription   = errors.New("parameter description is required")
	ErrMissingType        = errors.New("parameter type is required")
	ErrDuplicateParameter = errors.New("parameter already exists")
	ErrUnknownKind        = errors.New("unknown parameter kind")
)

// Spec errors.
var (
	ErrMalformedSpec = errors.New("malformed parameter spec")
)

// UnknownParameterError reports names that are not in the active set.
type UnknownParameterError struct {
	Names []string
	Valid []string
}

func (e *UnknownParameterError) Error() string {
	noun := "parameter"
	if len(e.Names) > 1 {
		noun = "parameters"
	}
	return fmt.Sprintf("unknown %s %s (valid: %s)",
		noun, strings.Join(e.Names, ", "), strings.Join(e.Valid, ", "))
}
