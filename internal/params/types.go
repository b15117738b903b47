// Package params models the parameters advertised by the attend tool and
// builds the JSON Schema the MCP layer publishes for them.
//
// A parameter's kind is a sealed union: each Type case carries only the
// fields meaningful for it, so numeric bounds cannot appear on a string and
// item schemas cannot appear on a number.
package params

import (
	"fmt"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
)

// Kind names a parameter type as written on the command line.
type Kind string

const (
	// KindString accepts JSON strings.
	KindString Kind = "string"
	// KindNumber accepts JSON numbers, optionally bounded.
	KindNumber Kind = "number"
	// KindArray accepts JSON arrays, optionally with an item schema.
	KindArray Kind = "array"
	// KindAny accepts any JSON value.
	KindAny Kind = "any"
)

// Kinds lists the recognized kinds in display order.
func Kinds() []Kind {
	return []Kind{KindString, KindNumber, KindArray, KindAny}
}

// ParseKind matches token case-insensitively against the recognized kinds.
func ParseKind(token string) (Kind, error) {
	normalized := Kind(strings.ToLower(strings.TrimSpace(token)))
	for _, k := range Kinds() {
		if normalized == k {
			return k, nil
		}
	}

	valid := make([]string, 0, len(Kinds()))
	for _, k := range Kinds() {
		valid = append(valid, string(k))
	}
	return "", fmt.Errorf("%w %q (valid: %s)", ErrUnknownKind, token, strings.Join(valid, ", "))
}

// Type is the kind-specific part of a Definition.
type Type interface {
	Kind() Kind
	property(description string) *jsonschema.Schema
}

// NewType returns the zero-configuration Type for kind.
func NewType(kind Kind) (Type, error) {
	switch kind {
	case KindString:
		return StringType{}, nil
	case KindNumber:
		return NumberType{}, nil
	case KindArray:
		return ArrayType{}, nil
	case KindAny:
		return AnyType{}, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownKind, kind)
	}
}

// StringType is a string parameter.
type StringType struct{}

func (StringType) Kind() Kind { return KindString }

func (StringType) property(description string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "string", Description: description}
}

// NumberType is a numeric parameter with optional inclusive bounds.
type NumberType struct {
	Minimum *float64
	Maximum *float64
}

func (NumberType) Kind() Kind { return KindNumber }

func (t NumberType) property(description string) *jsonschema.Schema {
	s := &jsonschema.Schema{Type: "number", Description: description}
	if t.Minimum != nil {
		lo := *t.Minimum
		s.Minimum = &lo
	}
	if t.Maximum != nil {
		hi := *t.Maximum
		s.Maximum = &hi
	}
	return s
}

// ArrayType is an array parameter. A nil Items leaves elements unconstrained.
// Items is shared with generated schemas and must not be modified afterwards.
type ArrayType struct {
	Items *jsonschema.Schema
}

func (ArrayType) Kind() Kind { return KindArray }

func (t ArrayType) property(description string) *jsonschema.Schema {
	s := &jsonschema.Schema{Type: "array", Description: description}
	if t.Items != nil {
		s.Items = t.Items
	}
	return s
}

// AnyType accepts any JSON value. Its schema carries no type keyword.
type AnyType struct{}

func (AnyType) Kind() Kind { return KindAny }

func (AnyType) property(description string) *jsonschema.Schema {
	return &jsonschema.Schema{Description: description}
}

// Definition is one named, typed, described input slot of the tool.
type Definition struct {
	Name        string
	Description string
	Type        Type
	Required    bool
}

// Validate checks the definition in isolation.
func (d Definition) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(d.Description) == "" {
		return fmt.Errorf("%w for %q", ErrEmptyDescription, d.Name)
	}
	if d.Type == nil {
		return fmt.Errorf("%w for %q", ErrMissingType, d.Name)
	}
	return nil
}

// Kind returns the definition's kind, or "" if it has no type.
func (d Definition) Kind() Kind {
	if d.Type == nil {
		return ""
	}
	return d.Type.Kind()
}
