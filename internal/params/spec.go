package params

import (
	"fmt"
	"strings"
)

const (
	specSeparator   = ":"
	minSpecSegments = 3
)

// ParseSpec parses a command-line parameter spec of the form
//
//	name:kind:description[:required|:optional]
//
// The description may itself contain colons; every segment between kind and
// the optional requiredness suffix is rejoined verbatim. The suffix is only
// recognized from the fourth segment on, so "a:string:required" describes a
// parameter whose description is "required". Parameters are optional unless
// the suffix says otherwise.
func ParseSpec(spec string) (Definition, error) {
	segments := strings.Split(spec, specSeparator)
	if len(segments) < minSpecSegments {
		return Definition{}, fmt.Errorf("%w %q: want name:kind:description[:required|optional]", ErrMalformedSpec, spec)
	}

	name := strings.TrimSpace(segments[0])
	if name == "" {
		return Definition{}, fmt.Errorf("%w in spec %q", ErrEmptyName, spec)
	}

	kind, err := ParseKind(segments[1])
	if err != nil {
		return Definition{}, fmt.Errorf("parameter %q: %w", name, err)
	}
	typ, err := NewType(kind)
	if err != nil {
		return Definition{}, fmt.Errorf("parameter %q: %w", name, err)
	}

	descSegments := segments[2:]
	required := false
	if len(descSegments) > 1 {
		switch strings.ToLower(strings.TrimSpace(descSegments[len(descSegments)-1])) {
		case "required":
			required = true
			descSegments = descSegments[:len(descSegments)-1]
		case "optional":
			descSegments = descSegments[:len(descSegments)-1]
		}
	}

	description := strings.TrimSpace(strings.Join(descSegments, specSeparator))
	if description == "" {
		return Definition{}, fmt.Errorf("%w for %q", ErrEmptyDescription, name)
	}

	return Definition{
		Name:        name,
		Description: description,
		Type:        typ,
		Required:    required,
	}, nil
}
