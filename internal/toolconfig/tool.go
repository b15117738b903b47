// Package toolconfig turns command-line directives into the immutable
// description of the attend tool: its name, description and parameter set.
//
// Directives are applied in the order they appear on the command line, so
// "--all-required --optional prompt" leaves every parameter required except
// prompt. Any invalid directive aborts parsing with an error; nothing is
// silently ignored or coerced.
package toolconfig

import (
	"github.com/google/jsonschema-go/jsonschema"

	"github.com/fyrsmithlabs/attentiond/internal/params"
)

// DefaultToolName is the name under which the tool is exposed.
const DefaultToolName = "attend"

// DefaultDescription is advertised when no override is given.
const DefaultDescription = "Declare what you are attending to: the prompt in front of you, " +
	"its context, and any parallel streams of attention. The call has no side effects " +
	"and always returns an empty result; its value is in the structured arguments you supply."

// DescriptionSource records which directive set the tool description.
type DescriptionSource int

const (
	// DescriptionDefault means the built-in description is used.
	DescriptionDefault DescriptionSource = iota
	// DescriptionInline means --tool-description set it.
	DescriptionInline
	// DescriptionFile means --tool-description-file set it.
	DescriptionFile
)

// String returns the flag name that sets the source, or "default".
func (s DescriptionSource) String() string {
	switch s {
	case DescriptionInline:
		return "--" + FlagToolDescription
	case DescriptionFile:
		return "--" + FlagToolDescriptionFile
	default:
		return "default"
	}
}

// Tool is the frozen tool configuration. It is safe for concurrent use.
type Tool struct {
	name        string
	description string
	source      DescriptionSource
	parameters  *params.Set
}

// Name returns the tool name.
func (t *Tool) Name() string { return t.name }

// Description returns the advertised tool description.
func (t *Tool) Description() string { return t.description }

// DescriptionSource reports where the description came from.
func (t *Tool) DescriptionSource() DescriptionSource { return t.source }

// Parameters returns a copy of the parameter definitions in order.
func (t *Tool) Parameters() []params.Definition { return t.parameters.Definitions() }

// ParameterNames returns the parameter names in order.
func (t *Tool) ParameterNames() []string { return t.parameters.Names() }

// RequiredNames returns the names of required parameters in order.
func (t *Tool) RequiredNames() []string { return t.parameters.RequiredNames() }

// Parameter returns the named definition.
func (t *Tool) Parameter(name string) (params.Definition, bool) { return t.parameters.Get(name) }

// Schema builds the input schema for the tool.
func (t *Tool) Schema() *jsonschema.Schema { return params.BuildSchema(t.parameters) }

// Default returns the tool as configured with no directives.
func Default() *Tool {
	return &Tool{
		name:        DefaultToolName,
		description: DefaultDescription,
		source:      DescriptionDefault,
		parameters:  params.Defaults(),
	}
}
