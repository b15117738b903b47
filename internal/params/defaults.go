package params

import "github.com/google/jsonschema-go/jsonschema"

// PromptParameter is the primary parameter of the default set.
const PromptParameter = "prompt"

// AttentionStreamsParameter names the structured array parameter of the default set.
const AttentionStreamsParameter = "attention_streams"

func bound(v float64) *float64 { return &v }

// attentionStreamItems describes one element of attention_streams.
func attentionStreamItems() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:          "object",
		PropertyOrder: []string{"name", "weight", "content"},
		Properties: map[string]*jsonschema.Schema{
			"name": {
				Type:        "string",
				Description: "Short label for the stream",
			},
			"weight": {
				Type:        "number",
				Description: "Share of attention given to the stream, from 0 to 1",
				Minimum:     bound(0),
				Maximum:     bound(1),
			},
			"content": {
				Type:        "string",
				Description: "What the stream is currently about",
			},
		},
		Required: []string{"name"},
	}
}

// DefaultDefinitions returns the built-in parameter list: eight fixed
// definitions followed by attention_streams. Only prompt is required.
func DefaultDefinitions() []Definition {
	return []Definition{
		{
			Name:        PromptParameter,
			Description: "The prompt or instruction currently being attended to",
			Type:        StringType{},
			Required:    true,
		},
		{
			Name:        "context",
			Description: "Background the caller considers relevant to the prompt",
			Type:        StringType{},
		},
		{
			Name:        "intent",
			Description: "What the caller is trying to achieve",
			Type:        StringType{},
		},
		{
			Name:        "focus",
			Description: "The single subject holding attention right now",
			Type:        StringType{},
		},
		{
			Name:        "priority",
			Description: "Relative priority of the prompt, from 0 (lowest) to 10 (highest)",
			Type:        NumberType{Minimum: bound(0), Maximum: bound(10)},
		},
		{
			Name:        "confidence",
			Description: "Caller confidence in its reading of the prompt, from 0 to 1",
			Type:        NumberType{Minimum: bound(0), Maximum: bound(1)},
		},
		{
			Name:        "tags",
			Description: "Free-form labels for the prompt",
			Type:        ArrayType{Items: &jsonschema.Schema{Type: "string"}},
		},
		{
			Name:        "metadata",
			Description: "Arbitrary JSON value carried alongside the prompt",
			Type:        AnyType{},
		},
		{
			Name:        AttentionStreamsParameter,
			Description: "Parallel streams of attention, each with a name, a weight and its content",
			Type:        ArrayType{Items: attentionStreamItems()},
		},
	}
}

// Defaults returns a new set holding DefaultDefinitions.
func Defaults() *Set {
	s, err := NewSet(DefaultDefinitions()...)
	if err != nil {
		panic("params: invalid default definitions: " + err.Error())
	}
	return s
}
