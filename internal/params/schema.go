package params

import "github.com/google/jsonschema-go/jsonschema"

// BuildSchema returns the object schema advertised for the set: one property
// per definition, rendered in set order, and the required names in set order.
func BuildSchema(s *Set) *jsonschema.Schema {
	schema := &jsonschema.Schema{
		Type:          "object",
		Properties:    make(map[string]*jsonschema.Schema, s.Len()),
		PropertyOrder: s.Names(),
		Required:      s.RequiredNames(),
	}
	for _, d := range s.defs {
		schema.Properties[d.Name] = d.Type.property(d.Description)
	}
	return schema
}
