package jsonschema

// Schema is a minimal JSON Schema representation used for export.
// Keep this struct small and extend it as exported rules need.
type Schema struct {
	// Core
	Schema      string  `json:"$schema,omitempty"`
	Type        string  `json:"type,omitempty"`
	Format      string  `json:"format,omitempty"`
	Description string  `json:"description,omitempty"`
	Not         *Schema `json:"not,omitempty"`

	// Object
	Properties map[string]*Schema `json:"properties,omitempty"`
	Required   []string           `json:"required,omitempty"`

	// Array
	Items    *Schema `json:"items,omitempty"`
	MinItems *int    `json:"minItems,omitempty"`
	MaxItems *int    `json:"maxItems,omitempty"`

	// Number
	Minimum *float64 `json:"minimum,omitempty"`
	Maximum *float64 `json:"maximum,omitempty"`

	// String
	MinLength *int   `json:"minLength,omitempty"`
	MaxLength *int   `json:"maxLength,omitempty"`
	Pattern   string `json:"pattern,omitempty"`
}

// Draft is the dialect written by exporters.
const Draft = "https://json-schema.org/draft/2020-12/schema"

// Property returns the named property, creating an empty one if needed.
func (s *Schema) Property(name string) *Schema {
	if s.Properties == nil {
		s.Properties = map[string]*Schema{}
	}
	p, ok := s.Properties[name]
	if !ok {
		p = &Schema{}
		s.Properties[name] = p
	}
	return p
}

// Require adds name to the required list once.
func (s *Schema) Require(name string) {
	for _, r := range s.Required {
		if r == name {
			return
		}
	}
	s.Required = append(s.Required, name)
}
