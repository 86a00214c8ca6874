package parser

import (
	"strings"

	"go.yaml.in/yaml/v4"
)

// Schema is a JSON Schema object as used by OpenAPI 2.0 and 3.x.
//
// Fields whose representation differs between versions are kept as any:
// Type is a string or a list of strings (3.1), ExclusiveMinimum and
// ExclusiveMaximum are booleans (2.0/3.0) or numbers (3.1), and
// AdditionalProperties is a boolean or a schema.
type Schema struct {
	Ref         string `yaml:"$ref,omitempty"`
	Title       string `yaml:"title,omitempty"`
	Description string `yaml:"description,omitempty"`

	Type   any    `yaml:"type,omitempty"`
	Format string `yaml:"format,omitempty"`

	Properties           map[string]*Schema `yaml:"properties,omitempty"`
	Required             []string           `yaml:"required,omitempty"`
	AdditionalProperties any                `yaml:"additionalProperties,omitempty"`
	Items                *Schema            `yaml:"items,omitempty"`

	AllOf []*Schema `yaml:"allOf,omitempty"`
	AnyOf []*Schema `yaml:"anyOf,omitempty"`
	OneOf []*Schema `yaml:"oneOf,omitempty"`
	Not   *Schema   `yaml:"not,omitempty"`

	Enum    []any `yaml:"enum,omitempty"`
	Default any   `yaml:"default,omitempty"`

	Nullable   bool `yaml:"nullable,omitempty"`
	ReadOnly   bool `yaml:"readOnly,omitempty"`
	WriteOnly  bool `yaml:"writeOnly,omitempty"`
	Deprecated bool `yaml:"deprecated,omitempty"`

	Minimum          *float64 `yaml:"minimum,omitempty"`
	Maximum          *float64 `yaml:"maximum,omitempty"`
	ExclusiveMinimum any      `yaml:"exclusiveMinimum,omitempty"`
	ExclusiveMaximum any      `yaml:"exclusiveMaximum,omitempty"`
	MultipleOf       *float64 `yaml:"multipleOf,omitempty"`
	MinLength        *int     `yaml:"minLength,omitempty"`
	MaxLength        *int     `yaml:"maxLength,omitempty"`
	Pattern          string   `yaml:"pattern,omitempty"`
	MinItems         *int     `yaml:"minItems,omitempty"`
	MaxItems         *int     `yaml:"maxItems,omitempty"`
	UniqueItems      bool     `yaml:"uniqueItems,omitempty"`
	MinProperties    *int     `yaml:"minProperties,omitempty"`
	MaxProperties    *int     `yaml:"maxProperties,omitempty"`

	Discriminator *Discriminator `yaml:"discriminator,omitempty"`

	// Extra holds every key not mapped above, including x-* extensions
	Extra map[string]any `yaml:",inline"`
}

// Discriminator aids in polymorphic schema selection.
type Discriminator struct {
	PropertyName string            `yaml:"propertyName"`
	Mapping      map[string]string `yaml:"mapping,omitempty"`
}

// Types returns the declared type names in declaration order, with "null"
// omitted. The boolean reports whether "null" was among them.
func (s *Schema) Types() ([]string, bool) {
	if s == nil || s.Type == nil {
		return nil, false
	}
	var out []string
	hasNull := false
	add := func(v any) {
		name, ok := v.(string)
		if !ok || name == "" {
			return
		}
		if name == "null" {
			hasNull = true
			return
		}
		out = append(out, name)
	}
	switch t := s.Type.(type) {
	case string:
		add(t)
	case []any:
		for _, v := range t {
			add(v)
		}
	case []string:
		for _, v := range t {
			add(v)
		}
	}
	return out, hasNull
}

// TypeString returns the declared types joined with "|", e.g. "string" or "integer|string".
func (s *Schema) TypeString() string {
	types, _ := s.Types()
	return strings.Join(types, "|")
}

// IsNullable reports whether null is an accepted value, either through the
// 3.0 nullable keyword or a 3.1 type list containing "null".
func (s *Schema) IsNullable() bool {
	if s == nil {
		return false
	}
	_, hasNull := s.Types()
	return s.Nullable || hasNull
}

// IsRequired reports whether the named property is listed in Required.
func (s *Schema) IsRequired(name string) bool {
	if s == nil {
		return false
	}
	for _, r := range s.Required {
		if r == name {
			return true
		}
	}
	return false
}

// Extensions returns the x-* fields of the schema.
func (s *Schema) Extensions() map[string]any {
	if s == nil {
		return nil
	}
	return extensionsOf(s.Extra)
}

// RefName returns the last segment of a $ref, e.g. "Pet" for
// "#/components/schemas/Pet" and "#/definitions/Pet" alike.
func RefName(ref string) string {
	if i := strings.LastIndex(ref, "/"); i >= 0 {
		return ref[i+1:]
	}
	return ref
}

// UnmarshalYAML decodes a schema, turning an object-valued
// additionalProperties into a *Schema. Boolean values are kept as bool.
func (s *Schema) UnmarshalYAML(node *yaml.Node) error {
	type plain Schema
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*s = Schema(p)
	if node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value != "additionalProperties" {
			continue
		}
		value := node.Content[i+1]
		if value.Kind == yaml.MappingNode {
			var ap Schema
			if err := value.Decode(&ap); err != nil {
				return err
			}
			s.AdditionalProperties = &ap
		}
	}
	return nil
}
