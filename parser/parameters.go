package parser

// Parameter describes a single operation parameter.
type Parameter struct {
	Ref             string                `yaml:"$ref,omitempty"`
	Name            string                `yaml:"name"`
	In              string                `yaml:"in"`
	Description     string                `yaml:"description,omitempty"`
	Required        bool                  `yaml:"required,omitempty"`
	Deprecated      bool                  `yaml:"deprecated,omitempty"`
	AllowEmptyValue bool                  `yaml:"allowEmptyValue,omitempty"`
	Style           string                `yaml:"style,omitempty"`
	Explode         *bool                 `yaml:"explode,omitempty"`
	Schema          *Schema               `yaml:"schema,omitempty"`
	Content         map[string]*MediaType `yaml:"content,omitempty"`
}

// Key identifies a parameter within an operation: location plus name.
func (p *Parameter) Key() string {
	return p.In + ":" + p.Name
}

// mergeParameters returns the effective parameter list of an operation:
// path-level parameters overridden by operation-level ones with the same key.
func mergeParameters(pathLevel, opLevel []*Parameter) []*Parameter {
	if len(pathLevel) == 0 {
		return opLevel
	}
	seen := make(map[string]bool, len(opLevel))
	for _, p := range opLevel {
		if p != nil {
			seen[p.Key()] = true
		}
	}
	merged := make([]*Parameter, 0, len(pathLevel)+len(opLevel))
	for _, p := range pathLevel {
		if p != nil && !seen[p.Key()] {
			merged = append(merged, p)
		}
	}
	return append(merged, opLevel...)
}
