package parser

// Document is the normalized form of an OpenAPI document.
//
// OAS 2.0 and OAS 3.x sources are both mapped onto this OAS 3 shaped model so
// that two documents of different versions can be compared field by field.
// Parameter, response, request body and header references are resolved;
// schema references are kept in Schema.Ref and point into Schemas.
type Document struct {
	// Version is the declared version string, e.g. "2.0" or "3.0.3"
	Version string
	// OASVersion is the version series
	OASVersion OASVersion

	Info            *Info
	Servers         []*Server
	Paths           map[string]*PathItem
	Schemas         map[string]*Schema
	SecuritySchemes map[string]*SecurityScheme
	Security        []SecurityRequirement
	Tags            []*Tag
	// Extensions holds the top-level x-* fields
	Extensions map[string]any
}

// Info carries the document metadata.
type Info struct {
	Title          string   `yaml:"title"`
	Description    string   `yaml:"description,omitempty"`
	TermsOfService string   `yaml:"termsOfService,omitempty"`
	Version        string   `yaml:"version"`
	Contact        *Contact `yaml:"contact,omitempty"`
	License        *License `yaml:"license,omitempty"`
}

// Contact information for the exposed API.
type Contact struct {
	Name  string `yaml:"name,omitempty"`
	URL   string `yaml:"url,omitempty"`
	Email string `yaml:"email,omitempty"`
}

// License information for the exposed API.
type License struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url,omitempty"`
}

// Server is a base URL the API is served from.
type Server struct {
	URL         string `yaml:"url"`
	Description string `yaml:"description,omitempty"`
}

// Tag adds metadata to a tag used by operations.
type Tag struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
}

// extensionsOf returns only the x-* keys of an inline map.
func extensionsOf(m map[string]any) map[string]any {
	var out map[string]any
	for k, v := range m {
		if len(k) > 2 && k[:2] == "x-" {
			if out == nil {
				out = make(map[string]any)
			}
			out[k] = v
		}
	}
	return out
}
