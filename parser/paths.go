package parser

import "github.com/x3t/openapi-diff/internal/httputil"

// PathItem describes the operations available on a single path.
// Path-level parameters are merged into each operation during parsing.
type PathItem struct {
	Ref         string       `yaml:"$ref,omitempty"`
	Summary     string       `yaml:"summary,omitempty"`
	Description string       `yaml:"description,omitempty"`
	Get         *Operation   `yaml:"get,omitempty"`
	Put         *Operation   `yaml:"put,omitempty"`
	Post        *Operation   `yaml:"post,omitempty"`
	Delete      *Operation   `yaml:"delete,omitempty"`
	Options     *Operation   `yaml:"options,omitempty"`
	Head        *Operation   `yaml:"head,omitempty"`
	Patch       *Operation   `yaml:"patch,omitempty"`
	Trace       *Operation   `yaml:"trace,omitempty"`
	Parameters  []*Parameter `yaml:"parameters,omitempty"`
	Servers     []*Server    `yaml:"servers,omitempty"`
}

// Operation describes a single API operation on a path.
type Operation struct {
	OperationID string                `yaml:"operationId,omitempty"`
	Summary     string                `yaml:"summary,omitempty"`
	Description string                `yaml:"description,omitempty"`
	Tags        []string              `yaml:"tags,omitempty"`
	Deprecated  bool                  `yaml:"deprecated,omitempty"`
	Parameters  []*Parameter          `yaml:"parameters,omitempty"`
	RequestBody *RequestBody          `yaml:"requestBody,omitempty"`
	Responses   map[string]*Response  `yaml:"responses,omitempty"`
	Security    []SecurityRequirement `yaml:"security,omitempty"`
	Extra       map[string]any        `yaml:",inline"`
}

// Extensions returns the x-* fields of the operation.
func (o *Operation) Extensions() map[string]any {
	if o == nil {
		return nil
	}
	return extensionsOf(o.Extra)
}

// RequestBody describes a single request body.
type RequestBody struct {
	Ref         string                `yaml:"$ref,omitempty"`
	Description string                `yaml:"description,omitempty"`
	Required    bool                  `yaml:"required,omitempty"`
	Content     map[string]*MediaType `yaml:"content,omitempty"`
}

// MediaType provides the schema for one content type.
type MediaType struct {
	Schema *Schema `yaml:"schema,omitempty"`
}

// Response describes a single response from an API operation.
type Response struct {
	Ref         string                `yaml:"$ref,omitempty"`
	Description string                `yaml:"description,omitempty"`
	Headers     map[string]*Header    `yaml:"headers,omitempty"`
	Content     map[string]*MediaType `yaml:"content,omitempty"`
}

// Header describes a single response header.
type Header struct {
	Ref         string  `yaml:"$ref,omitempty"`
	Description string  `yaml:"description,omitempty"`
	Required    bool    `yaml:"required,omitempty"`
	Deprecated  bool    `yaml:"deprecated,omitempty"`
	Schema      *Schema `yaml:"schema,omitempty"`
}

// MethodOperation pairs an HTTP method with its operation.
type MethodOperation struct {
	Method    string
	Operation *Operation
}

// Operations returns the operations defined on the path item in canonical
// method order (get, put, post, delete, options, head, patch, trace).
func (p *PathItem) Operations() []MethodOperation {
	if p == nil {
		return nil
	}
	all := []MethodOperation{
		{httputil.MethodGet, p.Get},
		{httputil.MethodPut, p.Put},
		{httputil.MethodPost, p.Post},
		{httputil.MethodDelete, p.Delete},
		{httputil.MethodOptions, p.Options},
		{httputil.MethodHead, p.Head},
		{httputil.MethodPatch, p.Patch},
		{httputil.MethodTrace, p.Trace},
	}
	out := make([]MethodOperation, 0, len(all))
	for _, mo := range all {
		if mo.Operation != nil {
			out = append(out, mo)
		}
	}
	return out
}

// Operation returns the operation for the given lower-case method, or nil.
func (p *PathItem) Operation(method string) *Operation {
	for _, mo := range p.Operations() {
		if mo.Method == method {
			return mo.Operation
		}
	}
	return nil
}
