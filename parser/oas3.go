package parser

import "github.com/x3t/openapi-diff/internal/maputil"

// oas3Document mirrors the top level of an OAS 3.x document for decoding.
type oas3Document struct {
	OpenAPI    string                `yaml:"openapi"`
	Info       *Info                 `yaml:"info"`
	Servers    []*Server             `yaml:"servers,omitempty"`
	Paths      map[string]*PathItem  `yaml:"paths,omitempty"`
	Webhooks   map[string]*PathItem  `yaml:"webhooks,omitempty"`
	Components *oas3Components       `yaml:"components,omitempty"`
	Security   []SecurityRequirement `yaml:"security,omitempty"`
	Tags       []*Tag                `yaml:"tags,omitempty"`
	Extra      map[string]any        `yaml:",inline"`
}

type oas3Components struct {
	Schemas         map[string]*Schema         `yaml:"schemas,omitempty"`
	Responses       map[string]*Response       `yaml:"responses,omitempty"`
	Parameters      map[string]*Parameter      `yaml:"parameters,omitempty"`
	RequestBodies   map[string]*RequestBody    `yaml:"requestBodies,omitempty"`
	Headers         map[string]*Header         `yaml:"headers,omitempty"`
	SecuritySchemes map[string]*SecurityScheme `yaml:"securitySchemes,omitempty"`
}

// normalize resolves component references and produces the shared Document model.
func (raw *oas3Document) normalize(version OASVersion) (*Document, error) {
	doc := &Document{
		Version:    raw.OpenAPI,
		OASVersion: version,
		Info:       raw.Info,
		Servers:    raw.Servers,
		Paths:      raw.Paths,
		Security:   raw.Security,
		Tags:       raw.Tags,
		Extensions: extensionsOf(raw.Extra),
	}
	comps := raw.Components
	if comps == nil {
		comps = &oas3Components{}
	}
	doc.Schemas = comps.Schemas
	doc.SecuritySchemes = comps.SecuritySchemes

	r := &oas3Resolver{components: comps}
	for _, path := range maputil.SortedKeys(doc.Paths) {
		item := doc.Paths[path]
		if item == nil {
			continue
		}
		if item.Ref != "" {
			return nil, unsupportedRef(item.Ref, "paths."+path)
		}
		where := "paths." + path
		pathParams, err := r.parameters(item.Parameters, where)
		if err != nil {
			return nil, err
		}
		for _, mo := range item.Operations() {
			if err := r.operation(mo.Operation, pathParams, where+"."+mo.Method); err != nil {
				return nil, err
			}
		}
		item.Parameters = pathParams
	}
	return doc, nil
}

type oas3Resolver struct {
	components *oas3Components
}

func (r *oas3Resolver) operation(op *Operation, pathParams []*Parameter, where string) error {
	params, err := r.parameters(op.Parameters, where)
	if err != nil {
		return err
	}
	op.Parameters = mergeParameters(pathParams, params)

	if op.RequestBody != nil {
		rb, err := resolveChain(op.RequestBody, func(b *RequestBody) string { return b.Ref },
			r.components.RequestBodies, refPrefixRequestBodies3, where+".requestBody")
		if err != nil {
			return err
		}
		op.RequestBody = rb
	}

	for _, code := range maputil.SortedKeys(op.Responses) {
		resp := op.Responses[code]
		if resp == nil {
			continue
		}
		resolved, err := resolveChain(resp, func(x *Response) string { return x.Ref },
			r.components.Responses, refPrefixResponses3, where+".responses."+code)
		if err != nil {
			return err
		}
		if err := r.headers(resolved, where+".responses."+code); err != nil {
			return err
		}
		op.Responses[code] = resolved
	}
	return nil
}

func (r *oas3Resolver) parameters(params []*Parameter, where string) ([]*Parameter, error) {
	if len(params) == 0 {
		return params, nil
	}
	out := make([]*Parameter, 0, len(params))
	for _, p := range params {
		if p == nil {
			continue
		}
		resolved, err := resolveChain(p, func(x *Parameter) string { return x.Ref },
			r.components.Parameters, refPrefixParameters3, where+".parameters")
		if err != nil {
			return nil, err
		}
		out = append(out, resolved)
	}
	return out, nil
}

func (r *oas3Resolver) headers(resp *Response, where string) error {
	if len(resp.Headers) == 0 {
		return nil
	}
	resolved := make(map[string]*Header, len(resp.Headers))
	for name, h := range resp.Headers {
		if h == nil {
			continue
		}
		rh, err := resolveChain(h, func(x *Header) string { return x.Ref },
			r.components.Headers, refPrefixHeaders3, where+".headers."+name)
		if err != nil {
			return err
		}
		resolved[name] = rh
	}
	resp.Headers = resolved
	return nil
}
