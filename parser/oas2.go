package parser

import (
	"strings"

	"github.com/x3t/openapi-diff/internal/maputil"
)

// oas2Document mirrors the top level of a Swagger 2.0 document for decoding.
type oas2Document struct {
	Swagger             string                         `yaml:"swagger"`
	Info                *Info                          `yaml:"info"`
	Host                string                         `yaml:"host,omitempty"`
	BasePath            string                         `yaml:"basePath,omitempty"`
	Schemes             []string                       `yaml:"schemes,omitempty"`
	Consumes            []string                       `yaml:"consumes,omitempty"`
	Produces            []string                       `yaml:"produces,omitempty"`
	Paths               map[string]*oas2PathItem       `yaml:"paths,omitempty"`
	Definitions         map[string]*Schema             `yaml:"definitions,omitempty"`
	Parameters          map[string]*oas2Parameter      `yaml:"parameters,omitempty"`
	Responses           map[string]*oas2Response       `yaml:"responses,omitempty"`
	SecurityDefinitions map[string]*oas2SecurityScheme `yaml:"securityDefinitions,omitempty"`
	Security            []SecurityRequirement          `yaml:"security,omitempty"`
	Tags                []*Tag                         `yaml:"tags,omitempty"`
	Extra               map[string]any                 `yaml:",inline"`
}

type oas2PathItem struct {
	Ref        string           `yaml:"$ref,omitempty"`
	Get        *oas2Operation   `yaml:"get,omitempty"`
	Put        *oas2Operation   `yaml:"put,omitempty"`
	Post       *oas2Operation   `yaml:"post,omitempty"`
	Delete     *oas2Operation   `yaml:"delete,omitempty"`
	Options    *oas2Operation   `yaml:"options,omitempty"`
	Head       *oas2Operation   `yaml:"head,omitempty"`
	Patch      *oas2Operation   `yaml:"patch,omitempty"`
	Parameters []*oas2Parameter `yaml:"parameters,omitempty"`
}

type oas2Operation struct {
	OperationID string                   `yaml:"operationId,omitempty"`
	Summary     string                   `yaml:"summary,omitempty"`
	Description string                   `yaml:"description,omitempty"`
	Tags        []string                 `yaml:"tags,omitempty"`
	Deprecated  bool                     `yaml:"deprecated,omitempty"`
	Consumes    []string                 `yaml:"consumes,omitempty"`
	Produces    []string                 `yaml:"produces,omitempty"`
	Parameters  []*oas2Parameter         `yaml:"parameters,omitempty"`
	Responses   map[string]*oas2Response `yaml:"responses,omitempty"`
	Security    []SecurityRequirement    `yaml:"security,omitempty"`
	Extra       map[string]any           `yaml:",inline"`
}

// oas2Parameter carries both body parameters (Schema) and simple parameters
// whose type information sits directly on the parameter.
type oas2Parameter struct {
	Ref         string   `yaml:"$ref,omitempty"`
	Name        string   `yaml:"name"`
	In          string   `yaml:"in"`
	Description string   `yaml:"description,omitempty"`
	Required    bool     `yaml:"required,omitempty"`
	Schema      *Schema  `yaml:"schema,omitempty"`
	Type        string   `yaml:"type,omitempty"`
	Format      string   `yaml:"format,omitempty"`
	Items       *Schema  `yaml:"items,omitempty"`
	Enum        []any    `yaml:"enum,omitempty"`
	Default     any      `yaml:"default,omitempty"`
	Minimum     *float64 `yaml:"minimum,omitempty"`
	Maximum     *float64 `yaml:"maximum,omitempty"`
	MinLength   *int     `yaml:"minLength,omitempty"`
	MaxLength   *int     `yaml:"maxLength,omitempty"`
	Pattern     string   `yaml:"pattern,omitempty"`
	MinItems    *int     `yaml:"minItems,omitempty"`
	MaxItems    *int     `yaml:"maxItems,omitempty"`
	UniqueItems bool     `yaml:"uniqueItems,omitempty"`
	// CollectionFormat maps onto the 3.x style/explode pair
	CollectionFormat string `yaml:"collectionFormat,omitempty"`
	AllowEmptyValue  bool   `yaml:"allowEmptyValue,omitempty"`
}

type oas2Response struct {
	Ref         string                 `yaml:"$ref,omitempty"`
	Description string                 `yaml:"description,omitempty"`
	Schema      *Schema                `yaml:"schema,omitempty"`
	Headers     map[string]*oas2Header `yaml:"headers,omitempty"`
}

type oas2Header struct {
	Description string  `yaml:"description,omitempty"`
	Type        string  `yaml:"type,omitempty"`
	Format      string  `yaml:"format,omitempty"`
	Items       *Schema `yaml:"items,omitempty"`
	Enum        []any   `yaml:"enum,omitempty"`
}

type oas2SecurityScheme struct {
	Type             string            `yaml:"type"`
	Description      string            `yaml:"description,omitempty"`
	Name             string            `yaml:"name,omitempty"`
	In               string            `yaml:"in,omitempty"`
	Flow             string            `yaml:"flow,omitempty"`
	AuthorizationURL string            `yaml:"authorizationUrl,omitempty"`
	TokenURL         string            `yaml:"tokenUrl,omitempty"`
	Scopes           map[string]string `yaml:"scopes,omitempty"`
}

// oas2FlowNames maps Swagger 2.0 flow names onto their 3.x equivalents.
var oas2FlowNames = map[string]string{
	"implicit":    "implicit",
	"password":    "password",
	"application": "clientCredentials",
	"accessCode":  "authorizationCode",
}

// normalize converts a Swagger 2.0 document into the shared Document model.
func (raw *oas2Document) normalize() (*Document, error) {
	doc := &Document{
		Version:    raw.Swagger,
		OASVersion: OASVersion20,
		Info:       raw.Info,
		Servers:    raw.servers(),
		Paths:      make(map[string]*PathItem, len(raw.Paths)),
		Schemas:    raw.Definitions,
		Security:   raw.Security,
		Tags:       raw.Tags,
		Extensions: extensionsOf(raw.Extra),
	}
	if len(raw.SecurityDefinitions) > 0 {
		doc.SecuritySchemes = make(map[string]*SecurityScheme, len(raw.SecurityDefinitions))
		for name, sd := range raw.SecurityDefinitions {
			if sd != nil {
				doc.SecuritySchemes[name] = sd.normalize()
			}
		}
	}

	for _, path := range maputil.SortedKeys(raw.Paths) {
		src := raw.Paths[path]
		if src == nil {
			continue
		}
		where := "paths." + path
		if src.Ref != "" {
			return nil, unsupportedRef(src.Ref, where)
		}
		pathParams, err := raw.resolveParams(src.Parameters, where)
		if err != nil {
			return nil, err
		}
		item := &PathItem{}
		ops := []struct {
			method string
			src    *oas2Operation
			dst    **Operation
		}{
			{"get", src.Get, &item.Get},
			{"put", src.Put, &item.Put},
			{"post", src.Post, &item.Post},
			{"delete", src.Delete, &item.Delete},
			{"options", src.Options, &item.Options},
			{"head", src.Head, &item.Head},
			{"patch", src.Patch, &item.Patch},
		}
		for _, o := range ops {
			if o.src == nil {
				continue
			}
			op, err := raw.operation(o.src, pathParams, where+"."+o.method)
			if err != nil {
				return nil, err
			}
			*o.dst = op
		}
		doc.Paths[path] = item
	}
	return doc, nil
}

func (raw *oas2Document) servers() []*Server {
	if raw.Host == "" && raw.BasePath == "" {
		return nil
	}
	schemes := raw.Schemes
	if len(schemes) == 0 {
		schemes = []string{"https"}
	}
	basePath := raw.BasePath
	if basePath == "" {
		basePath = "/"
	}
	out := make([]*Server, 0, len(schemes))
	for _, scheme := range schemes {
		if raw.Host == "" {
			out = append(out, &Server{URL: basePath})
			break
		}
		out = append(out, &Server{URL: scheme + "://" + raw.Host + strings.TrimSuffix(basePath, "/")})
	}
	return out
}

func (raw *oas2Document) resolveParams(params []*oas2Parameter, where string) ([]*oas2Parameter, error) {
	out := make([]*oas2Parameter, 0, len(params))
	for _, p := range params {
		if p == nil {
			continue
		}
		resolved, err := resolveChain(p, func(x *oas2Parameter) string { return x.Ref },
			raw.Parameters, refPrefixParameters2, where+".parameters")
		if err != nil {
			return nil, err
		}
		out = append(out, resolved)
	}
	return out, nil
}

func (raw *oas2Document) operation(src *oas2Operation, pathParams []*oas2Parameter, where string) (*Operation, error) {
	op := &Operation{
		OperationID: src.OperationID,
		Summary:     src.Summary,
		Description: src.Description,
		Tags:        src.Tags,
		Deprecated:  src.Deprecated,
		Security:    src.Security,
		Extra:       src.Extra,
	}

	opParams, err := raw.resolveParams(src.Parameters, where)
	if err != nil {
		return nil, err
	}

	consumes := firstNonEmpty(src.Consumes, raw.Consumes, []string{defaultMediaType})
	produces := firstNonEmpty(src.Produces, raw.Produces, []string{defaultMediaType})

	var simple, pathSimple []*Parameter
	var form []*oas2Parameter
	var body *oas2Parameter
	collect := func(params []*oas2Parameter, into *[]*Parameter) {
		for _, p := range params {
			switch p.In {
			case ParamInBody:
				body = p
			case ParamInFormData:
				form = append(form, p)
			default:
				*into = append(*into, p.toParameter())
			}
		}
	}
	collect(pathParams, &pathSimple)
	collect(opParams, &simple)
	op.Parameters = mergeParameters(pathSimple, simple)

	switch {
	case body != nil:
		op.RequestBody = &RequestBody{
			Description: body.Description,
			Required:    body.Required,
			Content:     mediaTypes(consumes, body.Schema),
		}
	case len(form) > 0:
		op.RequestBody = formRequestBody(form, consumes)
	}

	if len(src.Responses) > 0 {
		op.Responses = make(map[string]*Response, len(src.Responses))
	}
	for _, code := range maputil.SortedKeys(src.Responses) {
		r := src.Responses[code]
		if r == nil {
			continue
		}
		resolved, err := resolveChain(r, func(x *oas2Response) string { return x.Ref },
			raw.Responses, refPrefixResponses2, where+".responses."+code)
		if err != nil {
			return nil, err
		}
		op.Responses[code] = resolved.toResponse(produces)
	}
	return op, nil
}

func (p *oas2Parameter) toParameter() *Parameter {
	param := &Parameter{
		Name:            p.Name,
		In:              p.In,
		Description:     p.Description,
		Required:        p.Required,
		AllowEmptyValue: p.AllowEmptyValue,
		Schema:          p.simpleSchema(),
	}
	if p.CollectionFormat == "multi" {
		explode := true
		param.Style = "form"
		param.Explode = &explode
	}
	return param
}

func (p *oas2Parameter) simpleSchema() *Schema {
	if p.Type == "" {
		return p.Schema
	}
	return &Schema{
		Type:        p.Type,
		Format:      p.Format,
		Items:       p.Items,
		Enum:        p.Enum,
		Default:     p.Default,
		Minimum:     p.Minimum,
		Maximum:     p.Maximum,
		MinLength:   p.MinLength,
		MaxLength:   p.MaxLength,
		Pattern:     p.Pattern,
		MinItems:    p.MinItems,
		MaxItems:    p.MaxItems,
		UniqueItems: p.UniqueItems,
	}
}

func formRequestBody(form []*oas2Parameter, consumes []string) *RequestBody {
	schema := &Schema{Type: "object", Properties: make(map[string]*Schema, len(form))}
	required := false
	for _, p := range form {
		schema.Properties[p.Name] = p.simpleSchema()
		if p.Required {
			schema.Required = append(schema.Required, p.Name)
			required = true
		}
	}
	var formTypes []string
	for _, mt := range consumes {
		if mt == formURLEncodedType || mt == multipartFormType {
			formTypes = append(formTypes, mt)
		}
	}
	if len(formTypes) == 0 {
		formTypes = []string{formURLEncodedType}
	}
	return &RequestBody{Required: required, Content: mediaTypes(formTypes, schema)}
}

func (r *oas2Response) toResponse(produces []string) *Response {
	resp := &Response{Description: r.Description}
	if r.Schema != nil {
		resp.Content = mediaTypes(produces, r.Schema)
	}
	if len(r.Headers) > 0 {
		resp.Headers = make(map[string]*Header, len(r.Headers))
		for name, h := range r.Headers {
			if h == nil {
				continue
			}
			resp.Headers[name] = &Header{
				Description: h.Description,
				Schema:      &Schema{Type: h.Type, Format: h.Format, Items: h.Items, Enum: h.Enum},
			}
		}
	}
	return resp
}

func (s *oas2SecurityScheme) normalize() *SecurityScheme {
	out := &SecurityScheme{Type: s.Type, Description: s.Description, Name: s.Name, In: s.In}
	switch s.Type {
	case "basic":
		out.Type = "http"
		out.Scheme = "basic"
	case "oauth2":
		flow := oas2FlowNames[s.Flow]
		if flow == "" {
			flow = s.Flow
		}
		out.Flows = map[string]*OAuthFlow{
			flow: {AuthorizationURL: s.AuthorizationURL, TokenURL: s.TokenURL, Scopes: s.Scopes},
		}
	}
	return out
}

func mediaTypes(types []string, schema *Schema) map[string]*MediaType {
	out := make(map[string]*MediaType, len(types))
	for _, mt := range types {
		out[mt] = &MediaType{Schema: schema}
	}
	return out
}

func firstNonEmpty(lists ...[]string) []string {
	for _, l := range lists {
		if len(l) > 0 {
			return l
		}
	}
	return nil
}
