package renderer

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/x3t/openapi-diff/differ"
)

// JSONReport is the document written by the JSON renderer.
type JSONReport struct {
	Unchanged  bool   `json:"unchanged"`
	Compatible bool   `json:"compatible"`
	Result     string `json:"result"`

	Old JSONDocument `json:"old"`
	New JSONDocument `json:"new"`

	Counts JSONCounts `json:"counts"`

	NewEndpoints        []JSONEndpoint `json:"newEndpoints"`
	MissingEndpoints    []JSONEndpoint `json:"missingEndpoints"`
	DeprecatedEndpoints []JSONEndpoint `json:"deprecatedEndpoints"`
	Changes             []JSONChange   `json:"changes"`
}

// JSONDocument describes one side of the comparison.
type JSONDocument struct {
	Location       string `json:"location,omitempty"`
	Title          string `json:"title,omitempty"`
	APIVersion     string `json:"apiVersion,omitempty"`
	OpenAPIVersion string `json:"openapiVersion,omitempty"`
}

// JSONCounts holds the number of changes per severity class.
type JSONCounts struct {
	Total    int `json:"total"`
	Breaking int `json:"breaking"`
	Warning  int `json:"warning"`
	Info     int `json:"info"`
}

// JSONEndpoint is an operation listed in an endpoint section.
type JSONEndpoint struct {
	Method string `json:"method,omitempty"`
	Path   string `json:"path"`
}

// JSONChange is one change.
type JSONChange struct {
	Path     string `json:"path"`
	Type     string `json:"type"`
	Category string `json:"category"`
	Severity string `json:"severity"`
	Breaking bool   `json:"breaking"`
	Endpoint string `json:"endpoint,omitempty"`
	Method   string `json:"method,omitempty"`
	OldValue any    `json:"oldValue,omitempty"`
	NewValue any    `json:"newValue,omitempty"`
	Message  string `json:"message"`
}

// NewJSONReport builds the JSON document for result. Slices are never nil.
func NewJSONReport(result *differ.DiffResult) *JSONReport {
	v := NewView(result)
	r := &JSONReport{
		Unchanged:  v.Unchanged,
		Compatible: v.Compatible,
		Result:     v.Result,
		Old: JSONDocument{
			Location:       result.SourceLocation,
			Title:          result.SourceTitle,
			APIVersion:     result.SourceAPIVersion,
			OpenAPIVersion: result.SourceVersion,
		},
		New: JSONDocument{
			Location:       result.TargetLocation,
			Title:          result.TargetTitle,
			APIVersion:     result.TargetAPIVersion,
			OpenAPIVersion: result.TargetVersion,
		},
		Counts: JSONCounts{
			Total:    len(result.Changes),
			Breaking: result.BreakingCount,
			Warning:  result.WarningCount,
			Info:     result.InfoCount,
		},
		NewEndpoints:        jsonEndpoints(v.New),
		MissingEndpoints:    jsonEndpoints(v.Deleted),
		DeprecatedEndpoints: jsonEndpoints(v.Deprecated),
		Changes:             make([]JSONChange, 0, len(result.Changes)),
	}
	for _, c := range result.Changes {
		r.Changes = append(r.Changes, JSONChange{
			Path:     c.Path,
			Type:     string(c.Type),
			Category: string(c.Category),
			Severity: c.Severity.String(),
			Breaking: c.Breaking(),
			Endpoint: c.Endpoint,
			Method:   c.Method,
			OldValue: jsonValue(c.OldValue),
			NewValue: jsonValue(c.NewValue),
			Message:  c.Message,
		})
	}
	return r
}

// jsonValue converts YAML maps with non-string keys, which encoding/json
// rejects, into string-keyed maps.
func jsonValue(v any) any {
	switch t := v.(type) {
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = jsonValue(val)
		}
		return m
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[k] = jsonValue(val)
		}
		return m
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = jsonValue(val)
		}
		return out
	}
	return v
}

func jsonEndpoints(eps []Endpoint) []JSONEndpoint {
	out := make([]JSONEndpoint, 0, len(eps))
	for _, ep := range eps {
		out = append(out, JSONEndpoint{Method: ep.Method, Path: ep.Path})
	}
	return out
}

// RenderJSON writes the JSON report indented with two spaces.
func RenderJSON(w io.Writer, result *differ.DiffResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(NewJSONReport(result)); err != nil {
		return fmt.Errorf("renderer: encoding JSON: %w", err)
	}
	return nil
}
