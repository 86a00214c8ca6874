package renderer

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/x3t/openapi-diff/differ"
)

// Result lines shared by every format.
const (
	ResultUnchanged    = "No differences. Specifications are equivalent"
	ResultCompatible   = "API changes are backward compatible"
	ResultIncompatible = "API changes broke backward compatibility"
)

// Endpoint is one operation listed in the new, deleted or deprecated sections.
type Endpoint struct {
	Method string
	Path   string
}

// Label returns "GET /pets", or just the path when no method is known.
func (e Endpoint) Label() string {
	if e.Method == "" {
		return e.Path
	}
	return strings.ToUpper(e.Method) + " " + e.Path
}

// ChangeLine is a single rendered change.
type ChangeLine struct {
	Severity string
	Breaking bool
	Path     string
	Message  string
}

// EndpointChanges groups the changes of one operation.
type EndpointChanges struct {
	Endpoint
	Changes []ChangeLine
}

// CategoryChanges groups document-level changes of one category.
type CategoryChanges struct {
	Title   string
	Changes []ChangeLine
}

// View is the format-independent model every renderer draws from.
type View struct {
	Title      string
	OldVersion string
	NewVersion string

	New        []Endpoint
	Deleted    []Endpoint
	Deprecated []Endpoint
	Changed    []EndpointChanges
	Other      []CategoryChanges

	Unchanged  bool
	Compatible bool
	Result     string

	Breaking int
	Warnings int
	Info     int
}

// categoryTitle turns "request_body" into "Request Body". A Caser is not
// safe for concurrent use, so each call gets its own.
func categoryTitle(c differ.ChangeCategory) string {
	return cases.Title(language.English).String(strings.ReplaceAll(string(c), "_", " "))
}

// NewView builds the view of result. Section order follows the order of
// result.Changes, which is deterministic.
func NewView(result *differ.DiffResult) *View {
	v := &View{
		Title:      result.TargetTitle,
		OldVersion: result.SourceAPIVersion,
		NewVersion: result.TargetAPIVersion,
		Unchanged:  result.IsUnchanged(),
		Compatible: result.IsCompatible(),
		Breaking:   result.BreakingCount,
		Warnings:   result.WarningCount,
		Info:       result.InfoCount,
	}
	if v.Title == "" {
		v.Title = result.SourceTitle
	}
	switch {
	case v.Unchanged:
		v.Result = ResultUnchanged
	case v.Compatible:
		v.Result = ResultCompatible
	default:
		v.Result = ResultIncompatible
	}

	changed := make(map[Endpoint]int)
	other := make(map[differ.ChangeCategory]int)
	for _, c := range result.Changes {
		ep := Endpoint{Method: c.Method, Path: c.Endpoint}
		switch {
		case isPresence(c):
			if c.Type == differ.ChangeTypeAdded {
				v.New = append(v.New, ep)
			} else {
				v.Deleted = append(v.Deleted, ep)
			}
			continue
		case isDeprecation(c):
			v.Deprecated = append(v.Deprecated, ep)
			continue
		}

		line := ChangeLine{
			Severity: c.Severity.String(),
			Breaking: c.Breaking(),
			Path:     c.Path,
			Message:  c.Message,
		}
		if c.Endpoint != "" {
			i, ok := changed[ep]
			if !ok {
				i = len(v.Changed)
				changed[ep] = i
				v.Changed = append(v.Changed, EndpointChanges{Endpoint: ep})
			}
			v.Changed[i].Changes = append(v.Changed[i].Changes, line)
			continue
		}
		i, ok := other[c.Category]
		if !ok {
			i = len(v.Other)
			other[c.Category] = i
			v.Other = append(v.Other, CategoryChanges{Title: categoryTitle(c.Category)})
		}
		v.Other[i].Changes = append(v.Other[i].Changes, line)
	}
	return v
}

// isPresence reports whether c is a whole endpoint or operation appearing or
// disappearing.
func isPresence(c differ.Change) bool {
	if c.Type == differ.ChangeTypeModified {
		return false
	}
	switch c.Category {
	case differ.CategoryEndpoint:
		return true
	case differ.CategoryOperation:
		return c.Method != "" && c.Path == "paths."+c.Endpoint+"."+c.Method
	}
	return false
}

func isDeprecation(c differ.Change) bool {
	return c.Category == differ.CategoryOperation &&
		strings.HasSuffix(c.Path, ".deprecated") &&
		c.NewValue == true
}

// VersionLabel returns "1.0.0", or "1.0.0 -> 2.0.0" when the API version changed.
func (v *View) VersionLabel() string {
	switch {
	case v.OldVersion == v.NewVersion:
		return v.NewVersion
	case v.OldVersion == "":
		return v.NewVersion
	case v.NewVersion == "":
		return v.OldVersion
	}
	return v.OldVersion + " -> " + v.NewVersion
}

// Heading returns the title followed by the version label, if any.
func (v *View) Heading() string {
	title, version := v.Title, v.VersionLabel()
	switch {
	case title == "":
		return version
	case version == "":
		return title
	}
	return title + " (" + version + ")"
}
