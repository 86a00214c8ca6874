package parser

import "strings"

// OASVersion identifies the OpenAPI Specification series a document declares.
// Patch releases within a series share one value; the exact version string is
// kept in ParseResult.Version.
type OASVersion int

const (
	// Unknown represents an unknown or invalid OAS version
	Unknown OASVersion = iota
	// OASVersion20 OpenAPI Specification Version 2.0 (Swagger)
	OASVersion20
	// OASVersion30 OpenAPI Specification Version 3.0.x
	OASVersion30
	// OASVersion31 OpenAPI Specification Version 3.1.x
	OASVersion31
	// OASVersion32 OpenAPI Specification Version 3.2.x
	OASVersion32
)

var versionSeries = []struct {
	prefix  string
	version OASVersion
}{
	{"3.0.", OASVersion30},
	{"3.1.", OASVersion31},
	{"3.2.", OASVersion32},
}

// ParseVersion maps a declared version string to its OASVersion.
// "2.0" is the only accepted Swagger value; 3.x versions match by series so
// future patch releases are accepted.
func ParseVersion(s string) (OASVersion, bool) {
	s = strings.TrimSpace(s)
	if s == "2.0" {
		return OASVersion20, true
	}
	for _, series := range versionSeries {
		if strings.HasPrefix(s, series.prefix) && len(s) > len(series.prefix) {
			return series.version, true
		}
	}
	return Unknown, false
}

// String returns the series label, e.g. "3.1".
func (v OASVersion) String() string {
	switch v {
	case OASVersion20:
		return "2.0"
	case OASVersion30:
		return "3.0"
	case OASVersion31:
		return "3.1"
	case OASVersion32:
		return "3.2"
	default:
		return "unknown"
	}
}

// IsOAS3 reports whether the version belongs to any 3.x series.
func (v OASVersion) IsOAS3() bool {
	return v >= OASVersion30
}
