package config

import (
	"strconv"
	"strings"

	"github.com/x3t/openapi-diff/oaserrors"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "OPENAPI_DIFF_"

type envSetter func(s *Settings, value string) error

func envString(field func(*Settings) **string) envSetter {
	return func(s *Settings, value string) error {
		v := value
		*field(s) = &v
		return nil
	}
}

func envBool(field func(*Settings) **bool) envSetter {
	return func(s *Settings, value string) error {
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return err
		}
		*field(s) = &b
		return nil
	}
}

// envMappings maps variable names without prefix to settings fields.
var envMappings = map[string]envSetter{
	"ORIGINAL_FILE":        envString(func(s *Settings) **string { return &s.OriginalFile }),
	"NEW_FILE":             envString(func(s *Settings) **string { return &s.NewFile }),
	"REPORT_NAME":          envString(func(s *Settings) **string { return &s.ReportName }),
	"OUTPUT_DIR":           envString(func(s *Settings) **string { return &s.OutputDir }),
	"HTML_REPORT":          envBool(func(s *Settings) **bool { return &s.HTMLReport }),
	"JSON_REPORT":          envBool(func(s *Settings) **bool { return &s.JSONReport }),
	"TEXT_REPORT":          envBool(func(s *Settings) **bool { return &s.TextReport }),
	"MARKDOWN_REPORT":      envBool(func(s *Settings) **bool { return &s.MarkdownReport }),
	"ASCIIDOC_REPORT":      envBool(func(s *Settings) **bool { return &s.AsciiDocReport }),
	"FAIL_ON_CHANGE":       envBool(func(s *Settings) **bool { return &s.FailOnChange }),
	"FAIL_ON_INCOMPATIBLE": envBool(func(s *Settings) **bool { return &s.FailOnIncompatible }),
	"PARALLEL":             envBool(func(s *Settings) **bool { return &s.Parallel }),
	"FORMATS": func(s *Settings, value string) error {
		s.Formats = splitList(value)
		return nil
	},
}

// FromEnv builds a settings layer from OPENAPI_DIFF_* variables. lookup is
// usually os.LookupEnv. Empty values are ignored.
func FromEnv(lookup func(string) (string, bool)) (Settings, error) {
	var s Settings
	for suffix, set := range envMappings {
		name := EnvPrefix + suffix
		value, ok := lookup(name)
		if !ok || value == "" {
			continue
		}
		if err := set(&s, value); err != nil {
			return s, &oaserrors.ConfigError{Option: name, Value: value, Message: "invalid boolean (expected true/false/1/0)", Cause: err}
		}
	}
	return s, nil
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
