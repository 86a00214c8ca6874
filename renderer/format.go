package renderer

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Format names a report format.
type Format string

// Report formats, in registry order.
const (
	FormatHTML     Format = "html"
	FormatJSON     Format = "json"
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatAsciiDoc Format = "asciidoc"
)

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

var formatAliases = map[string]Format{
	"txt":     FormatText,
	"console": FormatText,
	"md":      FormatMarkdown,
	"adoc":    FormatAsciiDoc,
	"htm":     FormatHTML,
}

// ParseFormat resolves a case-insensitive format name or alias against the
// default registry. Unknown names yield an error with a closest-match
// suggestion when one is near enough.
func ParseFormat(name string) (Format, error) {
	return defaultRegistry.Parse(name)
}

// Parse resolves a case-insensitive format name or alias registered in r.
func (r *Registry) Parse(name string) (Format, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if f, ok := formatAliases[key]; ok {
		key = string(f)
	}
	if _, ok := r.Lookup(Format(key)); ok {
		return Format(key), nil
	}

	names := r.Names()
	msg := fmt.Sprintf("unknown report format %q; valid formats: %s", name, strings.Join(names, ", "))
	if s := suggest(key, names); s != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", s)
	}
	return "", errors.New(msg)
}

// suggest returns the candidate closest to name, or "" when nothing is close.
func suggest(name string, candidates []string) string {
	if name == "" {
		return ""
	}
	if ranks := fuzzy.RankFindFold(name, candidates); len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}
	best, bestDist := "", 3
	for _, c := range candidates {
		if d := fuzzy.LevenshteinDistance(name, c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
