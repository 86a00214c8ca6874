package pathutil

import "regexp"

// PathParamRegex matches path template parameters like {paramName}.
// It captures the parameter name inside the braces.
var PathParamRegex = regexp.MustCompile(`\{([^}]+)\}`)

// NormalizeTemplate replaces every template parameter with "{}" so that
// "/pets/{id}" and "/pets/{petId}" map to the same endpoint.
func NormalizeTemplate(path string) string {
	return PathParamRegex.ReplaceAllString(path, "{}")
}

// TemplateParams returns the parameter names of a path template in order.
func TemplateParams(path string) []string {
	matches := PathParamRegex.FindAllStringSubmatch(path, -1)
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
	}
	return names
}
