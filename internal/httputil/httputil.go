// Package httputil provides HTTP method and status code helpers shared by the
// parser and differ.
package httputil

import (
	"strconv"
	"strings"
)

// HTTP Status Code Constants
const (
	StatusCodeLength = 3   // Standard length of HTTP status codes (e.g., "200", "404")
	MinStatusCode    = 100 // Minimum valid HTTP status code
	MaxStatusCode    = 599 // Maximum valid HTTP status code
	WildcardChar     = 'X' // Wildcard character used in status code patterns (e.g., "2XX")
)

// HTTP Method Constants
const (
	MethodGet     = "get"
	MethodPut     = "put"
	MethodPost    = "post"
	MethodDelete  = "delete"
	MethodOptions = "options"
	MethodHead    = "head"
	MethodPatch   = "patch"
	MethodTrace   = "trace" // OAS 3.0+ only
)

// Methods lists the operation methods in the order OpenAPI documents them.
var Methods = []string{
	MethodGet, MethodPut, MethodPost, MethodDelete,
	MethodOptions, MethodHead, MethodPatch, MethodTrace,
}

// MethodRank returns the position of method in Methods, or len(Methods)
// for unknown methods.
func MethodRank(method string) int {
	for i, m := range Methods {
		if m == method {
			return i
		}
	}
	return len(Methods)
}

// ValidateStatusCode checks if a response key is valid according to OpenAPI.
// Valid values are:
//   - "default" for default response
//   - Extension fields starting with "x-"
//   - Wildcard patterns: 1XX, 2XX, 3XX, 4XX, 5XX
//   - Numeric codes: 100-599
func ValidateStatusCode(code string) bool {
	if code == "default" || strings.HasPrefix(code, "x-") {
		return true
	}
	return StatusClass(code) != 0
}

// StatusClass returns the leading digit (1-5) of a numeric or wildcard status
// code such as "404" or "4XX", and 0 for anything else including "default".
func StatusClass(code string) int {
	if len(code) != StatusCodeLength {
		return 0
	}
	upper := strings.ToUpper(code)
	if upper[1] == WildcardChar && upper[2] == WildcardChar {
		if upper[0] >= '1' && upper[0] <= '5' {
			return int(upper[0] - '0')
		}
		return 0
	}
	n, err := strconv.Atoi(code)
	if err != nil || n < MinStatusCode || n > MaxStatusCode {
		return 0
	}
	return n / 100
}

// IsSuccessCode reports whether code is a 2xx status or the 2XX wildcard.
func IsSuccessCode(code string) bool {
	return StatusClass(code) == 2
}

// IsErrorCode reports whether code is a 4xx or 5xx status.
func IsErrorCode(code string) bool {
	class := StatusClass(code)
	return class == 4 || class == 5
}
