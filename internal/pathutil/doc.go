// Package pathutil provides helpers for OpenAPI path templates.
//
// Endpoints are matched across documents by their normalized template, so a
// renamed path parameter does not show up as a removed and an added endpoint:
//
//	pathutil.NormalizeTemplate("/pets/{petId}") // "/pets/{}"
package pathutil
