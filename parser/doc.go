// Package parser loads OpenAPI Specification documents for comparison.
//
// The parser supports OAS 2.0 and OAS 3.0 through 3.2 in YAML and JSON
// formats, from local files or remote URLs (http:// or https://). Every
// document is normalized into one OAS 3 shaped [Document] so that documents
// of different versions can be compared:
//
//   - Swagger 2.0 definitions become schemas; body and formData parameters
//     become request bodies; response schemas are expanded per produced media type
//   - local $ref pointers to parameters, responses, request bodies and headers
//     are resolved in place
//   - path-level parameters are merged into each operation
//   - schema references are kept as references and checked to exist
//
// # Quick Start
//
//	p := parser.New(parser.WithLogger(logger))
//	result, err := p.Parse(ctx, "openapi.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("Version: %s, paths: %d\n", result.Version, result.Stats.PathCount)
//
// Failures are returned as *oaserrors.ParseError or *oaserrors.ReferenceError.
package parser
