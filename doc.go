// Package openapidiff compares two OpenAPI documents and writes the result as
// reports in several formats.
//
// The module is organised as a small pipeline:
//
//   - parser: load an OpenAPI 2.0 or 3.x document from a file or URL into one normalized model
//   - differ: compare two documents and classify every change by severity
//   - renderer: turn a comparison result into HTML, JSON, text, Markdown or AsciiDoc
//   - report: orchestrate one comparison, fan the result out to the enabled formats
//     and evaluate the fail-on-change and fail-on-incompatible gates
//
// # Quick Start
//
//	import "github.com/x3t/openapi-diff/report"
//
//	cfg := report.Config{
//		OriginalLocation: "api-v1.yaml",
//		NewLocation:      "api-v2.yaml",
//		OutputDir:        "build",
//		Formats:          []renderer.Format{renderer.FormatHTML, renderer.FormatJSON},
//		FailOnIncompatible: true,
//	}
//	outcome, err := report.Run(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if outcome.Failed() {
//		for _, reason := range outcome.FailureReasons() {
//			fmt.Println(reason)
//		}
//	}
//
// Gates never terminate the process from inside the library. The
// openapi-diff command maps a triggered gate to exit status 1.
//
// # Supported Versions
//
//   - OAS 2.0 (Swagger): https://spec.openapis.org/oas/v2.0.html
//   - OAS 3.0.x, 3.1.x and 3.2.x: https://spec.openapis.org/oas/v3.1.0.html
package openapidiff
