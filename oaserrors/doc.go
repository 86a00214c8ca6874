// Package oaserrors provides structured error types for openapi-diff.
//
// Import path: github.com/x3t/openapi-diff/oaserrors
//
// Every stage of a report run fails with its own error type so callers can
// tell a bad option apart from an unreadable document or a broken renderer
// using [errors.Is] and [errors.As].
//
// # Error Types
//
//   - [ConfigError]: invalid or missing options; the run never starts
//   - [ComparisonError]: one of the two documents could not be loaded or compared
//   - [IOError]: the output location could not be prepared
//   - [RenderError]: one report format failed; other formats are unaffected
//   - [ParseError]: YAML/JSON decoding failures and unsupported documents
//   - [ReferenceError]: a local $ref that does not resolve
//   - [ResourceLimitError]: a document larger than the configured limit
//
// # Sentinel Errors
//
// Each error type has a corresponding sentinel error for use with errors.Is():
//
//	outcome, err := report.Run(ctx, cfg)
//	switch {
//	case errors.Is(err, oaserrors.ErrConfig):
//	    // usage problem
//	case errors.Is(err, oaserrors.ErrComparison):
//	    // input documents problem
//	}
//
// Render failures are not returned from Run; they are collected per format:
//
//	for _, rerr := range outcome.RenderErrors() {
//	    var re *oaserrors.RenderError
//	    if errors.As(rerr, &re) {
//	        fmt.Printf("%s report failed: %v\n", re.Format, re.Cause)
//	    }
//	}
package oaserrors
