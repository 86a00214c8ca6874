// Package report runs a comparison of two OpenAPI documents and writes the
// change log in every requested format.
//
// A run never terminates the process. Fail gates are evaluated and returned
// in the Outcome for the caller to act on:
//
//	out, err := report.Run(ctx, report.Config{
//		OriginalLocation:   "api/v1.yaml",
//		NewLocation:        "api/v2.yaml",
//		Formats:            []renderer.Format{renderer.FormatHTML, renderer.FormatJSON},
//		FailOnIncompatible: true,
//	})
//	if err != nil {
//		return err
//	}
//	for _, reason := range out.FailureReasons() {
//		fmt.Println(reason)
//	}
//
// Reports are written to the report base plus the format extension. The base
// is ReportName up to its first ".", or OutputDir/Openapi_Diff_Report.
package report
