/*
Package differ compares two OpenAPI documents and classifies every difference
by its impact on existing clients.

# Overview

Both documents are loaded with the parser package, so any mix of OAS 2.0,
3.0, 3.1 and 3.2 documents can be compared. Schemas are matched by component
name, paths by their normalized template, and operations by HTTP method.
Changes are reported in a deterministic order: document metadata first, then
endpoints sorted by path, then component schemas and security schemes.

# Change Categories

  - CategoryEndpoint: a whole path appeared or disappeared
  - CategoryOperation: an HTTP operation changed
  - CategoryParameter: a parameter changed
  - CategoryRequestBody: a request body changed
  - CategoryResponse: a response changed
  - CategorySchema: a component or inline schema changed
  - CategorySecurity: a security scheme or requirement changed
  - CategoryServer: a server was added or removed
  - CategoryInfo: document metadata changed
  - CategoryExtension: an x-* extension changed

# Severity Levels

  - SeverityCritical: removed endpoints and operations
  - SeverityError: breaking changes such as removed required properties or type changes
  - SeverityWarning: potentially problematic changes such as deprecations
  - SeverityInfo: additions and relaxed constraints

A result is compatible when it holds no Error or Critical change, and
unchanged when it holds no change at all.

# Example

	result, err := differ.Compare(ctx, "api-v1.yaml", "api-v2.yaml")
	if err != nil {
		log.Fatal(err)
	}
	if !result.IsCompatible() {
		for _, c := range result.Changes {
			if c.Breaking() {
				fmt.Println(c)
			}
		}
	}

# Rules

Default severities can be overridden per change class with Rules:

	d, err := differ.New(differ.WithRules(differ.Rules{
		{Category: differ.CategoryOperation, ChangeType: differ.ChangeTypeModified, SubType: differ.SubTypeOperationID}: {
			Severity: differ.SeverityPtr(differ.SeverityInfo),
		},
	}))

# Related Packages

  - [github.com/x3t/openapi-diff/parser] - loads the documents being compared
  - [github.com/x3t/openapi-diff/renderer] - turns a DiffResult into a report
  - [github.com/x3t/openapi-diff/report] - runs a comparison and writes all reports
*/
package differ
