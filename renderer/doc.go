// Package renderer turns a differ.DiffResult into report artifacts.
//
// A Registry maps each Format to a file extension and a Renderer. The
// default registry holds, in order:
//
//	html      .html
//	json      .json
//	text      .txt
//	markdown  .md
//	asciidoc  .adoc
//
// Every renderer draws from the same View, so the sections (What's New,
// What's Deleted, What's Deprecated, What's Changed, Other Changes and
// Result) are identical across formats. Output contains no timestamps and
// is byte-identical for identical input.
package renderer
