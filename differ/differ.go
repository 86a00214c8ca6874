package differ

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/x3t/openapi-diff/internal/severity"
	"github.com/x3t/openapi-diff/oaserrors"
	"github.com/x3t/openapi-diff/parser"
)

// ChangeType indicates whether a change is an addition, removal, or modification
type ChangeType string

const (
	// ChangeTypeAdded indicates a new element was added
	ChangeTypeAdded ChangeType = "added"
	// ChangeTypeRemoved indicates an element was removed
	ChangeTypeRemoved ChangeType = "removed"
	// ChangeTypeModified indicates an existing element was changed
	ChangeTypeModified ChangeType = "modified"
)

// ChangeCategory indicates which part of the document was changed
type ChangeCategory string

const (
	// CategoryEndpoint indicates a whole path was added or removed
	CategoryEndpoint ChangeCategory = "endpoint"
	// CategoryOperation indicates an HTTP operation change
	CategoryOperation ChangeCategory = "operation"
	// CategoryParameter indicates a parameter change
	CategoryParameter ChangeCategory = "parameter"
	// CategoryRequestBody indicates a request body change
	CategoryRequestBody ChangeCategory = "request_body"
	// CategoryResponse indicates a response change
	CategoryResponse ChangeCategory = "response"
	// CategorySchema indicates a component schema change
	CategorySchema ChangeCategory = "schema"
	// CategorySecurity indicates a security scheme or requirement change
	CategorySecurity ChangeCategory = "security"
	// CategoryServer indicates a server change
	CategoryServer ChangeCategory = "server"
	// CategoryInfo indicates a metadata change (info, tags)
	CategoryInfo ChangeCategory = "info"
	// CategoryExtension indicates a specification extension (x-*) change
	CategoryExtension ChangeCategory = "extension"
)

// Severity indicates the severity level of a change
type Severity = severity.Severity

const (
	// SeverityInfo indicates informational changes (additions, relaxed constraints)
	SeverityInfo = severity.SeverityInfo
	// SeverityWarning indicates potentially problematic changes
	SeverityWarning = severity.SeverityWarning
	// SeverityError indicates breaking changes (removed features, stricter constraints)
	SeverityError = severity.SeverityError
	// SeverityCritical indicates critical breaking changes (removed endpoints, operations)
	SeverityCritical = severity.SeverityCritical
)

// Change represents a single difference between two OpenAPI documents
type Change struct {
	// Path is the dotted path to the changed element (e.g., "paths./pets.get")
	Path string
	// Type indicates if this is an addition, removal, or modification
	Type ChangeType
	// Category indicates which part of the document was changed
	Category ChangeCategory
	// Severity indicates the impact on existing clients
	Severity Severity
	// Endpoint is the path template the change belongs to, if any
	Endpoint string
	// Method is the lower-case HTTP method the change belongs to, if any
	Method string
	// OldValue is the value in the original document (nil for additions)
	OldValue any
	// NewValue is the value in the new document (nil for removals)
	NewValue any
	// Message is a human-readable description of the change
	Message string
}

// Breaking reports whether the change breaks backward compatibility.
func (c Change) Breaking() bool {
	return c.Severity.IsBreaking()
}

// String returns a formatted string representation of the change
func (c Change) String() string {
	var symbol string
	switch c.Severity {
	case SeverityError, SeverityCritical:
		symbol = "✗"
	case SeverityWarning:
		symbol = "⚠"
	default:
		symbol = "ℹ"
	}
	return fmt.Sprintf("%s %s [%s] %s: %s", symbol, c.Path, c.Type, c.Category, c.Message)
}

// DiffResult contains the results of comparing two OpenAPI documents
type DiffResult struct {
	// SourceLocation is where the original document was loaded from
	SourceLocation string
	// SourceVersion is the original document's OAS version string
	SourceVersion string
	// SourceOASVersion is the original document's version series
	SourceOASVersion parser.OASVersion
	// SourceTitle is info.title of the original document
	SourceTitle string
	// SourceAPIVersion is info.version of the original document
	SourceAPIVersion string
	// SourceStats contains statistical information about the original document
	SourceStats parser.DocumentStats

	// TargetLocation is where the new document was loaded from
	TargetLocation string
	// TargetVersion is the new document's OAS version string
	TargetVersion string
	// TargetOASVersion is the new document's version series
	TargetOASVersion parser.OASVersion
	// TargetTitle is info.title of the new document
	TargetTitle string
	// TargetAPIVersion is info.version of the new document
	TargetAPIVersion string
	// TargetStats contains statistical information about the new document
	TargetStats parser.DocumentStats

	// Changes contains all detected changes in a deterministic order
	Changes []Change
	// BreakingCount is the number of breaking changes (Critical + Error severity)
	BreakingCount int
	// WarningCount is the number of warnings
	WarningCount int
	// InfoCount is the number of informational changes
	InfoCount int
}

// IsUnchanged reports whether the documents are equivalent.
func (r *DiffResult) IsUnchanged() bool {
	return len(r.Changes) == 0
}

// IsCompatible reports whether every change is backward compatible.
// An unchanged result is compatible.
func (r *DiffResult) IsCompatible() bool {
	return r.BreakingCount == 0
}

// Differ compares OpenAPI documents
type Differ struct {
	// UserAgent is the User-Agent string used when fetching URLs
	UserAgent string
	// HTTPClient is used to fetch documents given as URLs
	HTTPClient *http.Client
	// Logger is the structured logger for debug output
	Logger parser.Logger
	// Rules overrides default severities or ignores selected changes
	Rules Rules
}

// Option configures a Differ.
type Option func(*Differ) error

// WithUserAgent sets the User-Agent used for URL fetches.
func WithUserAgent(ua string) Option {
	return func(d *Differ) error {
		d.UserAgent = ua
		return nil
	}
}

// WithHTTPClient sets the client used for URL fetches.
func WithHTTPClient(c *http.Client) Option {
	return func(d *Differ) error {
		d.HTTPClient = c
		return nil
	}
}

// WithLogger sets the structured logger.
func WithLogger(l parser.Logger) Option {
	return func(d *Differ) error {
		d.Logger = l
		return nil
	}
}

// WithRules sets severity overrides. Every override is validated.
func WithRules(rules Rules) Option {
	return func(d *Differ) error {
		if err := rules.Validate(); err != nil {
			return &oaserrors.ConfigError{Option: "rules", Message: "invalid rule", Cause: err}
		}
		d.Rules = rules
		return nil
	}
}

// New creates a new Differ. Options are applied in order.
func New(opts ...Option) (*Differ, error) {
	d := &Differ{}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (d *Differ) log() parser.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return parser.NopLogger{}
}

func (d *Differ) newParser() *parser.Parser {
	opts := []parser.Option{parser.WithLogger(d.log())}
	if d.UserAgent != "" {
		opts = append(opts, parser.WithUserAgent(d.UserAgent))
	}
	if d.HTTPClient != nil {
		opts = append(opts, parser.WithHTTPClient(d.HTTPClient))
	}
	return parser.New(opts...)
}

// Compare loads both documents and compares them. The two documents are
// loaded concurrently. Any failure is returned as *oaserrors.ComparisonError
// naming the failing side; when both fail, the original side is reported.
func (d *Differ) Compare(ctx context.Context, original, revised string) (*DiffResult, error) {
	p := d.newParser()
	var (
		source, target       *parser.ParseResult
		sourceErr, targetErr error
	)
	var g errgroup.Group
	g.Go(func() error {
		source, sourceErr = p.Parse(ctx, original)
		return nil
	})
	g.Go(func() error {
		target, targetErr = p.Parse(ctx, revised)
		return nil
	})
	_ = g.Wait()

	if sourceErr != nil {
		return nil, &oaserrors.ComparisonError{Side: "original", Location: original, Cause: sourceErr}
	}
	if targetErr != nil {
		return nil, &oaserrors.ComparisonError{Side: "new", Location: revised, Cause: targetErr}
	}
	return d.DiffParsed(source, target), nil
}

// DiffParsed compares two already parsed documents.
func (d *Differ) DiffParsed(source, target *parser.ParseResult) *DiffResult {
	result := &DiffResult{
		SourceLocation:   source.SourcePath,
		SourceVersion:    source.Version,
		SourceOASVersion: source.OASVersion,
		SourceStats:      source.Stats,
		TargetLocation:   target.SourcePath,
		TargetVersion:    target.Version,
		TargetOASVersion: target.OASVersion,
		TargetStats:      target.Stats,
		Changes:          make([]Change, 0),
	}
	if info := source.Document.Info; info != nil {
		result.SourceTitle, result.SourceAPIVersion = info.Title, info.Version
	}
	if info := target.Document.Info; info != nil {
		result.TargetTitle, result.TargetAPIVersion = info.Title, info.Version
	}

	st := &diffState{differ: d, result: result, source: source.Document, target: target.Document}
	st.document()

	for _, c := range result.Changes {
		switch c.Severity {
		case SeverityError, SeverityCritical:
			result.BreakingCount++
		case SeverityWarning:
			result.WarningCount++
		default:
			result.InfoCount++
		}
	}
	d.log().Debug("compared documents",
		"changes", len(result.Changes), "breaking", result.BreakingCount,
		"warnings", result.WarningCount, "info", result.InfoCount)
	return result
}

// Compare is a convenience wrapper that compares two documents with default settings.
func Compare(ctx context.Context, original, revised string) (*DiffResult, error) {
	d, err := New()
	if err != nil {
		return nil, err
	}
	return d.Compare(ctx, original, revised)
}
