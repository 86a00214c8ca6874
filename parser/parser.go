package parser

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"go.yaml.in/yaml/v4"

	openapidiff "github.com/x3t/openapi-diff"
	"github.com/x3t/openapi-diff/oaserrors"
)

// Parser loads OpenAPI documents from files or URLs.
type Parser struct {
	// UserAgent is the User-Agent string used when fetching URLs.
	// Defaults to "openapi-diff/<version>" if not set.
	UserAgent string
	// HTTPClient is the HTTP client used for fetching URLs.
	// If nil, a default client with a 30-second timeout is created.
	HTTPClient *http.Client
	// Logger is the structured logger for debug output.
	// If nil, logging is disabled (default).
	Logger Logger
	// MaxFileSize is the maximum accepted document size in bytes.
	// Default: 10MB
	MaxFileSize int64
}

// Option configures a Parser.
type Option func(*Parser)

// WithUserAgent sets the User-Agent used for URL fetches.
func WithUserAgent(ua string) Option {
	return func(p *Parser) { p.UserAgent = ua }
}

// WithHTTPClient sets the client used for URL fetches.
func WithHTTPClient(c *http.Client) Option {
	return func(p *Parser) { p.HTTPClient = c }
}

// WithLogger sets the structured logger.
func WithLogger(l Logger) Option {
	return func(p *Parser) { p.Logger = l }
}

// WithMaxFileSize sets the maximum accepted document size in bytes.
func WithMaxFileSize(n int64) Option {
	return func(p *Parser) { p.MaxFileSize = n }
}

// New creates a new Parser instance with default settings
func New(opts ...Option) *Parser {
	p := &Parser{
		UserAgent:   openapidiff.UserAgent(),
		MaxFileSize: defaultMaxFileSize,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// log returns the configured logger, or a no-op logger if none is set.
func (p *Parser) log() Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return NopLogger{}
}

func (p *Parser) maxFileSize() int64 {
	if p.MaxFileSize > 0 {
		return p.MaxFileSize
	}
	return defaultMaxFileSize
}

// SourceFormat represents the format of the source OpenAPI specification file
type SourceFormat string

const (
	// SourceFormatYAML indicates the source was in YAML format
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatJSON indicates the source was in JSON format
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatUnknown indicates the source format could not be determined
	SourceFormatUnknown SourceFormat = "unknown"
)

// ParseResult contains a parsed document and metadata about its source.
// Callers should treat it as read-only.
type ParseResult struct {
	// SourcePath is the file path or URL the document was read from
	SourcePath string
	// SourceFormat is the format of the source (JSON or YAML)
	SourceFormat SourceFormat
	// Version is the declared OAS version string (e.g., "2.0", "3.0.3")
	Version string
	// OASVersion is the version series
	OASVersion OASVersion
	// Document is the normalized document
	Document *Document
	// Stats summarizes the document
	Stats DocumentStats
	// SourceSize is the size of the source in bytes
	SourceSize int64
	// LoadTime is the time taken to read the source (file or URL)
	LoadTime time.Duration
}

// Parse loads the document at location, which is either a local file path
// or an http(s) URL. Failures are reported as *oaserrors.ParseError or
// *oaserrors.ReferenceError.
func (p *Parser) Parse(ctx context.Context, location string) (*ParseResult, error) {
	start := time.Now()
	var (
		data        []byte
		format      SourceFormat
		err         error
		contentType string
	)
	if isURL(location) {
		data, contentType, err = p.fetchURL(ctx, location)
		if err != nil {
			return nil, &oaserrors.ParseError{Path: location, Message: "failed to fetch document", Cause: err}
		}
		format = detectFormatFromURL(location, contentType)
	} else {
		data, err = p.readFile(location)
		if err != nil {
			return nil, err
		}
		format = detectFormatFromPath(location)
	}
	loadTime := time.Since(start)
	p.log().Debug("loaded document", "location", location, "size", FormatBytes(int64(len(data))), "took", loadTime)

	result, err := p.ParseBytes(data, location)
	if err != nil {
		return nil, err
	}
	if format != SourceFormatUnknown {
		result.SourceFormat = format
	}
	result.LoadTime = loadTime
	return result, nil
}

func (p *Parser) readFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &oaserrors.ParseError{Path: path, Message: "failed to read file", Cause: err}
	}
	if info.IsDir() {
		return nil, &oaserrors.ParseError{Path: path, Message: "path is a directory"}
	}
	if limit := p.maxFileSize(); info.Size() > limit {
		return nil, &oaserrors.ParseError{Path: path, Cause: &oaserrors.ResourceLimitError{
			ResourceType: "file_size", Limit: limit, Actual: info.Size(),
		}}
	}
	f, err := os.Open(path) //nolint:gosec // path is user-provided input
	if err != nil {
		return nil, &oaserrors.ParseError{Path: path, Message: "failed to read file", Cause: err}
	}
	defer func() { _ = f.Close() }()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, &oaserrors.ParseError{Path: path, Message: "failed to read file", Cause: err}
	}
	return data, nil
}

// versionProbe reads just enough of a document to pick a decoder.
type versionProbe struct {
	OpenAPI string `yaml:"openapi"`
	Swagger string `yaml:"swagger"`
}

// ParseBytes parses an in-memory document. source names the document in
// errors and in ParseResult.SourcePath.
func (p *Parser) ParseBytes(data []byte, source string) (*ParseResult, error) {
	if len(data) == 0 {
		return nil, &oaserrors.ParseError{Path: source, Message: "document is empty"}
	}
	if limit := p.maxFileSize(); int64(len(data)) > limit {
		return nil, &oaserrors.ParseError{Path: source, Cause: &oaserrors.ResourceLimitError{
			ResourceType: "file_size", Limit: limit, Actual: int64(len(data)),
		}}
	}

	var probe versionProbe
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return nil, decodeError(source, "failed to parse YAML/JSON", err)
	}
	declared := probe.OpenAPI
	if declared == "" {
		declared = probe.Swagger
	}
	if declared == "" {
		return nil, &oaserrors.ParseError{Path: source, Message: "missing 'openapi' or 'swagger' version field"}
	}
	version, ok := ParseVersion(declared)
	if !ok || (version == OASVersion20) != (probe.Swagger != "") {
		return nil, &oaserrors.ParseError{
			Path:    source,
			Message: fmt.Sprintf("unsupported OpenAPI version: %s (only 2.0 and 3.x versions are supported)", declared),
		}
	}

	doc, err := decodeDocument(data, source, version)
	if err != nil {
		return nil, err
	}
	if doc.Info == nil {
		doc.Info = &Info{}
	}
	if err := checkSchemaRefs(doc); err != nil {
		return nil, err
	}

	p.log().Debug("parsed document", "source", source, "version", doc.Version,
		"paths", len(doc.Paths), "schemas", len(doc.Schemas))

	return &ParseResult{
		SourcePath:   source,
		SourceFormat: detectFormatFromContent(data),
		Version:      doc.Version,
		OASVersion:   version,
		Document:     doc,
		Stats:        GetDocumentStats(doc),
		SourceSize:   int64(len(data)),
	}, nil
}

func decodeDocument(data []byte, source string, version OASVersion) (*Document, error) {
	if version == OASVersion20 {
		var raw oas2Document
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, decodeError(source, "failed to parse OAS 2.0 document structure", err)
		}
		return raw.normalize()
	}
	var raw oas3Document
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, decodeError(source, fmt.Sprintf("failed to parse OAS %s document structure", version), err)
	}
	return raw.normalize(version)
}

func decodeError(source, msg string, err error) error {
	return &oaserrors.ParseError{Path: source, Message: msg, Cause: err}
}
