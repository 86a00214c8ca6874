// Package mcpserver exposes report generation as MCP (Model Context Protocol)
// tools over stdio.
package mcpserver

import (
	"context"
	"net/http"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	openapidiff "github.com/x3t/openapi-diff"
	"github.com/x3t/openapi-diff/differ"
	"github.com/x3t/openapi-diff/parser"
	"github.com/x3t/openapi-diff/renderer"
	"github.com/x3t/openapi-diff/report"
)

const serverInstructions = `openapi-diff MCP server: compares two OpenAPI documents and writes change reports.

Use list_formats to see the report formats, then diff_report with the original and new document locations (file paths or http(s) URLs). Reports are written to {output_dir}/Openapi_Diff_Report.{ext} unless report_name is given. Fail gates are reported in the result, never as tool errors.

Configuration is read from OPENAPI_DIFF_MCP_* environment variables:
- OPENAPI_DIFF_MCP_OUTPUT_DIR (default: build) - output directory when a call gives none
- OPENAPI_DIFF_MCP_PARALLEL (default: false) - render formats concurrently
- OPENAPI_DIFF_MCP_ALLOW_PRIVATE_URLS (default: false) - allow fetching documents from private or loopback addresses`

// Option configures the server.
type Option func(*handlers)

// WithLogger sets the logger shared by the tools. MCP speaks on stdout, so
// the logger must write elsewhere.
func WithLogger(l parser.Logger) Option {
	return func(h *handlers) {
		h.logger = l
	}
}

// WithRules applies severity overrides to every comparison.
func WithRules(rules differ.Rules) Option {
	return func(h *handlers) {
		h.rules = rules
	}
}

// WithComparator replaces the differ, mainly for tests.
func WithComparator(c report.Comparator) Option {
	return func(h *handlers) {
		h.comparator = c
	}
}

// handlers carries what the tools share. It is read-only after newHandlers.
type handlers struct {
	cfg        *serverConfig
	logger     parser.Logger
	rules      differ.Rules
	client     *http.Client
	comparator report.Comparator
	registry   *renderer.Registry
}

func newHandlers(cfg *serverConfig, opts ...Option) *handlers {
	h := &handlers{
		cfg:      cfg,
		logger:   parser.NopLogger{},
		registry: renderer.DefaultRegistry(),
	}
	for _, opt := range opts {
		opt(h)
	}
	if !cfg.AllowPrivateURLs {
		h.client = newSafeHTTPClient()
	}
	if h.comparator == nil {
		h.comparator = &differ.Differ{
			UserAgent:  openapidiff.UserAgent(),
			HTTPClient: h.client,
			Logger:     h.logger,
			Rules:      h.rules,
		}
	}
	return h
}

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context, opts ...Option) error {
	server := newServer(newHandlers(loadConfig(lookupEnv, nil), opts...))
	return server.Run(ctx, &mcp.StdioTransport{})
}

func newServer(h *handlers) *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "openapi-diff", Version: openapidiff.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerTools(server, h)
	return server
}

func registerTools(server *mcp.Server, h *handlers) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "diff_report",
		Description: "Compare an original and a new OpenAPI document and write change reports in the requested formats (html, json, text, markdown, asciidoc). Returns change counts, whether the change is backward compatible, one entry per written or failed report, and the state of the fail_on_change and fail_on_incompatible gates. With no formats only the comparison runs.",
	}, h.handleDiffReport)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_formats",
		Description: "List the report formats accepted by diff_report, with the file extension each one writes.",
	}, h.handleListFormats)
}

// pathPattern matches absolute filesystem paths so error messages do not
// leak the host's directory layout to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
