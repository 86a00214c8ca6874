package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/x3t/openapi-diff/differ"
	"github.com/x3t/openapi-diff/oaserrors"
)

const petsV1 = `openapi: 3.0.3
info:
  title: Pets
  version: "1.0"
paths:
  /pets:
    get:
      operationId: listPets
      responses:
        "200":
          description: OK
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Pet'
components:
  schemas:
    Pet:
      type: object
      required: [id, name]
      properties:
        id:
          type: integer
        name:
          type: string
`

func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// startTestSession creates an in-process MCP server/client pair and returns
// the connected client session. The server is shut down when the test ends.
func startTestSession(t *testing.T, opts ...Option) *mcp.ClientSession {
	t.Helper()

	cfg := loadConfig(func(string) (string, bool) { return "", false }, nil)
	server := newServer(newHandlers(cfg, opts...))

	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	done := make(chan error, 1)
	go func() {
		done <- server.Run(ctx, serverTransport)
	}()

	client := mcp.NewClient(
		&mcp.Implementation{Name: "test-client", Version: "test"},
		nil,
	)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = session.Close()
		cancel()
		<-done
	})

	return session
}

func unmarshalStructured(t *testing.T, result *mcp.CallToolResult) map[string]any {
	t.Helper()

	if result.StructuredContent != nil {
		data, err := json.Marshal(result.StructuredContent)
		require.NoError(t, err)
		var m map[string]any
		require.NoError(t, json.Unmarshal(data, &m))
		return m
	}

	require.NotEmpty(t, result.Content, "expected at least one content item")
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", result.Content[0])

	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(text.Text), &m), "failed to parse text content as JSON")
	return m
}

func TestListTools(t *testing.T) {
	session := startTestSession(t)

	result, err := session.ListTools(context.Background(), &mcp.ListToolsParams{})
	require.NoError(t, err)

	names := make([]string, 0, len(result.Tools))
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
		assert.NotEmpty(t, tool.Description, "tool %q has empty description", tool.Name)
	}
	slices.Sort(names)
	assert.Equal(t, []string{"diff_report", "list_formats"}, names)
}

func TestListFormats(t *testing.T) {
	session := startTestSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "list_formats",
		Arguments: map[string]any{},
	})
	require.NoError(t, err)
	require.False(t, result.IsError)

	structured := unmarshalStructured(t, result)
	formats, ok := structured["formats"].([]any)
	require.True(t, ok)
	require.Len(t, formats, 5)
	first := formats[0].(map[string]any)
	assert.Equal(t, "html", first["name"])
	assert.Equal(t, ".html", first["extension"])
}

func TestDiffReport(t *testing.T) {
	dir := t.TempDir()
	original := writeDoc(t, dir, "v1.yaml", petsV1)
	revised := writeDoc(t, dir, "v2.yaml", petsV1[:len(petsV1)-len("        name:\n          type: string\n")])
	session := startTestSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "diff_report",
		Arguments: map[string]any{
			"original":             original,
			"new":                  revised,
			"formats":              []string{"json", "md"},
			"output_dir":           filepath.Join(dir, "out"),
			"fail_on_incompatible": true,
		},
	})
	require.NoError(t, err)
	require.False(t, result.IsError, "diff_report failed: %v", result.Content)

	structured := unmarshalStructured(t, result)
	assert.Equal(t, false, structured["unchanged"])
	assert.Equal(t, false, structured["compatible"])
	assert.Equal(t, true, structured["failed"])
	assert.Equal(t, filepath.Join(dir, "out", "Openapi_Diff_Report"), structured["report_base"])

	renders := structured["renders"].([]any)
	require.Len(t, renders, 2)
	assert.Equal(t, "json", renders[0].(map[string]any)["format"])
	assert.Equal(t, "markdown", renders[1].(map[string]any)["format"])
	assert.FileExists(t, filepath.Join(dir, "out", "Openapi_Diff_Report.json"))
	assert.FileExists(t, filepath.Join(dir, "out", "Openapi_Diff_Report.md"))

	gates := structured["gates"].([]any)
	require.Len(t, gates, 2)
	assert.Equal(t, false, gates[0].(map[string]any)["triggered"])
	incompatible := gates[1].(map[string]any)
	assert.Equal(t, true, incompatible["triggered"])
	assert.NotEmpty(t, incompatible["reason"])
	assert.Contains(t, structured["summary"], "Breaking changes detected")
}

func TestDiffReportUnchanged(t *testing.T) {
	dir := t.TempDir()
	doc := writeDoc(t, dir, "v1.yaml", petsV1)
	session := startTestSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "diff_report",
		Arguments: map[string]any{
			"original":       doc,
			"new":            doc,
			"fail_on_change": true,
			"output_dir":     filepath.Join(dir, "out"),
		},
	})
	require.NoError(t, err)
	require.False(t, result.IsError)

	structured := unmarshalStructured(t, result)
	assert.Equal(t, true, structured["unchanged"])
	assert.Equal(t, false, structured["failed"])
	assert.Nil(t, structured["renders"])
	assert.Equal(t, "No changes detected.", structured["summary"])
}

func TestDiffReportErrors(t *testing.T) {
	dir := t.TempDir()
	doc := writeDoc(t, dir, "v1.yaml", petsV1)

	tests := []struct {
		name string
		args map[string]any
	}{
		{"unknown format", map[string]any{"original": doc, "new": doc, "formats": []string{"pdf"}}},
		{"missing file", map[string]any{"original": filepath.Join(dir, "absent.yaml"), "new": doc}},
	}
	session := startTestSession(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.args["output_dir"] = filepath.Join(dir, "out")
			result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
				Name:      "diff_report",
				Arguments: tt.args,
			})
			require.NoError(t, err)
			assert.True(t, result.IsError)
		})
	}
}

func TestDiffReportComparatorOverride(t *testing.T) {
	calls := 0
	compare := func(_ context.Context, _, _ string) (*differ.DiffResult, error) {
		calls++
		return nil, &oaserrors.ComparisonError{Side: "original", Cause: errors.New("boom")}
	}
	h := newHandlers(&serverConfig{OutputDir: t.TempDir()}, WithComparator(comparatorFunc(compare)))

	result, _, err := h.handleDiffReport(context.Background(), nil, diffReportInput{Original: "a.yaml", New: "b.yaml"})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
	assert.Equal(t, 1, calls)
}

type comparatorFunc func(ctx context.Context, original, revised string) (*differ.DiffResult, error)

func (f comparatorFunc) Compare(ctx context.Context, original, revised string) (*differ.DiffResult, error) {
	return f(ctx, original, revised)
}

func TestSanitizeError(t *testing.T) {
	assert.Equal(t, "", sanitizeError(nil))
	assert.Equal(t, "open <path>: no such file", sanitizeError(errors.New("open /tmp/x/spec.yaml: no such file")))
}

func TestLoadConfig(t *testing.T) {
	env := map[string]string{
		"OPENAPI_DIFF_MCP_OUTPUT_DIR":         " reports ",
		"OPENAPI_DIFF_MCP_PARALLEL":           "true",
		"OPENAPI_DIFF_MCP_ALLOW_PRIVATE_URLS": "nope",
	}
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
	cfg := loadConfig(lookup, nil)
	assert.Equal(t, "reports", cfg.OutputDir)
	assert.True(t, cfg.Parallel)
	assert.False(t, cfg.AllowPrivateURLs, "invalid bool falls back to default")

	defaults := loadConfig(func(string) (string, bool) { return "", false }, nil)
	assert.Equal(t, "build", defaults.OutputDir)
	assert.False(t, defaults.Parallel)
}

func TestNewHandlersHTTPClient(t *testing.T) {
	guarded := newHandlers(&serverConfig{})
	assert.NotNil(t, guarded.client)

	open := newHandlers(&serverConfig{AllowPrivateURLs: true})
	assert.Nil(t, open.client)
}
