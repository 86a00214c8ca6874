package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/x3t/openapi-diff/internal/cliutil"
)

const petsV1 = `openapi: 3.0.3
info:
  title: Pets
  version: "1.0"
paths:
  /pets:
    get:
      operationId: listPets
      parameters:
        - name: limit
          in: query
          schema:
            type: integer
      responses:
        "200":
          description: OK
`

// petsV2 makes the limit parameter required, which breaks clients, and adds an endpoint.
const petsV2 = `openapi: 3.0.3
info:
  title: Pets
  version: "2.0"
paths:
  /pets:
    get:
      operationId: listPets
      parameters:
        - name: limit
          in: query
          required: true
          schema:
            type: integer
      responses:
        "200":
          description: OK
  /pets/{id}:
    get:
      operationId: getPet
      parameters:
        - name: id
          in: path
          required: true
          schema:
            type: string
      responses:
        "200":
          description: OK
`

// petsV1Tagged only adds a description, which is compatible.
const petsV1Tagged = `openapi: 3.0.3
info:
  title: Pets
  version: "1.0"
  description: The pet store
paths:
  /pets:
    get:
      operationId: listPets
      parameters:
        - name: limit
          in: query
          schema:
            type: integer
      responses:
        "200":
          description: OK
`

// workspace chdirs into a fresh directory holding v1.yaml, v2.yaml and v1b.yaml.
func workspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range map[string]string{
		"v1.yaml":  petsV1,
		"v2.yaml":  petsV2,
		"v1b.yaml": petsV1Tagged,
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}
	t.Chdir(dir)
	return dir
}

func execute(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = Execute(context.Background(), args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestNormalizeFlagName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"original-file", "original-file"},
		{"originalFile", "original-file"},
		{"newFile", "new-file"},
		{"fail_on_change", "fail-on-change"},
		{"htmlReport", "html-report"},
		{"debug", "debug"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, string(normalizeFlagName(nil, tt.in)))
		})
	}
}

func TestSuggestCommand(t *testing.T) {
	names := []string{"compare", "formats", "version", "mcp", "init"}
	assert.Equal(t, "compare", suggestCommand("comapre", names))
	assert.Equal(t, "version", suggestCommand("Versoin", names))
	assert.Equal(t, "", suggestCommand("zzzzzzzz", names))
}

func TestCompareExitCodes(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantOut  string
	}{
		{
			name:     "identical documents",
			args:     []string{"--original-file", "v1.yaml", "--new-file", "v1.yaml", "--fail-on-change"},
			wantCode: cliutil.ExitOK,
			wantOut:  "No differences",
		},
		{
			name:     "compatible change with incompatible gate",
			args:     []string{"--originalFile", "v1.yaml", "--newFile", "v1b.yaml", "--fail-on-incompatible"},
			wantCode: cliutil.ExitOK,
			wantOut:  "backward compatible",
		},
		{
			name:     "compatible change with change gate",
			args:     []string{"--originalFile", "v1.yaml", "--newFile", "v1b.yaml", "--fail-on-change"},
			wantCode: cliutil.ExitGate,
			wantOut:  "FAILED:",
		},
		{
			name:     "breaking change",
			args:     []string{"compare", "v1.yaml", "v2.yaml", "--fail-on-incompatible"},
			wantCode: cliutil.ExitGate,
			wantOut:  "broke backward compatibility",
		},
		{
			name:     "breaking change without gates",
			args:     []string{"compare", "v1.yaml", "v2.yaml"},
			wantCode: cliutil.ExitOK,
		},
		{
			name:     "missing original",
			args:     []string{"--new-file", "v2.yaml"},
			wantCode: cliutil.ExitConfig,
		},
		{
			name:     "unknown format",
			args:     []string{"compare", "v1.yaml", "v2.yaml", "--format", "pdf"},
			wantCode: cliutil.ExitConfig,
		},
		{
			name:     "missing document",
			args:     []string{"compare", "v1.yaml", "absent.yaml"},
			wantCode: cliutil.ExitComparison,
		},
		{
			name:     "positional and flags",
			args:     []string{"compare", "v1.yaml", "v2.yaml", "--original-file", "v1.yaml"},
			wantCode: cliutil.ExitUsage,
		},
		{
			name:     "one positional",
			args:     []string{"compare", "v1.yaml"},
			wantCode: cliutil.ExitUsage,
		},
		{
			name:     "unknown flag",
			args:     []string{"--no-such-flag"},
			wantCode: cliutil.ExitUsage,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			workspace(t)
			args := append([]string{"--no-env", "--color", "never"}, tt.args...)
			code, stdout, stderr := execute(t, args...)
			assert.Equal(t, tt.wantCode, code, "stdout:\n%s\nstderr:\n%s", stdout, stderr)
			if tt.wantOut != "" {
				assert.Contains(t, stdout, tt.wantOut)
			}
		})
	}
}

func TestCompareWritesReports(t *testing.T) {
	dir := workspace(t)

	code, stdout, stderr := execute(t, "--no-env", "compare", "v1.yaml", "v2.yaml",
		"--html-report", "--format", "json,md", "--report-name", "out/changes.report", "--parallel")
	require.Equal(t, cliutil.ExitOK, code, stderr)

	for _, name := range []string{"changes.html", "changes.json", "changes.md"} {
		assert.FileExists(t, filepath.Join(dir, "out", name))
		assert.Contains(t, stdout, filepath.Join("out", name))
	}
	assert.NoFileExists(t, filepath.Join(dir, "out", "changes.txt"))
}

func TestCompareQuiet(t *testing.T) {
	workspace(t)
	code, stdout, _ := execute(t, "--no-env", "compare", "-q", "v1.yaml", "v2.yaml")
	assert.Equal(t, cliutil.ExitOK, code)
	assert.Empty(t, stdout)
}

func TestCompareConfigFile(t *testing.T) {
	dir := workspace(t)
	cfg := "originalFile: v1.yaml\nnewFile: v2.yaml\njsonReport: true\nfailOnIncompatible: true\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".openapi-diff.yaml"), []byte(cfg), 0o600))

	code, _, _ := execute(t, "--no-env")
	assert.Equal(t, cliutil.ExitGate, code)
	assert.FileExists(t, filepath.Join(dir, "build", "Openapi_Diff_Report.json"))

	// An explicitly set flag beats the file.
	code, _, _ = execute(t, "--no-env", "--fail-on-incompatible=false")
	assert.Equal(t, cliutil.ExitOK, code)
}

func TestCompareEnvironment(t *testing.T) {
	workspace(t)
	t.Setenv("OPENAPI_DIFF_FAIL_ON_CHANGE", "true")

	code, _, _ := execute(t, "compare", "v1.yaml", "v1b.yaml")
	assert.Equal(t, cliutil.ExitGate, code)

	code, _, _ = execute(t, "--no-env", "compare", "v1.yaml", "v1b.yaml")
	assert.Equal(t, cliutil.ExitOK, code)
}

func TestCompareExplicitConfigMissing(t *testing.T) {
	workspace(t)
	code, _, _ := execute(t, "--no-env", "--config", "absent.toml", "compare", "v1.yaml", "v2.yaml")
	assert.Equal(t, cliutil.ExitConfig, code)
}

func TestUnknownCommand(t *testing.T) {
	workspace(t)
	code, _, stderr := execute(t, "comapre")
	assert.Equal(t, cliutil.ExitUsage, code)
	assert.Contains(t, stderr, "comapre")
	assert.Contains(t, stderr, "did you mean")
}

func TestFormatsCommand(t *testing.T) {
	code, stdout, _ := execute(t, "formats", "--color", "never")
	require.Equal(t, cliutil.ExitOK, code)
	for _, want := range []string{"html", "json", "text", "markdown", "asciidoc", "*.adoc"} {
		assert.Contains(t, stdout, want)
	}
}

func TestVersionCommand(t *testing.T) {
	code, stdout, _ := execute(t, "version")
	require.Equal(t, cliutil.ExitOK, code)
	assert.Contains(t, stdout, "openapi-diff")
	assert.Contains(t, stdout, "version=dev")
}

func TestInitCommand(t *testing.T) {
	dir := workspace(t)

	code, stdout, _ := execute(t, "init")
	require.Equal(t, cliutil.ExitOK, code)
	assert.True(t, strings.HasPrefix(stdout, "Created"))
	assert.FileExists(t, filepath.Join(dir, ".openapi-diff.yaml"))

	code, _, _ = execute(t, "init")
	assert.Equal(t, cliutil.ExitConfig, code)

	code, _, _ = execute(t, "init", "--force")
	assert.Equal(t, cliutil.ExitOK, code)
}
