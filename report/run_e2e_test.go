package report

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/x3t/openapi-diff/renderer"
)

const petsV1 = `openapi: 3.0.3
info:
  title: Pets
  version: 1.0.0
paths:
  /pets:
    get:
      responses:
        '200':
          description: ok
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

func writeDocs(t *testing.T, dir, original, revised string) (string, string) {
	t.Helper()
	a := filepath.Join(dir, "v1.yaml")
	b := filepath.Join(dir, "v2.yaml")
	require.NoError(t, os.WriteFile(a, []byte(original), 0o600))
	require.NoError(t, os.WriteFile(b, []byte(revised), 0o600))
	return a, b
}

func TestRunEndToEnd(t *testing.T) {
	withColor := strings.Replace(petsV1, "        name:\n          type: string\n",
		"        name:\n          type: string\n        color:\n          type: string\n", 1)
	withoutName := strings.Replace(strings.Replace(petsV1, "required: [id, name]", "required: [id]", 1),
		"        name:\n          type: string\n", "", 1)

	tests := []struct {
		name             string
		revised          string
		wantUnchanged    bool
		wantCompatible   bool
		wantChangeGate   bool
		wantIncompatible bool
	}{
		{"identical", petsV1, true, true, false, false},
		{"optional field added", withColor, false, true, true, false},
		{"required field removed", withoutName, false, false, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			original, revised := writeDocs(t, dir, petsV1, tt.revised)
			out, err := Run(context.Background(), Config{
				OriginalLocation:   original,
				NewLocation:        revised,
				OutputDir:          filepath.Join(dir, "build"),
				Formats:            []renderer.Format{renderer.FormatJSON, renderer.FormatText},
				FailOnChange:       true,
				FailOnIncompatible: true,
			})
			require.NoError(t, err)

			assert.Equal(t, tt.wantUnchanged, out.Result.IsUnchanged())
			assert.Equal(t, tt.wantCompatible, out.Result.IsCompatible())
			assert.Equal(t, tt.wantChangeGate, out.ChangeGate.Triggered)
			assert.Equal(t, tt.wantIncompatible, out.IncompatibleGate.Triggered)
			assert.Empty(t, out.RenderErrors())

			data, err := os.ReadFile(filepath.Join(dir, "build", DefaultReportName+".json"))
			require.NoError(t, err)
			var doc renderer.JSONReport
			require.NoError(t, json.Unmarshal(data, &doc))
			assert.Equal(t, tt.wantUnchanged, doc.Unchanged)
			assert.Equal(t, tt.wantCompatible, doc.Compatible)
		})
	}
}

func TestRunEndToEndMissingDocument(t *testing.T) {
	dir := t.TempDir()
	original, _ := writeDocs(t, dir, petsV1, petsV1)

	_, err := Run(context.Background(), Config{
		OriginalLocation: original,
		NewLocation:      filepath.Join(dir, "missing.yaml"),
		OutputDir:        filepath.Join(dir, "build"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "new document")
}
