package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.yaml.in/yaml/v4"

	"github.com/x3t/openapi-diff/internal/fileutil"
	"github.com/x3t/openapi-diff/oaserrors"
)

// DefaultFileNames are searched, in order, in the working directory when no
// configuration file is given explicitly.
var DefaultFileNames = []string{".openapi-diff.yaml", ".openapi-diff.yml", ".openapi-diff.toml"}

// Discover returns the first default configuration file present in dir, or "".
func Discover(dir string) string {
	for _, name := range DefaultFileNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// LoadFile decodes a configuration file. Files ending in .toml are decoded
// as TOML, everything else as YAML.
func LoadFile(path string) (Settings, error) {
	var s Settings
	data, err := os.ReadFile(path)
	if err != nil {
		return s, &oaserrors.ConfigError{Option: "config", Value: path, Message: "cannot read configuration file", Cause: err}
	}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, &s)
	} else {
		err = yaml.Unmarshal(data, &s)
	}
	if err != nil {
		return s, &oaserrors.ConfigError{Option: "config", Value: path, Message: "invalid configuration file", Cause: err}
	}
	return s, nil
}

// Template is the configuration file written by WriteTemplate.
const Template = `# openapi-diff configuration
originalFile: api/openapi-v1.yaml
newFile: api/openapi.yaml

# Reports are written to <outputDir>/Openapi_Diff_Report.<ext>
# unless reportName is set.
outputDir: build
# reportName: build/api-changes

htmlReport: true
jsonReport: false
textReport: false
markdownReport: false
asciidocReport: false

failOnChange: false
failOnIncompatible: true

# rules:
#   - category: operation
#     change: modified
#     subtype: operationId
#     severity: info
#   - category: extension
#     change: modified
#     ignore: true
`

// WriteTemplate writes Template to path. An existing file is kept unless force is set.
func WriteTemplate(path string, force bool) error {
	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if !force {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, fileutil.OwnerReadWrite)
	if err != nil {
		if os.IsExist(err) {
			return &oaserrors.ConfigError{Option: "config", Value: path, Message: "file already exists (use --force to overwrite)"}
		}
		return &oaserrors.IOError{Op: "create", Path: path, Cause: err}
	}
	if _, err := f.WriteString(Template); err != nil {
		_ = f.Close()
		return &oaserrors.IOError{Op: "write", Path: path, Cause: err}
	}
	if err := f.Close(); err != nil {
		return &oaserrors.IOError{Op: "close", Path: path, Cause: err}
	}
	return nil
}
