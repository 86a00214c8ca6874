package mcpserver

import (
	"os"
	"strconv"
	"strings"

	"github.com/x3t/openapi-diff/parser"
	"github.com/x3t/openapi-diff/report"
)

// serverConfig holds the MCP server defaults, read once at startup.
type serverConfig struct {
	// OutputDir is used when a call gives neither output_dir nor report_name.
	OutputDir string
	// Parallel renders the formats of one call concurrently.
	Parallel bool
	// AllowPrivateURLs disables the private-address guard on URL fetches.
	AllowPrivateURLs bool
}

func lookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

// loadConfig reads OPENAPI_DIFF_MCP_* variables. Invalid values log a
// warning and fall back to the default.
func loadConfig(lookup func(string) (string, bool), logger parser.Logger) *serverConfig {
	if logger == nil {
		logger = parser.NopLogger{}
	}
	return &serverConfig{
		OutputDir:        envString(lookup, "OPENAPI_DIFF_MCP_OUTPUT_DIR", report.DefaultOutputDir),
		Parallel:         envBool(lookup, logger, "OPENAPI_DIFF_MCP_PARALLEL", false),
		AllowPrivateURLs: envBool(lookup, logger, "OPENAPI_DIFF_MCP_ALLOW_PRIVATE_URLS", false),
	}
}

func envString(lookup func(string) (string, bool), key, fallback string) string {
	v, ok := lookup(key)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	return strings.TrimSpace(v)
}

func envBool(lookup func(string) (string, bool), logger parser.Logger, key string, fallback bool) bool {
	v, ok := lookup(key)
	if !ok || v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		logger.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return b
}
