package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type listFormatsInput struct{}

type formatOutput struct {
	Name      string `json:"name"`
	Extension string `json:"extension"`
}

type listFormatsOutput struct {
	Formats []formatOutput `json:"formats"`
}

func (h *handlers) handleListFormats(_ context.Context, _ *mcp.CallToolRequest, _ listFormatsInput) (*mcp.CallToolResult, listFormatsOutput, error) {
	entries := h.registry.Entries()
	out := listFormatsOutput{Formats: make([]formatOutput, 0, len(entries))}
	for _, e := range entries {
		out.Formats = append(out.Formats, formatOutput{Name: e.Format.String(), Extension: e.Extension})
	}
	return nil, out, nil
}
