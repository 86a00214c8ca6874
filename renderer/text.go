package renderer

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/x3t/openapi-diff/differ"
)

// textWidth is the column width of the console layout.
const textWidth = 74

// RenderText writes the fixed-width console change log.
func RenderText(w io.Writer, result *differ.DiffResult) error {
	v := NewView(result)
	var b bytes.Buffer

	b.WriteString(strings.Repeat("=", textWidth) + "\n")
	b.WriteString(framed("API CHANGE LOG", "==") + "\n")
	b.WriteString(strings.Repeat("=", textWidth) + "\n")
	if h := v.Heading(); h != "" {
		b.WriteString(centered(h) + "\n")
	}

	endpointSection(&b, "What's New", v.New)
	endpointSection(&b, "What's Deleted", v.Deleted)
	endpointSection(&b, "What's Deprecated", v.Deprecated)

	if len(v.Changed) > 0 {
		textHeader(&b, "What's Changed")
		for _, ec := range v.Changed {
			fmt.Fprintf(&b, "- %s\n", textEndpoint(ec.Endpoint))
			for _, c := range ec.Changes {
				fmt.Fprintf(&b, "    %s %s\n", textMarker(c), c.Message)
			}
		}
	}

	if len(v.Other) > 0 {
		textHeader(&b, "Other Changes")
		for _, group := range v.Other {
			fmt.Fprintf(&b, "%s\n", group.Title)
			for _, c := range group.Changes {
				fmt.Fprintf(&b, "    %s %s\n", textMarker(c), c.Message)
			}
		}
	}

	textHeader(&b, "Result")
	b.WriteString(centered(v.Result) + "\n")
	if !v.Unchanged {
		b.WriteString(centered(fmt.Sprintf("%d breaking, %d warnings, %d info", v.Breaking, v.Warnings, v.Info)) + "\n")
	}
	b.WriteString(strings.Repeat("-", textWidth) + "\n")

	_, err := w.Write(b.Bytes())
	return err
}

func endpointSection(b *bytes.Buffer, title string, endpoints []Endpoint) {
	if len(endpoints) == 0 {
		return
	}
	textHeader(b, title)
	for _, ep := range endpoints {
		fmt.Fprintf(b, "- %s\n", textEndpoint(ep))
	}
}

func textHeader(b *bytes.Buffer, title string) {
	b.WriteString(strings.Repeat("-", textWidth) + "\n")
	b.WriteString(framed(title, "--") + "\n")
	b.WriteString(strings.Repeat("-", textWidth) + "\n")
}

// textEndpoint pads the method so paths line up.
func textEndpoint(ep Endpoint) string {
	if ep.Method == "" {
		return ep.Path
	}
	return fmt.Sprintf("%-7s %s", strings.ToUpper(ep.Method), ep.Path)
}

func textMarker(c ChangeLine) string {
	return "[" + c.Severity + "]"
}

// framed centers s between two copies of edge across textWidth columns.
func framed(s, edge string) string {
	inner := textWidth - 2*len(edge)
	return edge + pad(s, inner) + edge
}

// centered centers s across textWidth columns without trailing spaces.
func centered(s string) string {
	return strings.TrimRight(pad(s, textWidth), " ")
}

func pad(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	left := (width - n) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-n-left)
}
