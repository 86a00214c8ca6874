package renderer

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/x3t/openapi-diff/differ"
)

// RenderMarkdown writes the change log as GitHub flavored markdown.
func RenderMarkdown(w io.Writer, result *differ.DiffResult) error {
	_, err := w.Write(markdownBytes(NewView(result)))
	return err
}

func markdownBytes(v *View) []byte {
	var b bytes.Buffer
	b.WriteString("# API Change Log\n\n")
	if h := v.Heading(); h != "" {
		fmt.Fprintf(&b, "**%s**\n\n", escapeMarkdown(h))
	}

	b.WriteString("| Breaking | Warnings | Info |\n")
	b.WriteString("|---------:|---------:|-----:|\n")
	fmt.Fprintf(&b, "| %d | %d | %d |\n\n", v.Breaking, v.Warnings, v.Info)

	mdEndpoints(&b, "What's New", v.New)
	mdEndpoints(&b, "What's Deleted", v.Deleted)
	mdEndpoints(&b, "What's Deprecated", v.Deprecated)

	if len(v.Changed) > 0 {
		b.WriteString("### What's Changed\n\n")
		for _, ec := range v.Changed {
			fmt.Fprintf(&b, "#### %s\n\n", mdEndpoint(ec.Endpoint))
			mdChanges(&b, ec.Changes)
		}
	}
	if len(v.Other) > 0 {
		b.WriteString("### Other Changes\n\n")
		for _, group := range v.Other {
			fmt.Fprintf(&b, "#### %s\n\n", group.Title)
			mdChanges(&b, group.Changes)
		}
	}

	b.WriteString("### Result\n\n")
	b.WriteString(v.Result + "\n")
	return b.Bytes()
}

func mdEndpoints(b *bytes.Buffer, title string, endpoints []Endpoint) {
	if len(endpoints) == 0 {
		return
	}
	fmt.Fprintf(b, "### %s\n\n", title)
	for _, ep := range endpoints {
		fmt.Fprintf(b, "* %s\n", mdEndpoint(ep))
	}
	b.WriteString("\n")
}

func mdEndpoint(ep Endpoint) string {
	if ep.Method == "" {
		return escapeMarkdown(ep.Path)
	}
	return "`" + strings.ToUpper(ep.Method) + "` " + escapeMarkdown(ep.Path)
}

func mdChanges(b *bytes.Buffer, changes []ChangeLine) {
	for _, c := range changes {
		marker := c.Severity
		if c.Breaking {
			marker = "**" + marker + "**"
		}
		fmt.Fprintf(b, "* %s %s\n", marker, escapeMarkdown(c.Message))
	}
	b.WriteString("\n")
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "`", "\\`", `*`, `\*`, `_`, `\_`,
	`[`, `\[`, `]`, `\]`, `<`, `\<`, `>`, `\>`, `|`, `\|`, `#`, `\#`,
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
