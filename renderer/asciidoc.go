package renderer

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/x3t/openapi-diff/differ"
)

// RenderAsciiDoc writes the change log as an AsciiDoc document.
func RenderAsciiDoc(w io.Writer, result *differ.DiffResult) error {
	v := NewView(result)
	var b bytes.Buffer

	b.WriteString("= API Change Log\n:toc:\n\n")
	if h := v.Heading(); h != "" {
		fmt.Fprintf(&b, "%s\n\n", adocText(h))
	}

	adocEndpoints(&b, "What's New", v.New)
	adocEndpoints(&b, "What's Deleted", v.Deleted)
	adocEndpoints(&b, "What's Deprecated", v.Deprecated)

	if len(v.Changed) > 0 {
		b.WriteString("== What's Changed\n\n")
		for _, ec := range v.Changed {
			fmt.Fprintf(&b, "=== %s\n\n", adocEndpoint(ec.Endpoint))
			adocChanges(&b, ec.Changes)
		}
	}
	if len(v.Other) > 0 {
		b.WriteString("== Other Changes\n\n")
		for _, group := range v.Other {
			fmt.Fprintf(&b, "=== %s\n\n", group.Title)
			adocChanges(&b, group.Changes)
		}
	}

	b.WriteString("== Result\n\n")
	b.WriteString(v.Result + "\n")

	_, err := w.Write(b.Bytes())
	return err
}

func adocEndpoints(b *bytes.Buffer, title string, endpoints []Endpoint) {
	if len(endpoints) == 0 {
		return
	}
	fmt.Fprintf(b, "== %s\n\n", title)
	for _, ep := range endpoints {
		fmt.Fprintf(b, "* %s\n", adocEndpoint(ep))
	}
	b.WriteString("\n")
}

func adocEndpoint(ep Endpoint) string {
	if ep.Method == "" {
		return adocText(ep.Path)
	}
	return "`" + strings.ToUpper(ep.Method) + "` " + adocText(ep.Path)
}

func adocChanges(b *bytes.Buffer, changes []ChangeLine) {
	for _, c := range changes {
		marker := c.Severity
		if c.Breaking {
			marker = "*" + marker + "*"
		}
		fmt.Fprintf(b, "* %s %s\n", marker, adocText(c.Message))
	}
	b.WriteString("\n")
}

// adocText wraps s in an inline passthrough so braces, asterisks and
// underscores in paths are shown literally.
func adocText(s string) string {
	if !strings.ContainsAny(s, "{}*_`#[]+") {
		return s
	}
	return "pass:c[" + strings.ReplaceAll(s, "]", `\]`) + "]"
}
