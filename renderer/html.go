package renderer

import (
	"bytes"
	"fmt"
	"html"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/x3t/openapi-diff/differ"
)

const htmlStyle = `body{font-family:-apple-system,BlinkMacSystemFont,"Segoe UI",Helvetica,Arial,sans-serif;line-height:1.5;color:#24292f;margin:0;padding:2rem}
main{max-width:60rem;margin:0 auto}
h1{border-bottom:1px solid #d0d7de;padding-bottom:.3em}
h3{border-bottom:1px solid #d0d7de;padding-bottom:.2em;margin-top:2em}
code{background:#f6f8fa;border-radius:4px;padding:.1em .4em;font-size:90%}
table{border-collapse:collapse}
th,td{border:1px solid #d0d7de;padding:.3em .8em}
strong{color:#cf222e}`

// RenderHTML writes a self-contained HTML page. The body is the markdown
// change log converted with goldmark.
func RenderHTML(w io.Writer, result *differ.DiffResult) error {
	v := NewView(result)
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))

	var body bytes.Buffer
	if err := md.Convert(markdownBytes(v), &body); err != nil {
		return fmt.Errorf("renderer: converting markdown: %w", err)
	}

	title := "API Change Log"
	if v.Title != "" {
		title += " - " + v.Title
	}

	var b bytes.Buffer
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(title))
	fmt.Fprintf(&b, "<style>\n%s\n</style>\n</head>\n<body>\n<main>\n", htmlStyle)
	b.Write(body.Bytes())
	b.WriteString("</main>\n</body>\n</html>\n")

	_, err := w.Write(b.Bytes())
	return err
}
