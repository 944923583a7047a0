package render

import (
	"bytes"
	"fmt"
	"html"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/kailas-cloud/designkb/internal/domain/summary"
)

// md is safe for concurrent use; raw HTML in the source is never passed through.
var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// HTML renders the markdown narrative of s as a standalone HTML page.
func HTML(s summary.Summary) ([]byte, error) {
	var body bytes.Buffer
	if err := md.Convert([]byte(Markdown(s)), &body); err != nil {
		return nil, fmt.Errorf("convert markdown: %w", err)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n<title>%s Design System</title>\n</head>\n<body>\n",
		html.EscapeString(s.ProjectName))
	buf.Write(body.Bytes())
	buf.WriteString("</body>\n</html>\n")
	return buf.Bytes(), nil
}
