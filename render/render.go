package render

import (
	"bytes"
	"fmt"

	"github.com/foomo/notion-mcp/service/vo"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM, extension.TaskList),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
)

// ToHTML renders markdown to HTML with GFM extensions enabled.
func ToHTML(markdown vo.Markdown) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return buf.String(), nil
}
