package scrape

import (
	"context"
	"fmt"
	"net/http"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
	"github.com/foomo/notion-mcp/service/vo"
)

// Result carries the scraped page's markdown plus the document metadata
// found in its head.
type Result struct {
	Title       string      `json:"title,omitempty"`       // Content of the <title> element
	Description string      `json:"description,omitempty"` // Meta description
	Keywords    []string    `json:"keywords,omitempty"`    // Meta keywords, split and trimmed
	Markdown    vo.Markdown `json:"markdown"`              // Selected content as markdown
}

// Page downloads the URL, selects content with a CSS selector and
// converts it to markdown.
func Page(ctx context.Context, client *http.Client, pageURL, selector string) (*Result, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download HTML: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP request failed with status: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	node, err := selectNode(doc, selector)
	if err != nil {
		return nil, err
	}

	markdownBytes, err := htmltomarkdown.ConvertNode(node)
	if err != nil {
		return nil, fmt.Errorf("failed to convert HTML to markdown: %w", err)
	}

	return &Result{
		Title:       documentTitle(doc),
		Description: metaContent(doc, "description"),
		Keywords:    metaKeywords(doc),
		Markdown:    vo.Markdown(markdownBytes),
	}, nil
}
