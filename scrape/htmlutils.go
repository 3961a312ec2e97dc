package scrape

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// selectNode resolves a CSS selector against the document and returns
// the first matching node.
func selectNode(doc *goquery.Document, selector string) (*html.Node, error) {
	matcher, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("invalid selector '%s': %w", selector, err)
	}
	selection := doc.FindMatcher(matcher)
	if selection.Length() == 0 {
		return nil, fmt.Errorf("no element matches selector '%s'", selector)
	}
	return selection.Get(0), nil
}

func documentTitle(doc *goquery.Document) string {
	return strings.TrimSpace(doc.Find("title").First().Text())
}

func metaContent(doc *goquery.Document, name string) string {
	content, _ := doc.Find("meta[name=" + name + "]").First().Attr("content")
	return strings.TrimSpace(content)
}

func metaKeywords(doc *goquery.Document) []string {
	var keywords []string
	for _, keyword := range strings.Split(metaContent(doc, "keywords"), ",") {
		if trimmed := strings.TrimSpace(keyword); trimmed != "" {
			keywords = append(keywords, trimmed)
		}
	}
	return keywords
}
