package notion

import (
	"fmt"

	"github.com/foomo/notion-mcp/service/vo"
)

// Property names checked first when looking for the page title.
var titleCandidates = []string{"title", "Name", "Page", "Title"}

// PageTitle finds the page's display title: the named candidates in
// order, then any property of type title, then a placeholder built from
// the page ID.
func PageTitle(page *Page) string {
	for _, name := range titleCandidates {
		if prop, ok := page.Properties[name]; ok && prop.Type == "title" {
			if title := firstPlainText(prop.Title); title != "" {
				return title
			}
		}
	}
	for _, prop := range page.Properties {
		if prop.Type == "title" {
			if title := firstPlainText(prop.Title); title != "" {
				return title
			}
		}
	}
	return fmt.Sprintf("Untitled Page (%s)", shortID(page.ID))
}

// DatabaseTitle returns the database's display title.
func DatabaseTitle(db *Database) string {
	if title := firstPlainText(db.Title); title != "" {
		return title
	}
	return "Untitled Database"
}

// PageProperties extracts the well-typed property values of a page.
// Property types without a stable scalar representation are skipped.
func PageProperties(page *Page) vo.Properties {
	props := make(vo.Properties, len(page.Properties))
	for name, prop := range page.Properties {
		switch prop.Type {
		case "title":
			props[name] = PlainText(prop.Title)
		case "rich_text":
			props[name] = PlainText(prop.RichText)
		case "select":
			if prop.Select != nil {
				props[name] = prop.Select.Name
			}
		case "multi_select":
			names := make([]string, 0, len(prop.MultiSelect))
			for _, option := range prop.MultiSelect {
				names = append(names, option.Name)
			}
			props[name] = names
		case "date":
			if prop.Date != nil {
				props[name] = prop.Date.Start
			}
		case "checkbox":
			props[name] = prop.Checkbox
		case "number":
			if prop.Number != nil {
				props[name] = *prop.Number
			}
		case "url":
			props[name] = prop.URL
		case "email":
			props[name] = prop.Email
		case "phone_number":
			props[name] = prop.PhoneNumber
		}
	}
	return props
}

// Titles use only the first segment, matching how page metadata is
// surfaced elsewhere; block content joins all segments.
func firstPlainText(segments []RichText) string {
	if len(segments) == 0 {
		return ""
	}
	if segments[0].PlainText != "" {
		return segments[0].PlainText
	}
	if segments[0].Text != nil {
		return segments[0].Text.Content
	}
	return ""
}

func shortID(id string) string {
	if id == "" {
		return "Unknown"
	}
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
