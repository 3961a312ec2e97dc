package notion

import (
	"testing"

	"github.com/foomo/notion-mcp/service/vo"
	"github.com/stretchr/testify/require"
)

func titleProp(text string) PropertyValue {
	return PropertyValue{Type: "title", Title: []RichText{{PlainText: text}}}
}

func TestPageTitle(t *testing.T) {
	t.Run("named candidate wins", func(t *testing.T) {
		page := &Page{
			ID: "16b9e94d-1c93-81ce-a6c4-e74c508efea6",
			Properties: map[string]PropertyValue{
				"Name":    titleProp("The Pragmatic Field Guide"),
				"Snippet": {Type: "rich_text", RichText: []RichText{{PlainText: "ignored"}}},
			},
		}
		require.Equal(t, "The Pragmatic Field Guide", PageTitle(page))
	})

	t.Run("candidate order", func(t *testing.T) {
		page := &Page{
			Properties: map[string]PropertyValue{
				"Name": titleProp("from Name"),
				"Page": titleProp("from Page"),
			},
		}
		require.Equal(t, "from Name", PageTitle(page))
	})

	t.Run("any title typed property", func(t *testing.T) {
		page := &Page{
			Properties: map[string]PropertyValue{
				"Chapter": titleProp("Getting Started"),
			},
		}
		require.Equal(t, "Getting Started", PageTitle(page))
	})

	t.Run("candidate must be title typed", func(t *testing.T) {
		page := &Page{
			ID: "16b9e94d-1c93-81ce-a6c4-e74c508efea6",
			Properties: map[string]PropertyValue{
				"Name": {Type: "rich_text", RichText: []RichText{{PlainText: "not a title"}}},
			},
		}
		require.Equal(t, "Untitled Page (16b9e94d)", PageTitle(page))
	})

	t.Run("fallback uses ID prefix", func(t *testing.T) {
		page := &Page{ID: "16b9e94d-1c93-81ce-a6c4-e74c508efea6"}
		require.Equal(t, "Untitled Page (16b9e94d)", PageTitle(page))
	})

	t.Run("fallback without ID", func(t *testing.T) {
		require.Equal(t, "Untitled Page (Unknown)", PageTitle(&Page{}))
	})

	t.Run("text content fallback per segment", func(t *testing.T) {
		page := &Page{
			Properties: map[string]PropertyValue{
				"title": {Type: "title", Title: []RichText{{Text: &TextContent{Content: "From Text Content"}}}},
			},
		}
		require.Equal(t, "From Text Content", PageTitle(page))
	})
}

func TestDatabaseTitle(t *testing.T) {
	db := &Database{Title: []RichText{{PlainText: "Chapters"}}}
	require.Equal(t, "Chapters", DatabaseTitle(db))
	require.Equal(t, "Untitled Database", DatabaseTitle(&Database{}))
}

func TestPageProperties(t *testing.T) {
	number := 42.5
	page := &Page{
		Properties: map[string]PropertyValue{
			"title":    titleProp("My Book"),
			"Summary":  {Type: "rich_text", RichText: []RichText{{PlainText: "part one, "}, {PlainText: "part two"}}},
			"Status":   {Type: "select", Select: &SelectOption{Name: "Published"}},
			"Tags":     {Type: "multi_select", MultiSelect: []SelectOption{{Name: "guide"}, {Name: "reference"}}},
			"Due":      {Type: "date", Date: &DateValue{Start: "2024-03-01"}},
			"Done":     {Type: "checkbox", Checkbox: true},
			"Pages":    {Type: "number", Number: &number},
			"Website":  {Type: "url", URL: "https://example.com"},
			"Contact":  {Type: "email", Email: "author@example.com"},
			"Phone":    {Type: "phone_number", PhoneNumber: "+1-555-0100"},
			"Relation": {Type: "relation"},
		},
	}

	props := PageProperties(page)
	require.Equal(t, vo.Properties{
		"title":   "My Book",
		"Summary": "part one, part two",
		"Status":  "Published",
		"Tags":    []string{"guide", "reference"},
		"Due":     "2024-03-01",
		"Done":    true,
		"Pages":   42.5,
		"Website": "https://example.com",
		"Contact": "author@example.com",
		"Phone":   "+1-555-0100",
	}, props)
	require.NotContains(t, props, "Relation")
}

func TestPlainTextJoinsSegments(t *testing.T) {
	segments := []RichText{
		{PlainText: "Hello "},
		{Text: &TextContent{Content: "wor"}},
		{PlainText: "ld"},
	}
	require.Equal(t, "Hello world", PlainText(segments))
	require.Equal(t, "", PlainText(nil))
}
