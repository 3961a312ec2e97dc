package vo

import "strings"

type Markdown string

// PageID is the canonical page identifier: 32 hex characters rendered
// lowercase with hyphens grouping them 8-4-4-4-12.
type PageID string

// Compact returns the identifier without hyphens.
func (id PageID) Compact() string {
	return strings.ReplaceAll(string(id), "-", "")
}

// PageReference pairs an extracted page ID with the URL it came from.
type PageReference struct {
	PageID PageID `json:"page_id"` // Canonical grouped form
	URL    string `json:"url"`     // Original input URL
}

// Properties maps property names to their extracted values: strings,
// string slices, bools or numbers depending on the property type.
type Properties map[string]any

// ContentBlock is one flattened unit of page content.
type ContentBlock struct {
	Kind     string `json:"kind"`               // Block type tag, e.g. "heading_1"
	Text     string `json:"text,omitempty"`     // Joined plain text of the block
	Language string `json:"language,omitempty"` // Code blocks only
	Checked  bool   `json:"checked,omitempty"`  // To-do blocks only
}

// Recognized block kinds.
const (
	BlockHeading1         = "heading_1"
	BlockHeading2         = "heading_2"
	BlockHeading3         = "heading_3"
	BlockParagraph        = "paragraph"
	BlockBulletedListItem = "bulleted_list_item"
	BlockNumberedListItem = "numbered_list_item"
	BlockCode             = "code"
	BlockQuote            = "quote"
	BlockDivider          = "divider"
	BlockToDo             = "to_do"
	BlockChildDatabase    = "child_database"
)

// Page is one fully assembled page.
type Page struct {
	PageID     PageID     `json:"page_id"`
	Title      string     `json:"title"`
	Content    Markdown   `json:"content"` // Full content in markdown
	URL        string     `json:"url"`
	Properties Properties `json:"properties,omitempty"`
}

// PageSummary is a page listed inside a database, carrying a content
// preview instead of the full markdown.
type PageSummary struct {
	PageID         PageID     `json:"id"`
	Title          string     `json:"title"`
	URL            string     `json:"url"`
	Properties     Properties `json:"properties,omitempty"`
	ContentPreview string     `json:"content_preview,omitempty"`
}

// ChapterSet is the first database found on a book page, treated as the
// chapter listing.
type ChapterSet struct {
	DatabaseID    string        `json:"database_id"`
	DatabaseTitle string        `json:"database_title"`
	Chapters      []PageSummary `json:"chapters"`
}

// DatabaseSummary describes a database that was found but not expanded.
type DatabaseSummary struct {
	DatabaseID string `json:"database_id"`
	Title      string `json:"title"`
	PageCount  int    `json:"page_count"`
}

// BookIngestion is the result of walking a book page and its child
// databases.
type BookIngestion struct {
	Book           *Page             `json:"book"`
	Chapters       *ChapterSet       `json:"chapters,omitempty"`
	OtherDatabases []DatabaseSummary `json:"other_databases,omitempty"`
	TotalChapters  int               `json:"total_chapters"`
	TotalPages     int               `json:"total_pages"`
	DatabasesFound int               `json:"databases_found"`
}

// Ingestion progress stages.
const (
	StageReadingBook   = "reading_book"
	StageDatabaseFound = "database_found"
	StageChapterParsed = "chapter_parsed"
	StageComplete      = "complete"
)

// IngestProgress is one progress event emitted while a book is ingested.
type IngestProgress struct {
	Stage      string `json:"stage"`
	Message    string `json:"message,omitempty"`
	DatabaseID string `json:"database_id,omitempty"`
	PageID     PageID `json:"page_id,omitempty"`
	Done       int    `json:"done,omitempty"`
	Total      int    `json:"total,omitempty"`
}
