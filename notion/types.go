package notion

import (
	"strings"

	"github.com/foomo/notion-mcp/service/vo"
)

// Wire types for the Notion API, version 2022-06-28. Only the fields the
// service reads are mapped; unknown fields are dropped on decode.

type RichText struct {
	Type      string       `json:"type,omitempty"`
	PlainText string       `json:"plain_text,omitempty"`
	Href      string       `json:"href,omitempty"`
	Text      *TextContent `json:"text,omitempty"`
}

type TextContent struct {
	Content string `json:"content"`
	Link    *Link  `json:"link,omitempty"`
}

type Link struct {
	URL string `json:"url"`
}

type Page struct {
	Object     string                   `json:"object,omitempty"`
	ID         string                   `json:"id"`
	URL        string                   `json:"url,omitempty"`
	Archived   bool                     `json:"archived,omitempty"`
	Properties map[string]PropertyValue `json:"properties,omitempty"`
}

type PropertyValue struct {
	ID          string         `json:"id,omitempty"`
	Type        string         `json:"type"`
	Title       []RichText     `json:"title,omitempty"`
	RichText    []RichText     `json:"rich_text,omitempty"`
	Select      *SelectOption  `json:"select,omitempty"`
	MultiSelect []SelectOption `json:"multi_select,omitempty"`
	Date        *DateValue     `json:"date,omitempty"`
	Checkbox    bool           `json:"checkbox,omitempty"`
	Number      *float64       `json:"number,omitempty"`
	URL         string         `json:"url,omitempty"`
	Email       string         `json:"email,omitempty"`
	PhoneNumber string         `json:"phone_number,omitempty"`
}

type SelectOption struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

type DateValue struct {
	Start    string `json:"start"`
	End      string `json:"end,omitempty"`
	TimeZone string `json:"time_zone,omitempty"`
}

type Database struct {
	Object string     `json:"object,omitempty"`
	ID     string     `json:"id"`
	Title  []RichText `json:"title,omitempty"`
	URL    string     `json:"url,omitempty"`
}

type Block struct {
	Object      string `json:"object,omitempty"`
	ID          string `json:"id,omitempty"`
	Type        string `json:"type"`
	HasChildren bool   `json:"has_children,omitempty"`

	Paragraph        *TextBlock     `json:"paragraph,omitempty"`
	Heading1         *TextBlock     `json:"heading_1,omitempty"`
	Heading2         *TextBlock     `json:"heading_2,omitempty"`
	Heading3         *TextBlock     `json:"heading_3,omitempty"`
	BulletedListItem *TextBlock     `json:"bulleted_list_item,omitempty"`
	NumberedListItem *TextBlock     `json:"numbered_list_item,omitempty"`
	Quote            *TextBlock     `json:"quote,omitempty"`
	Code             *CodeBlock     `json:"code,omitempty"`
	ToDo             *ToDoBlock     `json:"to_do,omitempty"`
	Divider          *Divider       `json:"divider,omitempty"`
	ChildDatabase    *ChildDatabase `json:"child_database,omitempty"`
}

type TextBlock struct {
	RichText []RichText `json:"rich_text"`
	Color    string     `json:"color,omitempty"`
}

type CodeBlock struct {
	RichText []RichText `json:"rich_text"`
	Caption  []RichText `json:"caption,omitempty"`
	Language string     `json:"language,omitempty"`
}

type ToDoBlock struct {
	RichText []RichText `json:"rich_text"`
	Checked  bool       `json:"checked"`
}

type Divider struct{}

type ChildDatabase struct {
	Title string `json:"title,omitempty"`
}

// PlainText joins the rendered text of all rich text segments.
func PlainText(segments []RichText) string {
	var sb strings.Builder
	for _, segment := range segments {
		switch {
		case segment.PlainText != "":
			sb.WriteString(segment.PlainText)
		case segment.Text != nil:
			sb.WriteString(segment.Text.Content)
		}
	}
	return sb.String()
}

// ContentBlock flattens the wire block into its renderable form.
func (b Block) ContentBlock() vo.ContentBlock {
	out := vo.ContentBlock{Kind: b.Type}
	switch b.Type {
	case vo.BlockCode:
		if b.Code != nil {
			out.Text = PlainText(b.Code.RichText)
			out.Language = b.Code.Language
		}
	case vo.BlockToDo:
		if b.ToDo != nil {
			out.Text = PlainText(b.ToDo.RichText)
			out.Checked = b.ToDo.Checked
		}
	default:
		if payload := b.textPayload(); payload != nil {
			out.Text = PlainText(payload.RichText)
		}
	}
	return out
}

func (b Block) textPayload() *TextBlock {
	switch b.Type {
	case vo.BlockParagraph:
		return b.Paragraph
	case vo.BlockHeading1:
		return b.Heading1
	case vo.BlockHeading2:
		return b.Heading2
	case vo.BlockHeading3:
		return b.Heading3
	case vo.BlockBulletedListItem:
		return b.BulletedListItem
	case vo.BlockNumberedListItem:
		return b.NumberedListItem
	case vo.BlockQuote:
		return b.Quote
	}
	return nil
}

// ContentBlocks flattens a block listing for rendering.
func ContentBlocks(blocks []Block) []vo.ContentBlock {
	out := make([]vo.ContentBlock, len(blocks))
	for i, block := range blocks {
		out[i] = block.ContentBlock()
	}
	return out
}

type blockChildrenResponse struct {
	Object     string  `json:"object,omitempty"`
	Results    []Block `json:"results"`
	HasMore    bool    `json:"has_more"`
	NextCursor string  `json:"next_cursor,omitempty"`
}

type databaseQueryRequest struct {
	StartCursor string `json:"start_cursor,omitempty"`
	PageSize    int    `json:"page_size,omitempty"`
}

type databaseQueryResponse struct {
	Object     string `json:"object,omitempty"`
	Results    []Page `json:"results"`
	HasMore    bool   `json:"has_more"`
	NextCursor string `json:"next_cursor,omitempty"`
}
