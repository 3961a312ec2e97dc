package markdown

import (
	"fmt"
	"strings"

	"github.com/foomo/notion-mcp/service/vo"
)

// FromBlocks renders content blocks as markdown, blocks separated by a
// single blank line. Unrecognized kinds are skipped so new block types
// coming from the API do not break rendering; recognized kinds without
// text are skipped as well, except dividers.
func FromBlocks(blocks []vo.ContentBlock) vo.Markdown {
	parts := make([]string, 0, len(blocks))
	for _, block := range blocks {
		if part, ok := renderBlock(block); ok {
			parts = append(parts, part)
		}
	}
	return vo.Markdown(strings.Join(parts, "\n\n"))
}

func renderBlock(block vo.ContentBlock) (string, bool) {
	if block.Text == "" && block.Kind != vo.BlockDivider {
		return "", false
	}
	switch block.Kind {
	case vo.BlockHeading1:
		return "# " + block.Text, true
	case vo.BlockHeading2:
		return "## " + block.Text, true
	case vo.BlockHeading3:
		return "### " + block.Text, true
	case vo.BlockParagraph:
		return block.Text, true
	case vo.BlockBulletedListItem:
		return "- " + block.Text, true
	case vo.BlockNumberedListItem:
		// sequence numbering is left to the markdown renderer
		return "1. " + block.Text, true
	case vo.BlockCode:
		return fmt.Sprintf("```%s\n%s\n```", block.Language, block.Text), true
	case vo.BlockQuote:
		return "> " + block.Text, true
	case vo.BlockDivider:
		return "---", true
	case vo.BlockToDo:
		if block.Checked {
			return "- [x] " + block.Text, true
		}
		return "- [ ] " + block.Text, true
	}
	return "", false
}
