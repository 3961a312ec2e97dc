package markdown

import (
	"testing"

	"github.com/foomo/notion-mcp/service/vo"
	"github.com/stretchr/testify/require"
)

func TestFromBlocksSingleBlock(t *testing.T) {
	tests := []struct {
		name  string
		block vo.ContentBlock
		want  string
	}{
		{
			name:  "heading 1",
			block: vo.ContentBlock{Kind: vo.BlockHeading1, Text: "Title"},
			want:  "# Title",
		},
		{
			name:  "heading 2",
			block: vo.ContentBlock{Kind: vo.BlockHeading2, Text: "Section"},
			want:  "## Section",
		},
		{
			name:  "heading 3",
			block: vo.ContentBlock{Kind: vo.BlockHeading3, Text: "Subsection"},
			want:  "### Subsection",
		},
		{
			name:  "paragraph",
			block: vo.ContentBlock{Kind: vo.BlockParagraph, Text: "Some prose."},
			want:  "Some prose.",
		},
		{
			name:  "bulleted list item",
			block: vo.ContentBlock{Kind: vo.BlockBulletedListItem, Text: "first"},
			want:  "- first",
		},
		{
			name:  "numbered list item",
			block: vo.ContentBlock{Kind: vo.BlockNumberedListItem, Text: "first"},
			want:  "1. first",
		},
		{
			name:  "code with language",
			block: vo.ContentBlock{Kind: vo.BlockCode, Text: "fmt.Println(\"hi\")", Language: "go"},
			want:  "```go\nfmt.Println(\"hi\")\n```",
		},
		{
			name:  "code without language",
			block: vo.ContentBlock{Kind: vo.BlockCode, Text: "make build"},
			want:  "```\nmake build\n```",
		},
		{
			name:  "quote",
			block: vo.ContentBlock{Kind: vo.BlockQuote, Text: "stay hungry"},
			want:  "> stay hungry",
		},
		{
			name:  "divider",
			block: vo.ContentBlock{Kind: vo.BlockDivider},
			want:  "---",
		},
		{
			name:  "to do unchecked",
			block: vo.ContentBlock{Kind: vo.BlockToDo, Text: "Done"},
			want:  "- [ ] Done",
		},
		{
			name:  "to do checked",
			block: vo.ContentBlock{Kind: vo.BlockToDo, Text: "Done", Checked: true},
			want:  "- [x] Done",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, vo.Markdown(tt.want), FromBlocks([]vo.ContentBlock{tt.block}))
		})
	}
}

func TestFromBlocksEmpty(t *testing.T) {
	require.Equal(t, vo.Markdown(""), FromBlocks(nil))
	require.Equal(t, vo.Markdown(""), FromBlocks([]vo.ContentBlock{}))
}

func TestFromBlocksSkipsUnknownKinds(t *testing.T) {
	blocks := []vo.ContentBlock{
		{Kind: vo.BlockParagraph, Text: "first"},
		{Kind: "synced_block", Text: "should not appear"},
		{Kind: vo.BlockParagraph, Text: "second"},
	}
	require.Equal(t, vo.Markdown("first\n\nsecond"), FromBlocks(blocks))
}

func TestFromBlocksSkipsEmptyText(t *testing.T) {
	blocks := []vo.ContentBlock{
		{Kind: vo.BlockHeading1, Text: "Title"},
		{Kind: vo.BlockParagraph, Text: ""},
		{Kind: vo.BlockDivider},
		{Kind: vo.BlockToDo, Text: "", Checked: true},
		{Kind: vo.BlockParagraph, Text: "after the divider"},
	}
	require.Equal(t, vo.Markdown("# Title\n\n---\n\nafter the divider"), FromBlocks(blocks))
}

func TestFromBlocksDocument(t *testing.T) {
	blocks := []vo.ContentBlock{
		{Kind: vo.BlockHeading1, Text: "Release Notes"},
		{Kind: vo.BlockParagraph, Text: "Changes in this version:"},
		{Kind: vo.BlockBulletedListItem, Text: "faster indexing"},
		{Kind: vo.BlockBulletedListItem, Text: "fixed pagination"},
		{Kind: vo.BlockDivider},
		{Kind: vo.BlockCode, Text: "go get example.com/tool@latest", Language: "bash"},
		{Kind: vo.BlockQuote, Text: "upgrade before the cutoff"},
		{Kind: vo.BlockToDo, Text: "notify the team", Checked: false},
	}

	want := vo.Markdown("# Release Notes\n\n" +
		"Changes in this version:\n\n" +
		"- faster indexing\n\n" +
		"- fixed pagination\n\n" +
		"---\n\n" +
		"```bash\ngo get example.com/tool@latest\n```\n\n" +
		"> upgrade before the cutoff\n\n" +
		"- [ ] notify the team")
	require.Equal(t, want, FromBlocks(blocks))
}

func TestFromBlocksDeterministic(t *testing.T) {
	blocks := []vo.ContentBlock{
		{Kind: vo.BlockHeading2, Text: "Repeatable"},
		{Kind: vo.BlockParagraph, Text: "same in, same out"},
	}
	first := FromBlocks(blocks)
	second := FromBlocks(blocks)
	require.Equal(t, first, second)
}
