package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/foomo/notion-mcp/scrape"
	"github.com/foomo/notion-mcp/service"
	"github.com/foomo/notion-mcp/service/vo"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const Version = "0.1.0"

type ReadPageRequest struct {
	PageURL string `json:"page_url"` // The Notion page URL to read
}

type ReadPageResponse struct {
	Page *vo.Page `json:"page"` // The page with its content as markdown
}

type ExtractPageIDRequest struct {
	PageURL string `json:"page_url"` // The Notion URL to extract the page ID from
}

type ExtractPageIDResponse struct {
	PageID vo.PageID `json:"page_id"` // Canonical page ID, grouped 8-4-4-4-12
	URL    string    `json:"url"`     // The original input URL
}

type IngestBookRequest struct {
	PageURL string `json:"page_url"` // The Notion book page URL to ingest
}

type IngestBookResponse struct {
	Ingestion *vo.BookIngestion `json:"ingestion"` // The book with its chapter listing
}

type ScrapePageRequest struct {
	URL      string `json:"url"`      // The URL to scrape
	Selector string `json:"selector"` // CSS selector to extract content, defaults to the configured selector
}

type ScrapePageResponse struct {
	Result *scrape.Result `json:"result"` // The scraped content and document metadata
}

// NewServer creates a new MCP server exposing the Notion reading tools
func NewServer(serviceInstance service.Service) *server.MCPServer {
	s := server.NewMCPServer(
		"Notion Reader MCP",
		Version,
		server.WithToolCapabilities(false),
	)

	readPageTool := mcp.NewTool("read_page",
		mcp.WithDescription("Read a Notion page by URL and return its content as markdown"),
		mcp.WithString("page_url",
			mcp.Required(),
			mcp.Description("The Notion page URL, e.g. 'https://www.notion.so/My-Page-16b9e94d1c9381cea6c4e74c508efea6'"),
		),
	)
	s.AddTool(readPageTool, mcp.NewTypedToolHandler(getReadPageHandler(serviceInstance)))

	extractPageIDTool := mcp.NewTool("extract_page_id",
		mcp.WithDescription("Extract the canonical page ID from a Notion URL without fetching anything"),
		mcp.WithString("page_url",
			mcp.Required(),
			mcp.Description("The Notion URL to extract the page ID from"),
		),
	)
	s.AddTool(extractPageIDTool, mcp.NewTypedToolHandler(getExtractPageIDHandler(serviceInstance)))

	ingestBookTool := mcp.NewTool("ingest_book",
		mcp.WithDescription("Ingest a Notion book page: reads the page, finds its chapter database and returns a chapter listing with content previews"),
		mcp.WithString("page_url",
			mcp.Required(),
			mcp.Description("The Notion page URL of the book"),
		),
	)
	s.AddTool(ingestBookTool, mcp.NewTypedToolHandler(getIngestBookHandler(serviceInstance)))

	scrapePageTool := mcp.NewTool("scrape_page",
		mcp.WithDescription("Scrape content from a webpage and convert it to markdown"),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The URL of the webpage to scrape"),
		),
		mcp.WithString("selector",
			mcp.Description("CSS selector to extract specific content (e.g., '#content', '.article', 'article')"),
		),
	)
	s.AddTool(scrapePageTool, mcp.NewTypedToolHandler(getScrapePageHandler(serviceInstance)))

	return s
}

// getReadPageHandler is our typed handler function for the read_page tool
func getReadPageHandler(serviceInstance service.Service) func(ctx context.Context, request mcp.CallToolRequest, args ReadPageRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest, args ReadPageRequest) (*mcp.CallToolResult, error) {
		if args.PageURL == "" {
			return mcp.NewToolResultError("page_url is required"), nil
		}

		page, err := serviceInstance.ReadPage(ctx, args.PageURL)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to read page: %v", err)), nil
		}

		response := ReadPageResponse{
			Page: page,
		}

		responseBytes, err := json.Marshal(response)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
		}

		return mcp.NewToolResultText(string(responseBytes)), nil
	}
}

func getExtractPageIDHandler(serviceInstance service.Service) func(ctx context.Context, request mcp.CallToolRequest, args ExtractPageIDRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest, args ExtractPageIDRequest) (*mcp.CallToolResult, error) {
		if args.PageURL == "" {
			return mcp.NewToolResultError("page_url is required"), nil
		}

		ref, err := serviceInstance.ExtractPageID(args.PageURL)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to extract page ID: %v", err)), nil
		}

		response := ExtractPageIDResponse{
			PageID: ref.PageID,
			URL:    ref.URL,
		}

		responseBytes, err := json.Marshal(response)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
		}

		return mcp.NewToolResultText(string(responseBytes)), nil
	}
}

// getIngestBookHandler is our typed handler function for the ingest_book tool
func getIngestBookHandler(serviceInstance service.Service) func(ctx context.Context, request mcp.CallToolRequest, args IngestBookRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest, args IngestBookRequest) (*mcp.CallToolResult, error) {
		if args.PageURL == "" {
			return mcp.NewToolResultError("page_url is required"), nil
		}

		ingestion, err := serviceInstance.IngestBook(ctx, args.PageURL, nil)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to ingest book: %v", err)), nil
		}

		response := IngestBookResponse{
			Ingestion: ingestion,
		}

		responseBytes, err := json.Marshal(response)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
		}

		return mcp.NewToolResultText(string(responseBytes)), nil
	}
}

func getScrapePageHandler(serviceInstance service.Service) func(ctx context.Context, request mcp.CallToolRequest, args ScrapePageRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest, args ScrapePageRequest) (*mcp.CallToolResult, error) {
		if args.URL == "" {
			return mcp.NewToolResultError("url is required"), nil
		}

		result, err := serviceInstance.ScrapePage(ctx, args.URL, args.Selector)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to scrape content: %v", err)), nil
		}

		response := ScrapePageResponse{
			Result: result,
		}

		responseBytes, err := json.Marshal(response)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
		}

		return mcp.NewToolResultText(string(responseBytes)), nil
	}
}
