package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/foomo/notion-mcp/markdown"
	"github.com/foomo/notion-mcp/metrics"
	"github.com/foomo/notion-mcp/notion"
	"github.com/foomo/notion-mcp/scrape"
	"github.com/foomo/notion-mcp/service/cache"
	"github.com/foomo/notion-mcp/service/vo"
	"go.uber.org/zap"
)

type Service interface {
	ReadPage(ctx context.Context, pageURL string) (*vo.Page, error)
	ExtractPageID(pageURL string) (vo.PageReference, error)
	IngestBook(ctx context.Context, bookURL string, onProgress func(vo.IngestProgress)) (*vo.BookIngestion, error)
	ScrapePage(ctx context.Context, pageURL, selector string) (*scrape.Result, error)
}

// PageFetcher is the slice of the Notion API the service depends on.
// Satisfied by *notion.Client.
type PageFetcher interface {
	GetPage(ctx context.Context, pageID vo.PageID) (*notion.Page, error)
	ListBlockChildren(ctx context.Context, blockID string) ([]notion.Block, error)
	GetDatabase(ctx context.Context, databaseID string) (*notion.Database, error)
	QueryDatabase(ctx context.Context, databaseID string) ([]notion.Page, error)
}

type Settings struct {
	ScrapeSelector string // Default CSS selector for ScrapePage
	PreviewLength  int    // Chapter preview length in runes
}

type service struct {
	fetcher    PageFetcher
	pages      cache.Cache
	httpClient *http.Client
	logger     *zap.Logger
	settings   Settings
}

func NewService(
	fetcher PageFetcher,
	pages cache.Cache,
	httpClient *http.Client,
	logger *zap.Logger,
	settings Settings,
) Service {
	if pages == nil {
		pages = cache.NewNoop()
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if settings.ScrapeSelector == "" {
		settings.ScrapeSelector = "body"
	}
	if settings.PreviewLength <= 0 {
		settings.PreviewLength = 200
	}
	return &service{
		fetcher:    fetcher,
		pages:      pages,
		httpClient: httpClient,
		logger:     logger,
		settings:   settings,
	}
}

func (s *service) ReadPage(ctx context.Context, pageURL string) (*vo.Page, error) {
	ref, err := notion.ExtractPageID(pageURL)
	if err != nil {
		metrics.RecordPageRead("invalid_url")
		return nil, err
	}
	s.logger.Debug("reading page", zap.String("pageID", string(ref.PageID)))

	if cached, ok := s.pages.Get(ctx, ref.PageID); ok {
		metrics.RecordCacheEvent("hit")
		metrics.RecordPageRead("ok")
		page := *cached
		page.URL = pageURL
		return &page, nil
	}
	metrics.RecordCacheEvent("miss")

	fetched, _, err := s.fetchPage(ctx, ref.PageID)
	if err != nil {
		metrics.RecordPageRead("error")
		return nil, err
	}
	s.pages.Set(ctx, ref.PageID, fetched)

	metrics.RecordPageRead("ok")
	page := *fetched
	page.URL = pageURL
	return &page, nil
}

func (s *service) ExtractPageID(pageURL string) (vo.PageReference, error) {
	return notion.ExtractPageID(pageURL)
}

func (s *service) IngestBook(ctx context.Context, bookURL string, onProgress func(vo.IngestProgress)) (*vo.BookIngestion, error) {
	if onProgress == nil {
		onProgress = func(vo.IngestProgress) {}
	}
	ref, err := notion.ExtractPageID(bookURL)
	if err != nil {
		metrics.RecordIngest("invalid_url")
		return nil, err
	}
	onProgress(vo.IngestProgress{
		Stage:   vo.StageReadingBook,
		Message: "reading book page",
		PageID:  ref.PageID,
	})

	book, blocks, err := s.fetchPage(ctx, ref.PageID)
	if err != nil {
		metrics.RecordIngest("error")
		return nil, err
	}
	book.URL = bookURL

	ingestion := &vo.BookIngestion{Book: book}
	for _, block := range blocks {
		if block.Type != vo.BlockChildDatabase {
			continue
		}
		ingestion.DatabasesFound++

		database, err := s.fetcher.GetDatabase(ctx, block.ID)
		if err != nil {
			metrics.RecordIngest("error")
			return nil, fmt.Errorf("failed to fetch database %s: %w", block.ID, err)
		}
		title := notion.DatabaseTitle(database)
		onProgress(vo.IngestProgress{
			Stage:      vo.StageDatabaseFound,
			Message:    fmt.Sprintf("found database %q", title),
			DatabaseID: database.ID,
		})

		pages, err := s.fetcher.QueryDatabase(ctx, block.ID)
		if err != nil {
			metrics.RecordIngest("error")
			return nil, fmt.Errorf("failed to query database %s: %w", block.ID, err)
		}

		// The first database on the page holds the chapters, anything
		// after that is only summarized.
		if ingestion.Chapters == nil {
			chapters, err := s.parseChapters(ctx, database.ID, title, pages, onProgress)
			if err != nil {
				metrics.RecordIngest("error")
				return nil, err
			}
			ingestion.Chapters = chapters
		} else {
			ingestion.OtherDatabases = append(ingestion.OtherDatabases, vo.DatabaseSummary{
				DatabaseID: database.ID,
				Title:      title,
				PageCount:  len(pages),
			})
		}
	}

	if ingestion.Chapters != nil {
		ingestion.TotalChapters = len(ingestion.Chapters.Chapters)
	}
	ingestion.TotalPages = 1 + ingestion.TotalChapters
	onProgress(vo.IngestProgress{
		Stage:   vo.StageComplete,
		Message: "ingestion complete",
		Done:    ingestion.TotalPages,
		Total:   ingestion.TotalPages,
	})
	s.logger.Info("book ingested",
		zap.String("pageID", string(ref.PageID)),
		zap.Int("chapters", ingestion.TotalChapters),
		zap.Int("databases", ingestion.DatabasesFound),
	)
	metrics.RecordIngest("ok")
	return ingestion, nil
}

func (s *service) ScrapePage(ctx context.Context, pageURL, selector string) (*scrape.Result, error) {
	if selector == "" {
		selector = s.settings.ScrapeSelector
	}
	result, err := scrape.Page(ctx, s.httpClient, pageURL, selector)
	if err != nil {
		return nil, fmt.Errorf("failed to scrape %s: %w", pageURL, err)
	}
	return result, nil
}

// fetchPage assembles a page from its metadata and content blocks. The
// raw blocks are returned alongside so callers can walk them.
func (s *service) fetchPage(ctx context.Context, pageID vo.PageID) (*vo.Page, []notion.Block, error) {
	apiPage, err := s.fetcher.GetPage(ctx, pageID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch page %s: %w", pageID, err)
	}
	blocks, err := s.fetcher.ListBlockChildren(ctx, string(pageID))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch content of page %s: %w", pageID, err)
	}

	pageURL := apiPage.URL
	if pageURL == "" {
		pageURL = canonicalURL(pageID)
	}
	return &vo.Page{
		PageID:     pageID,
		Title:      notion.PageTitle(apiPage),
		Content:    markdown.FromBlocks(notion.ContentBlocks(blocks)),
		URL:        pageURL,
		Properties: notion.PageProperties(apiPage),
	}, blocks, nil
}

func (s *service) parseChapters(
	ctx context.Context,
	databaseID, title string,
	pages []notion.Page,
	onProgress func(vo.IngestProgress),
) (*vo.ChapterSet, error) {
	set := &vo.ChapterSet{
		DatabaseID:    databaseID,
		DatabaseTitle: title,
		Chapters:      make([]vo.PageSummary, 0, len(pages)),
	}
	for i, page := range pages {
		summary, err := s.chapterSummary(ctx, page)
		if err != nil {
			return nil, err
		}
		set.Chapters = append(set.Chapters, summary)
		onProgress(vo.IngestProgress{
			Stage:      vo.StageChapterParsed,
			Message:    fmt.Sprintf("parsed chapter %q", summary.Title),
			DatabaseID: databaseID,
			PageID:     summary.PageID,
			Done:       i + 1,
			Total:      len(pages),
		})
	}
	return set, nil
}

func (s *service) chapterSummary(ctx context.Context, page notion.Page) (vo.PageSummary, error) {
	blocks, err := s.fetcher.ListBlockChildren(ctx, page.ID)
	if err != nil {
		return vo.PageSummary{}, fmt.Errorf("failed to fetch content of chapter %s: %w", page.ID, err)
	}
	content := markdown.FromBlocks(notion.ContentBlocks(blocks))
	return vo.PageSummary{
		PageID:         vo.PageID(page.ID),
		Title:          notion.PageTitle(&page),
		URL:            canonicalURL(vo.PageID(page.ID)),
		Properties:     notion.PageProperties(&page),
		ContentPreview: preview(string(content), s.settings.PreviewLength),
	}, nil
}

func canonicalURL(pageID vo.PageID) string {
	return "https://www.notion.so/" + pageID.Compact()
}

// preview truncates content to limit runes, marking the cut.
func preview(content string, limit int) string {
	runes := []rune(content)
	if len(runes) <= limit {
		return content
	}
	return string(runes[:limit]) + "..."
}
