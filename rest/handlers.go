package rest

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/foomo/notion-mcp/notion"
	"github.com/foomo/notion-mcp/render"
	"github.com/foomo/notion-mcp/scrape"
	"github.com/foomo/notion-mcp/service"
	"github.com/foomo/notion-mcp/service/vo"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type Handler struct {
	service service.Service
	logger  *zap.Logger
}

func NewHandler(serviceInstance service.Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		service: serviceInstance,
		logger:  logger,
	}
}

// RegisterRoutes mounts the REST API onto the echo instance.
func RegisterRoutes(e *echo.Echo, serviceInstance service.Service, logger *zap.Logger) *Handler {
	h := NewHandler(serviceInstance, logger)

	e.GET("/healthz", h.Health)

	api := e.Group("/api/v1/notion")
	api.POST("/read-page", h.ReadPage)
	api.GET("/extract-page-id", h.ExtractPageID)
	api.POST("/ingest-book", h.IngestBook)
	api.POST("/scrape-page", h.ScrapePage)

	return h
}

type readPageRequest struct {
	PageURL string `json:"page_url"`         // The Notion page URL to read
	Render  string `json:"render,omitempty"` // "html" to include the content rendered as HTML
}

type readPageResponse struct {
	Page        *vo.Page `json:"page"`
	ContentHTML string   `json:"content_html,omitempty"`
}

type ingestBookRequest struct {
	PageURL string `json:"page_url"` // The Notion book page URL to ingest
}

type ingestBookResponse struct {
	Status    string            `json:"status"`
	Message   string            `json:"message"`
	Ingestion *vo.BookIngestion `json:"ingestion"`
}

type scrapePageRequest struct {
	URL      string `json:"url"`                // The URL to scrape
	Selector string `json:"selector,omitempty"` // CSS selector, defaults to the configured selector
}

type scrapePageResponse struct {
	Result *scrape.Result `json:"result"`
}

func (h *Handler) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Read a Notion page and return its content as markdown
// (POST /api/v1/notion/read-page)
func (h *Handler) ReadPage(ctx echo.Context) error {
	var req readPageRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}
	if req.PageURL == "" {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "page_url is required"})
	}

	page, err := h.service.ReadPage(ctx.Request().Context(), req.PageURL)
	if err != nil {
		return h.errorResponse(ctx, err)
	}

	response := readPageResponse{Page: page}
	if req.Render == "html" {
		html, err := render.ToHTML(page.Content)
		if err != nil {
			return h.errorResponse(ctx, err)
		}
		response.ContentHTML = html
	}
	return ctx.JSON(http.StatusOK, response)
}

// Extract the canonical page ID from a Notion URL
// (GET /api/v1/notion/extract-page-id?page_url=...)
func (h *Handler) ExtractPageID(ctx echo.Context) error {
	pageURL := ctx.QueryParam("page_url")
	if pageURL == "" {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "page_url query parameter is required"})
	}

	ref, err := h.service.ExtractPageID(pageURL)
	if err != nil {
		return h.errorResponse(ctx, err)
	}
	return ctx.JSON(http.StatusOK, ref)
}

// Ingest a book page with its chapter database
// (POST /api/v1/notion/ingest-book)
func (h *Handler) IngestBook(ctx echo.Context) error {
	var req ingestBookRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}
	if req.PageURL == "" {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "page_url is required"})
	}

	ingestion, err := h.service.IngestBook(ctx.Request().Context(), req.PageURL, nil)
	if err != nil {
		return h.errorResponse(ctx, err)
	}
	return ctx.JSON(http.StatusOK, ingestBookResponse{
		Status:    "ok",
		Message:   fmt.Sprintf("ingested %q with %d chapters", ingestion.Book.Title, ingestion.TotalChapters),
		Ingestion: ingestion,
	})
}

// Scrape a webpage and return its content as markdown
// (POST /api/v1/notion/scrape-page)
func (h *Handler) ScrapePage(ctx echo.Context) error {
	var req scrapePageRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}
	if req.URL == "" {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "url is required"})
	}

	result, err := h.service.ScrapePage(ctx.Request().Context(), req.URL, req.Selector)
	if err != nil {
		return h.errorResponse(ctx, err)
	}
	return ctx.JSON(http.StatusOK, scrapePageResponse{Result: result})
}

// errorResponse maps service errors to HTTP status codes: bad input is
// the caller's fault, missing pages are 404, upstream API trouble
// surfaces as 429 or 502.
func (h *Handler) errorResponse(ctx echo.Context, err error) error {
	var extractionErr *notion.ExtractionError
	var apiErr *notion.APIError

	switch {
	case errors.As(err, &extractionErr):
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, notion.ErrNotFound):
		return ctx.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, notion.ErrRateLimited):
		return ctx.JSON(http.StatusTooManyRequests, map[string]string{"error": err.Error()})
	case errors.Is(err, notion.ErrUnauthorized):
		return ctx.JSON(http.StatusBadGateway, map[string]string{"error": err.Error()})
	case errors.As(err, &apiErr):
		return ctx.JSON(http.StatusBadGateway, map[string]string{"error": err.Error()})
	}

	h.logger.Error("request failed", zap.Error(err))
	return ctx.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
}
