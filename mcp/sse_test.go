package mcp

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/foomo/notion-mcp/service/vo"
	"go.uber.org/zap"
)

func newSSETestServer(serviceInstance *stubService) *MCPSSEServer {
	return NewMCPSSEServer(zap.NewNop(), serviceInstance, nil)
}

func TestHandleReadPageSSE(t *testing.T) {
	sseServer := newSSETestServer(&stubService{
		page: &vo.Page{
			PageID:  "16b9e94d-1c93-81ce-a6c4-e74c508efea6",
			Title:   "My Book",
			Content: "# My Book",
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/mcp/sse/read-page", strings.NewReader(`{"page_url":"https://www.notion.so/16b9e94d1c9381cea6c4e74c508efea6"}`))
	rec := httptest.NewRecorder()

	sseServer.HandleReadPageSSE(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "text/event-stream" {
		t.Fatalf("unexpected content type: %q", got)
	}

	body := rec.Body.String()
	for _, want := range []string{
		"event: read_page_start",
		"event: read_page_result",
		"My Book",
		"event: read_page_complete",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q:\n%s", want, body)
		}
	}
}

func TestHandleReadPageSSEInvalidJSON(t *testing.T) {
	sseServer := newSSETestServer(&stubService{})

	req := httptest.NewRequest(http.MethodPost, "/mcp/sse/read-page", strings.NewReader("not json"))
	rec := httptest.NewRecorder()

	sseServer.HandleReadPageSSE(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandleReadPageSSEMissingURL(t *testing.T) {
	sseServer := newSSETestServer(&stubService{})

	req := httptest.NewRequest(http.MethodPost, "/mcp/sse/read-page", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	sseServer.HandleReadPageSSE(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandleReadPageSSEServiceError(t *testing.T) {
	sseServer := newSSETestServer(&stubService{err: errTest})

	req := httptest.NewRequest(http.MethodPost, "/mcp/sse/read-page", strings.NewReader(`{"page_url":"https://www.notion.so/16b9e94d1c9381cea6c4e74c508efea6"}`))
	rec := httptest.NewRecorder()

	sseServer.HandleReadPageSSE(rec, req)

	body := rec.Body.String()
	if !strings.Contains(body, "event: read_page_error") {
		t.Fatalf("body missing error event:\n%s", body)
	}
	if strings.Contains(body, "event: read_page_complete") {
		t.Fatalf("unexpected complete event after error:\n%s", body)
	}
}

func TestHandleIngestBookSSE(t *testing.T) {
	sseServer := newSSETestServer(&stubService{
		ingestion: &vo.BookIngestion{
			Book:          &vo.Page{Title: "My Book"},
			TotalChapters: 2,
			TotalPages:    3,
		},
		progress: []vo.IngestProgress{
			{Stage: vo.StageReadingBook, Message: "reading book page"},
			{Stage: vo.StageChapterParsed, Done: 1, Total: 2},
			{Stage: vo.StageComplete, Done: 3, Total: 3},
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/mcp/sse/ingest-book", strings.NewReader(`{"page_url":"https://www.notion.so/16b9e94d1c9381cea6c4e74c508efea6"}`))
	rec := httptest.NewRecorder()

	sseServer.HandleIngestBookSSE(rec, req)

	body := rec.Body.String()
	for _, want := range []string{
		"event: ingest_book_start",
		"event: ingest_book_progress",
		vo.StageChapterParsed,
		"event: ingest_book_result",
		"event: ingest_book_complete",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q:\n%s", want, body)
		}
	}

	if got := strings.Count(body, "event: ingest_book_progress"); got != 3 {
		t.Fatalf("expected 3 progress events, got %d:\n%s", got, body)
	}
}

func TestGetStats(t *testing.T) {
	sseServer := newSSETestServer(&stubService{})

	stats := sseServer.GetStats()
	if stats["connectedClients"] != 0 {
		t.Fatalf("unexpected client count: %v", stats["connectedClients"])
	}
	if stats["serverVersion"] != Version {
		t.Fatalf("unexpected version: %v", stats["serverVersion"])
	}
}
