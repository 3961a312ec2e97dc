package notion

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/foomo/notion-mcp/service/vo"
	"github.com/google/uuid"
)

// ExtractionError means no page ID could be derived from the input. It
// carries the original input for diagnostics.
type ExtractionError struct {
	Input  string
	Reason string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("cannot extract page ID from %q: %s", e.Input, e.Reason)
}

var pageIDPattern = regexp.MustCompile(`(?i)[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}|[0-9a-f]{32}`)

// ExtractPageID derives the canonical page ID from a page URL.
//
// Recognized shapes include
//
//	https://www.notion.so/<32 hex chars>
//	https://www.notion.so/<workspace>/<Page-Title>-<32 hex chars>
//	https://<workspace>.notion.site/<Page-Title>-<32 hex chars>
//
// The scan only requires a 32 hex character run (or its UUID-grouped
// form) somewhere in the URL path, so new URL shapes keep working. When
// the path holds more than one run, the last one wins. The returned ID
// is lowercase, grouped 8-4-4-4-12.
func ExtractPageID(pageURL string) (vo.PageReference, error) {
	u, err := url.Parse(strings.TrimSpace(pageURL))
	if err != nil {
		return vo.PageReference{}, &ExtractionError{Input: pageURL, Reason: "not a well-formed URL"}
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return vo.PageReference{}, &ExtractionError{Input: pageURL, Reason: "not an http(s) URL"}
	}

	var compact string
	for _, m := range pageIDPattern.FindAllStringIndex(u.Path, -1) {
		// a run bordered by more hex is longer than 32 chars, not an ID
		if isHexByte(u.Path, m[0]-1) || isHexByte(u.Path, m[1]) {
			continue
		}
		compact = strings.ReplaceAll(u.Path[m[0]:m[1]], "-", "")
	}
	if compact == "" {
		return vo.PageReference{}, &ExtractionError{Input: pageURL, Reason: "no 32 character hex ID in URL path"}
	}

	id, err := uuid.Parse(compact)
	if err != nil {
		return vo.PageReference{}, &ExtractionError{Input: pageURL, Reason: "invalid page ID"}
	}
	return vo.PageReference{PageID: vo.PageID(id.String()), URL: pageURL}, nil
}

func isHexByte(s string, i int) bool {
	if i < 0 || i >= len(s) {
		return false
	}
	c := s[i]
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
