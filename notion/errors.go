package notion

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("notion: object not found")
	ErrUnauthorized = errors.New("notion: unauthorized")
	ErrRateLimited  = errors.New("notion: rate limited")
)

// APIError is the decoded Notion error body plus the HTTP status.
type APIError struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("notion API error %d (%s): %s", e.Status, e.Code, e.Message)
}

// Unwrap maps the API error code onto the matching sentinel so callers
// can use errors.Is.
func (e *APIError) Unwrap() error {
	switch e.Code {
	case "object_not_found":
		return ErrNotFound
	case "unauthorized", "restricted_resource":
		return ErrUnauthorized
	case "rate_limited":
		return ErrRateLimited
	}
	return nil
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{}
	if err := json.Unmarshal(body, apiErr); err != nil {
		apiErr.Message = truncate(string(body), 200)
	}
	apiErr.Status = status
	if apiErr.Code == "" {
		apiErr.Code = codeForStatus(status)
	}
	return apiErr
}

func codeForStatus(status int) string {
	switch status {
	case 401, 403:
		return "unauthorized"
	case 404:
		return "object_not_found"
	case 429:
		return "rate_limited"
	}
	return "unexpected_status"
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
