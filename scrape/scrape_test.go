package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

const fixtureHTML = `<!DOCTYPE html>
<html>
<head>
	<title>Field Guide</title>
	<meta name="description" content="A guide to common garden birds.">
	<meta name="keywords" content="birds, garden , guide,">
</head>
<body>
	<nav>skip me</nav>
	<main id="content">
		<h1>Garden Birds</h1>
		<p>The <strong>robin</strong> is easy to spot.</p>
	</main>
	<div class="footnote">
		<p>All sightings are from 2024.</p>
	</div>
</body>
</html>`

func newFixtureServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(fixtureHTML))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestPageBodySelector(t *testing.T) {
	srv := newFixtureServer(t)

	result, err := Page(context.Background(), srv.Client(), srv.URL, "body")
	require.NoError(t, err)
	require.Contains(t, string(result.Markdown), "# Garden Birds")
	require.Contains(t, string(result.Markdown), "**robin**")
	require.Contains(t, string(result.Markdown), "skip me")
	require.Equal(t, "Field Guide", result.Title)
	require.Equal(t, "A guide to common garden birds.", result.Description)
	require.Equal(t, []string{"birds", "garden", "guide"}, result.Keywords)
}

func TestPageIDSelector(t *testing.T) {
	srv := newFixtureServer(t)

	result, err := Page(context.Background(), srv.Client(), srv.URL, "#content")
	require.NoError(t, err)
	require.Contains(t, string(result.Markdown), "# Garden Birds")
	require.NotContains(t, string(result.Markdown), "skip me")
	require.NotContains(t, string(result.Markdown), "sightings")
}

func TestPageClassSelector(t *testing.T) {
	srv := newFixtureServer(t)

	result, err := Page(context.Background(), srv.Client(), srv.URL, ".footnote")
	require.NoError(t, err)
	require.Contains(t, string(result.Markdown), "All sightings are from 2024.")
	require.NotContains(t, string(result.Markdown), "Garden Birds")
}

func TestPageTagSelector(t *testing.T) {
	srv := newFixtureServer(t)

	result, err := Page(context.Background(), srv.Client(), srv.URL, "main")
	require.NoError(t, err)
	require.Contains(t, string(result.Markdown), "# Garden Birds")
	require.NotContains(t, string(result.Markdown), "skip me")
}

func TestPageSelectorNotFound(t *testing.T) {
	srv := newFixtureServer(t)

	_, err := Page(context.Background(), srv.Client(), srv.URL, "#missing")
	require.Error(t, err)
	require.Contains(t, err.Error(), "no element matches")
}

func TestPageInvalidSelector(t *testing.T) {
	srv := newFixtureServer(t)

	_, err := Page(context.Background(), srv.Client(), srv.URL, "li:nth-child(")
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid selector")
}

func TestPageHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	_, err := Page(context.Background(), srv.Client(), srv.URL, "body")
	require.Error(t, err)
	require.Contains(t, err.Error(), "status: 503")
}
