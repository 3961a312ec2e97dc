package mcp

import (
	"context"
	"net/http"

	"github.com/foomo/notion-mcp/rest"
	"github.com/foomo/notion-mcp/service"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// httpRequestKey is a custom context key for storing the original HTTP request
type httpRequestKey struct{}

// withHTTPRequest adds the original HTTP request to the context
func withHTTPRequest(ctx context.Context, req *http.Request) context.Context {
	return context.WithValue(ctx, httpRequestKey{}, req)
}

// HTTPRequestFromContext extracts the original HTTP request from the
// context of a tool call served over HTTP
func HTTPRequestFromContext(ctx context.Context) (*http.Request, bool) {
	req, ok := ctx.Value(httpRequestKey{}).(*http.Request)
	return req, ok
}

// httpContextFunc extracts the original HTTP request and adds it to the context
func httpContextFunc(ctx context.Context, r *http.Request) context.Context {
	return withHTTPRequest(ctx, r)
}

// NewMcpHTTPServer creates a new MCP HTTP server with traditional MCP endpoints
func NewMcpHTTPServer(s *server.MCPServer, endpoint string) *server.StreamableHTTPServer {
	return server.NewStreamableHTTPServer(
		s,
		server.WithEndpointPath(endpoint),
		server.WithHTTPContextFunc(httpContextFunc),
	)
}

// NewMcpHTTPSSEServer wires the full HTTP surface: the REST API, the
// streamable MCP endpoint, the SSE endpoints and prometheus metrics.
func NewMcpHTTPSSEServer(logger *zap.Logger, s *server.MCPServer, serviceInstance service.Service, endpoint string, config *SSEServerConfig) *echo.Echo {
	sseServer := NewMCPSSEServer(logger, serviceInstance, config)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	rest.RegisterRoutes(e, serviceInstance, logger)

	mcpHandler := NewMcpHTTPServer(s, endpoint)
	e.Any(endpoint, echo.WrapHandler(mcpHandler))

	e.GET(endpoint+"/sse", echo.WrapHandler(http.HandlerFunc(sseServer.HandleSSE)))
	e.POST(endpoint+"/sse/read-page", echo.WrapHandler(http.HandlerFunc(sseServer.HandleReadPageSSE)))
	e.POST(endpoint+"/sse/ingest-book", echo.WrapHandler(http.HandlerFunc(sseServer.HandleIngestBookSSE)))
	e.GET(endpoint+"/sse/clients", func(c echo.Context) error {
		clients := sseServer.GetConnectedClients()
		return c.JSON(http.StatusOK, map[string]interface{}{
			"connectedClients": len(clients),
			"clients":          clients,
		})
	})
	e.GET(endpoint+"/sse/stats", func(c echo.Context) error {
		return c.JSON(http.StatusOK, sseServer.GetStats())
	})

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}
