package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/foomo/notion-mcp/config"
	"github.com/foomo/notion-mcp/mcp"
	"github.com/foomo/notion-mcp/notion"
	"github.com/foomo/notion-mcp/service"
	"github.com/foomo/notion-mcp/service/cache"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	// Define command line flags
	stdioMode := flag.Bool("stdio", true, "Run in stdio mode")
	httpAddr := flag.String("http", "", "HTTP server address (e.g., ':8080')")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.APIKey == "" {
		log.Fatal("NOTION_MCP_API_KEY is required")
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	notionClient := notion.NewClient(notion.ClientSettings{
		APIKey:        cfg.APIKey,
		BaseURL:       cfg.APIBaseURL,
		Version:       cfg.NotionVersion,
		RetryAttempts: cfg.RetryAttempts,
		PageSize:      cfg.PageSize,
	}, httpClient, logger)

	pageCache, err := newCache(cfg, logger)
	if err != nil {
		log.Fatal(err)
	}

	serviceInstance := service.NewService(notionClient, pageCache, httpClient, logger, service.Settings{
		ScrapeSelector: cfg.ScrapeSelector,
		PreviewLength:  cfg.PreviewLength,
	})

	// Create MCP server using the extracted package
	s := mcp.NewServer(serviceInstance)

	if *httpAddr != "" {
		// Start the HTTP server
		log.Printf("Starting MCP server on HTTP address: %s", *httpAddr)
		e := mcp.NewMcpHTTPSSEServer(logger, s, serviceInstance, "/mcp", nil)

		go func() {
			if err := e.Start(*httpAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Fatal("http server failed", zap.Error(err))
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", zap.Error(err))
		}
		os.Exit(0)
	}

	// Start the stdio server
	if *stdioMode {
		log.Println("Starting MCP server in stdio mode...")
	} else {
		log.Println("Starting MCP server in stdio mode (default)...")
	}
	if err := server.ServeStdio(s); err != nil {
		log.Fatal(err)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	zapConfig := zap.NewProductionConfig()
	zapConfig.Level = zap.NewAtomicLevelAt(parsed)
	return zapConfig.Build()
}

func newCache(cfg *config.Config, logger *zap.Logger) (cache.Cache, error) {
	switch cfg.CacheBackend {
	case "memory":
		return cache.NewMemory(cfg.CacheSize, cfg.CacheTTL), nil
	case "redis":
		return cache.NewRedis(cfg.RedisURL, cfg.CacheTTL, logger)
	case "none", "":
		return cache.NewNoop(), nil
	}
	return nil, fmt.Errorf("unknown cache backend %q", cfg.CacheBackend)
}
