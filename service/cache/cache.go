package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/foomo/notion-mcp/service/vo"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const redisKeyPrefix = "notion-mcp:page:"

// Cache stores assembled pages keyed by their canonical page ID.
// Implementations degrade to a miss on any backend failure.
type Cache interface {
	Get(ctx context.Context, pageID vo.PageID) (*vo.Page, bool)
	Set(ctx context.Context, pageID vo.PageID, page *vo.Page)
}

// Noop never stores anything.
type Noop struct{}

func NewNoop() *Noop {
	return &Noop{}
}

func (n *Noop) Get(_ context.Context, _ vo.PageID) (*vo.Page, bool) {
	return nil, false
}

func (n *Noop) Set(_ context.Context, _ vo.PageID, _ *vo.Page) {}

// Memory keeps pages in an in-process LRU with a fixed TTL.
type Memory struct {
	pages *expirable.LRU[vo.PageID, *vo.Page]
}

func NewMemory(size int, ttl time.Duration) *Memory {
	return &Memory{
		pages: expirable.NewLRU[vo.PageID, *vo.Page](size, nil, ttl),
	}
}

func (m *Memory) Get(_ context.Context, pageID vo.PageID) (*vo.Page, bool) {
	return m.pages.Get(pageID)
}

func (m *Memory) Set(_ context.Context, pageID vo.PageID, page *vo.Page) {
	m.pages.Add(pageID, page)
}

// Redis shares pages across processes through a redis instance. Entries
// are stored as JSON under redisKeyPrefix.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedis(redisURL string, ttl time.Duration, logger *zap.Logger) (*Redis, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Redis{
		client: redis.NewClient(opts),
		ttl:    ttl,
		logger: logger,
	}, nil
}

func (r *Redis) Get(ctx context.Context, pageID vo.PageID) (*vo.Page, bool) {
	data, err := r.client.Get(ctx, redisKeyPrefix+string(pageID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Warn("redis get failed", zap.String("pageID", string(pageID)), zap.Error(err))
		}
		return nil, false
	}
	page := &vo.Page{}
	if err := json.Unmarshal(data, page); err != nil {
		r.logger.Warn("dropping unreadable cache entry", zap.String("pageID", string(pageID)), zap.Error(err))
		return nil, false
	}
	return page, true
}

func (r *Redis) Set(ctx context.Context, pageID vo.PageID, page *vo.Page) {
	data, err := json.Marshal(page)
	if err != nil {
		r.logger.Warn("failed to encode page for cache", zap.String("pageID", string(pageID)), zap.Error(err))
		return
	}
	if err := r.client.Set(ctx, redisKeyPrefix+string(pageID), data, r.ttl).Err(); err != nil {
		r.logger.Warn("redis set failed", zap.String("pageID", string(pageID)), zap.Error(err))
	}
}
