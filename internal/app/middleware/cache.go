package middleware

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"niddo-http-service/internal/domain/services"
	"niddo-http-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// CacheStore GET 响应缓存的存储
type CacheStore interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, content []byte, ttl time.Duration)
	Purge(ctx context.Context)
}

// 缓存条目
type cacheEntry struct {
	Content    []byte
	Expiration time.Time
}

// MemoryStore 进程内缓存
type MemoryStore struct {
	sync.RWMutex
	items    map[string]cacheEntry
	maxItems int
}

// NewMemoryStore 创建内存缓存，超过 maxItems 时先清理过期条目
func NewMemoryStore(maxItems int) *MemoryStore {
	if maxItems <= 0 {
		maxItems = 1024
	}
	return &MemoryStore{
		items:    make(map[string]cacheEntry),
		maxItems: maxItems,
	}
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, bool) {
	m.RLock()
	entry, found := m.items[key]
	m.RUnlock()

	if !found || !entry.Expiration.After(time.Now()) {
		return nil, false
	}
	return entry.Content, true
}

func (m *MemoryStore) Set(_ context.Context, key string, content []byte, ttl time.Duration) {
	m.Lock()
	defer m.Unlock()

	if len(m.items) >= m.maxItems {
		m.cleanExpired()
	}
	// 仍然满时放弃写入
	if len(m.items) >= m.maxItems {
		return
	}
	m.items[key] = cacheEntry{Content: content, Expiration: time.Now().Add(ttl)}
}

func (m *MemoryStore) Purge(_ context.Context) {
	m.Lock()
	m.items = make(map[string]cacheEntry)
	m.Unlock()
}

// Len 当前条目数
func (m *MemoryStore) Len() int {
	m.RLock()
	defer m.RUnlock()
	return len(m.items)
}

// cleanExpired 清理过期缓存，调用方持有写锁
func (m *MemoryStore) cleanExpired() {
	now := time.Now()
	for key, entry := range m.items {
		if entry.Expiration.Before(now) {
			delete(m.items, key)
		}
	}
}

// RedisStore 基于Redis的共享缓存，多个实例之间失效同步
type RedisStore struct {
	redis  services.InterfaceRedisService
	prefix string
}

// NewRedisStore 创建Redis缓存
func NewRedisStore(redisService services.InterfaceRedisService, prefix string) *RedisStore {
	return &RedisStore{redis: redisService, prefix: prefix}
}

func (r *RedisStore) Get(ctx context.Context, key string) ([]byte, bool) {
	content, err := r.redis.Get(ctx, r.prefix+key)
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Warning("读取Redis缓存失败: %v", err)
		}
		return nil, false
	}
	return content, true
}

func (r *RedisStore) Set(ctx context.Context, key string, content []byte, ttl time.Duration) {
	if err := r.redis.Set(ctx, r.prefix+key, content, ttl); err != nil {
		logger.Warning("写入Redis缓存失败: %v", err)
	}
}

func (r *RedisStore) Purge(ctx context.Context) {
	if err := r.redis.DeleteByPrefix(ctx, r.prefix); err != nil {
		logger.Warning("清除Redis缓存失败: %v", err)
	}
}

// 默认缓存键生成函数
func cacheKey(c *gin.Context) string {
	// 获取查询参数并排序
	queryParams := c.Request.URL.Query()
	queryKeys := make([]string, 0, len(queryParams))
	for key := range queryParams {
		queryKeys = append(queryKeys, key)
	}
	sort.Strings(queryKeys)

	var b strings.Builder
	b.WriteString(c.Request.URL.Path)
	b.WriteByte('?')
	for _, key := range queryKeys {
		values := queryParams[key]
		sort.Strings(values)
		for _, value := range values {
			b.WriteString(key + "=" + value + "&")
		}
	}

	// 使用MD5哈希缓存键
	sum := md5.Sum([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

// Cache 缓存 GET 的 200 响应，其他方法成功后清空整个缓存；ttl<=0 时不缓存
// 必须放在认证中间件之后
func Cache(store CacheStore, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store == nil || ttl <= 0 {
			c.Next()
			return
		}

		if c.Request.Method != http.MethodGet {
			c.Next()
			if status := c.Writer.Status(); status >= 200 && status < 300 {
				store.Purge(c.Request.Context())
			}
			return
		}

		key := cacheKey(c)
		if content, found := store.Get(c.Request.Context(), key); found {
			// 缓存命中，直接返回缓存的响应
			c.Header("X-Cache", "HIT")
			c.Data(http.StatusOK, "application/json; charset=utf-8", content)
			c.Abort()
			return
		}

		// 缓存未命中，捕获响应
		writer := &responseWriter{
			ResponseWriter: c.Writer,
			body:           &bytes.Buffer{},
		}
		c.Writer = writer

		c.Next()

		if c.Writer.Status() == http.StatusOK {
			store.Set(c.Request.Context(), key, writer.body.Bytes(), ttl)
		}
	}
}

// 自定义响应写入器，用于捕获响应内容
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

// Write 重写Write方法，同时写入原始响应和缓冲区
func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// WriteString 重写WriteString方法，同时写入原始响应和缓冲区
func (w *responseWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
