package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCachedRouter(store CacheStore, ttl time.Duration, hits *int) *gin.Engine {
	router := gin.New()
	router.GET("/items", Cache(store, ttl), func(c *gin.Context) {
		*hits++
		c.JSON(http.StatusOK, gin.H{"hits": *hits})
	})
	router.GET("/missing", Cache(store, ttl), func(c *gin.Context) {
		*hits++
		c.JSON(http.StatusNotFound, gin.H{})
	})
	router.POST("/items", Cache(store, ttl), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})
	router.POST("/fail", Cache(store, ttl), func(c *gin.Context) {
		c.Status(http.StatusBadRequest)
	})
	return router
}

func serve(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestCacheHitAndPurge(t *testing.T) {
	store := NewMemoryStore(16)
	hits := 0
	router := newCachedRouter(store, time.Minute, &hits)

	first := serve(router, http.MethodGet, "/items?b=2&a=1")
	require.Equal(t, http.StatusOK, first.Code)
	assert.Empty(t, first.Header().Get("X-Cache"))

	second := serve(router, http.MethodGet, "/items?a=1&b=2")
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, 1, hits)

	serve(router, http.MethodPost, "/fail")
	assert.Equal(t, 1, store.Len(), "failed writes keep the cache")

	serve(router, http.MethodPost, "/items")
	assert.Equal(t, 0, store.Len())

	third := serve(router, http.MethodGet, "/items?a=1&b=2")
	assert.Empty(t, third.Header().Get("X-Cache"))
	assert.Equal(t, 2, hits)
}

func TestCacheSkipsNonOK(t *testing.T) {
	store := NewMemoryStore(16)
	hits := 0
	router := newCachedRouter(store, time.Minute, &hits)

	serve(router, http.MethodGet, "/missing")
	serve(router, http.MethodGet, "/missing")
	assert.Equal(t, 2, hits)
	assert.Equal(t, 0, store.Len())
}

func TestCacheDisabled(t *testing.T) {
	store := NewMemoryStore(16)
	hits := 0
	router := newCachedRouter(store, 0, &hits)

	serve(router, http.MethodGet, "/items")
	serve(router, http.MethodGet, "/items")
	assert.Equal(t, 2, hits)
	assert.Equal(t, 0, store.Len())
}

func TestMemoryStoreExpiryAndCapacity(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(2)

	store.Set(ctx, "a", []byte("1"), -time.Second)
	_, found := store.Get(ctx, "a")
	assert.False(t, found)

	store.Set(ctx, "b", []byte("2"), time.Minute)
	store.Set(ctx, "c", []byte("3"), time.Minute)
	assert.Equal(t, 2, store.Len())

	store.Set(ctx, "d", []byte("4"), time.Minute)
	_, found = store.Get(ctx, "d")
	assert.False(t, found, "full store drops new entries")

	content, found := store.Get(ctx, "c")
	assert.True(t, found)
	assert.Equal(t, []byte("3"), content)
}

// fakeRedis 内存实现的 InterfaceRedisService
type fakeRedis struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: make(map[string][]byte)}
}

func (f *fakeRedis) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	return nil
}

func (f *fakeRedis) Get(_ context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	value, ok := f.data[key]
	if !ok {
		return nil, redis.Nil
	}
	return value, nil
}

func (f *fakeRedis) Delete(_ context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, key := range keys {
		delete(f.data, key)
	}
	return nil
}

func (f *fakeRedis) DeleteByPrefix(_ context.Context, prefix string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for key := range f.data {
		if strings.HasPrefix(key, prefix) {
			delete(f.data, key)
		}
	}
	return nil
}

func (f *fakeRedis) Ping(context.Context) error { return nil }

func (f *fakeRedis) Close() error { return nil }

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	backend := newFakeRedis()
	backend.data["other:key"] = []byte("keep")
	store := NewRedisStore(backend, "niddo:cache:")

	_, found := store.Get(ctx, "k")
	assert.False(t, found)

	store.Set(ctx, "k", []byte("v"), time.Minute)
	content, found := store.Get(ctx, "k")
	require.True(t, found)
	assert.Equal(t, []byte("v"), content)
	assert.Contains(t, backend.data, "niddo:cache:k")

	store.Purge(ctx)
	_, found = store.Get(ctx, "k")
	assert.False(t, found)
	assert.Contains(t, backend.data, "other:key")
}
