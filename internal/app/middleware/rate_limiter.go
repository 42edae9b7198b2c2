package middleware

import (
	"sync"
	"time"

	"niddo-http-service/internal/error/code"
	"niddo-http-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// 简单的令牌桶限流器
type TokenBucket struct {
	rate       float64    // 每秒填充的令牌数
	capacity   int        // 桶的容量
	tokens     float64    // 当前令牌数
	lastRefill time.Time  // 上次填充时间
	mu         sync.Mutex // 互斥锁
}

// 创建新的令牌桶限流器
func NewTokenBucket(rate float64, capacity int) *TokenBucket {
	return &TokenBucket{
		rate:       rate,
		capacity:   capacity,
		tokens:     float64(capacity),
		lastRefill: time.Now(),
	}
}

// 尝试获取令牌
func (tb *TokenBucket) Allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(tb.lastRefill).Seconds()
	tb.lastRefill = now

	// 填充令牌
	tb.tokens += elapsed * tb.rate
	if tb.tokens > float64(tb.capacity) {
		tb.tokens = float64(tb.capacity)
	}

	if tb.tokens >= 1 {
		tb.tokens--
		return true
	}
	return false
}

// idle 令牌桶已满说明该客户端近期无请求
func (tb *TokenBucket) idle(now time.Time) bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return tb.tokens+now.Sub(tb.lastRefill).Seconds()*tb.rate >= float64(tb.capacity)
}

// RateLimiterConfig 限流器配置
type RateLimiterConfig struct {
	Rate       float64                   // 每秒允许的请求数
	Burst      int                       // 允许的突发请求数
	MaxClients int                       // 超过后清理空闲的令牌桶
	KeyFunc    func(*gin.Context) string // 限流键，默认客户端IP
}

// DefaultRateLimiterConfig 默认限流器配置
var DefaultRateLimiterConfig = RateLimiterConfig{
	Rate:       1,
	Burst:      5,
	MaxClients: 10000,
}

// RateLimiter 按键限流，每个键一个令牌桶
type RateLimiter struct {
	cfg      RateLimiterConfig
	limiters map[string]*TokenBucket
	mu       sync.Mutex
}

// NewRateLimiter 创建限流器
func NewRateLimiter(cfg RateLimiterConfig) *RateLimiter {
	if cfg.Rate <= 0 {
		cfg.Rate = DefaultRateLimiterConfig.Rate
	}
	if cfg.Burst <= 0 {
		cfg.Burst = DefaultRateLimiterConfig.Burst
	}
	if cfg.MaxClients <= 0 {
		cfg.MaxClients = DefaultRateLimiterConfig.MaxClients
	}
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = func(c *gin.Context) string { return c.ClientIP() }
	}
	return &RateLimiter{
		cfg:      cfg,
		limiters: make(map[string]*TokenBucket),
	}
}

// Allow 判断该键是否还有令牌
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	limiter, exists := rl.limiters[key]
	if !exists {
		if len(rl.limiters) >= rl.cfg.MaxClients {
			rl.cleanIdle()
		}
		limiter = NewTokenBucket(rl.cfg.Rate, rl.cfg.Burst)
		rl.limiters[key] = limiter
	}
	rl.mu.Unlock()

	return limiter.Allow()
}

// Middleware 返回限流中间件
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(rl.cfg.KeyFunc(c)) {
			response.Fail(c, code.ErrTooManyRequests, nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// cleanIdle 清理空闲的令牌桶，调用方持有锁
func (rl *RateLimiter) cleanIdle() {
	now := time.Now()
	for key, limiter := range rl.limiters {
		if limiter.idle(now) {
			delete(rl.limiters, key)
		}
	}
}

// IPRateLimiter 按IP限流
func IPRateLimiter(rate float64, burst int) gin.HandlerFunc {
	return NewRateLimiter(RateLimiterConfig{Rate: rate, Burst: burst}).Middleware()
}
