package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jaehwan-AI/coloring-web/internal/config"
	"github.com/jaehwan-AI/coloring-web/internal/logger"
	"github.com/jaehwan-AI/coloring-web/internal/platform/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RateLimitScope 限流分组，每组独立计数
type RateLimitScope string

const (
	ScopeUpload RateLimitScope = "upload"
	ScopeAuth   RateLimitScope = "auth"
)

func (s RateLimitScope) limits(cfg config.RateLimitConfig) (float64, int) {
	if s == ScopeAuth {
		return cfg.AuthRPS, cfg.AuthBurst
	}
	return cfg.UploadRPS, cfg.UploadBurst
}

type IPRateLimiter struct {
	ips sync.Map
	mu  sync.Mutex
	r   rate.Limit
	b   int

	stop     chan struct{}
	stopOnce sync.Once
}

type client struct {
	limiter *rate.Limiter
	// unix 纳秒，请求协程写、清理协程读
	lastSeen atomic.Int64
}

const (
	limiterCleanupInterval = time.Minute
	limiterIdleTimeout     = 3 * time.Minute
)

// NewIPRateLimiter 启动后台清理协程，调用方负责 Stop
func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	i := &IPRateLimiter{
		r:    r,
		b:    b,
		stop: make(chan struct{}),
	}

	go i.cleanupLoop(limiterCleanupInterval)

	return i
}

func (i *IPRateLimiter) getLimiter(ip string) *rate.Limiter {
	now := time.Now().UnixNano()
	if v, ok := i.ips.Load(ip); ok {
		c := v.(*client)
		c.lastSeen.Store(now)
		return c.limiter
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	// Double check
	if v, ok := i.ips.Load(ip); ok {
		c := v.(*client)
		c.lastSeen.Store(now)
		return c.limiter
	}

	c := &client{limiter: rate.NewLimiter(i.r, i.b)}
	c.lastSeen.Store(now)
	i.ips.Store(ip, c)

	return c.limiter
}

// Stop 结束清理协程，可重复调用
func (i *IPRateLimiter) Stop() {
	i.stopOnce.Do(func() { close(i.stop) })
}

func (i *IPRateLimiter) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-i.stop:
			return
		case now := <-ticker.C:
			i.sweep(now, limiterIdleTimeout)
		}
	}
}

// sweep 删除超过 idle 未访问的 IP
func (i *IPRateLimiter) sweep(now time.Time, idle time.Duration) {
	cutoff := now.Add(-idle).UnixNano()
	i.ips.Range(func(key, value interface{}) bool {
		if value.(*client).lastSeen.Load() < cutoff {
			i.ips.Delete(key)
		}
		return true
	})
}

// tokenBucketScript 令牌桶：tokens/ts 存在同一个 hash 中，时间由调用方传入（毫秒）
var tokenBucketScript = redis.NewScript(`
local rate = tonumber(ARGV[1])
local burst = tonumber(ARGV[2])
local now = tonumber(ARGV[3])
local ttl = tonumber(ARGV[4])
local data = redis.call('HMGET', KEYS[1], 'tokens', 'ts')
local tokens = tonumber(data[1])
local ts = tonumber(data[2])
if tokens == nil or ts == nil then
  tokens = burst
  ts = now
end
local elapsed = now - ts
if elapsed < 0 then elapsed = 0 end
tokens = math.min(burst, tokens + elapsed * rate / 1000)
local allowed = 0
if tokens >= 1 then
  tokens = tokens - 1
  allowed = 1
end
redis.call('HSET', KEYS[1], 'tokens', tostring(tokens), 'ts', tostring(now))
redis.call('PEXPIRE', KEYS[1], ttl)
return allowed
`)

// allowByRedisRateLimit 多实例部署时共享计数；burst <= 0 视为不限流
func allowByRedisRateLimit(ctx context.Context, client *redis.Client, key string, rps float64, burst int, now time.Time) (bool, error) {
	if client == nil || burst <= 0 {
		return true, nil
	}
	if rps < 0 {
		rps = 0
	}

	// 桶从空补满所需时间，至少保留 1 分钟
	ttl := time.Minute
	if rps > 0 {
		if fill := time.Duration(float64(burst)/rps*float64(time.Second)) * 2; fill > ttl {
			ttl = fill
		}
	}

	res, err := tokenBucketScript.Run(ctx, client, []string{key},
		strconv.FormatFloat(rps, 'f', -1, 64),
		burst,
		now.UnixMilli(),
		ttl.Milliseconds(),
	).Int()
	if err != nil {
		return false, err
	}
	return res == 1, nil
}

// RateLimiter 单个限流分组，持有进程内回退限流器
type RateLimiter struct {
	appService *service.AppService
	scope      RateLimitScope
	local      *IPRateLimiter
}

// NewRateLimiter 创建分组限流器，使用完毕后需 Stop
func NewRateLimiter(appService *service.AppService, scope RateLimitScope) *RateLimiter {
	rps, burst := scope.limits(config.Get().RateLimit)
	return &RateLimiter{
		appService: appService,
		scope:      scope,
		local:      NewIPRateLimiter(rate.Limit(rps), burst),
	}
}

// Stop 释放后台清理协程
func (l *RateLimiter) Stop() {
	l.local.Stop()
}

// Middleware 按客户端 IP 限流
//
// 配置每次请求实时读取，支持热更新；Redis 可用时使用共享令牌桶，
// 不可用或出错时回退到进程内的 x/time/rate 限流器。
func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		cfg := config.Get().RateLimit
		if !cfg.Enabled {
			c.Next()
			return
		}

		currentRPS, currentBurst := l.scope.limits(cfg)
		ip := c.ClientIP()

		if l.appService != nil {
			if redisClient := l.appService.RedisClient(); redisClient != nil {
				ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
				key := l.appService.RedisKey("ratelimit", string(l.scope), ip)
				allowed, err := allowByRedisRateLimit(ctx, redisClient, key, currentRPS, currentBurst, time.Now())
				cancel()
				if err == nil {
					if !allowed {
						abortTooManyRequests(c)
						return
					}
					c.Next()
					return
				}
				logger.L().Warn("Redis 限流失败，回退内存限流", zap.String("scope", string(l.scope)), zap.Error(err))
			}
		}

		limiter := l.local.getLimiter(ip)

		// 动态更新 limit 和 burst (如果配置发生变更)
		if limiter.Limit() != rate.Limit(currentRPS) {
			limiter.SetLimit(rate.Limit(currentRPS))
		}
		if limiter.Burst() != currentBurst {
			limiter.SetBurst(currentBurst)
		}

		if !limiter.Allow() {
			abortTooManyRequests(c)
			return
		}
		c.Next()
	}
}

func abortTooManyRequests(c *gin.Context) {
	c.JSON(http.StatusTooManyRequests, gin.H{"error": "请求过于频繁，请稍后再试"})
	c.Abort()
}
