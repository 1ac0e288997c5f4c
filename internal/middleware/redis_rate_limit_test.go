package middleware

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jaehwan-AI/coloring-web/internal/platform/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func newMiniRedisClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

// 测试内容：验证禁用参数下 Redis 限流直接放行。
func TestAllowByRedisRateLimit_DisabledReturnsOK(t *testing.T) {
	ok, err := allowByRedisRateLimit(context.Background(), nil, "k", 1, 1, time.Now())
	if err != nil || !ok {
		t.Fatalf("期望 nil client 放行，实际为 ok=%v err=%v", ok, err)
	}
	_, client := newMiniRedisClient(t)
	ok, err = allowByRedisRateLimit(context.Background(), client, "k", 1, 0, time.Now())
	if err != nil || !ok {
		t.Fatalf("期望 burst=0 放行，实际为 ok=%v err=%v", ok, err)
	}
}

// 测试内容：验证 Redis 令牌桶耗尽后拒绝，按速率补充后恢复。
func TestAllowByRedisRateLimit_TokenBucket(t *testing.T) {
	_, client := newMiniRedisClient(t)
	ctx := context.Background()
	now := time.Unix(1700000000, 0)

	for i := 0; i < 2; i++ {
		ok, err := allowByRedisRateLimit(ctx, client, "bucket", 1, 2, now)
		if err != nil || !ok {
			t.Fatalf("第 %d 次期望放行，实际为 ok=%v err=%v", i+1, ok, err)
		}
	}
	ok, err := allowByRedisRateLimit(ctx, client, "bucket", 1, 2, now)
	if err != nil || ok {
		t.Fatalf("期望令牌耗尽被拒绝，实际为 ok=%v err=%v", ok, err)
	}

	ok, err = allowByRedisRateLimit(ctx, client, "bucket", 1, 2, now.Add(1500*time.Millisecond))
	if err != nil || !ok {
		t.Fatalf("期望补充后放行，实际为 ok=%v err=%v", ok, err)
	}
}

// 测试内容：验证 Redis 不可用时速率限流返回错误。
func TestAllowByRedisRateLimit_UnavailableRedisReturnsError(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
	})
	defer func() { _ = client.Close() }()

	ok, err := allowByRedisRateLimit(context.Background(), client, "k", 1, 1, time.Now())
	if err == nil || ok {
		t.Fatalf("期望 redis 错误，实际为 ok=%v err=%v", ok, err)
	}
}

// 测试内容：验证中间件在 Redis 可用时使用共享计数。
func TestRateLimitMiddleware_UsesRedis(t *testing.T) {
	gin.SetMode(gin.TestMode)
	setRateLimit(true, 0, 1)
	mr, client := newMiniRedisClient(t)
	appService := service.NewAppServiceWithClient(client, "test")

	handler := func(c *gin.Context) { c.Status(http.StatusOK) }
	r1 := gin.New()
	r1.GET("/x", newTestRateLimit(t, appService, ScopeUpload), handler)
	r2 := gin.New()
	r2.GET("/x", newTestRateLimit(t, appService, ScopeUpload), handler)

	if code := hitFrom(r1, "9.9.9.9"); code != http.StatusOK {
		t.Fatalf("期望 200，实际为 %d", code)
	}
	// 另一个实例共享同一个 Redis 计数
	if code := hitFrom(r2, "9.9.9.9"); code != http.StatusTooManyRequests {
		t.Fatalf("期望 429，实际为 %d", code)
	}
	if !mr.Exists("test:ratelimit:upload:9.9.9.9") {
		t.Fatalf("期望 Redis 中存在限流键，实际键: %v", mr.Keys())
	}
}
