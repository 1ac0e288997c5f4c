package service

import (
	"testing"

	"github.com/jaehwan-AI/coloring-web/internal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// 测试内容：验证未启用 Redis 时返回 nil 客户端。
func TestRedisClient_DisabledReturnsNil(t *testing.T) {
	s := NewAppService(config.RedisConfig{Enabled: false})
	if s.RedisClient() != nil {
		t.Fatalf("期望 nil client")
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

// 测试内容：验证 Redis 可用时建立连接。
func TestRedisClient_ConnectsToMiniredis(t *testing.T) {
	mr := miniredis.RunT(t)
	s := NewAppService(config.RedisConfig{Enabled: true, Addr: mr.Addr(), Prefix: "t"})
	defer func() { _ = s.Close() }()

	if s.RedisClient() == nil {
		t.Fatalf("期望连接成功")
	}
}

// 测试内容：验证 Redis 不可达时降级为 nil。
func TestRedisClient_UnreachableFallsBack(t *testing.T) {
	s := NewAppService(config.RedisConfig{Enabled: true, Addr: "127.0.0.1:1"})
	if s.RedisClient() != nil {
		t.Fatalf("期望不可达时返回 nil")
	}
}

// 测试内容：验证 RedisKey 拼接前缀。
func TestRedisKey(t *testing.T) {
	s := NewAppServiceWithClient(redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}), "")
	defer func() { _ = s.Close() }()
	if got := s.RedisKey("rate", "upload", "1.2.3.4"); got != "coloring:rate:upload:1.2.3.4" {
		t.Fatalf("非预期 key: %q", got)
	}
	if got := s.RedisKey(); got != "coloring" {
		t.Fatalf("非预期 key: %q", got)
	}
}
