package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jaehwan-AI/coloring-web/internal/config"
	"github.com/jaehwan-AI/coloring-web/internal/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// AppService 进程级共享依赖：可选的 Redis 连接
type AppService struct {
	redisCfg    config.RedisConfig
	redisOnce   sync.Once
	redisClient *redis.Client
}

func NewAppService(redisCfg config.RedisConfig) *AppService {
	return &AppService{redisCfg: redisCfg}
}

// NewAppServiceWithClient 直接注入 Redis 客户端（测试使用）
func NewAppServiceWithClient(client *redis.Client, prefix string) *AppService {
	s := &AppService{
		redisCfg:    config.RedisConfig{Enabled: client != nil, Prefix: prefix},
		redisClient: client,
	}
	s.redisOnce.Do(func() {})
	return s
}

// RedisClient 获取 Redis 客户端；当未启用或不可用时返回 nil。
func (s *AppService) RedisClient() *redis.Client {
	s.redisOnce.Do(s.initRedisClient)
	return s.redisClient
}

// RedisKey 基于配置前缀拼接 Redis 键名。
func (s *AppService) RedisKey(parts ...string) string {
	prefix := s.redisCfg.Prefix
	if prefix == "" {
		prefix = "coloring"
	}
	if len(parts) == 0 {
		return prefix
	}
	return prefix + ":" + strings.Join(parts, ":")
}

func (s *AppService) initRedisClient() {
	if !s.redisCfg.Enabled {
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:     s.redisCfg.Addr,
		Password: s.redisCfg.Password,
		DB:       s.redisCfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		logger.L().Warn("Redis 不可用，降级为内存模式", zap.Error(err))
		return
	}

	s.redisClient = client
	logger.L().Info("Redis 已连接", zap.String("addr", s.redisCfg.Addr), zap.Int("db", s.redisCfg.DB))
}

// Close 关闭 Redis 客户端连接。
func (s *AppService) Close() error {
	if s.redisClient == nil {
		return nil
	}
	if err := s.redisClient.Close(); err != nil {
		return fmt.Errorf("close redis failed: %w", err)
	}
	return nil
}
