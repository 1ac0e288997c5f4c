package middleware

import (
	"github.com/jaehwan-AI/coloring-web/internal/config"

	"github.com/gin-gonic/gin"
)

// StaticCacheMiddleware 为 /uploads 静态资源添加 Cache-Control 头（upload.cache_control）
func StaticCacheMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if cc := config.Get().Upload.CacheControl; cc != "" {
			c.Header("Cache-Control", cc)
		}
		c.Next()
	}
}
