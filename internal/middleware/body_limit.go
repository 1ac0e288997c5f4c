package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/jaehwan-AI/coloring-web/internal/config"

	"github.com/gin-gonic/gin"
)

// BodyLimitMiddleware 限制请求体大小，上传接口由 UploadBodyLimitMiddleware 单独限制
//
// /api/results/save 携带 base64 图片，因此默认上限较大（upload.max_body_size_mb）。
func BodyLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.HasSuffix(c.Request.URL.Path, "/upload") {
			c.Next()
			return
		}

		maxSizeMB := config.Get().Upload.MaxBodySizeMB
		if maxSizeMB <= 0 {
			maxSizeMB = 20
		}
		maxBytes := int64(maxSizeMB) * 1024 * 1024

		if c.Request.ContentLength > maxBytes {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": fmt.Sprintf("请求体不能超过 %dMB", maxSizeMB)})
			c.Abort()
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// UploadBodyLimitMiddleware 限制上传接口的请求体大小
func UploadBodyLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		maxSizeMB := config.Get().Upload.MaxUploadSizeMB
		if maxSizeMB <= 0 {
			maxSizeMB = 10
		}
		// multipart 边界与表头占用少量额外字节
		maxBytes := int64(maxSizeMB)*1024*1024 + 64*1024

		if c.Request.ContentLength > maxBytes && c.Request.ContentLength != -1 {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": fmt.Sprintf("文件大小不能超过 %dMB", maxSizeMB)})
			c.Abort()
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
