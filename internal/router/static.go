package router

import (
	"io/fs"
	"net/http"
	"strings"

	"github.com/jaehwan-AI/coloring-web/internal/logger"
	"github.com/jaehwan-AI/coloring-web/internal/middleware"
	"github.com/jaehwan-AI/coloring-web/internal/platform/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MountUploads 以带缓存头的静态服务暴露上传目录，不列目录
func MountUploads(r *gin.Engine, uploads *storage.Uploads) {
	r.Group(uploads.URLPrefix(), middleware.StaticCacheMiddleware()).
		StaticFS("", gin.Dir(uploads.Root(), false))
}

// MountFrontend 挂载 SPA；distFS 为 nil 时只注册 JSON 404
//
// /api 与上传前缀下的未命中返回 JSON 404，其余路径优先返回同名静态文件，
// 否则回退到 index.html。
func MountFrontend(r *gin.Engine, distFS fs.FS, uploadPrefix string) {
	var indexData []byte
	if distFS != nil {
		if assetsFS, err := fs.Sub(distFS, "assets"); err == nil {
			r.StaticFS("/assets", http.FS(assetsFS))
		}
		data, err := fs.ReadFile(distFS, "index.html")
		if err != nil {
			logger.L().Warn("无法读取前端 index.html", zap.Error(err))
		}
		indexData = data
	}

	r.NoRoute(func(c *gin.Context) {
		reqPath := c.Request.URL.Path
		if strings.HasPrefix(reqPath, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": "API not found"})
			return
		}
		if strings.HasPrefix(reqPath, uploadPrefix) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Upload not found"})
			return
		}
		if indexData == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}

		// 尝试直接服务根目录下的静态文件 (如 favicon.ico, manifest.json)
		name := strings.TrimPrefix(reqPath, "/")
		if name != "" && fs.ValidPath(name) {
			if stat, err := fs.Stat(distFS, name); err == nil && !stat.IsDir() {
				c.FileFromFS(name, http.FS(distFS))
				return
			}
		}

		// SPA 回退
		c.Data(http.StatusOK, "text/html; charset=utf-8", indexData)
	})
}
