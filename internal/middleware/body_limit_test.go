package middleware

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jaehwan-AI/coloring-web/internal/config"

	"github.com/gin-gonic/gin"
)

func setBodyLimits(uploadMB, bodyMB int) {
	cfg := config.Config{}
	cfg.Upload.MaxUploadSizeMB = uploadMB
	cfg.Upload.MaxBodySizeMB = bodyMB
	config.SetForTest(cfg)
}

// 测试内容：验证上传接口超过大小限制时返回 413。
func TestUploadBodyLimitMiddleware_RejectsTooLarge(t *testing.T) {
	gin.SetMode(gin.TestMode)
	setBodyLimits(1, 1)

	r := gin.New()
	r.POST("/upload", UploadBodyLimitMiddleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	payload := bytes.Repeat([]byte("a"), 2*1024*1024)
	req := httptest.NewRequest(http.MethodPost, "/upload", bytes.NewReader(payload))
	req.ContentLength = int64(len(payload))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("期望 413，实际为 %d", w.Code)
	}
}

// 测试内容：验证普通接口超过限制时返回 413，上传路径被跳过。
func TestBodyLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	setBodyLimits(10, 1)

	r := gin.New()
	r.Use(BodyLimitMiddleware())
	handler := func(c *gin.Context) {
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusOK)
	}
	r.POST("/api/results/save", handler)
	r.POST("/api/upload", handler)

	payload := bytes.Repeat([]byte("a"), 2*1024*1024)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/results/save", bytes.NewReader(payload)))
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("期望 413，实际为 %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/upload", bytes.NewReader(payload)))
	if w.Code != http.StatusOK {
		t.Fatalf("上传路径应被跳过，实际为 %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/results/save", bytes.NewReader([]byte("small"))))
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际为 %d", w.Code)
	}
}
