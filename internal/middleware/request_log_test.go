package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jaehwan-AI/coloring-web/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// 测试内容：验证访问日志按状态码分级并包含路径与状态码。
func TestRequestLogger_Levels(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.DebugLevel)
	prev := logger.L()
	logger.Set(zap.New(core))
	t.Cleanup(func() { logger.Set(prev) })

	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("期望 2 条日志，实际为 %d", len(entries))
	}
	if entries[0].Level != zapcore.InfoLevel || entries[1].Level != zapcore.WarnLevel {
		t.Fatalf("非预期日志级别: %v %v", entries[0].Level, entries[1].Level)
	}
	if entries[1].ContextMap()["path"] != "/missing" {
		t.Fatalf("非预期字段: %v", entries[1].ContextMap())
	}
}
