package handler

import (
	"net/http"

	"github.com/jaehwan-AI/coloring-web/internal/common/httpx"
	moduledto "github.com/jaehwan-AI/coloring-web/internal/modules/admin/dto"
	adminservice "github.com/jaehwan-AI/coloring-web/internal/modules/admin/service"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	adminService *adminservice.Service
}

func New(adminService *adminservice.Service) *Handler {
	return &Handler{adminService: adminService}
}

// Login POST /api/admin/login
func (h *Handler) Login(c *gin.Context) {
	var req moduledto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	resp, err := h.adminService.Login(req)
	if err != nil {
		httpx.WriteServiceError(c, err, "登录失败，请稍后重试")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Ping GET /api/admin/ping，需要管理员令牌
func (h *Handler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
