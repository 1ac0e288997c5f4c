package handler

import (
	"net/http"

	"github.com/jaehwan-AI/coloring-web/internal/common/httpx"
	uploadservice "github.com/jaehwan-AI/coloring-web/internal/modules/upload/service"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	uploadService *uploadservice.Service
}

func New(uploadService *uploadservice.Service) *Handler {
	return &Handler{uploadService: uploadService}
}

// Upload POST /api/upload，multipart 字段 file
func (h *Handler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请选择文件"})
		return
	}

	url, err := h.uploadService.SaveUpload(file)
	if err != nil {
		httpx.WriteServiceError(c, err, "上传失败，请稍后重试")
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
