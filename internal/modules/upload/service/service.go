package service

import (
	"encoding/hex"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/jaehwan-AI/coloring-web/internal/common"
	"github.com/jaehwan-AI/coloring-web/internal/config"
	"github.com/jaehwan-AI/coloring-web/internal/platform/storage"
	"github.com/jaehwan-AI/coloring-web/internal/utils"

	"github.com/google/uuid"
)

// Service 原图暂存上传，文件直接落在上传根目录下
type Service struct {
	uploads *storage.Uploads
}

func New(uploads *storage.Uploads) *Service {
	return &Service{uploads: uploads}
}

// SaveUpload 校验 Content-Type 后以 <uuid-hex><ext> 保存，返回公开 URL
func (s *Service) SaveUpload(file *multipart.FileHeader) (string, error) {
	if file == nil {
		return "", common.NewValidationError("请选择文件")
	}
	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return "", common.NewValidationError("Only image files are allowed")
	}

	maxMB := config.Get().Upload.MaxUploadSizeMB
	if maxMB > 0 && file.Size > int64(maxMB)*1024*1024 {
		return "", common.NewValidationError(fmt.Sprintf("文件大小不能超过 %dMB", maxMB))
	}

	src, err := file.Open()
	if err != nil {
		return "", common.NewValidationError("无法读取上传文件")
	}
	defer func() { _ = src.Close() }()

	data, err := io.ReadAll(src)
	if err != nil {
		return "", common.WrapInternalError("读取上传文件失败", err)
	}

	id := uuid.New()
	name := hex.EncodeToString(id[:]) + utils.NormalizeUploadExt(file.Filename)
	rel, err := s.uploads.WriteFile("", name, data)
	if err != nil {
		return "", common.WrapInternalError("文件保存失败", err)
	}
	return s.uploads.PublicURL(rel), nil
}
