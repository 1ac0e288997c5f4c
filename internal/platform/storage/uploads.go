package storage

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/jaehwan-AI/coloring-web/internal/consts"
	"github.com/jaehwan-AI/coloring-web/internal/logger"
	"github.com/jaehwan-AI/coloring-web/internal/utils"

	"go.uber.org/zap"
)

// Uploads 上传根目录及其公开 URL 前缀（如 /uploads/）
// 负责相对文件名与公开 URL 之间的转换，所有磁盘访问都经过 SecureJoin
type Uploads struct {
	root      string
	urlPrefix string
}

func NewUploads(root, urlPrefix string) *Uploads {
	if root == "" {
		root = "uploads"
	}
	if urlPrefix == "" {
		urlPrefix = "/uploads/"
	}
	if !strings.HasSuffix(urlPrefix, "/") {
		urlPrefix += "/"
	}
	return &Uploads{root: root, urlPrefix: urlPrefix}
}

func (u *Uploads) Root() string {
	return u.root
}

func (u *Uploads) URLPrefix() string {
	return u.urlPrefix
}

// PublicURL 相对路径 -> /uploads/<rel>
func (u *Uploads) PublicURL(rel string) string {
	return u.urlPrefix + strings.TrimPrefix(filepath.ToSlash(rel), "/")
}

// EnsureRoot 创建上传根目录
func (u *Uploads) EnsureRoot() error {
	if err := utils.EnsurePathNotSymlink(u.root); err != nil {
		return err
	}
	return os.MkdirAll(u.root, 0755)
}

// WriteFile 在 relDir 下写入 name，返回以 / 分隔的相对路径
func (u *Uploads) WriteFile(relDir, name string, data []byte) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("非法文件名: %q", name)
	}
	rel := path.Join(filepath.ToSlash(relDir), name)

	dir, err := utils.SecureJoin(u.root, path.Dir(rel))
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("无法创建存储目录: %w", err)
	}

	dst, err := utils.SecureJoin(u.root, rel)
	if err != nil {
		return "", err
	}
	// O_EXCL 保证不会覆盖已有文件
	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", fmt.Errorf("无法创建文件: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(dst)
		return "", fmt.Errorf("文件保存失败: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(dst)
		return "", fmt.Errorf("文件保存失败: %w", err)
	}
	return rel, nil
}

// RemoveRelative 尽力删除上传根目录下的文件，失败只记录日志。
// 返回 true 表示文件已被删除。
func (u *Uploads) RemoveRelative(rel string) (deleted bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.L().Warn("删除文件时发生 panic", zap.String("rel", rel), zap.Any("panic", r))
			deleted = false
		}
	}()

	target, err := utils.SecureJoin(u.root, rel)
	if err != nil {
		logger.L().Debug("拒绝删除越界路径", zap.String("rel", rel), zap.Error(err))
		return false
	}
	return removeRegularFile(target)
}

// SafeDeleteByPublicURL 根据公开 URL 删除暂存的原图上传文件。
//
// 只接受 /uploads/ 前缀；members/ 下的已保存结果永远不会被删除；
// 解析后的路径必须位于上传根目录内。任何异常都视为未删除并返回 false。
func (u *Uploads) SafeDeleteByPublicURL(url string) (deleted bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.L().Warn("清理上传文件时发生 panic", zap.String("url", url), zap.Any("panic", r))
			deleted = false
		}
	}()

	if url == "" || !strings.HasPrefix(url, u.urlPrefix) {
		return false
	}

	rel := strings.TrimPrefix(url, u.urlPrefix)
	if rel == "" || strings.HasPrefix(rel, consts.MembersDir+"/") || utils.FirstSegment(rel) == consts.MembersDir {
		return false
	}

	target, err := utils.SecureJoin(u.root, rel)
	if err != nil {
		logger.L().Debug("拒绝清理越界路径", zap.String("url", url), zap.Error(err))
		return false
	}
	return removeRegularFile(target)
}

func removeRegularFile(target string) bool {
	info, err := os.Lstat(target)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	if err := os.Remove(target); err != nil {
		logger.L().Warn("删除文件失败", zap.String("path", target), zap.Error(err))
		return false
	}
	return true
}
