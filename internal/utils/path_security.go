package utils

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
)

var (
	// ErrAbsolutePath 相对路径参数实际为绝对路径
	ErrAbsolutePath = errors.New("非法路径: 不允许绝对路径")
	// ErrOutsideBase 目标路径不在基目录内
	ErrOutsideBase = errors.New("非法路径: 目标超出基目录")
	// ErrSymlink 路径链路中存在符号链接
	ErrSymlink = errors.New("检测到符号链接穿透风险")
)

// SecureJoin 将相对路径安全拼接到 basePath 下，返回目标绝对路径。
//
// 拒绝绝对路径输入；规范化后不得越出 basePath；
// basePath 到目标之间已存在的节点不能是符号链接。
// 目标本身可以不存在（便于写入新文件）。
func SecureJoin(basePath, relativePath string) (string, error) {
	baseAbs, err := filepath.Abs(basePath)
	if err != nil {
		return "", fmt.Errorf("路径解析失败: %w", err)
	}

	// URL 风格的 / 统一转换为系统分隔符后再规范化
	cleanRel := filepath.Clean(filepath.FromSlash(relativePath))
	if cleanRel == "." {
		cleanRel = ""
	}
	if filepath.IsAbs(cleanRel) || filepath.VolumeName(cleanRel) != "" || strings.HasPrefix(relativePath, "/") {
		return "", ErrAbsolutePath
	}

	targetAbs := filepath.Join(baseAbs, cleanRel)
	if err := EnsureNoSymlinkBetween(baseAbs, targetAbs); err != nil {
		return "", err
	}
	return targetAbs, nil
}

// IsWithinBase 判断 target 是否等于 base 或位于其目录树内。
// 基于 filepath.Rel 计算，而非字符串前缀比较。
func IsWithinBase(basePath, targetPath string) bool {
	baseAbs, err := filepath.Abs(basePath)
	if err != nil {
		return false
	}
	targetAbs, err := filepath.Abs(targetPath)
	if err != nil {
		return false
	}
	return ensureWithinBase(baseAbs, targetAbs) == nil
}

// EnsurePathNotSymlink 检查路径节点本身是否为符号链接，不存在时返回 nil。
func EnsurePathNotSymlink(p string) error {
	absPath, err := filepath.Abs(p)
	if err != nil {
		return fmt.Errorf("路径解析失败: %w", err)
	}

	info, err := os.Lstat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("检查路径失败: %w", err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("%w: %s", ErrSymlink, absPath)
	}
	return nil
}

// EnsureNoSymlinkBetween 校验 targetPath 位于 basePath 内，
// 并从 targetPath 逐级回溯到 basePath，已存在的节点均不得为符号链接。
func EnsureNoSymlinkBetween(basePath, targetPath string) error {
	baseAbs, err := filepath.Abs(basePath)
	if err != nil {
		return fmt.Errorf("路径解析失败: %w", err)
	}
	targetAbs, err := filepath.Abs(targetPath)
	if err != nil {
		return fmt.Errorf("路径解析失败: %w", err)
	}

	if err := ensureWithinBase(baseAbs, targetAbs); err != nil {
		return err
	}

	current := targetAbs
	for {
		if err := EnsurePathNotSymlink(current); err != nil {
			return err
		}
		if samePath(current, baseAbs) {
			return nil
		}

		parent := filepath.Dir(current)
		if samePath(parent, current) {
			return errors.New("非法路径: 无法定位到安全基目录")
		}
		current = parent
	}
}

// FirstSegment 返回 URL 风格相对路径规范化后的第一段，如 "a/../members/x" -> "members"
func FirstSegment(rel string) string {
	cleaned := path.Clean("/" + strings.ReplaceAll(rel, "\\", "/"))
	cleaned = strings.TrimPrefix(cleaned, "/")
	if i := strings.IndexByte(cleaned, '/'); i >= 0 {
		return cleaned[:i]
	}
	return cleaned
}

// ensureWithinBase Windows 下先比较卷标，再用 filepath.Rel 判断是否以 ".." 越界
func ensureWithinBase(baseAbs, targetAbs string) error {
	baseVol := filepath.VolumeName(baseAbs)
	targetVol := filepath.VolumeName(targetAbs)
	if baseVol != "" || targetVol != "" {
		if !strings.EqualFold(baseVol, targetVol) {
			return errors.New("非法路径: 路径跨磁盘卷")
		}
	}

	rel, err := filepath.Rel(baseAbs, targetAbs)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrOutsideBase, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return ErrOutsideBase
	}
	return nil
}

// samePath Windows 下大小写不敏感
func samePath(a, b string) bool {
	a = filepath.Clean(a)
	b = filepath.Clean(b)
	if runtime.GOOS == "windows" {
		return strings.EqualFold(a, b)
	}
	return a == b
}
