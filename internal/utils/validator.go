package utils

import (
	"encoding/base64"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/jaehwan-AI/coloring-web/internal/consts"
	"github.com/jaehwan-AI/coloring-web/internal/model"
)

var (
	// ErrInvalidDataURL image_data_url 不是 data:image 开头或缺少数据段
	ErrInvalidDataURL = errors.New("Invalid image_data_url")
	// ErrInvalidBase64 数据段不是合法的 base64
	ErrInvalidBase64 = errors.New("Invalid image_data_url: bad base64 payload")
)

// ParseImageDataURL 解析 data:<mime>;base64,<payload> 格式的图片数据
//
// mime 仅在头部同时包含 ":" 与 ";base64" 时从头部截取，否则使用 image/png。
func ParseImageDataURL(dataURL string) ([]byte, string, error) {
	if !strings.HasPrefix(dataURL, "data:image") {
		return nil, "", ErrInvalidDataURL
	}

	header, encoded, ok := strings.Cut(dataURL, ",")
	if !ok {
		return nil, "", ErrInvalidDataURL
	}

	data, err := decodeBase64Lenient(encoded)
	if err != nil {
		return nil, "", ErrInvalidBase64
	}

	mime := consts.DefaultImageMime
	if strings.Contains(header, ";base64") && strings.Contains(header, ":") {
		afterColon := strings.SplitN(header, ":", 3)[1]
		if m, _, _ := strings.Cut(afterColon, ";"); m != "" {
			mime = m
		}
	}
	return data, mime, nil
}

// decodeBase64Lenient 忽略空白字符，兼容缺少 padding 的数据
func decodeBase64Lenient(s string) ([]byte, error) {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\n', '\r', '\t':
			return -1
		}
		return r
	}, s)

	if data, err := base64.StdEncoding.DecodeString(s); err == nil {
		return data, nil
	}
	return base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
}

// NormalizeUploadExt 返回白名单内的小写扩展名，其余情况（含无扩展名）统一为 .png
func NormalizeUploadExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range consts.AllowedUploadExtensions {
		if ext == allowed {
			return ext
		}
	}
	return consts.DefaultImageExt
}

// ParseDate 校验 YYYY-MM-DD 格式日期并返回规范化后的字符串
func ParseDate(s string) (string, error) {
	t, err := time.Parse(model.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return "", err
	}
	return t.Format(model.DateLayout), nil
}
