package service

import (
	"crypto/subtle"
	"time"

	"github.com/jaehwan-AI/coloring-web/internal/common"
	"github.com/jaehwan-AI/coloring-web/internal/config"
	"github.com/jaehwan-AI/coloring-web/internal/consts"
	"github.com/jaehwan-AI/coloring-web/internal/logger"
	"github.com/jaehwan-AI/coloring-web/internal/modules/admin/dto"
	"github.com/jaehwan-AI/coloring-web/internal/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Service 单管理员登录，账号来自配置文件 admin 段
type Service struct{}

func New() *Service {
	return &Service{}
}

// Login 校验用户名和 bcrypt 密码，成功后签发管理员令牌
func (s *Service) Login(req dto.LoginRequest) (*dto.LoginResponse, error) {
	cfg := config.Get()
	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(cfg.Admin.Username)) == 1
	// 先判断用户名，未配置哈希只对正确用户名报 500
	if cfg.Admin.PasswordHash == "" {
		if !userOK {
			return nil, common.NewUnauthorizedError("用户名或密码错误")
		}
		logger.L().Error("admin.password_hash 未配置，无法登录")
		return nil, common.NewInternalError("管理员账号未配置")
	}

	// 用户名错误时也执行一次 bcrypt，避免通过耗时区分
	passErr := bcrypt.CompareHashAndPassword([]byte(cfg.Admin.PasswordHash), []byte(req.Password))
	if !userOK || passErr != nil {
		return nil, common.NewUnauthorizedError("用户名或密码错误")
	}

	hours := cfg.JWT.ExpirationHours
	if hours <= 0 {
		hours = 12
	}
	token, err := utils.GenerateAdminToken([]byte(cfg.JWT.Secret), cfg.Admin.Username, time.Duration(hours)*time.Hour)
	if err != nil {
		return nil, common.WrapInternalError("生成令牌失败", err)
	}

	logger.L().Info("admin login", zap.String("username", cfg.Admin.Username))
	return &dto.LoginResponse{AccessToken: token, TokenType: consts.TokenTypeBearer}, nil
}

// HashPassword 生成 admin.password_hash 使用的 bcrypt 哈希
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
