package middleware

import (
	"net/http"
	"strings"

	"github.com/jaehwan-AI/coloring-web/internal/config"
	"github.com/jaehwan-AI/coloring-web/internal/consts"
	"github.com/jaehwan-AI/coloring-web/internal/utils"

	"github.com/gin-gonic/gin"
)

// ContextKeyAdmin 通过认证后写入上下文的管理员用户名
const ContextKeyAdmin = "admin_username"

// AdminJWT 校验 Bearer 令牌：缺失或无效返回 401，角色不是 admin 返回 403
func AdminJWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "需要认证才能访问"})
			c.Abort()
			return
		}

		// 检查格式是否为 "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token 格式错误"})
			c.Abort()
			return
		}

		claims, err := utils.ParseAdminToken([]byte(config.Get().JWT.Secret), strings.TrimSpace(parts[1]))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token 无效或已过期"})
			c.Abort()
			return
		}

		if claims.Role != consts.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "需要管理员权限才能访问"})
			c.Abort()
			return
		}

		c.Set(ContextKeyAdmin, claims.Subject)
		c.Next()
	}
}
