package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jaehwan-AI/coloring-web/internal/config"
	"github.com/jaehwan-AI/coloring-web/internal/consts"
	"github.com/jaehwan-AI/coloring-web/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "middleware_secret"

func setupAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := config.Config{}
	cfg.JWT.Secret = testSecret
	config.SetForTest(cfg)

	r := gin.New()
	r.GET("/x", AdminJWT(), func(c *gin.Context) {
		name, _ := c.Get(ContextKeyAdmin)
		c.JSON(http.StatusOK, gin.H{"admin": name})
	})
	return r
}

func getWithAuth(r http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// 测试内容：验证缺少或格式错误的 Authorization 头返回 401。
func TestAdminJWT_MissingOrMalformedHeader(t *testing.T) {
	r := setupAuthRouter(t)

	for _, header := range []string{"", "Token abc", "Bearer", "Bearer not-a-jwt"} {
		if w := getWithAuth(r, header); w.Code != http.StatusUnauthorized {
			t.Fatalf("header=%q 期望 401，实际为 %d", header, w.Code)
		}
	}
}

// 测试内容：验证有效管理员令牌放行并写入上下文。
func TestAdminJWT_ValidToken(t *testing.T) {
	r := setupAuthRouter(t)

	token, err := utils.GenerateAdminToken([]byte(testSecret), "admin", time.Hour)
	if err != nil {
		t.Fatalf("GenerateAdminToken: %v", err)
	}
	w := getWithAuth(r, "Bearer "+token)
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际为 %d", w.Code)
	}
	if w.Body.String() != `{"admin":"admin"}` {
		t.Fatalf("非预期响应: %s", w.Body.String())
	}
}

// 测试内容：验证其他密钥签发或已过期的令牌返回 401。
func TestAdminJWT_RejectsForeignAndExpiredTokens(t *testing.T) {
	r := setupAuthRouter(t)

	foreign, _ := utils.GenerateAdminToken([]byte("other"), "admin", time.Hour)
	if w := getWithAuth(r, "Bearer "+foreign); w.Code != http.StatusUnauthorized {
		t.Fatalf("期望 401，实际为 %d", w.Code)
	}
	expired, _ := utils.GenerateAdminToken([]byte(testSecret), "admin", -time.Minute)
	if w := getWithAuth(r, "Bearer "+expired); w.Code != http.StatusUnauthorized {
		t.Fatalf("期望 401，实际为 %d", w.Code)
	}
}

// 测试内容：验证签名有效但角色不是 admin 的令牌返回 403。
func TestAdminJWT_NonAdminRoleForbidden(t *testing.T) {
	r := setupAuthRouter(t)

	claims := utils.AdminClaims{
		Role: "viewer",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "someone",
			Issuer:    consts.JWTIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if w := getWithAuth(r, "Bearer "+token); w.Code != http.StatusForbidden {
		t.Fatalf("期望 403，实际为 %d", w.Code)
	}
}
