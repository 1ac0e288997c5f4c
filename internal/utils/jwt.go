package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/jaehwan-AI/coloring-web/internal/consts"

	"github.com/golang-jwt/jwt/v5"
)

// AdminClaims 管理员登录令牌，sub 为管理员用户名
type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateAdminToken 使用 HS256 签发管理员令牌
func GenerateAdminToken(secret []byte, subject string, duration time.Duration) (string, error) {
	if len(secret) == 0 {
		return "", errors.New("jwt secret is empty")
	}
	now := time.Now()
	claims := AdminClaims{
		Role: consts.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
			Issuer:    consts.JWTIssuer,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseAdminToken 校验签名与过期时间，角色由调用方判断
func ParseAdminToken(secret []byte, tokenString string) (*AdminClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*AdminClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}
