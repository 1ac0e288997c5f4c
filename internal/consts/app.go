package consts

const (
	// ApplicationName 应用名称
	ApplicationName = "Coloring Web Server"

	// ApplicationVersion 后端版本
	ApplicationVersion = "v1.0.0"

	// JWTIssuer 签发的管理员令牌 issuer
	JWTIssuer = "coloring-web"

	// RoleAdmin 管理员角色声明
	RoleAdmin = "admin"

	// TokenTypeBearer 登录接口返回的 token_type
	TokenTypeBearer = "bearer"
)
