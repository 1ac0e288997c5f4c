package router

import (
	"github.com/jaehwan-AI/coloring-web/internal/middleware"
	"github.com/jaehwan-AI/coloring-web/internal/modules"
	"github.com/jaehwan-AI/coloring-web/internal/platform/service"

	"github.com/gin-gonic/gin"
)

type Router struct {
	modules  *modules.AppModules
	service  *service.AppService
	limiters []*middleware.RateLimiter
}

func NewRouter(appModules *modules.AppModules, appService *service.AppService) *Router {
	return &Router{
		modules: appModules,
		service: appService,
	}
}

func (rt *Router) Init(r *gin.Engine) {
	// 安全标头与 CORS 挂在引擎上，未注册 OPTIONS 路由的预检请求也能拿到响应头
	r.Use(middleware.SecurityHeaders(), middleware.CORS())

	api := r.Group("/api")
	// 应用请求体大小限制中间件
	api.Use(middleware.BodyLimitMiddleware())

	// 上传与保存结果共用一个限流实例
	uploadLimiter := rt.newLimiter(middleware.ScopeUpload)
	authLimiter := rt.newLimiter(middleware.ScopeAuth)

	registerPublicRoutes(api)
	registerMemberRoutes(api, rt.modules.Member.Handler, rt.modules.Result.Handler)
	registerResultRoutes(api, uploadLimiter, rt.modules.Result.Handler, rt.modules.Upload.Handler)
	registerAdminRoutes(api, authLimiter, rt.modules.Admin.Handler)
}

func (rt *Router) newLimiter(scope middleware.RateLimitScope) gin.HandlerFunc {
	l := middleware.NewRateLimiter(rt.service, scope)
	rt.limiters = append(rt.limiters, l)
	return l.Middleware()
}

// Close 停止限流器的后台清理协程
func (rt *Router) Close() {
	for _, l := range rt.limiters {
		l.Stop()
	}
	rt.limiters = nil
}
