package router

import (
	"github.com/jaehwan-AI/coloring-web/internal/middleware"
	adminhandler "github.com/jaehwan-AI/coloring-web/internal/modules/admin/handler"

	"github.com/gin-gonic/gin"
)

func registerAdminRoutes(api *gin.RouterGroup, authLimiter gin.HandlerFunc, h *adminhandler.Handler) {
	adminGroup := api.Group("/admin")
	adminGroup.POST("/login", authLimiter, h.Login)

	protected := adminGroup.Group("")
	protected.Use(middleware.AdminJWT())
	protected.GET("/ping", h.Ping)
}
