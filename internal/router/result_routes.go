package router

import (
	"github.com/jaehwan-AI/coloring-web/internal/middleware"
	resulthandler "github.com/jaehwan-AI/coloring-web/internal/modules/result/handler"
	uploadhandler "github.com/jaehwan-AI/coloring-web/internal/modules/upload/handler"

	"github.com/gin-gonic/gin"
)

func registerResultRoutes(api *gin.RouterGroup, uploadLimiter gin.HandlerFunc, rh *resulthandler.Handler, uh *uploadhandler.Handler) {
	api.POST("/upload", middleware.UploadBodyLimitMiddleware(), uploadLimiter, uh.Upload)

	api.POST("/results/save", uploadLimiter, rh.SaveResult)
	api.GET("/results", rh.ListResults)
	api.DELETE("/images/:id", rh.DeleteResult)
}
