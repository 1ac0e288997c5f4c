package router

import (
	memberhandler "github.com/jaehwan-AI/coloring-web/internal/modules/member/handler"
	resulthandler "github.com/jaehwan-AI/coloring-web/internal/modules/result/handler"

	"github.com/gin-gonic/gin"
)

// registerMemberRoutes /members/:key 在按姓名查询时表示姓名，在 /results 下表示会员编号
func registerMemberRoutes(api *gin.RouterGroup, mh *memberhandler.Handler, rh *resulthandler.Handler) {
	members := api.Group("/members")
	members.POST("/upsert", mh.UpsertMember)
	members.GET("/by-name/:name/results", rh.ListMemberResultsByName)
	members.GET("/:key", mh.GetMemberByName)
	members.GET("/:key/results", rh.ListMemberResults)
}
