package handler

import (
	"net/http"

	"github.com/jaehwan-AI/coloring-web/internal/common/httpx"
	moduledto "github.com/jaehwan-AI/coloring-web/internal/modules/member/dto"

	"github.com/gin-gonic/gin"
)

// UpsertMember POST /api/members/upsert
func (h *Handler) UpsertMember(c *gin.Context) {
	var req moduledto.UpsertMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: number 和 name 不能为空"})
		return
	}

	member, err := h.memberService.Upsert(c.Request.Context(), req)
	if err != nil {
		httpx.WriteServiceError(c, err, "保存会员失败")
		return
	}
	c.JSON(http.StatusOK, moduledto.NewMemberResponse(member))
}

// GetMemberByName GET /api/members/:key，key 为会员姓名
func (h *Handler) GetMemberByName(c *gin.Context) {
	member, err := h.memberService.GetByName(c.Request.Context(), c.Param("key"))
	if err != nil {
		httpx.WriteServiceError(c, err, "查询会员失败")
		return
	}
	c.JSON(http.StatusOK, moduledto.NewMemberResponse(member))
}
