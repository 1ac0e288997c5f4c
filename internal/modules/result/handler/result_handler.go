package handler

import (
	"net/http"
	"strconv"

	"github.com/jaehwan-AI/coloring-web/internal/common"
	"github.com/jaehwan-AI/coloring-web/internal/common/httpx"
	"github.com/jaehwan-AI/coloring-web/internal/consts"
	moduledto "github.com/jaehwan-AI/coloring-web/internal/modules/result/dto"
	resultservice "github.com/jaehwan-AI/coloring-web/internal/modules/result/service"

	"github.com/gin-gonic/gin"
)

// SaveResult POST /api/results/save
func (h *Handler) SaveResult(c *gin.Context) {
	var req moduledto.SaveResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	resp, err := h.resultService.SaveResult(c.Request.Context(), req)
	if err != nil {
		httpx.WriteServiceError(c, err, "保存失败，请稍后重试")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListResults GET /api/results?limit=24&cursor=<id>
func (h *Handler) ListResults(c *gin.Context) {
	limit := consts.DefaultResultPageSize
	if raw, ok := c.GetQuery("limit"); ok {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit 必须为正整数"})
			return
		}
		limit = v
	}

	var cursor *uint
	if raw, ok := c.GetQuery("cursor"); ok && raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cursor 格式错误"})
			return
		}
		id := uint(v)
		cursor = &id
	}

	resp, err := h.resultService.ListResults(c.Request.Context(), moduledto.ListResultsRequest{
		Limit:  limit,
		Cursor: cursor,
	})
	if err != nil {
		httpx.WriteServiceError(c, err, "获取结果列表失败")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteResult DELETE /api/images/:id
func (h *Handler) DeleteResult(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的 ID"})
		return
	}

	if err := h.resultService.DeleteResult(c.Request.Context(), uint(id)); err != nil {
		httpx.WriteServiceError(c, err, "删除失败")
		return
	}
	c.Status(http.StatusNoContent)
}

// ListMemberResults GET /api/members/:key/results，key 为会员编号
func (h *Handler) ListMemberResults(c *gin.Context) {
	dateFrom, err := resultservice.ParseDateQuery(c.Query("date_from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date_from 格式应为 YYYY-MM-DD"})
		return
	}
	dateTo, err := resultservice.ParseDateQuery(c.Query("date_to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date_to 格式应为 YYYY-MM-DD"})
		return
	}

	resp, err := h.resultService.ListForMember(c.Request.Context(), c.Param("key"), moduledto.MemberResultsQuery{
		DateFrom: dateFrom,
		DateTo:   dateTo,
	})
	if err != nil {
		if common.IsCode(err, common.ErrorCodeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Member not found"})
			return
		}
		httpx.WriteServiceError(c, err, "获取会员结果失败")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListMemberResultsByName GET /api/members/by-name/:name/results
func (h *Handler) ListMemberResultsByName(c *gin.Context) {
	resp, err := h.resultService.ListForMemberByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		httpx.WriteServiceError(c, err, "获取会员结果失败")
		return
	}
	c.JSON(http.StatusOK, resp)
}
