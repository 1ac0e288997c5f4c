package handler

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jaehwan-AI/coloring-web/internal/model"
	memberrepo "github.com/jaehwan-AI/coloring-web/internal/modules/member/repo"
	memberservice "github.com/jaehwan-AI/coloring-web/internal/modules/member/service"
	moduledto "github.com/jaehwan-AI/coloring-web/internal/modules/result/dto"
	"github.com/jaehwan-AI/coloring-web/internal/modules/result/repo"
	resultservice "github.com/jaehwan-AI/coloring-web/internal/modules/result/service"
	"github.com/jaehwan-AI/coloring-web/internal/platform/storage"
	"github.com/jaehwan-AI/coloring-web/internal/testutils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	gdb := testutils.SetupDB(t)
	uploads := storage.NewUploads(filepath.Join(t.TempDir(), "uploads"), "/uploads/")
	if err := uploads.EnsureRoot(); err != nil {
		t.Fatalf("EnsureRoot: %v", err)
	}
	members := memberservice.New(memberrepo.NewMemberRepository(gdb))
	h := New(resultservice.New(uploads, members, repo.NewResultRepository(gdb)))

	r := gin.New()
	r.POST("/api/results/save", h.SaveResult)
	r.GET("/api/results", h.ListResults)
	r.DELETE("/api/images/:id", h.DeleteResult)
	r.GET("/api/members/:key/results", h.ListMemberResults)
	r.GET("/api/members/by-name/:name/results", h.ListMemberResultsByName)
	return r, gdb
}

func doRequest(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func saveBody(number, date string) string {
	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(testutils.MinimalPNG())
	if date == "" {
		return fmt.Sprintf(`{"member":{"number":%q,"name":"kim"},"image_data_url":%q}`, number, dataURL)
	}
	return fmt.Sprintf(`{"member":{"number":%q,"name":"kim"},"image_data_url":%q,"selected_date":%q}`, number, dataURL, date)
}

// 测试内容：验证保存、列表、删除的完整 HTTP 流程。
func TestResultLifecycle(t *testing.T) {
	r, _ := setupRouter(t)

	w := doRequest(r, http.MethodPost, "/api/results/save", saveBody("1", "2024-01-02"))
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际为 %d body=%s", w.Code, w.Body.String())
	}
	var saved moduledto.SaveResultResponse
	_ = json.Unmarshal(w.Body.Bytes(), &saved)
	if saved.ID == 0 || !strings.HasPrefix(saved.URL, "/uploads/members/") {
		t.Fatalf("非预期响应: %+v", saved)
	}

	w = doRequest(r, http.MethodGet, "/api/results", "")
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际为 %d", w.Code)
	}
	var raw map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &raw)
	if v, ok := raw["nextCursor"]; !ok || v != nil {
		t.Fatalf("期望 nextCursor 为 null: %s", w.Body.String())
	}
	items, _ := raw["items"].([]any)
	if len(items) != 1 {
		t.Fatalf("期望 1 条结果: %s", w.Body.String())
	}
	item := items[0].(map[string]any)
	if v, ok := item["thumb_url"]; !ok || v != nil {
		t.Fatalf("期望 thumb_url 为 null: %v", item)
	}

	w = doRequest(r, http.MethodDelete, fmt.Sprintf("/api/images/%d", saved.ID), "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("期望 204，实际为 %d", w.Code)
	}
	w = doRequest(r, http.MethodDelete, fmt.Sprintf("/api/images/%d", saved.ID), "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("期望 404，实际为 %d", w.Code)
	}
}

// 测试内容：验证非法 image_data_url 返回 400 且错误信息明确。
func TestSaveResult_InvalidDataURL(t *testing.T) {
	r, gdb := setupRouter(t)

	w := doRequest(r, http.MethodPost, "/api/results/save", `{"member":{"number":"1","name":"a"},"image_data_url":"nope"}`)
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "Invalid image_data_url") {
		t.Fatalf("期望 400 Invalid image_data_url，实际为 %d %s", w.Code, w.Body.String())
	}
	var count int64
	gdb.Model(&model.Member{}).Count(&count)
	if count != 0 {
		t.Fatalf("期望未创建会员，实际为 %d", count)
	}
}

// 测试内容：验证列表参数非法时返回 400。
func TestListResults_InvalidParams(t *testing.T) {
	r, _ := setupRouter(t)

	for _, q := range []string{"limit=0", "limit=-1", "limit=abc", "cursor=x"} {
		if w := doRequest(r, http.MethodGet, "/api/results?"+q, ""); w.Code != http.StatusBadRequest {
			t.Fatalf("query=%s 期望 400，实际为 %d", q, w.Code)
		}
	}
}

// 测试内容：验证按编号查询会员结果，未知编号返回 detail 形式的 404。
func TestListMemberResults(t *testing.T) {
	r, _ := setupRouter(t)
	doRequest(r, http.MethodPost, "/api/results/save", saveBody("55", "2024-03-01"))
	doRequest(r, http.MethodPost, "/api/results/save", saveBody("55", ""))

	w := doRequest(r, http.MethodGet, "/api/members/55/results", "")
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际为 %d", w.Code)
	}
	var resp moduledto.MemberResultsResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Member.Number != "55" || len(resp.Items) != 2 || resp.Items[1].SelectedDate != nil {
		t.Fatalf("非预期响应: %s", w.Body.String())
	}

	w = doRequest(r, http.MethodGet, "/api/members/55/results?date_from=2024-02-01&date_to=2024-03-31", "")
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Items) != 1 {
		t.Fatalf("期望过滤后 1 条: %s", w.Body.String())
	}

	if w := doRequest(r, http.MethodGet, "/api/members/55/results?date_from=bad", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("期望 400，实际为 %d", w.Code)
	}

	w = doRequest(r, http.MethodGet, "/api/members/404/results", "")
	if w.Code != http.StatusNotFound || strings.TrimSpace(w.Body.String()) != `{"detail":"Member not found"}` {
		t.Fatalf("非预期 404 响应: %d %s", w.Code, w.Body.String())
	}
}

// 测试内容：验证按姓名查询会员结果。
func TestListMemberResultsByName(t *testing.T) {
	r, _ := setupRouter(t)
	doRequest(r, http.MethodPost, "/api/results/save", saveBody("9", ""))

	w := doRequest(r, http.MethodGet, "/api/members/by-name/kim/results", "")
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际为 %d", w.Code)
	}
	var resp moduledto.MemberResultsByNameResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Member.Number != "9" || len(resp.Items) != 1 {
		t.Fatalf("非预期响应: %s", w.Body.String())
	}

	if w := doRequest(r, http.MethodGet, "/api/members/by-name/ghost/results", ""); w.Code != http.StatusNotFound {
		t.Fatalf("期望 404，实际为 %d", w.Code)
	}
}
