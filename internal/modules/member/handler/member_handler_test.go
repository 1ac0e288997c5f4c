package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jaehwan-AI/coloring-web/internal/modules/member/dto"
	"github.com/jaehwan-AI/coloring-web/internal/modules/member/repo"
	memberservice "github.com/jaehwan-AI/coloring-web/internal/modules/member/service"
	"github.com/jaehwan-AI/coloring-web/internal/testutils"

	"github.com/gin-gonic/gin"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	gdb := testutils.SetupDB(t)
	h := New(memberservice.New(repo.NewMemberRepository(gdb)))

	r := gin.New()
	r.POST("/api/members/upsert", h.UpsertMember)
	r.GET("/api/members/:key", h.GetMemberByName)
	return r
}

func doJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// 测试内容：验证重复 upsert 同一 number 返回同一 id，且字段被覆盖。
func TestUpsertMember_Idempotent(t *testing.T) {
	r := setupRouter(t)

	w1 := doJSON(r, http.MethodPost, "/api/members/upsert", `{"number":"010","name":"kim","height_cm":120.5}`)
	if w1.Code != http.StatusOK {
		t.Fatalf("期望 200，实际为 %d body=%s", w1.Code, w1.Body.String())
	}
	var first dto.MemberResponse
	_ = json.Unmarshal(w1.Body.Bytes(), &first)

	w2 := doJSON(r, http.MethodPost, "/api/members/upsert", `{"number":"010","name":"lee","memo":"m"}`)
	if w2.Code != http.StatusOK {
		t.Fatalf("期望 200，实际为 %d", w2.Code)
	}
	var second dto.MemberResponse
	_ = json.Unmarshal(w2.Body.Bytes(), &second)

	if first.ID == 0 || first.ID != second.ID {
		t.Fatalf("期望同一 id，实际为 %d / %d", first.ID, second.ID)
	}
	if second.Name != "lee" || second.Memo == nil || *second.Memo != "m" {
		t.Fatalf("期望字段被覆盖: %+v", second)
	}
	if second.HeightCM != nil {
		t.Fatalf("完整 upsert 应覆盖 height_cm 为 null，实际为 %v", *second.HeightCM)
	}
}

// 测试内容：验证缺少必填字段时返回 400。
func TestUpsertMember_MissingFields(t *testing.T) {
	r := setupRouter(t)

	for _, body := range []string{`{"name":"kim"}`, `{"number":"1"}`, `not json`} {
		w := doJSON(r, http.MethodPost, "/api/members/upsert", body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("body=%s 期望 400，实际为 %d", body, w.Code)
		}
	}
}

// 测试内容：验证按姓名查询会员，未知姓名返回 404。
func TestGetMemberByName(t *testing.T) {
	r := setupRouter(t)
	doJSON(r, http.MethodPost, "/api/members/upsert", `{"number":"7","name":"park"}`)

	w := doJSON(r, http.MethodGet, "/api/members/park", "")
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际为 %d", w.Code)
	}
	var got dto.MemberResponse
	_ = json.Unmarshal(w.Body.Bytes(), &got)
	if got.Number != "7" {
		t.Fatalf("非预期会员: %+v", got)
	}

	if w := doJSON(r, http.MethodGet, "/api/members/nobody", ""); w.Code != http.StatusNotFound {
		t.Fatalf("期望 404，实际为 %d", w.Code)
	}
}
