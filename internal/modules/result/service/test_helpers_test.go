package service

import (
	"encoding/base64"
	"path/filepath"
	"testing"

	memberrepo "github.com/jaehwan-AI/coloring-web/internal/modules/member/repo"
	memberservice "github.com/jaehwan-AI/coloring-web/internal/modules/member/service"
	"github.com/jaehwan-AI/coloring-web/internal/modules/result/repo"
	"github.com/jaehwan-AI/coloring-web/internal/platform/storage"
	"github.com/jaehwan-AI/coloring-web/internal/testutils"

	"gorm.io/gorm"
)

type testEnv struct {
	db      *gorm.DB
	root    string
	uploads *storage.Uploads
	service *Service
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gdb := testutils.SetupDB(t)
	root := filepath.Join(t.TempDir(), "uploads")
	uploads := storage.NewUploads(root, "/uploads/")
	if err := uploads.EnsureRoot(); err != nil {
		t.Fatalf("EnsureRoot: %v", err)
	}
	members := memberservice.New(memberrepo.NewMemberRepository(gdb))
	return &testEnv{
		db:      gdb,
		root:    root,
		uploads: uploads,
		service: New(uploads, members, repo.NewResultRepository(gdb)),
	}
}

func pngDataURL() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(testutils.MinimalPNG())
}

func strPtr(s string) *string { return &s }
