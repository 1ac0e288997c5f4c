package modules

import (
	"github.com/jaehwan-AI/coloring-web/internal/modules/admin"
	"github.com/jaehwan-AI/coloring-web/internal/modules/member"
	memberrepo "github.com/jaehwan-AI/coloring-web/internal/modules/member/repo"
	"github.com/jaehwan-AI/coloring-web/internal/modules/result"
	resultrepo "github.com/jaehwan-AI/coloring-web/internal/modules/result/repo"
	"github.com/jaehwan-AI/coloring-web/internal/modules/upload"
	"github.com/jaehwan-AI/coloring-web/internal/platform/storage"
)

type AppModules struct {
	Member *member.Module
	Result *result.Module
	Upload *upload.Module
	Admin  *admin.Module
}

func New(
	uploads *storage.Uploads,
	memberStore memberrepo.MemberStore,
	resultStore resultrepo.ResultStore,
) *AppModules {
	memberModule := member.New(memberStore)

	return &AppModules{
		Member: memberModule,
		Result: result.New(uploads, memberModule.Service, resultStore),
		Upload: upload.New(uploads),
		Admin:  admin.New(),
	}
}
