package member

import (
	"github.com/jaehwan-AI/coloring-web/internal/modules/member/handler"
	"github.com/jaehwan-AI/coloring-web/internal/modules/member/repo"
	"github.com/jaehwan-AI/coloring-web/internal/modules/member/service"
)

type Module struct {
	Service *service.Service
	Handler *handler.Handler
}

func New(memberStore repo.MemberStore) *Module {
	moduleService := service.New(memberStore)
	moduleHandler := handler.New(moduleService)

	return &Module{
		Service: moduleService,
		Handler: moduleHandler,
	}
}
