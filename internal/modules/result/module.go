package result

import (
	"github.com/jaehwan-AI/coloring-web/internal/modules/result/handler"
	"github.com/jaehwan-AI/coloring-web/internal/modules/result/repo"
	"github.com/jaehwan-AI/coloring-web/internal/modules/result/service"
	"github.com/jaehwan-AI/coloring-web/internal/platform/storage"
)

type Module struct {
	Service *service.Service
	Handler *handler.Handler
}

func New(uploads *storage.Uploads, members service.MemberReader, resultStore repo.ResultStore) *Module {
	moduleService := service.New(uploads, members, resultStore)
	moduleHandler := handler.New(moduleService)

	return &Module{
		Service: moduleService,
		Handler: moduleHandler,
	}
}
