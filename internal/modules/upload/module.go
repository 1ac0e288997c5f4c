package upload

import (
	"github.com/jaehwan-AI/coloring-web/internal/modules/upload/handler"
	"github.com/jaehwan-AI/coloring-web/internal/modules/upload/service"
	"github.com/jaehwan-AI/coloring-web/internal/platform/storage"
)

type Module struct {
	Service *service.Service
	Handler *handler.Handler
}

func New(uploads *storage.Uploads) *Module {
	moduleService := service.New(uploads)
	return &Module{
		Service: moduleService,
		Handler: handler.New(moduleService),
	}
}
