package admin

import (
	"github.com/jaehwan-AI/coloring-web/internal/modules/admin/handler"
	"github.com/jaehwan-AI/coloring-web/internal/modules/admin/service"
)

type Module struct {
	Service *service.Service
	Handler *handler.Handler
}

func New() *Module {
	moduleService := service.New()
	return &Module{
		Service: moduleService,
		Handler: handler.New(moduleService),
	}
}
