package di

import (
	"github.com/jaehwan-AI/coloring-web/internal/platform/service"
	"github.com/jaehwan-AI/coloring-web/internal/router"
)

type Application struct {
	Router  *router.Router
	Service *service.AppService
}

func NewApplication(r *router.Router, s *service.AppService) *Application {
	return &Application{
		Router:  r,
		Service: s,
	}
}

// Close 释放进程级共享资源（限流清理协程、Redis 连接）
func (a *Application) Close() error {
	if a == nil {
		return nil
	}
	if a.Router != nil {
		a.Router.Close()
	}
	if a.Service == nil {
		return nil
	}
	return a.Service.Close()
}
