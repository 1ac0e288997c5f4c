//go:build wireinject
// +build wireinject

package di

import (
	"github.com/jaehwan-AI/coloring-web/internal/config"
	"github.com/jaehwan-AI/coloring-web/internal/modules"
	memberrepo "github.com/jaehwan-AI/coloring-web/internal/modules/member/repo"
	resultrepo "github.com/jaehwan-AI/coloring-web/internal/modules/result/repo"
	"github.com/jaehwan-AI/coloring-web/internal/platform/service"
	"github.com/jaehwan-AI/coloring-web/internal/platform/storage"
	"github.com/jaehwan-AI/coloring-web/internal/router"

	"github.com/google/wire"
	"gorm.io/gorm"
)

func InitializeApplication(gormDB *gorm.DB, uploads *storage.Uploads, redisCfg config.RedisConfig) (*Application, error) {
	wire.Build(
		memberrepo.NewMemberRepository,
		resultrepo.NewResultRepository,
		service.NewAppService,
		modules.New,
		router.NewRouter,
		NewApplication,
	)
	return nil, nil
}
