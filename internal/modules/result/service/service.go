package service

import (
	"context"

	"github.com/jaehwan-AI/coloring-web/internal/model"
	"github.com/jaehwan-AI/coloring-web/internal/modules/result/repo"
	"github.com/jaehwan-AI/coloring-web/internal/platform/storage"
)

// MemberReader 结果模块依赖的会员查询能力，由 member 模块的 Service 实现
type MemberReader interface {
	GetByNumber(ctx context.Context, number string) (*model.Member, error)
	GetByName(ctx context.Context, name string) (*model.Member, error)
	FindByIDs(ctx context.Context, ids []uint) (map[uint]model.Member, error)
}

type Service struct {
	uploads     *storage.Uploads
	members     MemberReader
	resultStore repo.ResultStore
}

func New(uploads *storage.Uploads, members MemberReader, resultStore repo.ResultStore) *Service {
	return &Service{
		uploads:     uploads,
		members:     members,
		resultStore: resultStore,
	}
}
