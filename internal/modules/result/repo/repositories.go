package repo

import (
	"context"

	"github.com/jaehwan-AI/coloring-web/internal/model"

	"gorm.io/gorm"
)

// BuildResultFunc 在事务内、会员写入之后调用，负责落盘并返回待插入的结果行
type BuildResultFunc func(memberID uint) (*model.ColoredResult, error)

type ResultStore interface {
	CreateWithMember(ctx context.Context, member *model.Member, build BuildResultFunc) (*model.ColoredResult, *model.Member, error)
	ListPage(ctx context.Context, cursor *uint, limit int) ([]model.ColoredResult, error)
	FindByID(ctx context.Context, id uint) (*model.ColoredResult, error)
	DeleteByID(ctx context.Context, id uint) error
	ListForMember(ctx context.Context, memberID uint, dateFrom, dateTo *string) ([]model.ColoredResult, error)
	ListByMemberID(ctx context.Context, memberID uint) ([]model.ColoredResult, error)
}

func NewResultRepository(db *gorm.DB) ResultStore {
	return &ResultRepository{db: db}
}
