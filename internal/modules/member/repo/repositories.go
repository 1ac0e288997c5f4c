package repo

import (
	"context"

	"github.com/jaehwan-AI/coloring-web/internal/model"

	"gorm.io/gorm"
)

var (
	// FullUpsertColumns /api/members/upsert 覆盖的列
	FullUpsertColumns = []string{"name", "memo", "height_cm", "weight_kg", "updated_at"}
	// ProfileUpsertColumns 保存涂色结果时的窄更新：不修改身高体重
	ProfileUpsertColumns = []string{"name", "memo", "updated_at"}
)

type MemberStore interface {
	Upsert(ctx context.Context, member *model.Member, updateColumns []string) (*model.Member, error)
	FindByNumber(ctx context.Context, number string) (*model.Member, error)
	FindByName(ctx context.Context, name string) (*model.Member, error)
	FindByIDs(ctx context.Context, ids []uint) ([]model.Member, error)
}

func NewMemberRepository(db *gorm.DB) MemberStore {
	return &MemberRepository{db: db}
}
