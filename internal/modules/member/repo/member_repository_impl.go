package repo

import (
	"context"

	"github.com/jaehwan-AI/coloring-web/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MemberRepository struct {
	db *gorm.DB
}

func (r *MemberRepository) Upsert(ctx context.Context, member *model.Member, updateColumns []string) (*model.Member, error) {
	return UpsertInTx(r.db.WithContext(ctx), member, updateColumns)
}

// UpsertInTx 以 number 为冲突键执行 INSERT ... ON CONFLICT DO UPDATE，
// 并发的首次写入由唯一索引收敛为同一行。完成后按 number 重新读取整行。
func UpsertInTx(tx *gorm.DB, member *model.Member, updateColumns []string) (*model.Member, error) {
	now := tx.NowFunc()
	row := *member
	row.ID = 0
	row.CreatedAt = now
	row.UpdatedAt = now

	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "number"}},
		DoUpdates: clause.AssignmentColumns(updateColumns),
	}).Create(&row).Error
	if err != nil {
		return nil, err
	}

	var saved model.Member
	if err := tx.Where("number = ?", member.Number).Take(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *MemberRepository) FindByNumber(ctx context.Context, number string) (*model.Member, error) {
	var member model.Member
	if err := r.db.WithContext(ctx).Where("number = ?", number).Take(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// FindByName 同名会员取最近更新的一条，更新时间相同时取 id 最大者
func (r *MemberRepository) FindByName(ctx context.Context, name string) (*model.Member, error) {
	var member model.Member
	if err := r.db.WithContext(ctx).
		Where("name = ?", name).
		Order("updated_at desc").
		Order("id desc").
		Take(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *MemberRepository) FindByIDs(ctx context.Context, ids []uint) ([]model.Member, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var members []model.Member
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}
