package repo

import (
	"context"

	"github.com/jaehwan-AI/coloring-web/internal/model"
	memberrepo "github.com/jaehwan-AI/coloring-web/internal/modules/member/repo"

	"gorm.io/gorm"
)

type ResultRepository struct {
	db *gorm.DB
}

// CreateWithMember 同一事务内：窄 upsert 会员 -> build 写文件 -> 插入结果行
func (r *ResultRepository) CreateWithMember(ctx context.Context, member *model.Member, build BuildResultFunc) (*model.ColoredResult, *model.Member, error) {
	var (
		result *model.ColoredResult
		owner  *model.Member
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		saved, err := memberrepo.UpsertInTx(tx, member, memberrepo.ProfileUpsertColumns)
		if err != nil {
			return err
		}
		row, err := build(saved.ID)
		if err != nil {
			return err
		}
		row.MemberID = saved.ID
		if err := tx.Create(row).Error; err != nil {
			return err
		}
		result, owner = row, saved
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return result, owner, nil
}

// ListPage 按 id 倒序，cursor 非空时只取 id < cursor
func (r *ResultRepository) ListPage(ctx context.Context, cursor *uint, limit int) ([]model.ColoredResult, error) {
	query := r.db.WithContext(ctx).Model(&model.ColoredResult{})
	if cursor != nil {
		query = query.Where("id < ?", *cursor)
	}
	var rows []model.ColoredResult
	if err := query.Order("id desc").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ResultRepository) FindByID(ctx context.Context, id uint) (*model.ColoredResult, error) {
	var row model.ColoredResult
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *ResultRepository) DeleteByID(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ColoredResult{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListForMember selected_date 倒序且空值排最后，再按 id 倒序
func (r *ResultRepository) ListForMember(ctx context.Context, memberID uint, dateFrom, dateTo *string) ([]model.ColoredResult, error) {
	query := r.db.WithContext(ctx).Model(&model.ColoredResult{}).Where("member_id = ?", memberID)
	if dateFrom != nil {
		query = query.Where("selected_date >= ?", *dateFrom)
	}
	if dateTo != nil {
		query = query.Where("selected_date <= ?", *dateTo)
	}
	var rows []model.ColoredResult
	err := query.
		Order("CASE WHEN selected_date IS NULL THEN 1 ELSE 0 END").
		Order("selected_date desc").
		Order("id desc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ResultRepository) ListByMemberID(ctx context.Context, memberID uint) ([]model.ColoredResult, error) {
	var rows []model.ColoredResult
	if err := r.db.WithContext(ctx).Where("member_id = ?", memberID).Order("id desc").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
