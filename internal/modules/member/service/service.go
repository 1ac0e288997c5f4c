package service

import (
	"context"
	"errors"

	"github.com/jaehwan-AI/coloring-web/internal/common"
	"github.com/jaehwan-AI/coloring-web/internal/model"
	"github.com/jaehwan-AI/coloring-web/internal/modules/member/dto"
	"github.com/jaehwan-AI/coloring-web/internal/modules/member/repo"

	"gorm.io/gorm"
)

type Service struct {
	memberStore repo.MemberStore
}

func New(memberStore repo.MemberStore) *Service {
	return &Service{memberStore: memberStore}
}

// Upsert 按 number 新建或覆盖会员资料（含身高体重）
func (s *Service) Upsert(ctx context.Context, req dto.UpsertMemberRequest) (*model.Member, error) {
	member := &model.Member{
		Number:   req.Number,
		Name:     req.Name,
		Memo:     req.Memo,
		HeightCM: req.HeightCM,
		WeightKG: req.WeightKG,
	}
	saved, err := s.memberStore.Upsert(ctx, member, repo.FullUpsertColumns)
	if err != nil {
		return nil, TranslateStoreError(err, "保存会员失败")
	}
	return saved, nil
}

func (s *Service) GetByNumber(ctx context.Context, number string) (*model.Member, error) {
	member, err := s.memberStore.FindByNumber(ctx, number)
	if err != nil {
		return nil, TranslateStoreError(err, "查询会员失败")
	}
	return member, nil
}

// GetByName 同名时返回最近更新的会员
func (s *Service) GetByName(ctx context.Context, name string) (*model.Member, error) {
	member, err := s.memberStore.FindByName(ctx, name)
	if err != nil {
		return nil, TranslateStoreError(err, "查询会员失败")
	}
	return member, nil
}

// FindByIDs 批量加载会员，返回 id -> 会员
func (s *Service) FindByIDs(ctx context.Context, ids []uint) (map[uint]model.Member, error) {
	members, err := s.memberStore.FindByIDs(ctx, ids)
	if err != nil {
		return nil, TranslateStoreError(err, "查询会员失败")
	}
	out := make(map[uint]model.Member, len(members))
	for _, m := range members {
		out[m.ID] = m
	}
	return out, nil
}

// TranslateStoreError 将存储层错误转换为 ServiceError
func TranslateStoreError(err error, message string) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return common.NewNotFoundError("Member not found")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return common.NewConflictError("会员编号冲突，请重试")
	default:
		return common.WrapInternalError(message, err)
	}
}
