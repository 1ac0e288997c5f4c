package service

import (
	"context"
	"encoding/hex"
	"errors"
	"path"
	"strconv"
	"strings"

	"github.com/jaehwan-AI/coloring-web/internal/common"
	"github.com/jaehwan-AI/coloring-web/internal/consts"
	"github.com/jaehwan-AI/coloring-web/internal/logger"
	"github.com/jaehwan-AI/coloring-web/internal/model"
	memberdto "github.com/jaehwan-AI/coloring-web/internal/modules/member/dto"
	memberservice "github.com/jaehwan-AI/coloring-web/internal/modules/member/service"
	moduledto "github.com/jaehwan-AI/coloring-web/internal/modules/result/dto"
	"github.com/jaehwan-AI/coloring-web/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SaveResult 保存涂色结果
//
// 先校验 image_data_url，非法输入不会产生任何行或文件；
// 会员窄 upsert、写文件、插入结果在同一事务内，事务失败时删除已写文件。
func (s *Service) SaveResult(ctx context.Context, req moduledto.SaveResultRequest) (*moduledto.SaveResultResponse, error) {
	if strings.TrimSpace(req.Member.Number) == "" || strings.TrimSpace(req.Member.Name) == "" {
		return nil, common.NewValidationError("member.number 和 member.name 不能为空")
	}

	data, mime, err := utils.ParseImageDataURL(req.ImageDataURL)
	if err != nil {
		return nil, common.NewValidationError(utils.ErrInvalidDataURL.Error())
	}

	selectedDate, err := normalizeOptionalDate(req.SelectedDate)
	if err != nil {
		return nil, common.NewValidationError("selected_date 格式应为 YYYY-MM-DD")
	}

	member := &model.Member{
		Number: req.Member.Number,
		Name:   req.Member.Name,
		Memo:   req.Member.Memo,
	}

	var written string
	row, _, err := s.resultStore.CreateWithMember(ctx, member, func(memberID uint) (*model.ColoredResult, error) {
		relDir := path.Join(consts.MembersDir, strconv.FormatUint(uint64(memberID), 10))
		rel, err := s.uploads.WriteFile(relDir, newColoredFilename(), data)
		if err != nil {
			return nil, err
		}
		written = rel
		return &model.ColoredResult{
			Filename:     rel,
			Mime:         mime,
			OriginalID:   req.OriginalID,
			SelectedDate: selectedDate,
			Note:         req.Note,
		}, nil
	})
	if err != nil {
		if written != "" {
			s.uploads.RemoveRelative(written)
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, memberservice.TranslateStoreError(err, "")
		}
		return nil, common.WrapInternalError("保存涂色结果失败", err)
	}

	if req.OriginalUploadURL != nil && *req.OriginalUploadURL != "" {
		removed := s.uploads.SafeDeleteByPublicURL(*req.OriginalUploadURL)
		logger.L().Debug("original upload cleanup",
			zap.String("url", *req.OriginalUploadURL),
			zap.Bool("removed", removed),
		)
	}

	return &moduledto.SaveResultResponse{
		ID:        row.ID,
		MemberID:  row.MemberID,
		URL:       s.uploads.PublicURL(row.Filename),
		CreatedAt: row.CreatedAt,
	}, nil
}

// ListResults 按 id 倒序的游标分页，多取一条判断是否还有下一页
func (s *Service) ListResults(ctx context.Context, req moduledto.ListResultsRequest) (*moduledto.ListResultsResponse, error) {
	if req.Limit < 1 {
		return nil, common.NewValidationError("limit 必须为正整数")
	}

	rows, err := s.resultStore.ListPage(ctx, req.Cursor, req.Limit+1)
	if err != nil {
		return nil, common.WrapInternalError("获取结果列表失败", err)
	}

	var nextCursor *string
	if len(rows) > req.Limit {
		rows = rows[:req.Limit]
		next := strconv.FormatUint(uint64(rows[len(rows)-1].ID), 10)
		nextCursor = &next
	}

	ids := make([]uint, 0, len(rows))
	seen := make(map[uint]struct{}, len(rows))
	for _, row := range rows {
		if _, ok := seen[row.MemberID]; ok {
			continue
		}
		seen[row.MemberID] = struct{}{}
		ids = append(ids, row.MemberID)
	}
	owners, err := s.members.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]moduledto.ResultListItem, 0, len(rows))
	for _, row := range rows {
		owner, ok := owners[row.MemberID]
		if !ok {
			continue
		}
		items = append(items, moduledto.ResultListItem{
			ID:        row.ID,
			CreatedAt: row.CreatedAt,
			URL:       s.uploads.PublicURL(row.Filename),
			Member:    memberdto.NewMemberResponse(&owner),
		})
	}

	return &moduledto.ListResultsResponse{Items: items, NextCursor: nextCursor}, nil
}

// DeleteResult 先尽力删除文件，再删除记录
func (s *Service) DeleteResult(ctx context.Context, id uint) error {
	row, err := s.resultStore.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.NewNotFoundError("Result not found")
		}
		return common.WrapInternalError("删除结果失败", err)
	}

	if !s.uploads.RemoveRelative(row.Filename) {
		logger.L().Warn("result file not removed", zap.Uint("id", row.ID), zap.String("filename", row.Filename))
	}

	if err := s.resultStore.DeleteByID(ctx, row.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.NewNotFoundError("Result not found")
		}
		return common.WrapInternalError("删除结果失败", err)
	}
	return nil
}

// ListForMember 按会员编号查询结果，可按 selected_date 范围过滤
func (s *Service) ListForMember(ctx context.Context, number string, query moduledto.MemberResultsQuery) (*moduledto.MemberResultsResponse, error) {
	member, err := s.members.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}

	rows, err := s.resultStore.ListForMember(ctx, member.ID, query.DateFrom, query.DateTo)
	if err != nil {
		return nil, common.WrapInternalError("获取会员结果失败", err)
	}

	items := make([]moduledto.MemberResultNoteItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, moduledto.MemberResultNoteItem{
			MemberResultItem: s.memberResultItem(row),
			Note:             row.Note,
		})
	}
	return &moduledto.MemberResultsResponse{
		Member: memberdto.NewMemberResponse(member),
		Items:  items,
	}, nil
}

// ListForMemberByName 同名会员取最近更新者，返回其全部结果
func (s *Service) ListForMemberByName(ctx context.Context, name string) (*moduledto.MemberResultsByNameResponse, error) {
	member, err := s.members.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}

	rows, err := s.resultStore.ListByMemberID(ctx, member.ID)
	if err != nil {
		return nil, common.WrapInternalError("获取会员结果失败", err)
	}

	items := make([]moduledto.MemberResultItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, s.memberResultItem(row))
	}
	return &moduledto.MemberResultsByNameResponse{
		Member: memberdto.NewMemberResponse(member),
		Items:  items,
	}, nil
}

func (s *Service) memberResultItem(row model.ColoredResult) moduledto.MemberResultItem {
	return moduledto.MemberResultItem{
		ID:           row.ID,
		SelectedDate: row.SelectedDate,
		CreatedAt:    row.CreatedAt,
		URL:          s.uploads.PublicURL(row.Filename),
	}
}

// ParseDateQuery 解析可选的日期查询参数，空串视为未提供
func ParseDateQuery(raw string) (*string, error) {
	if raw == "" {
		return nil, nil
	}
	return normalizeOptionalDate(&raw)
}

func normalizeOptionalDate(raw *string) (*string, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	d, err := utils.ParseDate(*raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// newColoredFilename colored_<32 位十六进制>.png
func newColoredFilename() string {
	id := uuid.New()
	return consts.ColoredFilePrefix + hex.EncodeToString(id[:]) + consts.DefaultImageExt
}
