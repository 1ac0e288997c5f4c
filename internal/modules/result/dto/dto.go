package dto

import (
	"time"

	memberdto "github.com/jaehwan-AI/coloring-web/internal/modules/member/dto"
)

type SaveMemberInput struct {
	Number string  `json:"number" binding:"required"`
	Name   string  `json:"name" binding:"required"`
	Memo   *string `json:"memo"`
}

// SaveResultRequest image_data_url 由 service 校验，便于返回统一的错误信息
type SaveResultRequest struct {
	Member            SaveMemberInput `json:"member"`
	ImageDataURL      string          `json:"image_data_url"`
	OriginalID        *uint           `json:"original_id"`
	OriginalUploadURL *string         `json:"original_upload_url"`
	SelectedDate      *string         `json:"selected_date"`
	Note              *string         `json:"note"`
}

type SaveResultResponse struct {
	ID        uint      `json:"id"`
	MemberID  uint      `json:"member_id"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

type ListResultsRequest struct {
	Limit  int
	Cursor *uint
}

type ResultListItem struct {
	ID        uint                     `json:"id"`
	CreatedAt time.Time                `json:"created_at"`
	URL       string                   `json:"url"`
	ThumbURL  *string                  `json:"thumb_url"`
	Member    memberdto.MemberResponse `json:"member"`
}

type ListResultsResponse struct {
	Items      []ResultListItem `json:"items"`
	NextCursor *string          `json:"nextCursor"`
}

type MemberResultItem struct {
	ID           uint      `json:"id"`
	SelectedDate *string   `json:"selected_date"`
	CreatedAt    time.Time `json:"created_at"`
	URL          string    `json:"url"`
}

type MemberResultNoteItem struct {
	MemberResultItem
	Note *string `json:"note"`
}

type MemberResultsQuery struct {
	DateFrom *string
	DateTo   *string
}

type MemberResultsResponse struct {
	Member memberdto.MemberResponse `json:"member"`
	Items  []MemberResultNoteItem   `json:"items"`
}

type MemberResultsByNameResponse struct {
	Member memberdto.MemberResponse `json:"member"`
	Items  []MemberResultItem       `json:"items"`
}
