package dto

import (
	"time"

	"github.com/jaehwan-AI/coloring-web/internal/model"
)

type UpsertMemberRequest struct {
	Number   string   `json:"number" binding:"required"`
	Name     string   `json:"name" binding:"required"`
	Memo     *string  `json:"memo"`
	HeightCM *float64 `json:"height_cm"`
	WeightKG *float64 `json:"weight_kg"`
}

type MemberResponse struct {
	ID        uint      `json:"id"`
	Number    string    `json:"number"`
	Name      string    `json:"name"`
	Memo      *string   `json:"memo"`
	HeightCM  *float64  `json:"height_cm"`
	WeightKG  *float64  `json:"weight_kg"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewMemberResponse(m *model.Member) MemberResponse {
	return MemberResponse{
		ID:        m.ID,
		Number:    m.Number,
		Name:      m.Name,
		Memo:      m.Memo,
		HeightCM:  m.HeightCM,
		WeightKG:  m.WeightKG,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
