package model

import "time"

// Member 会员，number 为业务唯一键
type Member struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Number    string    `json:"number" gorm:"size:64;not null;uniqueIndex"`
	Name      string    `json:"name" gorm:"size:255;not null;index"`
	Memo      *string   `json:"memo"`
	HeightCM  *float64  `json:"height_cm" gorm:"column:height_cm"`
	WeightKG  *float64  `json:"weight_kg" gorm:"column:weight_kg"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"index"`
}
