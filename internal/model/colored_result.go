package model

import "time"

// DateLayout selected_date 的存储格式，按字符串比较即按日期比较
const DateLayout = "2006-01-02"

// ColoredResult 会员保存的涂色结果
// Filename 为相对于上传根目录的路径，如 members/12/colored_xxx.png
type ColoredResult struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	MemberID     uint      `json:"member_id" gorm:"not null;index"`
	Filename     string    `json:"filename" gorm:"size:512;not null"`
	Mime         string    `json:"mime" gorm:"size:64;not null;default:image/png"`
	OriginalID   *uint     `json:"original_id" gorm:"index"`
	SelectedDate *string   `json:"selected_date" gorm:"size:10;index"`
	Note         *string   `json:"note"`
	CreatedAt    time.Time `json:"created_at"`
}
