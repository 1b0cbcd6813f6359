package model

import "time"

type BusinessStatus string

const (
	BusinessStatusActive    BusinessStatus = "active"
	BusinessStatusSuspended BusinessStatus = "suspended"
)

// 出店者のストアフロント。1ユーザーにつき最大1つ。
// 注文は必ず1つのBusinessに属する（分割の単位）。
type Business struct {
	ID          int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	OwnerUserID int64          `gorm:"not null;uniqueIndex" json:"owner_user_id"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Status      BusinessStatus `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`
	CreatedAt   time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
