package model

import "time"

// カタログ用カテゴリ（自己参照の階層）。
// 子カテゴリまたは参照商品が残っている間は削除できない（アプリ層で検査）。
type Category struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	ParentID  *int64    `gorm:"index" json:"parent_id"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
