package model

import "time"

// 配送状況の追記専用ログ。表示は新しい順。
type DeliveryUpdate struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   int64     `gorm:"not null;index" json:"order_id"`
	Status    string    `gorm:"type:varchar(50);not null" json:"status"`
	Location  string    `gorm:"type:varchar(255)" json:"location"`
	Note      string    `gorm:"type:text" json:"note"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime;index" json:"created_at"`
}
