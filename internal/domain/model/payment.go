package model

import "time"

type PaymentStatus string

const (
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// 支払い記録。Orderと1:1（アプリ層の作りによる保証、DB制約ではない）。
// 決済ゲートウェイ連携はなく、作成時点でcompletedになる。
type Payment struct {
	ID          int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID     int64         `gorm:"not null;index" json:"order_id"`
	Method      string        `gorm:"type:varchar(50);not null" json:"method"`
	Status      PaymentStatus `gorm:"type:varchar(20);not null" json:"status"`
	ProviderRef string        `gorm:"type:varchar(64);not null" json:"provider_ref"`
	Amount      int64         `gorm:"not null" json:"amount"`
	CreatedAt   time.Time     `gorm:"not null;autoCreateTime" json:"created_at"`
}
