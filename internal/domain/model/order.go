package model

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// 注文。必ず1つのBusinessにのみ属する。
// 複数出店者のカートはBusinessごとに分割して複数Orderになる。
// total_amountは作成時にサーバー側で確定した金額（クライアント送信値は使わない）。
type Order struct {
	ID              int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          int64       `gorm:"not null;index" json:"user_id"`
	BusinessID      int64       `gorm:"not null;index" json:"business_id"`
	Status          OrderStatus `gorm:"type:varchar(30);not null;index" json:"status"`
	TotalAmount     int64       `gorm:"not null" json:"total_amount"`
	PaymentMethod   string      `gorm:"type:varchar(50);not null" json:"payment_method"`
	ShippingName    string      `gorm:"type:varchar(255);not null" json:"shipping_name"`
	ShippingPhone   string      `gorm:"type:varchar(30)" json:"shipping_phone"`
	ShippingAddress string      `gorm:"type:text;not null" json:"shipping_address"`
	CreatedAt       time.Time   `gorm:"not null;autoCreateTime;index" json:"created_at"`
	UpdatedAt       time.Time   `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
