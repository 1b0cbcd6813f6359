package repository

import (
	"context"
	"time"

	"marketplace/internal/domain/model"
)

// 注文一覧の絞り込み（seller/adminで共用）
// From/To は日付指定（その日の0時）。To 側は指定日の全体を含める。
type OrderListFilter struct {
	Page   int
	Limit  int
	Status string
	UserID *int64
	From   *time.Time
	To     *time.Time
}

// created_at の排他上限。To の翌日0時を返す。
func (f OrderListFilter) CreatedBefore() *time.Time {
	if f.To == nil {
		return nil
	}
	t := f.To.Add(24 * time.Hour)
	return &t
}

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	Create(ctx context.Context, order model.Order) (int64, error)

	//遷移の正当性チェックはしない
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error

	ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.Order, int64, error)
	ListByBusinessID(ctx context.Context, businessID int64, f OrderListFilter) ([]model.Order, int64, error)
	ListAdmin(ctx context.Context, f OrderListFilter) ([]model.Order, int64, error)
}
