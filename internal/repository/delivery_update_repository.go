package repository

import (
	"context"

	"marketplace/internal/domain/model"
)

type DeliveryUpdateRepository interface {
	Create(ctx context.Context, d model.DeliveryUpdate) (int64, error)

	//新しい順で返す
	ListByOrderID(ctx context.Context, orderID int64) ([]model.DeliveryUpdate, error)
}
