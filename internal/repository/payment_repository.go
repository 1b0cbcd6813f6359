package repository

import (
	"context"

	"marketplace/internal/domain/model"
)

type PaymentRepository interface {
	Create(ctx context.Context, p model.Payment) (int64, error)
	FindByOrderID(ctx context.Context, orderID int64) (model.Payment, error)
}
