package repository

import (
	"context"

	"marketplace/internal/domain/model"
)

type BusinessRepository interface {
	FindByID(ctx context.Context, id int64) (model.Business, error)
	FindByOwnerUserID(ctx context.Context, userID int64) (model.Business, error)

	//同じユーザーの2店舗目はErrConflict
	Create(ctx context.Context, b model.Business) (model.Business, error)

	UpdateStatus(ctx context.Context, id int64, status model.BusinessStatus) error
	List(ctx context.Context, page int, limit int) ([]model.Business, int64, error)
	Count(ctx context.Context) (int64, error)
}
