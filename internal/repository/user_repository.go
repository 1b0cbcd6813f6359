package repository

import (
	"context"

	"marketplace/internal/domain/model"
)

type UserRepository interface {
	FindByID(ctx context.Context, id int64) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)

	//email重複はErrConflictを返す
	Create(ctx context.Context, u model.User) (model.User, error)

	List(ctx context.Context, page int, limit int) ([]model.User, int64, error)
	Count(ctx context.Context) (int64, error)
}
