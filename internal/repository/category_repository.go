package repository

import (
	"context"

	"marketplace/internal/domain/model"
)

type CategoryRepository interface {
	List(ctx context.Context) ([]model.Category, error)
	FindByID(ctx context.Context, id int64) (model.Category, error)
	Create(ctx context.Context, c model.Category) (model.Category, error)
	Update(ctx context.Context, c model.Category) error
	Delete(ctx context.Context, id int64) error

	//削除前ガード用：子カテゴリの数
	CountChildren(ctx context.Context, parentID int64) (int64, error)
}
