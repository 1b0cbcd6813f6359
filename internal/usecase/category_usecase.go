package usecase

import (
	"context"
	"net/http"
	"strings"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

type CategoryUsecase struct {
	categories repo.CategoryRepository
	products   repo.ProductRepository
}

func NewCategoryUsecase(categories repo.CategoryRepository, products repo.ProductRepository) *CategoryUsecase {
	return &CategoryUsecase{categories: categories, products: products}
}

type CategoryInput struct {
	Name     string
	ParentID *int64
}

func (u *CategoryUsecase) List(ctx context.Context) ([]model.Category, error) {
	items, err := u.categories.List(ctx)
	if err != nil {
		return []model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

func (u *CategoryUsecase) Create(ctx context.Context, in CategoryInput) (model.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "name required")
	}

	//親を指定するなら実在チェック
	if in.ParentID != nil {
		if _, err := u.categories.FindByID(ctx, *in.ParentID); err != nil {
			if err == repo.ErrNotFound {
				return model.Category{}, NewHTTPError(http.StatusBadRequest, "unknown parent")
			}
			return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	created, err := u.categories.Create(ctx, model.Category{
		Name:     name,
		ParentID: in.ParentID,
	})
	if err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

func (u *CategoryUsecase) Update(ctx context.Context, id int64, in CategoryInput) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return NewHTTPError(http.StatusBadRequest, "name required")
	}
	if in.ParentID != nil && *in.ParentID == id {
		return NewHTTPError(http.StatusBadRequest, "category cannot be its own parent")
	}

	if in.ParentID != nil {
		if _, err := u.categories.FindByID(ctx, *in.ParentID); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusBadRequest, "unknown parent")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	err := u.categories.Update(ctx, model.Category{ID: id, Name: name, ParentID: in.ParentID})
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// 削除。子カテゴリまたは参照している商品が残っている場合は400で拒否し、
// 何も変更しない（DELETE前のアプリ層ガード）。
func (u *CategoryUsecase) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if _, err := u.categories.FindByID(ctx, id); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	children, err := u.categories.CountChildren(ctx, id)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if children > 0 {
		return NewHTTPError(http.StatusBadRequest, "category has child categories")
	}

	referencing, err := u.products.CountByCategoryID(ctx, id)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if referencing > 0 {
		return NewHTTPError(http.StatusBadRequest, "category has products")
	}

	if err := u.categories.Delete(ctx, id); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
