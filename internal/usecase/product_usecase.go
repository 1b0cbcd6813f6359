package usecase

import (
	"context"
	"net/http"
	"strings"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

type ProductUsecase struct {
	products   repo.ProductRepository
	businesses repo.BusinessRepository
	categories repo.CategoryRepository
}

// DI
func NewProductUsecase(
	products repo.ProductRepository,
	businesses repo.BusinessRepository,
	categories repo.CategoryRepository,
) *ProductUsecase {
	return &ProductUsecase{
		products:   products,
		businesses: businesses,
		categories: categories,
	}
}

// GET /productsの入力DTO
type ListProductsInput struct {
	Page       int
	Limit      int
	Search     string
	CategoryID *int64
	BusinessID *int64
	MinPrice   *int64
	MaxPrice   *int64
}

type ProductListOutput struct {
	Items []model.Product `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

type ProductInput struct {
	Name        string
	Description string
	CategoryID  *int64
	Price       int64
	Stock       int64
	IsActive    bool

	//adminが他店舗の商品を作るときだけ使う
	BusinessID int64
}

func (u *ProductUsecase) ListPublicProducts(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	if in.Page < 1 {
		in.Page = 1
	}
	if in.Limit < 1 || in.Limit > 100 {
		in.Limit = 20
	}
	if len(in.Search) > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "search too long")
	}
	if in.MinPrice != nil && *in.MinPrice < 0 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "min_price must be >= 0")
	}
	if in.MaxPrice != nil && *in.MaxPrice < 0 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "max_price must be >= 0")
	}
	if in.MinPrice != nil && in.MaxPrice != nil && *in.MinPrice > *in.MaxPrice {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "min_price must be <= max_price")
	}

	items, total, err := u.products.ListPublic(ctx, repo.ProductListQuery{
		Page:       in.Page,
		Limit:      in.Limit,
		Search:     in.Search,
		CategoryID: in.CategoryID,
		BusinessID: in.BusinessID,
		MinPrice:   in.MinPrice,
		MaxPrice:   in.MaxPrice,
	})
	if err != nil {
		return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return ProductListOutput{
		Items: items,
		Total: total,
		Page:  in.Page,
		Limit: in.Limit,
	}, nil
}

func (u *ProductUsecase) GetProductDetail(ctx context.Context, id int64) (model.Product, error) {
	if id <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	p, err := u.products.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

// 商品の作成。sellerは自分の店舗にだけ作れる。
// adminはin.BusinessIDで店舗を指定する。
func (u *ProductUsecase) CreateProduct(ctx context.Context, actorUserID int64, actorRole model.Role, in ProductInput) (model.Product, error) {
	if err := validateProductInput(in); err != nil {
		return model.Product{}, err
	}

	businessID, err := u.resolveBusinessID(ctx, actorUserID, actorRole, in.BusinessID)
	if err != nil {
		return model.Product{}, err
	}

	if in.CategoryID != nil {
		if _, err := u.categories.FindByID(ctx, *in.CategoryID); err != nil {
			if err == repo.ErrNotFound {
				return model.Product{}, NewHTTPError(http.StatusBadRequest, "unknown category")
			}
			return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	created, err := u.products.Create(ctx, model.Product{
		BusinessID:  businessID,
		CategoryID:  in.CategoryID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		IsActive:    in.IsActive,
	})
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

func (u *ProductUsecase) UpdateProduct(ctx context.Context, actorUserID int64, actorRole model.Role, id int64, in ProductInput) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := validateProductInput(in); err != nil {
		return err
	}

	p, err := u.products.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.checkOwnership(ctx, actorUserID, actorRole, p.BusinessID); err != nil {
		return err
	}

	if in.CategoryID != nil {
		if _, err := u.categories.FindByID(ctx, *in.CategoryID); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusBadRequest, "unknown category")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	p.Name = strings.TrimSpace(in.Name)
	p.Description = in.Description
	p.CategoryID = in.CategoryID
	p.Price = in.Price
	p.Stock = in.Stock
	p.IsActive = in.IsActive

	if err := u.products.Update(ctx, p); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *ProductUsecase) DeleteProduct(ctx context.Context, actorUserID int64, actorRole model.Role, id int64) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	p, err := u.products.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.checkOwnership(ctx, actorUserID, actorRole, p.BusinessID); err != nil {
		return err
	}

	if err := u.products.SoftDelete(ctx, id); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// sellerなら自分の店舗、adminなら指定された店舗を返す
func (u *ProductUsecase) resolveBusinessID(ctx context.Context, actorUserID int64, actorRole model.Role, requested int64) (int64, error) {
	if actorRole.IsAdmin() {
		if requested <= 0 {
			return 0, NewHTTPError(http.StatusBadRequest, "business_id required")
		}
		if _, err := u.businesses.FindByID(ctx, requested); err != nil {
			if err == repo.ErrNotFound {
				return 0, NewHTTPError(http.StatusBadRequest, "unknown business")
			}
			return 0, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return requested, nil
	}

	b, err := u.businesses.FindByOwnerUserID(ctx, actorUserID)
	if err == repo.ErrNotFound {
		return 0, NewHTTPError(http.StatusForbidden, "forbidden")
	}
	if err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return b.ID, nil
}

// adminは無条件、sellerは自店舗の商品だけ
func (u *ProductUsecase) checkOwnership(ctx context.Context, actorUserID int64, actorRole model.Role, businessID int64) error {
	if actorRole.IsAdmin() {
		return nil
	}

	b, err := u.businesses.FindByOwnerUserID(ctx, actorUserID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusForbidden, "forbidden")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if b.ID != businessID {
		return NewHTTPError(http.StatusForbidden, "forbidden")
	}
	return nil
}

func validateProductInput(in ProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "name required")
	}
	if in.Price < 0 {
		return NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}
	if in.Stock < 0 {
		return NewHTTPError(http.StatusBadRequest, "stock must be >= 0")
	}
	return nil
}
