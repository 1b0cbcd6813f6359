package repository

import (
	"context"
	"errors"

	"marketplace/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 一意制約違反（email重複、storefront重複など）
var ErrConflict = errors.New("conflict")

// 公開カタログの一覧検索
type ProductListQuery struct {
	Page       int
	Limit      int
	Search     string
	CategoryID *int64
	BusinessID *int64
	MinPrice   *int64
	MaxPrice   *int64
}

// 注文確定時に参照する商品の確定情報。
// priceとbusiness_idはDBの値だけを信用する（クライアントのカート値は使わない）。
type ProductPricing struct {
	ProductID  int64
	BusinessID int64
	Name       string
	Price      int64
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	ListPublic(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)

	//存在しないIDが混ざっていたら呼び出し側で検出できるよう、
	//見つかった分だけ返す
	FindPricingByIDs(ctx context.Context, ids []int64) ([]ProductPricing, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	SoftDelete(ctx context.Context, id int64) error

	CountByCategoryID(ctx context.Context, categoryID int64) (int64, error)
}
