package repository

import (
	"context"
	"errors"
	"strings"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// 公開商品のみを、検索/カテゴリ/価格帯/店舗/ページング付きで返す。
// suspendedの店舗の商品は出さない。
func (r *ProductGormRepository) ListPublic(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.Product{}).
		Joins("JOIN businesses ON businesses.id = products.business_id").
		Where("products.is_active = ?", true).
		Where("businesses.status = ?", model.BusinessStatusActive)

	if strings.TrimSpace(q.Search) != "" {
		like := "%" + strings.TrimSpace(q.Search) + "%"
		tx = tx.Where("products.name ILIKE ?", like)
	}

	if q.CategoryID != nil {
		tx = tx.Where("products.category_id = ?", *q.CategoryID)
	}
	if q.BusinessID != nil {
		tx = tx.Where("products.business_id = ?", *q.BusinessID)
	}

	//価格帯
	if q.MinPrice != nil {
		tx = tx.Where("products.price >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		tx = tx.Where("products.price <= ?", *q.MaxPrice)
	}

	if err := tx.Count(&total).Error; err != nil {
		return []model.Product{}, 0, err
	}

	offset := (q.Page - 1) * q.Limit
	if err := tx.Order("products.created_at desc").Order("products.id desc").
		Offset(offset).Limit(q.Limit).Find(&products).Error; err != nil {
		return []model.Product{}, 0, err
	}

	return products, total, nil
}

func (r *ProductGormRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// 注文確定時に価格と所属店舗をDBから引き直す。
// ListPublicと同じくsuspendedの店舗の商品は返さない。
// 見つかった行だけ返す。件数の照合は呼び出し側の責務。
func (r *ProductGormRepository) FindPricingByIDs(ctx context.Context, ids []int64) ([]repo.ProductPricing, error) {
	if len(ids) == 0 {
		return []repo.ProductPricing{}, nil
	}

	var rows []repo.ProductPricing
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Select("products.id AS product_id, products.business_id, products.name, products.price").
		Joins("JOIN businesses ON businesses.id = products.business_id").
		Where("products.id IN ? AND products.is_active = ?", ids, true).
		Where("businesses.status = ?", model.BusinessStatusActive).
		Scan(&rows).Error
	if err != nil {
		return []repo.ProductPricing{}, err
	}

	return rows, nil
}

func (r *ProductGormRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.Product{}, err
	}
	return p, nil
}

func (r *ProductGormRepository) Update(ctx context.Context, p model.Product) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"name":        p.Name,
		"description": p.Description,
		"category_id": p.CategoryID,
		"price":       p.Price,
		"stock":       p.Stock,
		"is_active":   p.IsActive,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ProductGormRepository) SoftDelete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// カテゴリ削除ガード用。soft deleteされた商品は数えない。
func (r *ProductGormRepository) CountByCategoryID(ctx context.Context, categoryID int64) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("category_id = ?", categoryID).
		Count(&total).Error
	return total, err
}
