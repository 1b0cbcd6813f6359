package repository

import (
	"context"

	"marketplace/internal/domain/model"

	"gorm.io/gorm"
)

type DeliveryUpdateGormRepository struct {
	db *gorm.DB
}

func NewDeliveryUpdateGormRepository(db *gorm.DB) *DeliveryUpdateGormRepository {
	return &DeliveryUpdateGormRepository{db: db}
}

func (r *DeliveryUpdateGormRepository) Create(ctx context.Context, d model.DeliveryUpdate) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&d).Error; err != nil {
		return 0, err
	}
	return d.ID, nil
}

// 新しい順
func (r *DeliveryUpdateGormRepository) ListByOrderID(ctx context.Context, orderID int64) ([]model.DeliveryUpdate, error) {
	var items []model.DeliveryUpdate
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at desc").
		Order("id desc").
		Find(&items).Error
	if err != nil {
		return []model.DeliveryUpdate{}, err
	}
	return items, nil
}
