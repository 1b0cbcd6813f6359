package repository

import (
	"context"
	"errors"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"gorm.io/gorm"
)

type BusinessGormRepository struct {
	db *gorm.DB
}

func NewBusinessGormRepository(db *gorm.DB) *BusinessGormRepository {
	return &BusinessGormRepository{db: db}
}

func (r *BusinessGormRepository) FindByID(ctx context.Context, id int64) (model.Business, error) {
	var b model.Business
	err := r.db.WithContext(ctx).First(&b, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Business{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Business{}, err
	}
	return b, nil
}

func (r *BusinessGormRepository) FindByOwnerUserID(ctx context.Context, userID int64) (model.Business, error) {
	var b model.Business
	err := r.db.WithContext(ctx).Where("owner_user_id = ?", userID).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Business{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Business{}, err
	}
	return b, nil
}

func (r *BusinessGormRepository) Create(ctx context.Context, b model.Business) (model.Business, error) {
	if err := r.db.WithContext(ctx).Create(&b).Error; err != nil {
		//1ユーザー1店舗のunique index違反
		if isUniqueViolation(err) || errors.Is(err, gorm.ErrDuplicatedKey) {
			return model.Business{}, repo.ErrConflict
		}
		return model.Business{}, err
	}
	return b, nil
}

func (r *BusinessGormRepository) UpdateStatus(ctx context.Context, id int64, status model.BusinessStatus) error {
	res := r.db.WithContext(ctx).Model(&model.Business{}).
		Where("id = ?", id).
		Update("status", status)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *BusinessGormRepository) List(ctx context.Context, page int, limit int) ([]model.Business, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Business{}).Count(&total).Error; err != nil {
		return []model.Business{}, 0, err
	}

	var items []model.Business
	offset := (page - 1) * limit
	err := r.db.WithContext(ctx).
		Order("id desc").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	if err != nil {
		return []model.Business{}, 0, err
	}

	return items, total, nil
}

func (r *BusinessGormRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Business{}).Count(&total).Error
	return total, err
}
