package repository

import (
	"context"
	"time"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"gorm.io/gorm"
)

type StatsGormRepository struct {
	db *gorm.DB
}

func NewStatsGormRepository(db *gorm.DB) *StatsGormRepository {
	return &StatsGormRepository{db: db}
}

// 売上はcancelled以外の注文の合計。行が無ければ0。
func (r *StatsGormRepository) TotalRevenue(ctx context.Context, businessID *int64) (int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("status <> ?", model.OrderStatusCancelled)
	if businessID != nil {
		q = q.Where("business_id = ?", *businessID)
	}

	var total int64
	err := q.Select("COALESCE(SUM(total_amount), 0)").Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (r *StatsGormRepository) CountOrders(ctx context.Context, businessID *int64) (int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Order{})
	if businessID != nil {
		q = q.Where("business_id = ?", *businessID)
	}

	var total int64
	err := q.Count(&total).Error
	return total, err
}

func (r *StatsGormRepository) CountOrdersByStatus(ctx context.Context, businessID *int64) ([]repo.StatusCount, error) {
	q := r.db.WithContext(ctx).Model(&model.Order{}).
		Select("status, COUNT(*) AS count").
		Group("status")
	if businessID != nil {
		q = q.Where("business_id = ?", *businessID)
	}

	var rows []repo.StatusCount
	if err := q.Scan(&rows).Error; err != nil {
		return []repo.StatusCount{}, err
	}
	return rows, nil
}

// 直近days日の日別売上。注文が無い日は行ごと出ない（埋めるのは表示側）。
func (r *StatsGormRepository) RevenueByDay(ctx context.Context, businessID *int64, days int) ([]repo.RevenuePoint, error) {
	if days <= 0 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days)

	q := r.db.WithContext(ctx).Model(&model.Order{}).
		Select("TO_CHAR(created_at, 'YYYY-MM-DD') AS day, COALESCE(SUM(total_amount), 0) AS revenue").
		Where("created_at >= ?", since).
		Where("status <> ?", model.OrderStatusCancelled).
		Group("day").
		Order("day asc")
	if businessID != nil {
		q = q.Where("business_id = ?", *businessID)
	}

	var rows []repo.RevenuePoint
	if err := q.Scan(&rows).Error; err != nil {
		return []repo.RevenuePoint{}, err
	}
	return rows, nil
}

func (r *StatsGormRepository) RecentOrders(ctx context.Context, limit int) ([]model.Order, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	var items []model.Order
	err := r.db.WithContext(ctx).
		Order("id desc").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return []model.Order{}, err
	}
	return items, nil
}
