package repository

import (
	"context"

	"marketplace/internal/domain/model"
)

// 日別売上（チャート用）。dayは"2006-01-02"形式。
type RevenuePoint struct {
	Day     string `json:"day"`
	Revenue int64  `json:"revenue"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// ダッシュボード用の読み取り専用集計。
// 対象行が無ければゼロ/空を返す（エラーにしない）。
type StatsRepository interface {
	//businessIDがnilなら全体（admin）、指定ありならその店舗のみ
	TotalRevenue(ctx context.Context, businessID *int64) (int64, error)
	CountOrders(ctx context.Context, businessID *int64) (int64, error)
	CountOrdersByStatus(ctx context.Context, businessID *int64) ([]StatusCount, error)

	//直近days日の日別売上
	RevenueByDay(ctx context.Context, businessID *int64, days int) ([]RevenuePoint, error)

	RecentOrders(ctx context.Context, limit int) ([]model.Order, error)
}
