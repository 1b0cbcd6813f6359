package usecase

import (
	"context"
	"net/http"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

// ダッシュボード集計。毎回SQLで集計し直す（キャッシュは持たない）。
type StatsUsecase struct {
	stats      repo.StatsRepository
	businesses repo.BusinessRepository
	users      repo.UserRepository
}

func NewStatsUsecase(
	stats repo.StatsRepository,
	businesses repo.BusinessRepository,
	users repo.UserRepository,
) *StatsUsecase {
	return &StatsUsecase{stats: stats, businesses: businesses, users: users}
}

type AdminStatsOutput struct {
	TotalRevenue  int64               `json:"total_revenue"`
	OrderCount    int64               `json:"order_count"`
	UserCount     int64               `json:"user_count"`
	BusinessCount int64               `json:"business_count"`
	RevenueChart  []repo.RevenuePoint `json:"revenue_chart"`
	RecentOrders  []model.Order       `json:"recent_orders"`
}

type SellerStatsOutput struct {
	TotalRevenue int64               `json:"total_revenue"`
	OrderCount   int64               `json:"order_count"`
	StatusCounts []repo.StatusCount  `json:"status_counts"`
	RevenueChart []repo.RevenuePoint `json:"revenue_chart"`
}

const revenueChartDays = 30

func (u *StatsUsecase) AdminStats(ctx context.Context) (AdminStatsOutput, error) {
	revenue, err := u.stats.TotalRevenue(ctx, nil)
	if err != nil {
		return AdminStatsOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	orderCount, err := u.stats.CountOrders(ctx, nil)
	if err != nil {
		return AdminStatsOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	userCount, err := u.users.Count(ctx)
	if err != nil {
		return AdminStatsOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	businessCount, err := u.businesses.Count(ctx)
	if err != nil {
		return AdminStatsOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	chart, err := u.stats.RevenueByDay(ctx, nil, revenueChartDays)
	if err != nil {
		return AdminStatsOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	recent, err := u.stats.RecentOrders(ctx, 10)
	if err != nil {
		return AdminStatsOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return AdminStatsOutput{
		TotalRevenue:  revenue,
		OrderCount:    orderCount,
		UserCount:     userCount,
		BusinessCount: businessCount,
		RevenueChart:  chart,
		RecentOrders:  recent,
	}, nil
}

// 自分の店舗のダッシュボード
func (u *StatsUsecase) SellerStats(ctx context.Context, actorUserID int64) (SellerStatsOutput, error) {
	if actorUserID <= 0 {
		return SellerStatsOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	b, err := u.businesses.FindByOwnerUserID(ctx, actorUserID)
	if err == repo.ErrNotFound {
		return SellerStatsOutput{}, NewHTTPError(http.StatusForbidden, "forbidden")
	}
	if err != nil {
		return SellerStatsOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	revenue, err := u.stats.TotalRevenue(ctx, &b.ID)
	if err != nil {
		return SellerStatsOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	orderCount, err := u.stats.CountOrders(ctx, &b.ID)
	if err != nil {
		return SellerStatsOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	statusCounts, err := u.stats.CountOrdersByStatus(ctx, &b.ID)
	if err != nil {
		return SellerStatsOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	chart, err := u.stats.RevenueByDay(ctx, &b.ID, revenueChartDays)
	if err != nil {
		return SellerStatsOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return SellerStatsOutput{
		TotalRevenue: revenue,
		OrderCount:   orderCount,
		StatusCounts: statusCounts,
		RevenueChart: chart,
	}, nil
}
