package usecase

import (
	"context"
	"net/http"
	"strings"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

type AdminUsecase struct {
	orders     repo.OrderRepository
	items      repo.OrderItemRepository
	businesses repo.BusinessRepository
	users      repo.UserRepository
}

func NewAdminUsecase(
	orders repo.OrderRepository,
	items repo.OrderItemRepository,
	businesses repo.BusinessRepository,
	users repo.UserRepository,
) *AdminUsecase {
	return &AdminUsecase{
		orders:     orders,
		items:      items,
		businesses: businesses,
		users:      users,
	}
}

type SellerListOutput struct {
	Items []model.Business `json:"items"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

type UserListOutput struct {
	Items []model.User `json:"items"`
	Total int64        `json:"total"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
}

// 出店者一覧
func (u *AdminUsecase) ListSellers(ctx context.Context, page int, limit int) (SellerListOutput, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 50
	}

	items, total, err := u.businesses.List(ctx, page, limit)
	if err != nil {
		return SellerListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return SellerListOutput{Items: items, Total: total, Page: page, Limit: limit}, nil
}

// 出店者のsubscription status切り替え。
// 注文statusと違ってこちらはactive/suspendedのenumとして検証する。
func (u *AdminUsecase) UpdateSellerStatus(ctx context.Context, businessID int64, status string) error {
	if businessID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	s := model.BusinessStatus(strings.TrimSpace(status))
	if s != model.BusinessStatusActive && s != model.BusinessStatusSuspended {
		return NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	err := u.businesses.UpdateStatus(ctx, businessID, s)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// 全注文の一覧（filter付き）
func (u *AdminUsecase) ListOrders(ctx context.Context, f repo.OrderListFilter) ([]OrderOutput, int64, error) {
	orders, total, err := u.orders.ListAdmin(ctx, f)
	if err != nil {
		return []OrderOutput{}, 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		items, err := u.items.ListByOrderID(ctx, o.ID)
		if err != nil {
			return []OrderOutput{}, 0, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		outs = append(outs, toOrderOutput(o, items))
	}
	return outs, total, nil
}

// 注文statusの更新（admin側）。所有チェックなし。
// 値の検証もしない。どんな文字列でもそのまま入る。
func (u *AdminUsecase) UpdateOrderStatus(ctx context.Context, orderID int64, in UpdateOrderStatusInput) error {
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	newStatus := strings.TrimSpace(in.Status)
	if newStatus == "" {
		return NewHTTPError(http.StatusBadRequest, "status required")
	}

	if err := u.orders.UpdateStatus(ctx, orderID, model.OrderStatus(newStatus)); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *AdminUsecase) ListUsers(ctx context.Context, page int, limit int) (UserListOutput, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 50
	}

	items, total, err := u.users.List(ctx, page, limit)
	if err != nil {
		return UserListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return UserListOutput{Items: items, Total: total, Page: page, Limit: limit}, nil
}
