package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

type SellerOrderUsecase struct {
	orders     repo.OrderRepository
	items      repo.OrderItemRepository
	businesses repo.BusinessRepository
	delivery   repo.DeliveryUpdateRepository
}

func NewSellerOrderUsecase(
	orders repo.OrderRepository,
	items repo.OrderItemRepository,
	businesses repo.BusinessRepository,
	delivery repo.DeliveryUpdateRepository,
) *SellerOrderUsecase {
	return &SellerOrderUsecase{
		orders:     orders,
		items:      items,
		businesses: businesses,
		delivery:   delivery,
	}
}

type UpdateOrderStatusInput struct {
	Status string
}

type AddDeliveryUpdateInput struct {
	Status   string
	Location string
	Note     string
}

// 操作ユーザーの店舗を引き、注文がその店舗のものか確認する。
// 店舗を持っていない・他店舗の注文なら403。
func (u *SellerOrderUsecase) ownedOrder(ctx context.Context, actorUserID int64, orderID int64) (model.Order, error) {
	o, err := u.orders.FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		return model.Order{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	b, err := u.businesses.FindByOwnerUserID(ctx, actorUserID)
	if err == repo.ErrNotFound {
		return model.Order{}, NewHTTPError(http.StatusForbidden, "forbidden")
	}
	if err != nil {
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if o.BusinessID != b.ID {
		return model.Order{}, NewHTTPError(http.StatusForbidden, "forbidden")
	}

	return o, nil
}

// 自分の店舗の注文一覧
func (u *SellerOrderUsecase) ListOrders(ctx context.Context, actorUserID int64, f repo.OrderListFilter) ([]OrderOutput, int64, error) {
	if actorUserID <= 0 {
		return []OrderOutput{}, 0, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	b, err := u.businesses.FindByOwnerUserID(ctx, actorUserID)
	if err == repo.ErrNotFound {
		return []OrderOutput{}, 0, NewHTTPError(http.StatusForbidden, "forbidden")
	}
	if err != nil {
		return []OrderOutput{}, 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	orders, total, err := u.orders.ListByBusinessID(ctx, b.ID, f)
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

// 注文statusの更新（seller側）。
// 所有チェックだけを行い、遷移の正当性は検証しない。
// completedからpendingへの逆行もそのまま通る。
func (u *SellerOrderUsecase) UpdateStatus(ctx context.Context, actorUserID int64, orderID int64, in UpdateOrderStatusInput) error {
	if actorUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	newStatus := strings.TrimSpace(in.Status)
	if newStatus == "" {
		return NewHTTPError(http.StatusBadRequest, "status required")
	}

	if _, err := u.ownedOrder(ctx, actorUserID, orderID); err != nil {
		return err
	}

	if err := u.orders.UpdateStatus(ctx, orderID, model.OrderStatus(newStatus)); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// 配送状況の追記。削除・訂正はできない（追記専用ログ）。
func (u *SellerOrderUsecase) AddDeliveryUpdate(ctx context.Context, actorUserID int64, orderID int64, in AddDeliveryUpdateInput) (model.DeliveryUpdate, error) {
	if actorUserID <= 0 {
		return model.DeliveryUpdate{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return model.DeliveryUpdate{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if strings.TrimSpace(in.Status) == "" {
		return model.DeliveryUpdate{}, NewHTTPError(http.StatusBadRequest, "status required")
	}

	if _, err := u.ownedOrder(ctx, actorUserID, orderID); err != nil {
		return model.DeliveryUpdate{}, err
	}

	d := model.DeliveryUpdate{
		OrderID:   orderID,
		Status:    strings.TrimSpace(in.Status),
		Location:  strings.TrimSpace(in.Location),
		Note:      strings.TrimSpace(in.Note),
		CreatedAt: time.Now(),
	}

	id, err := u.delivery.Create(ctx, d)
	if err != nil {
		return model.DeliveryUpdate{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	d.ID = id
	return d, nil
}
