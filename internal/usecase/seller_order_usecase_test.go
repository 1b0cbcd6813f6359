package usecase_test

import (
	"context"
	"testing"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
	"marketplace/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newSellerOrderUsecaseWithMocks() (*usecase.SellerOrderUsecase, *OrderRepoMock, *OrderItemRepoMock, *BusinessRepoMock, *DeliveryUpdateRepoMock) {
	ordersRepo := new(OrderRepoMock)
	itemsRepo := new(OrderItemRepoMock)
	businessRepo := new(BusinessRepoMock)
	deliveryRepo := new(DeliveryUpdateRepoMock)
	uc := usecase.NewSellerOrderUsecase(ordersRepo, itemsRepo, businessRepo, deliveryRepo)
	return uc, ordersRepo, itemsRepo, businessRepo, deliveryRepo
}

func TestSellerUpdateStatus_NoBusiness_Forbidden(t *testing.T) {
	uc, ordersRepo, _, businessRepo, _ := newSellerOrderUsecaseWithMocks()

	ordersRepo.On("FindByID", mock.Anything, int64(5)).Return(model.Order{ID: 5, BusinessID: 10}, nil)
	businessRepo.On("FindByOwnerUserID", mock.Anything, int64(1)).Return(model.Business{}, repo.ErrNotFound)

	err := uc.UpdateStatus(context.Background(), 1, 5, usecase.UpdateOrderStatusInput{Status: "shipped"})
	assertErrContains(t, err, "forbidden")
}

func TestSellerUpdateStatus_OtherBusinessOrder_Forbidden(t *testing.T) {
	uc, ordersRepo, _, businessRepo, _ := newSellerOrderUsecaseWithMocks()

	ordersRepo.On("FindByID", mock.Anything, int64(5)).Return(model.Order{ID: 5, BusinessID: 20}, nil)
	businessRepo.On("FindByOwnerUserID", mock.Anything, int64(1)).Return(model.Business{ID: 10, OwnerUserID: 1}, nil)

	err := uc.UpdateStatus(context.Background(), 1, 5, usecase.UpdateOrderStatusInput{Status: "shipped"})
	assertErrContains(t, err, "forbidden")

	ordersRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestSellerUpdateStatus_OwnOrder_Succeeds(t *testing.T) {
	uc, ordersRepo, _, businessRepo, _ := newSellerOrderUsecaseWithMocks()

	ordersRepo.On("FindByID", mock.Anything, int64(5)).Return(model.Order{ID: 5, BusinessID: 10}, nil)
	businessRepo.On("FindByOwnerUserID", mock.Anything, int64(1)).Return(model.Business{ID: 10, OwnerUserID: 1}, nil)
	ordersRepo.On("UpdateStatus", mock.Anything, int64(5), model.OrderStatus("shipped")).Return(nil)

	err := uc.UpdateStatus(context.Background(), 1, 5, usecase.UpdateOrderStatusInput{Status: "shipped"})
	assert.NoError(t, err)
	ordersRepo.AssertExpectations(t)
}

func TestSellerUpdateStatus_ArbitraryStringAccepted(t *testing.T) {
	// 遷移の正当性チェックは行わない。completed済みでも任意の文字列で上書きできる。
	uc, ordersRepo, _, businessRepo, _ := newSellerOrderUsecaseWithMocks()

	ordersRepo.On("FindByID", mock.Anything, int64(5)).Return(model.Order{
		ID: 5, BusinessID: 10, Status: model.OrderStatusCompleted,
	}, nil)
	businessRepo.On("FindByOwnerUserID", mock.Anything, int64(1)).Return(model.Business{ID: 10, OwnerUserID: 1}, nil)
	ordersRepo.On("UpdateStatus", mock.Anything, int64(5), model.OrderStatus("banana")).Return(nil)

	err := uc.UpdateStatus(context.Background(), 1, 5, usecase.UpdateOrderStatusInput{Status: "banana"})
	assert.NoError(t, err)
	ordersRepo.AssertExpectations(t)
}

func TestSellerUpdateStatus_EmptyStatus_Rejected(t *testing.T) {
	uc, _, _, _, _ := newSellerOrderUsecaseWithMocks()

	err := uc.UpdateStatus(context.Background(), 1, 5, usecase.UpdateOrderStatusInput{Status: "  "})
	assertErrContains(t, err, "status required")
}

func TestSellerListOrders_NoBusiness_Forbidden(t *testing.T) {
	uc, _, _, businessRepo, _ := newSellerOrderUsecaseWithMocks()

	businessRepo.On("FindByOwnerUserID", mock.Anything, int64(1)).Return(model.Business{}, repo.ErrNotFound)

	_, _, err := uc.ListOrders(context.Background(), 1, repo.OrderListFilter{Page: 1, Limit: 20})
	assertErrContains(t, err, "forbidden")
}

func TestSellerListOrders_ScopedToOwnBusiness(t *testing.T) {
	uc, ordersRepo, itemsRepo, businessRepo, _ := newSellerOrderUsecaseWithMocks()

	f := repo.OrderListFilter{Page: 1, Limit: 20}

	businessRepo.On("FindByOwnerUserID", mock.Anything, int64(1)).Return(model.Business{ID: 10, OwnerUserID: 1}, nil)
	ordersRepo.On("ListByBusinessID", mock.Anything, int64(10), f).Return([]model.Order{
		{ID: 5, BusinessID: 10},
	}, int64(1), nil)
	itemsRepo.On("ListByOrderID", mock.Anything, int64(5)).Return([]model.OrderItem{}, nil)

	outs, total, err := uc.ListOrders(context.Background(), 1, f)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, 1, len(outs))

	ordersRepo.AssertExpectations(t)
}

func TestSellerAddDeliveryUpdate_AppendsEntry(t *testing.T) {
	uc, ordersRepo, _, businessRepo, deliveryRepo := newSellerOrderUsecaseWithMocks()

	ordersRepo.On("FindByID", mock.Anything, int64(5)).Return(model.Order{ID: 5, BusinessID: 10}, nil)
	businessRepo.On("FindByOwnerUserID", mock.Anything, int64(1)).Return(model.Business{ID: 10, OwnerUserID: 1}, nil)
	deliveryRepo.On("Create", mock.Anything, mock.MatchedBy(func(d model.DeliveryUpdate) bool {
		return d.OrderID == 5 && d.Status == "in_transit" && d.Location == "東京"
	})).Return(int64(33), nil)

	out, err := uc.AddDeliveryUpdate(context.Background(), 1, 5, usecase.AddDeliveryUpdateInput{
		Status:   "in_transit",
		Location: "東京",
		Note:     "発送済み",
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(33), out.ID)
	deliveryRepo.AssertExpectations(t)
}
