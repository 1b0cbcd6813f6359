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

func newAdminUsecaseWithMocks() (*usecase.AdminUsecase, *OrderRepoMock, *OrderItemRepoMock, *BusinessRepoMock, *UserRepoMock) {
	ordersRepo := new(OrderRepoMock)
	itemsRepo := new(OrderItemRepoMock)
	businessRepo := new(BusinessRepoMock)
	userRepo := new(UserRepoMock)
	uc := usecase.NewAdminUsecase(ordersRepo, itemsRepo, businessRepo, userRepo)
	return uc, ordersRepo, itemsRepo, businessRepo, userRepo
}

func TestAdminUpdateSellerStatus_InvalidEnum_Rejected(t *testing.T) {
	uc, _, _, businessRepo, _ := newAdminUsecaseWithMocks()

	// 注文statusと違ってこちらはenum検証あり
	err := uc.UpdateSellerStatus(context.Background(), 10, "banana")
	assertErrContains(t, err, "invalid status")

	businessRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminUpdateSellerStatus_Suspend(t *testing.T) {
	uc, _, _, businessRepo, _ := newAdminUsecaseWithMocks()

	businessRepo.On("UpdateStatus", mock.Anything, int64(10), model.BusinessStatusSuspended).Return(nil)

	err := uc.UpdateSellerStatus(context.Background(), 10, "suspended")
	assert.NoError(t, err)
	businessRepo.AssertExpectations(t)
}

func TestAdminUpdateSellerStatus_NotFound(t *testing.T) {
	uc, _, _, businessRepo, _ := newAdminUsecaseWithMocks()

	businessRepo.On("UpdateStatus", mock.Anything, int64(99), model.BusinessStatusActive).Return(repo.ErrNotFound)

	err := uc.UpdateSellerStatus(context.Background(), 99, "active")
	assertErrContains(t, err, "not found")
}

func TestAdminUpdateOrderStatus_ArbitraryStringAccepted(t *testing.T) {
	// admin側は所有チェックも値の検証もなし
	uc, ordersRepo, _, _, _ := newAdminUsecaseWithMocks()

	ordersRepo.On("UpdateStatus", mock.Anything, int64(5), model.OrderStatus("whatever")).Return(nil)

	err := uc.UpdateOrderStatus(context.Background(), 5, usecase.UpdateOrderStatusInput{Status: "whatever"})
	assert.NoError(t, err)
	ordersRepo.AssertExpectations(t)
}

func TestAdminUpdateOrderStatus_EmptyStatus_Rejected(t *testing.T) {
	uc, _, _, _, _ := newAdminUsecaseWithMocks()

	err := uc.UpdateOrderStatus(context.Background(), 5, usecase.UpdateOrderStatusInput{Status: ""})
	assertErrContains(t, err, "status required")
}

func TestAdminListOrders_LoadsItemsPerOrder(t *testing.T) {
	uc, ordersRepo, itemsRepo, _, _ := newAdminUsecaseWithMocks()

	f := repo.OrderListFilter{Page: 1, Limit: 20}
	ordersRepo.On("ListAdmin", mock.Anything, f).Return([]model.Order{
		{ID: 1}, {ID: 2},
	}, int64(2), nil)
	itemsRepo.On("ListByOrderID", mock.Anything, int64(1)).Return([]model.OrderItem{}, nil)
	itemsRepo.On("ListByOrderID", mock.Anything, int64(2)).Return([]model.OrderItem{}, nil)

	outs, total, err := uc.ListOrders(context.Background(), f)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, 2, len(outs))
}

func TestAdminListUsers_ClampsPaging(t *testing.T) {
	uc, _, _, _, userRepo := newAdminUsecaseWithMocks()

	userRepo.On("List", mock.Anything, 1, 50).Return([]model.User{}, int64(0), nil)

	out, err := uc.ListUsers(context.Background(), 0, 9999)
	assert.NoError(t, err)
	assert.Equal(t, 1, out.Page)
	assert.Equal(t, 50, out.Limit)
	userRepo.AssertExpectations(t)
}
