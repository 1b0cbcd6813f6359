package usecase_test

import (
	"context"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"github.com/stretchr/testify/mock"
)

// =====================
// TxManager / TxRepos mocks
// =====================

// TxManagerMock は WithinTx に渡す repos を固定して unit テストを回す
type TxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	m.Called(ctx)
	return fn(m.Repos)
}

type TxReposMock struct {
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
	payments   repo.PaymentRepository
	products   repo.ProductRepository
}

func (r *TxReposMock) Orders() repo.OrderRepository         { return r.orders }
func (r *TxReposMock) OrderItems() repo.OrderItemRepository { return r.orderItems }
func (r *TxReposMock) Payments() repo.PaymentRepository     { return r.payments }
func (r *TxReposMock) Products() repo.ProductRepository     { return r.products }

// =====================
// Repository mocks
// =====================

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *OrderRepoMock) ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.Order, int64, error) {
	args := m.Called(ctx, userID, page, limit)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Get(1).(int64), args.Error(2)
}

func (m *OrderRepoMock) ListByBusinessID(ctx context.Context, businessID int64, f repo.OrderListFilter) ([]model.Order, int64, error) {
	args := m.Called(ctx, businessID, f)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Get(1).(int64), args.Error(2)
}

func (m *OrderRepoMock) ListAdmin(ctx context.Context, f repo.OrderListFilter) ([]model.Order, int64, error) {
	args := m.Called(ctx, f)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Get(1).(int64), args.Error(2)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

type PaymentRepoMock struct{ mock.Mock }

func (m *PaymentRepoMock) Create(ctx context.Context, p model.Payment) (int64, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(int64), args.Error(1)
}

func (m *PaymentRepoMock) FindByOrderID(ctx context.Context, orderID int64) (model.Payment, error) {
	panic("not used in these tests")
}

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) ListPublic(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	args := m.Called(ctx, q)
	products, _ := args.Get(0).([]model.Product)
	return products, args.Get(1).(int64), args.Error(2)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) FindPricingByIDs(ctx context.Context, ids []int64) ([]repo.ProductPricing, error) {
	args := m.Called(ctx, ids)
	rows, _ := args.Get(0).([]repo.ProductPricing)
	return rows, args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Product)
	return created, args.Error(1)
}

func (m *ProductRepoMock) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProductRepoMock) SoftDelete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ProductRepoMock) CountByCategoryID(ctx context.Context, categoryID int64) (int64, error) {
	args := m.Called(ctx, categoryID)
	return args.Get(0).(int64), args.Error(1)
}

type BusinessRepoMock struct{ mock.Mock }

func (m *BusinessRepoMock) FindByID(ctx context.Context, id int64) (model.Business, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(model.Business)
	return b, args.Error(1)
}

func (m *BusinessRepoMock) FindByOwnerUserID(ctx context.Context, userID int64) (model.Business, error) {
	args := m.Called(ctx, userID)
	b, _ := args.Get(0).(model.Business)
	return b, args.Error(1)
}

func (m *BusinessRepoMock) Create(ctx context.Context, b model.Business) (model.Business, error) {
	args := m.Called(ctx, b)
	created, _ := args.Get(0).(model.Business)
	return created, args.Error(1)
}

func (m *BusinessRepoMock) UpdateStatus(ctx context.Context, id int64, status model.BusinessStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *BusinessRepoMock) List(ctx context.Context, page int, limit int) ([]model.Business, int64, error) {
	args := m.Called(ctx, page, limit)
	bs, _ := args.Get(0).([]model.Business)
	return bs, args.Get(1).(int64), args.Error(2)
}

func (m *BusinessRepoMock) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) FindByID(ctx context.Context, id int64) (model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) Create(ctx context.Context, u model.User) (model.User, error) {
	args := m.Called(ctx, u)
	created, _ := args.Get(0).(model.User)
	return created, args.Error(1)
}

func (m *UserRepoMock) List(ctx context.Context, page int, limit int) ([]model.User, int64, error) {
	args := m.Called(ctx, page, limit)
	us, _ := args.Get(0).([]model.User)
	return us, args.Get(1).(int64), args.Error(2)
}

func (m *UserRepoMock) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type CategoryRepoMock struct{ mock.Mock }

func (m *CategoryRepoMock) List(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	cs, _ := args.Get(0).([]model.Category)
	return cs, args.Error(1)
}

func (m *CategoryRepoMock) FindByID(ctx context.Context, id int64) (model.Category, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(model.Category)
	return c, args.Error(1)
}

func (m *CategoryRepoMock) Create(ctx context.Context, c model.Category) (model.Category, error) {
	args := m.Called(ctx, c)
	created, _ := args.Get(0).(model.Category)
	return created, args.Error(1)
}

func (m *CategoryRepoMock) Update(ctx context.Context, c model.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *CategoryRepoMock) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *CategoryRepoMock) CountChildren(ctx context.Context, parentID int64) (int64, error) {
	args := m.Called(ctx, parentID)
	return args.Get(0).(int64), args.Error(1)
}

type DeliveryUpdateRepoMock struct{ mock.Mock }

func (m *DeliveryUpdateRepoMock) Create(ctx context.Context, d model.DeliveryUpdate) (int64, error) {
	args := m.Called(ctx, d)
	return args.Get(0).(int64), args.Error(1)
}

func (m *DeliveryUpdateRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.DeliveryUpdate, error) {
	args := m.Called(ctx, orderID)
	ds, _ := args.Get(0).([]model.DeliveryUpdate)
	return ds, args.Error(1)
}

type StatsRepoMock struct{ mock.Mock }

func (m *StatsRepoMock) TotalRevenue(ctx context.Context, businessID *int64) (int64, error) {
	args := m.Called(ctx, businessID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *StatsRepoMock) CountOrders(ctx context.Context, businessID *int64) (int64, error) {
	args := m.Called(ctx, businessID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *StatsRepoMock) CountOrdersByStatus(ctx context.Context, businessID *int64) ([]repo.StatusCount, error) {
	args := m.Called(ctx, businessID)
	cs, _ := args.Get(0).([]repo.StatusCount)
	return cs, args.Error(1)
}

func (m *StatsRepoMock) RevenueByDay(ctx context.Context, businessID *int64, days int) ([]repo.RevenuePoint, error) {
	args := m.Called(ctx, businessID, days)
	ps, _ := args.Get(0).([]repo.RevenuePoint)
	return ps, args.Error(1)
}

func (m *StatsRepoMock) RecentOrders(ctx context.Context, limit int) ([]model.Order, error) {
	args := m.Called(ctx, limit)
	os, _ := args.Get(0).([]model.Order)
	return os, args.Error(1)
}
