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

func newProductUsecaseWithMocks() (*usecase.ProductUsecase, *ProductRepoMock, *BusinessRepoMock, *CategoryRepoMock) {
	productRepo := new(ProductRepoMock)
	businessRepo := new(BusinessRepoMock)
	categoryRepo := new(CategoryRepoMock)
	uc := usecase.NewProductUsecase(productRepo, businessRepo, categoryRepo)
	return uc, productRepo, businessRepo, categoryRepo
}

func validProductInput() usecase.ProductInput {
	return usecase.ProductInput{
		Name:     "りんご",
		Price:    100,
		Stock:    10,
		IsActive: true,
	}
}

func TestListPublicProducts_ClampsPaging(t *testing.T) {
	uc, productRepo, _, _ := newProductUsecaseWithMocks()

	productRepo.On("ListPublic", mock.Anything, mock.MatchedBy(func(q repo.ProductListQuery) bool {
		return q.Page == 1 && q.Limit == 20
	})).Return([]model.Product{}, int64(0), nil)

	out, err := uc.ListPublicProducts(context.Background(), usecase.ListProductsInput{Page: -3, Limit: 9999})
	assert.NoError(t, err)
	assert.Equal(t, 1, out.Page)
	assert.Equal(t, 20, out.Limit)
	productRepo.AssertExpectations(t)
}

func TestListPublicProducts_MinGreaterThanMax_Rejected(t *testing.T) {
	uc, _, _, _ := newProductUsecaseWithMocks()

	minP := int64(500)
	maxP := int64(100)
	_, err := uc.ListPublicProducts(context.Background(), usecase.ListProductsInput{
		Page: 1, Limit: 20, MinPrice: &minP, MaxPrice: &maxP,
	})
	assertErrContains(t, err, "min_price must be <= max_price")
}

func TestCreateProduct_SellerUsesOwnBusiness(t *testing.T) {
	uc, productRepo, businessRepo, _ := newProductUsecaseWithMocks()

	businessRepo.On("FindByOwnerUserID", mock.Anything, int64(1)).Return(model.Business{ID: 10, OwnerUserID: 1}, nil)
	productRepo.On("Create", mock.Anything, mock.MatchedBy(func(p model.Product) bool {
		return p.BusinessID == 10 && p.Name == "りんご"
	})).Return(model.Product{ID: 7, BusinessID: 10, Name: "りんご"}, nil)

	out, err := uc.CreateProduct(context.Background(), 1, model.RoleBusinessOwner, validProductInput())
	assert.NoError(t, err)
	assert.Equal(t, int64(7), out.ID)
	productRepo.AssertExpectations(t)
}

func TestCreateProduct_SellerWithoutBusiness_Forbidden(t *testing.T) {
	uc, _, businessRepo, _ := newProductUsecaseWithMocks()

	businessRepo.On("FindByOwnerUserID", mock.Anything, int64(1)).Return(model.Business{}, repo.ErrNotFound)

	_, err := uc.CreateProduct(context.Background(), 1, model.RoleBusinessOwner, validProductInput())
	assertErrContains(t, err, "forbidden")
}

func TestCreateProduct_AdminRequiresBusinessID(t *testing.T) {
	uc, _, _, _ := newProductUsecaseWithMocks()

	_, err := uc.CreateProduct(context.Background(), 1, model.RoleAdmin, validProductInput())
	assertErrContains(t, err, "business_id required")
}

func TestCreateProduct_UnknownCategory_Rejected(t *testing.T) {
	uc, _, businessRepo, categoryRepo := newProductUsecaseWithMocks()

	businessRepo.On("FindByOwnerUserID", mock.Anything, int64(1)).Return(model.Business{ID: 10, OwnerUserID: 1}, nil)

	catID := int64(99)
	categoryRepo.On("FindByID", mock.Anything, catID).Return(model.Category{}, repo.ErrNotFound)

	in := validProductInput()
	in.CategoryID = &catID
	_, err := uc.CreateProduct(context.Background(), 1, model.RoleBusinessOwner, in)
	assertErrContains(t, err, "unknown category")
}

func TestUpdateProduct_OtherSellersProduct_Forbidden(t *testing.T) {
	uc, productRepo, businessRepo, _ := newProductUsecaseWithMocks()

	productRepo.On("FindByID", mock.Anything, int64(7)).Return(model.Product{ID: 7, BusinessID: 20}, nil)
	businessRepo.On("FindByOwnerUserID", mock.Anything, int64(1)).Return(model.Business{ID: 10, OwnerUserID: 1}, nil)

	err := uc.UpdateProduct(context.Background(), 1, model.RoleBusinessOwner, 7, validProductInput())
	assertErrContains(t, err, "forbidden")

	productRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateProduct_AdminBypassesOwnership(t *testing.T) {
	uc, productRepo, _, _ := newProductUsecaseWithMocks()

	productRepo.On("FindByID", mock.Anything, int64(7)).Return(model.Product{ID: 7, BusinessID: 20}, nil)
	productRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

	err := uc.UpdateProduct(context.Background(), 1, model.RoleAdmin, 7, validProductInput())
	assert.NoError(t, err)
	productRepo.AssertExpectations(t)
}

func TestDeleteProduct_SoftDeletesOwnProduct(t *testing.T) {
	uc, productRepo, businessRepo, _ := newProductUsecaseWithMocks()

	productRepo.On("FindByID", mock.Anything, int64(7)).Return(model.Product{ID: 7, BusinessID: 10}, nil)
	businessRepo.On("FindByOwnerUserID", mock.Anything, int64(1)).Return(model.Business{ID: 10, OwnerUserID: 1}, nil)
	productRepo.On("SoftDelete", mock.Anything, int64(7)).Return(nil)

	err := uc.DeleteProduct(context.Background(), 1, model.RoleBusinessOwner, 7)
	assert.NoError(t, err)
	productRepo.AssertExpectations(t)
}
