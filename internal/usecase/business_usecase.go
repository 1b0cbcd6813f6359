package usecase

import (
	"context"
	"net/http"
	"strings"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

type BusinessUsecase struct {
	businesses repo.BusinessRepository
}

func NewBusinessUsecase(businesses repo.BusinessRepository) *BusinessUsecase {
	return &BusinessUsecase{businesses: businesses}
}

type CreateBusinessInput struct {
	Name        string
	Description string
}

// 店舗の開設。1ユーザー1店舗（2つ目は409）。
func (u *BusinessUsecase) CreateBusiness(ctx context.Context, actorUserID int64, in CreateBusinessInput) (model.Business, error) {
	if actorUserID <= 0 {
		return model.Business{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Business{}, NewHTTPError(http.StatusBadRequest, "name required")
	}

	created, err := u.businesses.Create(ctx, model.Business{
		OwnerUserID: actorUserID,
		Name:        name,
		Description: in.Description,
		Status:      model.BusinessStatusActive,
	})
	if err == repo.ErrConflict {
		return model.Business{}, NewHTTPError(http.StatusConflict, "business already exists")
	}
	if err != nil {
		return model.Business{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

func (u *BusinessUsecase) GetMyBusiness(ctx context.Context, actorUserID int64) (model.Business, error) {
	if actorUserID <= 0 {
		return model.Business{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	b, err := u.businesses.FindByOwnerUserID(ctx, actorUserID)
	if err == repo.ErrNotFound {
		return model.Business{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Business{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return b, nil
}
