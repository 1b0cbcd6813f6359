package handler

import (
	"net/http"

	"marketplace/internal/config"
	"marketplace/internal/middleware"
	"marketplace/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /business のHTTP（店舗オーナー向け）
type BusinessHandler struct {
	uc *usecase.BusinessUsecase
}

// DI
func NewBusinessHandler(uc *usecase.BusinessUsecase) *BusinessHandler {
	return &BusinessHandler{uc: uc}
}

type CreateBusinessRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *BusinessHandler) RegisterRoutes(g *echo.Group, cfg config.Config) {
	grp := g.Group("/business")
	grp.Use(middleware.AuthJWT(cfg))
	grp.Use(middleware.SellerRoleGuard())

	grp.POST("", h.create)
	grp.GET("", h.me)
}

func (h *BusinessHandler) create(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req CreateBusinessRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.CreateBusiness(c.Request().Context(), userID, usecase.CreateBusinessInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *BusinessHandler) me(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.GetMyBusiness(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
