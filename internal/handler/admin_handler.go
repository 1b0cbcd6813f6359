package handler

import (
	"net/http"
	"strconv"

	"marketplace/internal/config"
	"marketplace/internal/middleware"
	"marketplace/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /admin のHTTP（管理画面の裏側）
type AdminHandler struct {
	adminUC *usecase.AdminUsecase
	statsUC *usecase.StatsUsecase
}

// DI
func NewAdminHandler(adminUC *usecase.AdminUsecase, statsUC *usecase.StatsUsecase) *AdminHandler {
	return &AdminHandler{adminUC: adminUC, statsUC: statsUC}
}

type SellerStatusRequest struct {
	Status string `json:"status"`
}

func (h *AdminHandler) RegisterRoutes(g *echo.Group, cfg config.Config) {
	grp := g.Group("/admin")
	grp.Use(middleware.AuthJWT(cfg))
	grp.Use(middleware.AdminRoleGuard())

	grp.GET("/stats", h.stats)
	grp.GET("/sellers", h.listSellers)
	grp.PUT("/sellers/:id", h.updateSellerStatus)
	grp.GET("/orders", h.listOrders)
	grp.PUT("/orders/:id/status", h.updateOrderStatus)
	grp.GET("/users", h.listUsers)
}

func (h *AdminHandler) stats(c echo.Context) error {
	out, err := h.statsUC.AdminStats(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminHandler) listSellers(c echo.Context) error {
	page, limit, err := parsePageLimit(c)
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.adminUC.ListSellers(c.Request().Context(), page, limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminHandler) updateSellerStatus(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req SellerStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.adminUC.UpdateSellerStatus(c.Request().Context(), id, req.Status); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "updated"})
}

func (h *AdminHandler) listOrders(c echo.Context) error {
	f, err := parseOrderFilter(c)
	if err != nil {
		return writeError(c, err)
	}

	// 特定ユーザーの注文に絞る
	if v := c.QueryParam("user_id"); v != "" {
		x, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user_id"})
		}
		f.UserID = &x
	}

	items, total, err := h.adminUC.ListOrders(c.Request().Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, OrderListResponse{Items: items, Total: total})
}

func (h *AdminHandler) updateOrderStatus(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.adminUC.UpdateOrderStatus(c.Request().Context(), id, usecase.UpdateOrderStatusInput{
		Status: req.Status,
	}); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "updated"})
}

func (h *AdminHandler) listUsers(c echo.Context) error {
	page, limit, err := parsePageLimit(c)
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.adminUC.ListUsers(c.Request().Context(), page, limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
