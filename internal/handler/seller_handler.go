package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"marketplace/internal/config"
	"marketplace/internal/middleware"
	repo "marketplace/internal/repository"
	"marketplace/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /seller のHTTP（受注管理・ダッシュボード・レポート）
type SellerHandler struct {
	orderUC  *usecase.SellerOrderUsecase
	statsUC  *usecase.StatsUsecase
	reportUC *usecase.ReportUsecase
}

// DI
func NewSellerHandler(
	orderUC *usecase.SellerOrderUsecase,
	statsUC *usecase.StatsUsecase,
	reportUC *usecase.ReportUsecase,
) *SellerHandler {
	return &SellerHandler{
		orderUC:  orderUC,
		statsUC:  statsUC,
		reportUC: reportUC,
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type DeliveryUpdateRequest struct {
	Status   string `json:"status"`
	Location string `json:"location"`
	Note     string `json:"note"`
}

type OrderListResponse struct {
	Items []usecase.OrderOutput `json:"items"`
	Total int64                 `json:"total"`
}

func (h *SellerHandler) RegisterRoutes(g *echo.Group, cfg config.Config) {
	grp := g.Group("/seller")
	grp.Use(middleware.AuthJWT(cfg))
	grp.Use(middleware.SellerRoleGuard())

	grp.GET("/orders", h.listOrders)
	grp.PUT("/orders/:id/status", h.updateStatus)
	grp.POST("/orders/:id/delivery", h.addDeliveryUpdate)
	grp.GET("/stats", h.stats)
	grp.GET("/reports", h.salesReport)
}

// from/to は YYYY-MM-DD で受ける
func parseDateQuery(c echo.Context, name string) (*time.Time, error) {
	v := c.QueryParam(name)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil, usecase.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return &t, nil
}

func parseOrderFilter(c echo.Context) (repo.OrderListFilter, error) {
	page, limit, err := parsePageLimit(c)
	if err != nil {
		return repo.OrderListFilter{}, err
	}

	from, err := parseDateQuery(c, "from")
	if err != nil {
		return repo.OrderListFilter{}, err
	}
	to, err := parseDateQuery(c, "to")
	if err != nil {
		return repo.OrderListFilter{}, err
	}

	return repo.OrderListFilter{
		Page:   page,
		Limit:  limit,
		Status: c.QueryParam("status"),
		From:   from,
		To:     to,
	}, nil
}

func (h *SellerHandler) listOrders(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	f, err := parseOrderFilter(c)
	if err != nil {
		return writeError(c, err)
	}

	items, total, err := h.orderUC.ListOrders(c.Request().Context(), userID, f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, OrderListResponse{Items: items, Total: total})
}

func (h *SellerHandler) updateStatus(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.orderUC.UpdateStatus(c.Request().Context(), userID, id, usecase.UpdateOrderStatusInput{
		Status: req.Status,
	}); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "updated"})
}

func (h *SellerHandler) addDeliveryUpdate(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req DeliveryUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.orderUC.AddDeliveryUpdate(c.Request().Context(), userID, id, usecase.AddDeliveryUpdateInput{
		Status:   req.Status,
		Location: req.Location,
		Note:     req.Note,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *SellerHandler) stats(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.statsUC.SellerStats(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *SellerHandler) salesReport(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	from, err := parseDateQuery(c, "from")
	if err != nil {
		return writeError(c, err)
	}
	to, err := parseDateQuery(c, "to")
	if err != nil {
		return writeError(c, err)
	}

	// 省略時は直近30日
	now := time.Now()
	if to == nil {
		to = &now
	}
	if from == nil {
		f := to.AddDate(0, 0, -30)
		from = &f
	}

	pdf, err := h.reportUC.SellerSalesReport(c.Request().Context(), userID, *from, *to)
	if err != nil {
		return writeError(c, err)
	}

	name := fmt.Sprintf("sales_%s_%s.pdf", from.Format("20060102"), to.Format("20060102"))
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}
