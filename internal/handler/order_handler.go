package handler

import (
	"net/http"
	"strconv"

	"marketplace/internal/config"
	"marketplace/internal/metrics"
	"marketplace/internal/middleware"
	"marketplace/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 購入者向け /orders のHTTP
type OrderHandler struct {
	uc *usecase.OrderUsecase
}

// DI
func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

type CheckoutItemRequest struct {
	ID       int64 `json:"id"`
	Quantity int64 `json:"quantity"`
}

type ShippingDetailsRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type CheckoutRequest struct {
	Items           []CheckoutItemRequest  `json:"items"`
	ShippingDetails ShippingDetailsRequest `json:"shipping_details"`
	PaymentMethod   string                 `json:"payment_method"`
}

// /orders を登録（全部認証必須）
func (h *OrderHandler) RegisterRoutes(g *echo.Group, cfg config.Config) {
	grp := g.Group("/orders")
	grp.Use(middleware.AuthJWT(cfg))

	grp.POST("", h.checkout)
	grp.GET("", h.list)
	grp.GET("/:id", h.detail)
	grp.GET("/:id/delivery", h.delivery)
}

func (h *OrderHandler) checkout(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	lines := make([]usecase.CheckoutLine, 0, len(req.Items))
	for _, it := range req.Items {
		lines = append(lines, usecase.CheckoutLine{
			ProductID: it.ID,
			Quantity:  it.Quantity,
		})
	}

	out, err := h.uc.PlaceOrder(c.Request().Context(), userID, usecase.PlaceOrderInput{
		Lines: lines,
		Shipping: usecase.ShippingDetails{
			Name:    req.ShippingDetails.Name,
			Phone:   req.ShippingDetails.Phone,
			Address: req.ShippingDetails.Address,
		},
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		if metrics.CheckoutFailuresTotal != nil {
			metrics.CheckoutFailuresTotal.Inc()
		}
		return writeError(c, err)
	}

	if metrics.OrdersCreatedTotal != nil {
		metrics.OrdersCreatedTotal.Add(float64(len(out.OrderIDs)))
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *OrderHandler) list(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	page, limit, err := parsePageLimit(c)
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.ListMyOrders(c.Request().Context(), userID, page, limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) detail(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.GetMyOrderDetail(c.Request().Context(), userID, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) delivery(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.ListMyDeliveryUpdates(c.Request().Context(), userID, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
