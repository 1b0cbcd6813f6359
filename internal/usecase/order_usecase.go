package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"github.com/google/uuid"
)

type OrderUsecase struct {
	tx       repo.TransactionManager
	orders   repo.OrderRepository
	items    repo.OrderItemRepository
	payments repo.PaymentRepository
	delivery repo.DeliveryUpdateRepository
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	orders repo.OrderRepository,
	items repo.OrderItemRepository,
	payments repo.PaymentRepository,
	delivery repo.DeliveryUpdateRepository,
) *OrderUsecase {
	return &OrderUsecase{
		tx:       tx,
		orders:   orders,
		items:    items,
		payments: payments,
		delivery: delivery,
	}
}

type ShippingDetails struct {
	Name    string
	Phone   string
	Address string
}

type PlaceOrderInput struct {
	Lines         []CheckoutLine
	Shipping      ShippingDetails
	PaymentMethod string
}

type PlaceOrderOutput struct {
	Success  bool    `json:"success"`
	OrderIDs []int64 `json:"order_ids"`
}

type OrderItemOutput struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int64  `json:"quantity"`
}

type PaymentOutput struct {
	Method      string `json:"method"`
	Status      string `json:"status"`
	Amount      int64  `json:"amount"`
	ProviderRef string `json:"provider_ref"`
}

type OrderOutput struct {
	ID          int64             `json:"id"`
	UserID      int64             `json:"user_id"`
	BusinessID  int64             `json:"business_id"`
	Status      string            `json:"status"`
	TotalAmount int64             `json:"total_amount"`
	CreatedAt   time.Time         `json:"created_at"`
	Items       []OrderItemOutput `json:"items"`

	//買い手向けのレスポンスにだけ入る
	Payment *PaymentOutput `json:"payment,omitempty"`
}

// チェックアウト本体。
// カートをBusinessごとに分割し、1トランザクションでグループ数ぶんの
// Order + OrderItems + Payment を作る。どこかで失敗したら全部ロールバック
// （カートはサーバー側では持たないので、失敗時の再試行はクライアントの責務）。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, userID int64, in PlaceOrderInput) (PlaceOrderOutput, error) {
	if userID <= 0 {
		return PlaceOrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if len(in.Lines) == 0 {
		return PlaceOrderOutput{}, NewHTTPError(http.StatusBadRequest, "cart empty")
	}
	for _, line := range in.Lines {
		if line.ProductID <= 0 || line.Quantity <= 0 {
			return PlaceOrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid item")
		}
	}
	if strings.TrimSpace(in.Shipping.Name) == "" || strings.TrimSpace(in.Shipping.Address) == "" {
		return PlaceOrderOutput{}, NewHTTPError(http.StatusBadRequest, "shipping details required")
	}
	method := strings.TrimSpace(in.PaymentMethod)
	if method == "" {
		return PlaceOrderOutput{}, NewHTTPError(http.StatusBadRequest, "payment method required")
	}

	var out PlaceOrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//価格と所属店舗をDBから引き直す。
		//クライアントが送ってきた価格・合計は一切使わない。
		ids := distinctProductIDs(in.Lines)
		rows, err := r.Products().FindPricingByIDs(ctx, ids)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//1件でも見つからなければチェックアウト全体を拒否
		if len(rows) != len(ids) {
			return NewHTTPError(http.StatusNotFound, "product not found")
		}

		pricing := make(map[int64]repo.ProductPricing, len(rows))
		for _, row := range rows {
			pricing[row.ProductID] = row
		}

		//Businessごとに分割
		groups := partitionByBusiness(in.Lines, pricing)

		now := time.Now()
		orderIDs := make([]int64, 0, len(groups))

		for _, g := range groups {
			orderID, err := r.Orders().Create(ctx, model.Order{
				UserID:          userID,
				BusinessID:      g.BusinessID,
				Status:          model.OrderStatusPending,
				TotalAmount:     g.Total,
				PaymentMethod:   method,
				ShippingName:    in.Shipping.Name,
				ShippingPhone:   in.Shipping.Phone,
				ShippingAddress: in.Shipping.Address,
				CreatedAt:       now,
				UpdatedAt:       now,
			})
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			if err := r.OrderItems().CreateBulk(ctx, orderID, g.Items); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			//決済は模擬キャプチャ。作成時点でcompleted。
			if _, err := r.Payments().Create(ctx, model.Payment{
				OrderID:     orderID,
				Method:      method,
				Status:      model.PaymentStatusCompleted,
				ProviderRef: uuid.NewString(),
				Amount:      g.Total,
				CreatedAt:   now,
			}); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			orderIDs = append(orderIDs, orderID)
		}

		out = PlaceOrderOutput{Success: true, OrderIDs: orderIDs}
		return nil
	})

	if err != nil {
		return PlaceOrderOutput{}, err
	}
	return out, nil
}

func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64, page int, limit int) ([]OrderOutput, error) {
	if userID <= 0 {
		return []OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 50
	}

	orders, _, err := u.orders.ListByUserID(ctx, userID, page, limit)
	if err != nil {
		return []OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		items, err := u.items.ListByOrderID(ctx, o.ID)
		if err != nil {
			return []OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out := toOrderOutput(o, items)
		if err := u.attachPayment(ctx, &out); err != nil {
			return []OrderOutput{}, err
		}
		outs = append(outs, out)
	}
	return outs, nil
}

// 注文に紐づく決済を付ける。決済行が無い注文はそのまま返す。
func (u *OrderUsecase) attachPayment(ctx context.Context, out *OrderOutput) error {
	p, err := u.payments.FindByOrderID(ctx, out.ID)
	if err == repo.ErrNotFound {
		return nil
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	out.Payment = &PaymentOutput{
		Method:      p.Method,
		Status:      string(p.Status),
		Amount:      p.Amount,
		ProviderRef: p.ProviderRef,
	}
	return nil
}

func (u *OrderUsecase) GetMyOrderDetail(ctx context.Context, userID int64, orderID int64) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	o, err := u.orders.FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		return OrderOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if o.UserID != userID {
		//他人の注文は「存在しない扱い」にする
		return OrderOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	items, err := u.items.ListByOrderID(ctx, orderID)
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := toOrderOutput(o, items)
	if err := u.attachPayment(ctx, &out); err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// 自分の注文の配送履歴（新しい順）
func (u *OrderUsecase) ListMyDeliveryUpdates(ctx context.Context, userID int64, orderID int64) ([]model.DeliveryUpdate, error) {
	if userID <= 0 {
		return []model.DeliveryUpdate{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	o, err := u.orders.FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		return []model.DeliveryUpdate{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return []model.DeliveryUpdate{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if o.UserID != userID {
		return []model.DeliveryUpdate{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	updates, err := u.delivery.ListByOrderID(ctx, orderID)
	if err != nil {
		return []model.DeliveryUpdate{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return updates, nil
}

func distinctProductIDs(lines []CheckoutLine) []int64 {
	seen := make(map[int64]bool, len(lines))
	ids := make([]int64, 0, len(lines))
	for _, line := range lines {
		if !seen[line.ProductID] {
			seen[line.ProductID] = true
			ids = append(ids, line.ProductID)
		}
	}
	return ids
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ProductID: it.ProductID,
			Name:      it.ProductNameSnapshot,
			Price:     it.UnitPriceSnapshot,
			Quantity:  it.Quantity,
		})
	}

	return OrderOutput{
		ID:          o.ID,
		UserID:      o.UserID,
		BusinessID:  o.BusinessID,
		Status:      string(o.Status),
		TotalAmount: o.TotalAmount,
		CreatedAt:   o.CreatedAt,
		Items:       outItems,
	}
}
