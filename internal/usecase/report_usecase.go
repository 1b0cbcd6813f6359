package usecase

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"github.com/jung-kurt/gofpdf"
)

// 1ページあたりの取得件数。全ページ読み切るまでループする。
const reportPageSize = 100

// 出店者向けの売上レポート（PDF）。
type ReportUsecase struct {
	orders     repo.OrderRepository
	items      repo.OrderItemRepository
	businesses repo.BusinessRepository
}

func NewReportUsecase(
	orders repo.OrderRepository,
	items repo.OrderItemRepository,
	businesses repo.BusinessRepository,
) *ReportUsecase {
	return &ReportUsecase{orders: orders, items: items, businesses: businesses}
}

type reportRow struct {
	Date    string
	OrderID int64
	Product string
	Qty     int64
	Price   int64
	Total   int64
}

// 期間内の自店舗の注文明細をPDFにして返す。
func (u *ReportUsecase) SellerSalesReport(ctx context.Context, actorUserID int64, from time.Time, to time.Time) ([]byte, error) {
	if actorUserID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if to.Before(from) {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid range")
	}

	b, err := u.businesses.FindByOwnerUserID(ctx, actorUserID)
	if err == repo.ErrNotFound {
		return nil, NewHTTPError(http.StatusForbidden, "forbidden")
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//明細は全件読み切ってから集計する。途中で止めると合計が欠ける。
	filter := repo.OrderListFilter{
		Page:  1,
		Limit: reportPageSize,
		From:  &from,
		To:    &to,
	}
	var orders []model.Order
	for {
		chunk, total, err := u.orders.ListByBusinessID(ctx, b.ID, filter)
		if err != nil {
			return nil, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		orders = append(orders, chunk...)
		if len(chunk) == 0 || int64(len(orders)) >= total {
			break
		}
		filter.Page++
	}

	rows := make([]reportRow, 0)
	var grandTotal int64

	for _, o := range orders {
		items, err := u.items.ListByOrderID(ctx, o.ID)
		if err != nil {
			return nil, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		for _, it := range items {
			rows = append(rows, reportRow{
				Date:    o.CreatedAt.Format("2006-01-02"),
				OrderID: o.ID,
				Product: it.ProductNameSnapshot,
				Qty:     it.Quantity,
				Price:   it.UnitPriceSnapshot,
				Total:   it.UnitPriceSnapshot * it.Quantity,
			})
		}
		grandTotal += o.TotalAmount
	}

	return renderSalesPDF(b.Name, from, to, rows, grandTotal)
}

func renderSalesPDF(businessName string, from time.Time, to time.Time, rows []reportRow, grandTotal int64) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "Sales Report - "+businessName, "", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 10, fmt.Sprintf("Date Range: %s to %s",
		from.Format("2006-01-02"), to.Format("2006-01-02")), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 10, fmt.Sprintf("Total Sales: %d", grandTotal), "", 1, "L", false, 0, "")
	pdf.Ln(5)

	//ヘッダー行
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(30, 10, "Date", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 10, "Order", "1", 0, "C", false, 0, "")
	pdf.CellFormat(60, 10, "Product", "1", 0, "C", false, 0, "")
	pdf.CellFormat(20, 10, "Qty", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 10, "Price", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 10, "Total", "1", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 12)
	for _, row := range rows {
		pdf.CellFormat(30, 10, row.Date, "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 10, fmt.Sprintf("#%d", row.OrderID), "1", 0, "C", false, 0, "")
		pdf.CellFormat(60, 10, row.Product, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 10, fmt.Sprintf("%d", row.Qty), "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 10, fmt.Sprintf("%d", row.Price), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 10, fmt.Sprintf("%d", row.Total), "1", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "pdf error")
	}
	return buf.Bytes(), nil
}
