package transport

import (
	"time"

	"github.com/karlos2005535/warung-sederhana/pkg/warung/domain/model"
)

type productResponse struct {
	ID        string    `json:"id"`
	Barcode   string    `json:"barcode"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Price     int64     `json:"price"`
	Stock     int       `json:"stock"`
	MinStock  int       `json:"minStock"`
	Supplier  string    `json:"supplier"`
	LowStock  bool      `json:"lowStock"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toProductResponse(p *model.Product) productResponse {
	return productResponse{
		ID:        p.ID.String(),
		Barcode:   p.Barcode,
		Name:      p.Name,
		Category:  p.Category,
		Price:     p.Price,
		Stock:     p.Stock,
		MinStock:  p.MinStock,
		Supplier:  p.Supplier,
		LowStock:  p.IsLowStock(),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toProductResponses(products []model.Product) []productResponse {
	out := make([]productResponse, 0, len(products))
	for i := range products {
		out = append(out, toProductResponse(&products[i]))
	}
	return out
}

type createProductRequest struct {
	Barcode  string `json:"barcode"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    int64  `json:"price"`
	Stock    int    `json:"stock"`
	MinStock *int   `json:"minStock"`
	Supplier string `json:"supplier"`
}

type updateProductRequest struct {
	Barcode  *string `json:"barcode"`
	Name     *string `json:"name"`
	Category *string `json:"category"`
	Price    *int64  `json:"price"`
	Stock    *int    `json:"stock"`
	MinStock *int    `json:"minStock"`
	Supplier *string `json:"supplier"`
}

type restockRequest struct {
	Delta int `json:"delta"`
}

type categoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func toCategoryResponses(categories []model.Category) []categoryResponse {
	out := make([]categoryResponse, 0, len(categories))
	for i := range categories {
		out = append(out, categoryResponse{ID: categories[i].ID.String(), Name: categories[i].Name})
	}
	return out
}

type categoryRequest struct {
	Name string `json:"name"`
}

type debtResponse struct {
	ID           string     `json:"id"`
	CustomerName string     `json:"customerName"`
	Amount       int64      `json:"amount"`
	Description  string     `json:"description"`
	Status       string     `json:"status"`
	DueDate      time.Time  `json:"dueDate"`
	PaidAt       *time.Time `json:"paidAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

func toDebtResponse(d *model.Debt) debtResponse {
	status := "active"
	if d.Status == model.DebtStatusPaid {
		status = "paid"
	}
	return debtResponse{
		ID:           d.ID.String(),
		CustomerName: d.CustomerName,
		Amount:       d.Amount,
		Description:  d.Description,
		Status:       status,
		DueDate:      d.DueDate,
		PaidAt:       d.PaidAt,
		CreatedAt:    d.CreatedAt,
	}
}

func toDebtResponses(debts []model.Debt) []debtResponse {
	out := make([]debtResponse, 0, len(debts))
	for i := range debts {
		out = append(out, toDebtResponse(&debts[i]))
	}
	return out
}

type createDebtRequest struct {
	CustomerName string     `json:"customerName"`
	Amount       int64      `json:"amount"`
	Description  string     `json:"description"`
	DueDate      *time.Time `json:"dueDate"`
}

type checkoutRequest struct {
	Items        []checkoutItem `json:"items"`
	CashReceived int64          `json:"cashReceived"`
}

type checkoutItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type saleItemResponse struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
	Subtotal  int64  `json:"subtotal"`
}

type saleResponse struct {
	ID           string             `json:"id"`
	Items        []saleItemResponse `json:"items"`
	Total        int64              `json:"total"`
	CashReceived int64              `json:"cashReceived"`
	Change       int64              `json:"change"`
	Status       string             `json:"status"`
	CreatedAt    time.Time          `json:"createdAt"`
	CancelledAt  *time.Time         `json:"cancelledAt,omitempty"`
}

func toSaleResponse(s *model.Sale) saleResponse {
	status := "completed"
	if s.Status == model.SaleStatusCancelled {
		status = "cancelled"
	}
	items := make([]saleItemResponse, 0, len(s.Items))
	for _, item := range s.Items {
		items = append(items, saleItemResponse{
			ProductID: item.ProductID.String(),
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Subtotal:  item.Subtotal(),
		})
	}
	return saleResponse{
		ID:           s.ID.String(),
		Items:        items,
		Total:        s.Total,
		CashReceived: s.CashReceived,
		Change:       s.Change,
		Status:       status,
		CreatedAt:    s.CreatedAt,
		CancelledAt:  s.CancelledAt,
	}
}

func toSaleResponses(sales []model.Sale) []saleResponse {
	out := make([]saleResponse, 0, len(sales))
	for i := range sales {
		out = append(out, toSaleResponse(&sales[i]))
	}
	return out
}

type refundResponse struct {
	ID        string    `json:"id"`
	SaleID    string    `json:"saleId"`
	Amount    int64     `json:"amount"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"createdAt"`
}

func toRefundResponses(refunds []model.Refund) []refundResponse {
	out := make([]refundResponse, 0, len(refunds))
	for i := range refunds {
		out = append(out, refundResponse{
			ID:        refunds[i].ID.String(),
			SaleID:    refunds[i].SaleID.String(),
			Amount:    refunds[i].Amount,
			Reason:    refunds[i].Reason,
			CreatedAt: refunds[i].CreatedAt,
		})
	}
	return out
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type dashboardResponse struct {
	TodaySalesTotal   int64 `json:"todaySalesTotal"`
	MonthlySalesTotal int64 `json:"monthlySalesTotal"`
	InventoryValue    int64 `json:"inventoryValue"`
	TotalActiveDebt   int64 `json:"totalActiveDebt"`
	TotalRefunded     int64 `json:"totalRefunded"`
	ProductCount      int   `json:"productCount"`
	LowStockCount     int   `json:"lowStockCount"`
	OutOfStockCount   int   `json:"outOfStockCount"`
}
