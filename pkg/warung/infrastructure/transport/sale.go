package transport

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/karlos2005535/warung-sederhana/pkg/warung/domain/model"
)

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if !h.decode(w, r, &req) {
		return
	}

	lines := make([]model.CartLine, 0, len(req.Items))
	for _, item := range req.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			h.respond(w, http.StatusBadRequest, errorResponse{Error: errInvalidID.Error()})
			return
		}
		lines = append(lines, model.CartLine{ProductID: productID, Quantity: item.Quantity})
	}

	sale, err := h.sales.Checkout(lines, req.CashReceived)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusCreated, toSaleResponse(sale))
}

// listSales supports ?status=completed and ?status=cancelled.
func (h *Handler) listSales(w http.ResponseWriter, r *http.Request) {
	var (
		sales []model.Sale
		err   error
	)
	switch r.URL.Query().Get("status") {
	case "completed":
		sales, err = h.sales.CompletedSales()
	case "cancelled":
		sales, err = h.sales.CancelledSales()
	default:
		sales, err = h.sales.Sales()
	}
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, toSaleResponses(sales))
}

func (h *Handler) getSale(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	sale, err := h.sales.Sale(id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, toSaleResponse(sale))
}

func (h *Handler) cancelSale(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	refund, err := h.sales.CancelSale(id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, refundResponse{
		ID:        refund.ID.String(),
		SaleID:    refund.SaleID.String(),
		Amount:    refund.Amount,
		Reason:    refund.Reason,
		CreatedAt: refund.CreatedAt,
	})
}

func (h *Handler) listRefunds(w http.ResponseWriter, r *http.Request) {
	refunds, err := h.sales.Refunds()
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, toRefundResponses(refunds))
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	today, err := h.sales.TodaySalesTotal()
	if err != nil {
		h.respondError(w, err)
		return
	}
	monthly, err := h.sales.MonthlySalesTotal()
	if err != nil {
		h.respondError(w, err)
		return
	}
	inventoryValue, err := h.catalog.InventoryValue()
	if err != nil {
		h.respondError(w, err)
		return
	}
	activeDebt, err := h.debts.TotalActiveDebt()
	if err != nil {
		h.respondError(w, err)
		return
	}
	refunded, err := h.sales.TotalRefunded()
	if err != nil {
		h.respondError(w, err)
		return
	}
	products, err := h.catalog.Products()
	if err != nil {
		h.respondError(w, err)
		return
	}
	lowStock, err := h.catalog.LowStockProducts()
	if err != nil {
		h.respondError(w, err)
		return
	}
	outOfStock, err := h.catalog.OutOfStockProducts()
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respond(w, http.StatusOK, dashboardResponse{
		TodaySalesTotal:   today,
		MonthlySalesTotal: monthly,
		InventoryValue:    inventoryValue,
		TotalActiveDebt:   activeDebt,
		TotalRefunded:     refunded,
		ProductCount:      len(products),
		LowStockCount:     len(lowStock),
		OutOfStockCount:   len(outOfStock),
	})
}
