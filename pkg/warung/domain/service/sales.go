package service

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/karlos2005535/warung-sederhana/pkg/warung/domain/model"
)

const cancellationReason = "sale cancellation"

type SalesService interface {
	Checkout(lines []model.CartLine, cashReceived int64) (*model.Sale, error)
	CancelSale(saleID uuid.UUID) (*model.Refund, error)

	Sale(saleID uuid.UUID) (*model.Sale, error)
	Sales() ([]model.Sale, error)
	CompletedSales() ([]model.Sale, error)
	CancelledSales() ([]model.Sale, error)
	TodaySalesTotal() (int64, error)
	MonthlySalesTotal() (int64, error)

	Refunds() ([]model.Refund, error)
	TotalRefunded() (int64, error)
}

func NewSalesService(sales model.SaleRepository, refunds model.RefundRepository, products model.ProductRepository, dispatcher EventDispatcher) SalesService {
	return &salesService{
		sales:      sales,
		refunds:    refunds,
		products:   products,
		dispatcher: dispatcher,
	}
}

type salesService struct {
	// mu makes checkout and cancellation single logical units: the stock
	// mutation, the sale record and the refund record cannot interleave with
	// another checkout or a second cancellation of the same sale.
	mu sync.Mutex

	sales      model.SaleRepository
	refunds    model.RefundRepository
	products   model.ProductRepository
	dispatcher EventDispatcher
}

// Checkout records a completed sale from the cart lines. The total is
// recomputed from the lines rather than taken from the caller, and stock for
// every line is validated before any product is touched, so a rejected
// checkout leaves the catalog unchanged.
func (s *salesService) Checkout(lines []model.CartLine, cashReceived int64) (*model.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(lines) == 0 {
		return nil, model.ErrEmptyCart
	}

	// Duplicate lines for one product collapse into a single line, so the
	// stock guard sees the combined quantity and the decrement runs once.
	merged := make([]model.CartLine, 0, len(lines))
	index := make(map[uuid.UUID]int, len(lines))
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, model.ErrInvalidQuantity
		}
		if i, ok := index[line.ProductID]; ok {
			merged[i].Quantity += line.Quantity
			continue
		}
		index[line.ProductID] = len(merged)
		merged = append(merged, line)
	}

	var total int64
	items := make([]model.SaleItem, 0, len(merged))
	purchased := make([]*model.Product, 0, len(merged))

	for _, line := range merged {
		product, err := s.products.Find(line.ProductID)
		if err != nil {
			return nil, err
		}
		if product.Stock < line.Quantity {
			return nil, model.ErrInsufficientStock
		}

		items = append(items, model.SaleItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  line.Quantity,
		})
		total += product.Price * int64(line.Quantity)
		purchased = append(purchased, product)
	}

	if cashReceived < total {
		return nil, model.ErrInsufficientCash
	}

	saleID, err := s.sales.NextID()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	for i, product := range purchased {
		product.Stock -= items[i].Quantity
		product.UpdatedAt = now
		if err := s.products.Update(product); err != nil {
			return nil, err
		}
		_ = s.dispatcher.Dispatch(model.ProductStockChanged{
			ProductID:    product.ID,
			ChangeAmount: -items[i].Quantity,
			NewQuantity:  product.Stock,
		})
	}

	sale := &model.Sale{
		ID:           saleID,
		Items:        items,
		Total:        total,
		CashReceived: cashReceived,
		Change:       cashReceived - total,
		Status:       model.SaleStatusCompleted,
		CreatedAt:    now,
	}

	if err := s.sales.Create(sale); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Dispatch(model.SaleRecorded{
		SaleID: saleID,
		Total:  total,
		Change: sale.Change,
	})

	return sale, nil
}

// CancelSale voids a completed sale: every line's stock is restored, exactly
// one refund is recorded for the full cash received (change included), and
// the sale flips to cancelled. Cancellation is terminal; repeating it fails
// with ErrSaleAlreadyCancelled and records nothing.
func (s *salesService) CancelSale(saleID uuid.UUID) (*model.Refund, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sale, err := s.sales.Find(saleID)
	if err != nil {
		return nil, err
	}
	if sale.Status == model.SaleStatusCancelled {
		return nil, model.ErrSaleAlreadyCancelled
	}

	now := time.Now().UTC()
	for _, item := range sale.Items {
		product, err := s.products.Find(item.ProductID)
		if err != nil {
			// A product deleted after the sale has nowhere to return its
			// stock; the refund still covers it.
			if errors.Is(err, model.ErrProductNotFound) {
				continue
			}
			return nil, err
		}

		product.Stock += item.Quantity
		product.UpdatedAt = now
		if err := s.products.Update(product); err != nil {
			return nil, err
		}
		_ = s.dispatcher.Dispatch(model.ProductStockChanged{
			ProductID:    product.ID,
			ChangeAmount: item.Quantity,
			NewQuantity:  product.Stock,
		})
	}

	refundID, err := s.refunds.NextID()
	if err != nil {
		return nil, err
	}

	refund := &model.Refund{
		ID:        refundID,
		SaleID:    saleID,
		Amount:    sale.CashReceived,
		Reason:    cancellationReason,
		CreatedAt: now,
	}
	if err := s.refunds.Create(refund); err != nil {
		return nil, err
	}

	sale.Status = model.SaleStatusCancelled
	sale.CancelledAt = &now
	if err := s.sales.Update(sale); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Dispatch(model.SaleCancelled{
		SaleID:   saleID,
		RefundID: refundID,
		Refunded: refund.Amount,
	})

	return refund, nil
}

func (s *salesService) Sale(saleID uuid.UUID) (*model.Sale, error) {
	return s.sales.Find(saleID)
}

func (s *salesService) Sales() ([]model.Sale, error) {
	return s.sales.List()
}

func (s *salesService) CompletedSales() ([]model.Sale, error) {
	return s.filterSales(func(sale *model.Sale) bool {
		return sale.Status == model.SaleStatusCompleted
	})
}

func (s *salesService) CancelledSales() ([]model.Sale, error) {
	return s.filterSales(func(sale *model.Sale) bool {
		return sale.Status == model.SaleStatusCancelled
	})
}

// TodaySalesTotal sums completed sales recorded on the current calendar day.
func (s *salesService) TodaySalesTotal() (int64, error) {
	now := time.Now().UTC()
	return s.sumSales(func(sale *model.Sale) bool {
		y, m, d := sale.CreatedAt.UTC().Date()
		ny, nm, nd := now.Date()
		return sale.Status == model.SaleStatusCompleted && y == ny && m == nm && d == nd
	})
}

// MonthlySalesTotal sums completed sales recorded in the current month.
func (s *salesService) MonthlySalesTotal() (int64, error) {
	now := time.Now().UTC()
	return s.sumSales(func(sale *model.Sale) bool {
		created := sale.CreatedAt.UTC()
		return sale.Status == model.SaleStatusCompleted &&
			created.Year() == now.Year() && created.Month() == now.Month()
	})
}

func (s *salesService) Refunds() ([]model.Refund, error) {
	return s.refunds.List()
}

func (s *salesService) TotalRefunded() (int64, error) {
	refunds, err := s.refunds.List()
	if err != nil {
		return 0, err
	}

	var total int64
	for i := range refunds {
		total += refunds[i].Amount
	}
	return total, nil
}

func (s *salesService) filterSales(keep func(*model.Sale) bool) ([]model.Sale, error) {
	sales, err := s.sales.List()
	if err != nil {
		return nil, err
	}

	filtered := make([]model.Sale, 0, len(sales))
	for i := range sales {
		if keep(&sales[i]) {
			filtered = append(filtered, sales[i])
		}
	}
	return filtered, nil
}

func (s *salesService) sumSales(keep func(*model.Sale) bool) (int64, error) {
	sales, err := s.sales.List()
	if err != nil {
		return 0, err
	}

	var total int64
	for i := range sales {
		if keep(&sales[i]) {
			total += sales[i].Total
		}
	}
	return total, nil
}
