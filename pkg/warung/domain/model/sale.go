package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSaleNotFound         = errors.New("sale not found")
	ErrSaleAlreadyCancelled = errors.New("sale has already been cancelled")
	ErrEmptyCart            = errors.New("cannot check out an empty cart")
	ErrInvalidQuantity      = errors.New("line quantity must be a positive number")
	ErrInsufficientCash     = errors.New("cash received does not cover the total")

	ErrRefundNotFound = errors.New("refund not found")
)

type SaleStatus int

const (
	SaleStatusCompleted SaleStatus = iota
	SaleStatusCancelled
)

// SaleItem is a denormalized snapshot of a product at sale time. Deleting the
// product later does not touch recorded sales.
type SaleItem struct {
	ProductID uuid.UUID
	Name      string
	Price     int64
	Quantity  int
}

func (i SaleItem) Subtotal() int64 {
	return i.Price * int64(i.Quantity)
}

type Sale struct {
	ID           uuid.UUID
	Items        []SaleItem
	Total        int64
	CashReceived int64
	Change       int64
	Status       SaleStatus
	CreatedAt    time.Time
	CancelledAt  *time.Time
}

// Refund documents money returned to a customer after a sale cancellation.
// Records are immutable and reference exactly one cancelled sale.
type Refund struct {
	ID        uuid.UUID
	SaleID    uuid.UUID
	Amount    int64
	Reason    string
	CreatedAt time.Time
}

type SaleRepository interface {
	NextID() (uuid.UUID, error)
	Create(sale *Sale) error
	Update(sale *Sale) error
	Find(id uuid.UUID) (*Sale, error)
	List() ([]Sale, error)
}

type RefundRepository interface {
	NextID() (uuid.UUID, error)
	Create(refund *Refund) error
	FindBySale(saleID uuid.UUID) (*Refund, error)
	List() ([]Refund, error)
}
