package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrDebtNotFound     = errors.New("debt not found")
	ErrEmptyCustomer    = errors.New("customer name must not be empty")
	ErrInvalidDebtValue = errors.New("debt amount must be a positive number")
)

// DefaultDebtTerm is applied when a debt is recorded without a due date.
const DefaultDebtTerm = 7 * 24 * time.Hour

type DebtStatus int

const (
	DebtStatusActive DebtStatus = iota
	DebtStatusPaid
)

type Debt struct {
	ID           uuid.UUID
	CustomerName string
	Amount       int64
	Description  string
	Status       DebtStatus
	DueDate      time.Time
	PaidAt       *time.Time
	CreatedAt    time.Time
}

type DebtRepository interface {
	NextID() (uuid.UUID, error)
	Create(debt *Debt) error
	Update(debt *Debt) error
	Delete(id uuid.UUID) error
	Find(id uuid.UUID) (*Debt, error)
	List() ([]Debt, error)
}
