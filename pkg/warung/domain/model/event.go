package model

import "github.com/google/uuid"

type ProductCreated struct {
	ProductID uuid.UUID
	Barcode   string
	Name      string
}

func (e ProductCreated) Type() string { return "ProductCreated" }

type ProductUpdated struct {
	ProductID uuid.UUID
}

func (e ProductUpdated) Type() string { return "ProductUpdated" }

type ProductDeleted struct {
	ProductID uuid.UUID
}

func (e ProductDeleted) Type() string { return "ProductDeleted" }

type ProductStockChanged struct {
	ProductID    uuid.UUID
	ChangeAmount int
	NewQuantity  int
}

func (e ProductStockChanged) Type() string { return "ProductStockChanged" }

type CategoryCreated struct {
	CategoryID uuid.UUID
	Name       string
}

func (e CategoryCreated) Type() string { return "CategoryCreated" }

type DebtRecorded struct {
	DebtID       uuid.UUID
	CustomerName string
	Amount       int64
}

func (e DebtRecorded) Type() string { return "DebtRecorded" }

type DebtSettled struct {
	DebtID uuid.UUID
}

func (e DebtSettled) Type() string { return "DebtSettled" }

type SaleRecorded struct {
	SaleID uuid.UUID
	Total  int64
	Change int64
}

func (e SaleRecorded) Type() string { return "SaleRecorded" }

type SaleCancelled struct {
	SaleID   uuid.UUID
	RefundID uuid.UUID
	Refunded int64
}

func (e SaleCancelled) Type() string { return "SaleCancelled" }

type UserRegistered struct {
	UserID   uuid.UUID
	Username string
}

func (e UserRegistered) Type() string { return "UserRegistered" }
