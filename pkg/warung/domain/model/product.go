package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrBarcodeTaken      = errors.New("barcode is already registered to another product")
	ErrInsufficientStock = errors.New("insufficient stock quantity")

	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryTaken    = errors.New("category with this name already exists")
)

// DefaultMinStock is the restock threshold applied when none is given.
const DefaultMinStock = 5

type Product struct {
	ID        uuid.UUID
	Barcode   string
	Name      string
	Category  string
	Price     int64
	Stock     int
	MinStock  int
	Supplier  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsLowStock reports whether the product is in stock but at or below its
// restock threshold.
func (p *Product) IsLowStock() bool {
	return p.Stock > 0 && p.Stock <= p.MinStock
}

func (p *Product) IsOutOfStock() bool {
	return p.Stock == 0
}

type Category struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ProductRepository interface {
	NextID() (uuid.UUID, error)
	Create(product *Product) error
	Update(product *Product) error
	Delete(id uuid.UUID) error
	Find(id uuid.UUID) (*Product, error)
	FindByBarcode(barcode string) (*Product, error)
	List() ([]Product, error)
}

type CategoryRepository interface {
	NextID() (uuid.UUID, error)
	Create(category *Category) error
	Update(category *Category) error
	Delete(id uuid.UUID) error
	Find(id uuid.UUID) (*Category, error)
	List() ([]Category, error)
}
