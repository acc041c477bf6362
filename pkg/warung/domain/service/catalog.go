package service

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/karlos2005535/warung-sederhana/pkg/warung/domain/model"
)

var (
	ErrInvalidPrice         = errors.New("price cannot be negative")
	ErrInvalidStock         = errors.New("stock cannot be negative")
	ErrEmptyBarcode         = errors.New("barcode must not be empty")
	ErrEmptyProductName     = errors.New("product name must not be empty")
	ErrEmptyCategoryName    = errors.New("category name must not be empty")
	ErrInvalidStockQuantity = errors.New("stock adjustment must not be zero")
)

// ProductPatch carries the fields of an update; nil pointers leave the
// existing value untouched. Unknown fields cannot reach the store.
type ProductPatch struct {
	Barcode  *string
	Name     *string
	Category *string
	Price    *int64
	Stock    *int
	MinStock *int
	Supplier *string
}

type CatalogService interface {
	AddProduct(barcode, name, category, supplier string, price int64, stock, minStock int) (*model.Product, error)
	UpdateProduct(productID uuid.UUID, patch ProductPatch) error
	DeleteProduct(productID uuid.UUID) error

	SetStock(productID uuid.UUID, newStock int) error
	AdjustStock(productID uuid.UUID, delta int) error

	Product(productID uuid.UUID) (*model.Product, error)
	ProductByBarcode(barcode string) (*model.Product, error)
	Products() ([]model.Product, error)
	ProductsByCategory(category string) ([]model.Product, error)
	LowStockProducts() ([]model.Product, error)
	OutOfStockProducts() ([]model.Product, error)
	InventoryValue() (int64, error)

	AddCategory(name string) (*model.Category, error)
	RenameCategory(categoryID uuid.UUID, newName string) error
	DeleteCategory(categoryID uuid.UUID) error
	Category(categoryID uuid.UUID) (*model.Category, error)
	Categories() ([]model.Category, error)
}

func NewCatalogService(products model.ProductRepository, categories model.CategoryRepository, dispatcher EventDispatcher) CatalogService {
	return &catalogService{
		products:   products,
		categories: categories,
		dispatcher: dispatcher,
	}
}

type catalogService struct {
	products   model.ProductRepository
	categories model.CategoryRepository
	dispatcher EventDispatcher
}

func (s *catalogService) AddProduct(barcode, name, category, supplier string, price int64, stock, minStock int) (*model.Product, error) {
	barcode = strings.TrimSpace(barcode)
	name = strings.TrimSpace(name)
	if barcode == "" {
		return nil, ErrEmptyBarcode
	}
	if name == "" {
		return nil, ErrEmptyProductName
	}
	if price < 0 {
		return nil, ErrInvalidPrice
	}
	if stock < 0 {
		return nil, ErrInvalidStock
	}
	// A negative threshold means "unspecified"; zero is a valid choice that
	// disables the low-stock warning for this product.
	if minStock < 0 {
		minStock = model.DefaultMinStock
	}

	if _, err := s.products.FindByBarcode(barcode); err == nil {
		return nil, model.ErrBarcodeTaken
	}

	productID, err := s.products.NextID()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := &model.Product{
		ID:        productID,
		Barcode:   barcode,
		Name:      name,
		Category:  category,
		Price:     price,
		Stock:     stock,
		MinStock:  minStock,
		Supplier:  supplier,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.products.Create(product); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Dispatch(model.ProductCreated{
		ProductID: productID,
		Barcode:   barcode,
		Name:      name,
	})

	return product, nil
}

func (s *catalogService) UpdateProduct(productID uuid.UUID, patch ProductPatch) error {
	product, err := s.products.Find(productID)
	if err != nil {
		return err
	}

	if patch.Barcode != nil && *patch.Barcode != product.Barcode {
		newBarcode := strings.TrimSpace(*patch.Barcode)
		if newBarcode == "" {
			return ErrEmptyBarcode
		}
		if existing, err := s.products.FindByBarcode(newBarcode); err == nil && existing.ID != productID {
			return model.ErrBarcodeTaken
		}
		product.Barcode = newBarcode
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return ErrEmptyProductName
		}
		product.Name = name
	}
	if patch.Category != nil {
		product.Category = *patch.Category
	}
	if patch.Price != nil {
		if *patch.Price < 0 {
			return ErrInvalidPrice
		}
		product.Price = *patch.Price
	}
	if patch.Stock != nil {
		if *patch.Stock < 0 {
			return ErrInvalidStock
		}
		product.Stock = *patch.Stock
	}
	if patch.MinStock != nil {
		if *patch.MinStock < 0 {
			return ErrInvalidStock
		}
		product.MinStock = *patch.MinStock
	}
	if patch.Supplier != nil {
		product.Supplier = *patch.Supplier
	}

	product.UpdatedAt = time.Now().UTC()
	if err := s.products.Update(product); err != nil {
		return err
	}

	_ = s.dispatcher.Dispatch(model.ProductUpdated{ProductID: productID})
	return nil
}

// DeleteProduct removes the product if present. Deleting an unknown id is a
// no-op; recorded sales keep their item snapshots either way.
func (s *catalogService) DeleteProduct(productID uuid.UUID) error {
	if _, err := s.products.Find(productID); err != nil {
		if errors.Is(err, model.ErrProductNotFound) {
			return nil
		}
		return err
	}

	if err := s.products.Delete(productID); err != nil {
		return err
	}

	_ = s.dispatcher.Dispatch(model.ProductDeleted{ProductID: productID})
	return nil
}

func (s *catalogService) SetStock(productID uuid.UUID, newStock int) error {
	if newStock < 0 {
		return ErrInvalidStock
	}

	product, err := s.products.Find(productID)
	if err != nil {
		return err
	}

	change := newStock - product.Stock
	product.Stock = newStock
	product.UpdatedAt = time.Now().UTC()

	if err := s.products.Update(product); err != nil {
		return err
	}

	_ = s.dispatcher.Dispatch(model.ProductStockChanged{
		ProductID:    productID,
		ChangeAmount: change,
		NewQuantity:  newStock,
	})
	return nil
}

// AdjustStock applies a signed delta. The adjustment is rejected, not
// clamped, when the result would go negative.
func (s *catalogService) AdjustStock(productID uuid.UUID, delta int) error {
	if delta == 0 {
		return ErrInvalidStockQuantity
	}

	product, err := s.products.Find(productID)
	if err != nil {
		return err
	}
	if product.Stock+delta < 0 {
		return model.ErrInsufficientStock
	}

	product.Stock += delta
	product.UpdatedAt = time.Now().UTC()

	if err := s.products.Update(product); err != nil {
		return err
	}

	_ = s.dispatcher.Dispatch(model.ProductStockChanged{
		ProductID:    productID,
		ChangeAmount: delta,
		NewQuantity:  product.Stock,
	})
	return nil
}

func (s *catalogService) Product(productID uuid.UUID) (*model.Product, error) {
	return s.products.Find(productID)
}

func (s *catalogService) ProductByBarcode(barcode string) (*model.Product, error) {
	return s.products.FindByBarcode(strings.TrimSpace(barcode))
}

func (s *catalogService) Products() ([]model.Product, error) {
	return s.products.List()
}

func (s *catalogService) ProductsByCategory(category string) ([]model.Product, error) {
	return s.filterProducts(func(p *model.Product) bool { return p.Category == category })
}

func (s *catalogService) LowStockProducts() ([]model.Product, error) {
	return s.filterProducts((*model.Product).IsLowStock)
}

func (s *catalogService) OutOfStockProducts() ([]model.Product, error) {
	return s.filterProducts((*model.Product).IsOutOfStock)
}

func (s *catalogService) InventoryValue() (int64, error) {
	products, err := s.products.List()
	if err != nil {
		return 0, err
	}

	var total int64
	for i := range products {
		total += products[i].Price * int64(products[i].Stock)
	}
	return total, nil
}

func (s *catalogService) filterProducts(keep func(*model.Product) bool) ([]model.Product, error) {
	products, err := s.products.List()
	if err != nil {
		return nil, err
	}

	filtered := make([]model.Product, 0, len(products))
	for i := range products {
		if keep(&products[i]) {
			filtered = append(filtered, products[i])
		}
	}
	return filtered, nil
}

func (s *catalogService) AddCategory(name string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyCategoryName
	}

	taken, err := s.categoryNameTaken(name, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, model.ErrCategoryTaken
	}

	categoryID, err := s.categories.NextID()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	category := &model.Category{
		ID:        categoryID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.categories.Create(category); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Dispatch(model.CategoryCreated{CategoryID: categoryID, Name: name})
	return category, nil
}

func (s *catalogService) RenameCategory(categoryID uuid.UUID, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return ErrEmptyCategoryName
	}

	category, err := s.categories.Find(categoryID)
	if err != nil {
		return err
	}

	taken, err := s.categoryNameTaken(newName, categoryID)
	if err != nil {
		return err
	}
	if taken {
		return model.ErrCategoryTaken
	}

	category.Name = newName
	category.UpdatedAt = time.Now().UTC()
	return s.categories.Update(category)
}

func (s *catalogService) DeleteCategory(categoryID uuid.UUID) error {
	if _, err := s.categories.Find(categoryID); err != nil {
		if errors.Is(err, model.ErrCategoryNotFound) {
			return nil
		}
		return err
	}
	return s.categories.Delete(categoryID)
}

func (s *catalogService) Category(categoryID uuid.UUID) (*model.Category, error) {
	return s.categories.Find(categoryID)
}

func (s *catalogService) Categories() ([]model.Category, error) {
	return s.categories.List()
}

// categoryNameTaken matches case-insensitively so "snack" cannot join "Snack".
func (s *catalogService) categoryNameTaken(name string, excludeID uuid.UUID) (bool, error) {
	categories, err := s.categories.List()
	if err != nil {
		return false, err
	}
	for i := range categories {
		if categories[i].ID != excludeID && strings.EqualFold(categories[i].Name, name) {
			return true, nil
		}
	}
	return false, nil
}
