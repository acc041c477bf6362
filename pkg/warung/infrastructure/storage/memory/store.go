// Package memory provides map-backed repositories guarded by a mutex.
// Nothing survives a restart; the backend exists for tests and demo runs.
package memory

import (
	"sync"

	"github.com/google/uuid"

	"github.com/karlos2005535/warung-sederhana/pkg/warung/domain/model"
)

type Store struct {
	mu         sync.RWMutex
	products   map[uuid.UUID]*model.Product
	categories map[uuid.UUID]*model.Category
	debts      map[uuid.UUID]*model.Debt
	sales      map[uuid.UUID]*model.Sale
	refunds    map[uuid.UUID]*model.Refund
	users      map[uuid.UUID]*model.User
}

func New() *Store {
	return &Store{
		products:   make(map[uuid.UUID]*model.Product),
		categories: make(map[uuid.UUID]*model.Category),
		debts:      make(map[uuid.UUID]*model.Debt),
		sales:      make(map[uuid.UUID]*model.Sale),
		refunds:    make(map[uuid.UUID]*model.Refund),
		users:      make(map[uuid.UUID]*model.User),
	}
}

func (s *Store) Products() model.ProductRepository    { return &productRepository{store: s} }
func (s *Store) Categories() model.CategoryRepository { return &categoryRepository{store: s} }
func (s *Store) Debts() model.DebtRepository          { return &debtRepository{store: s} }
func (s *Store) Sales() model.SaleRepository          { return &saleRepository{store: s} }
func (s *Store) Refunds() model.RefundRepository      { return &refundRepository{store: s} }
func (s *Store) Users() model.UserRepository          { return &userRepository{store: s} }

type productRepository struct {
	store *Store
}

func (r *productRepository) NextID() (uuid.UUID, error) { return uuid.New(), nil }

func (r *productRepository) Create(product *model.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	clone := *product
	r.store.products[product.ID] = &clone
	return nil
}

func (r *productRepository) Update(product *model.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.products[product.ID]; !ok {
		return model.ErrProductNotFound
	}
	clone := *product
	r.store.products[product.ID] = &clone
	return nil
}

func (r *productRepository) Delete(id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.products, id)
	return nil
}

func (r *productRepository) Find(id uuid.UUID) (*model.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	if product, ok := r.store.products[id]; ok {
		clone := *product
		return &clone, nil
	}
	return nil, model.ErrProductNotFound
}

func (r *productRepository) FindByBarcode(barcode string) (*model.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, product := range r.store.products {
		if product.Barcode == barcode {
			clone := *product
			return &clone, nil
		}
	}
	return nil, model.ErrProductNotFound
}

func (r *productRepository) List() ([]model.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]model.Product, 0, len(r.store.products))
	for _, product := range r.store.products {
		out = append(out, *product)
	}
	return out, nil
}

type categoryRepository struct {
	store *Store
}

func (r *categoryRepository) NextID() (uuid.UUID, error) { return uuid.New(), nil }

func (r *categoryRepository) Create(category *model.Category) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	clone := *category
	r.store.categories[category.ID] = &clone
	return nil
}

func (r *categoryRepository) Update(category *model.Category) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.categories[category.ID]; !ok {
		return model.ErrCategoryNotFound
	}
	clone := *category
	r.store.categories[category.ID] = &clone
	return nil
}

func (r *categoryRepository) Delete(id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.categories, id)
	return nil
}

func (r *categoryRepository) Find(id uuid.UUID) (*model.Category, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	if category, ok := r.store.categories[id]; ok {
		clone := *category
		return &clone, nil
	}
	return nil, model.ErrCategoryNotFound
}

func (r *categoryRepository) List() ([]model.Category, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]model.Category, 0, len(r.store.categories))
	for _, category := range r.store.categories {
		out = append(out, *category)
	}
	return out, nil
}

type debtRepository struct {
	store *Store
}

func (r *debtRepository) NextID() (uuid.UUID, error) { return uuid.New(), nil }

func (r *debtRepository) Create(debt *model.Debt) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	clone := *debt
	r.store.debts[debt.ID] = &clone
	return nil
}

func (r *debtRepository) Update(debt *model.Debt) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.debts[debt.ID]; !ok {
		return model.ErrDebtNotFound
	}
	clone := *debt
	r.store.debts[debt.ID] = &clone
	return nil
}

func (r *debtRepository) Delete(id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.debts, id)
	return nil
}

func (r *debtRepository) Find(id uuid.UUID) (*model.Debt, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	if debt, ok := r.store.debts[id]; ok {
		clone := *debt
		return &clone, nil
	}
	return nil, model.ErrDebtNotFound
}

func (r *debtRepository) List() ([]model.Debt, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]model.Debt, 0, len(r.store.debts))
	for _, debt := range r.store.debts {
		out = append(out, *debt)
	}
	return out, nil
}

type saleRepository struct {
	store *Store
}

func (r *saleRepository) NextID() (uuid.UUID, error) { return uuid.New(), nil }

func (r *saleRepository) Create(sale *model.Sale) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	clone := *sale
	r.store.sales[sale.ID] = &clone
	return nil
}

func (r *saleRepository) Update(sale *model.Sale) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.sales[sale.ID]; !ok {
		return model.ErrSaleNotFound
	}
	clone := *sale
	r.store.sales[sale.ID] = &clone
	return nil
}

func (r *saleRepository) Find(id uuid.UUID) (*model.Sale, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	if sale, ok := r.store.sales[id]; ok {
		clone := *sale
		return &clone, nil
	}
	return nil, model.ErrSaleNotFound
}

func (r *saleRepository) List() ([]model.Sale, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]model.Sale, 0, len(r.store.sales))
	for _, sale := range r.store.sales {
		out = append(out, *sale)
	}
	return out, nil
}

type refundRepository struct {
	store *Store
}

func (r *refundRepository) NextID() (uuid.UUID, error) { return uuid.New(), nil }

func (r *refundRepository) Create(refund *model.Refund) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	clone := *refund
	r.store.refunds[refund.ID] = &clone
	return nil
}

func (r *refundRepository) FindBySale(saleID uuid.UUID) (*model.Refund, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, refund := range r.store.refunds {
		if refund.SaleID == saleID {
			clone := *refund
			return &clone, nil
		}
	}
	return nil, model.ErrRefundNotFound
}

func (r *refundRepository) List() ([]model.Refund, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]model.Refund, 0, len(r.store.refunds))
	for _, refund := range r.store.refunds {
		out = append(out, *refund)
	}
	return out, nil
}

type userRepository struct {
	store *Store
}

func (r *userRepository) NextID() (uuid.UUID, error) { return uuid.New(), nil }

func (r *userRepository) Create(user *model.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	clone := *user
	r.store.users[user.ID] = &clone
	return nil
}

func (r *userRepository) Find(id uuid.UUID) (*model.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	if user, ok := r.store.users[id]; ok {
		clone := *user
		return &clone, nil
	}
	return nil, model.ErrUserNotFound
}

func (r *userRepository) FindByUsername(username string) (*model.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, user := range r.store.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, model.ErrUserNotFound
}
