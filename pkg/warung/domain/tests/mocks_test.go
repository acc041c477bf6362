package tests

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/karlos2005535/warung-sederhana/pkg/warung/domain/model"
	"github.com/karlos2005535/warung-sederhana/pkg/warung/domain/service"
)

type mockProductRepository struct {
	store map[uuid.UUID]*model.Product
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{store: make(map[uuid.UUID]*model.Product)}
}

func (m *mockProductRepository) NextID() (uuid.UUID, error) { return uuid.New(), nil }

func (m *mockProductRepository) Create(p *model.Product) error {
	clone := *p
	m.store[p.ID] = &clone
	return nil
}

func (m *mockProductRepository) Update(p *model.Product) error {
	if _, ok := m.store[p.ID]; !ok {
		return model.ErrProductNotFound
	}
	clone := *p
	m.store[p.ID] = &clone
	return nil
}

func (m *mockProductRepository) Delete(id uuid.UUID) error {
	delete(m.store, id)
	return nil
}

func (m *mockProductRepository) Find(id uuid.UUID) (*model.Product, error) {
	if p, ok := m.store[id]; ok {
		clone := *p
		return &clone, nil
	}
	return nil, model.ErrProductNotFound
}

func (m *mockProductRepository) FindByBarcode(barcode string) (*model.Product, error) {
	for _, p := range m.store {
		if p.Barcode == barcode {
			clone := *p
			return &clone, nil
		}
	}
	return nil, model.ErrProductNotFound
}

func (m *mockProductRepository) List() ([]model.Product, error) {
	out := make([]model.Product, 0, len(m.store))
	for _, p := range m.store {
		out = append(out, *p)
	}
	return out, nil
}

type mockCategoryRepository struct {
	store map[uuid.UUID]*model.Category
}

func newMockCategoryRepository() *mockCategoryRepository {
	return &mockCategoryRepository{store: make(map[uuid.UUID]*model.Category)}
}

func (m *mockCategoryRepository) NextID() (uuid.UUID, error) { return uuid.New(), nil }

func (m *mockCategoryRepository) Create(c *model.Category) error {
	clone := *c
	m.store[c.ID] = &clone
	return nil
}

func (m *mockCategoryRepository) Update(c *model.Category) error {
	if _, ok := m.store[c.ID]; !ok {
		return model.ErrCategoryNotFound
	}
	clone := *c
	m.store[c.ID] = &clone
	return nil
}

func (m *mockCategoryRepository) Delete(id uuid.UUID) error {
	delete(m.store, id)
	return nil
}

func (m *mockCategoryRepository) Find(id uuid.UUID) (*model.Category, error) {
	if c, ok := m.store[id]; ok {
		clone := *c
		return &clone, nil
	}
	return nil, model.ErrCategoryNotFound
}

func (m *mockCategoryRepository) List() ([]model.Category, error) {
	out := make([]model.Category, 0, len(m.store))
	for _, c := range m.store {
		out = append(out, *c)
	}
	return out, nil
}

type mockDebtRepository struct {
	store map[uuid.UUID]*model.Debt
}

func newMockDebtRepository() *mockDebtRepository {
	return &mockDebtRepository{store: make(map[uuid.UUID]*model.Debt)}
}

func (m *mockDebtRepository) NextID() (uuid.UUID, error) { return uuid.New(), nil }

func (m *mockDebtRepository) Create(d *model.Debt) error {
	clone := *d
	m.store[d.ID] = &clone
	return nil
}

func (m *mockDebtRepository) Update(d *model.Debt) error {
	if _, ok := m.store[d.ID]; !ok {
		return model.ErrDebtNotFound
	}
	clone := *d
	m.store[d.ID] = &clone
	return nil
}

func (m *mockDebtRepository) Delete(id uuid.UUID) error {
	delete(m.store, id)
	return nil
}

func (m *mockDebtRepository) Find(id uuid.UUID) (*model.Debt, error) {
	if d, ok := m.store[id]; ok {
		clone := *d
		return &clone, nil
	}
	return nil, model.ErrDebtNotFound
}

func (m *mockDebtRepository) List() ([]model.Debt, error) {
	out := make([]model.Debt, 0, len(m.store))
	for _, d := range m.store {
		out = append(out, *d)
	}
	return out, nil
}

type mockSaleRepository struct {
	store map[uuid.UUID]*model.Sale
}

func newMockSaleRepository() *mockSaleRepository {
	return &mockSaleRepository{store: make(map[uuid.UUID]*model.Sale)}
}

func (m *mockSaleRepository) NextID() (uuid.UUID, error) { return uuid.New(), nil }

func (m *mockSaleRepository) Create(s *model.Sale) error {
	clone := *s
	m.store[s.ID] = &clone
	return nil
}

func (m *mockSaleRepository) Update(s *model.Sale) error {
	if _, ok := m.store[s.ID]; !ok {
		return model.ErrSaleNotFound
	}
	clone := *s
	m.store[s.ID] = &clone
	return nil
}

func (m *mockSaleRepository) Find(id uuid.UUID) (*model.Sale, error) {
	if s, ok := m.store[id]; ok {
		clone := *s
		return &clone, nil
	}
	return nil, model.ErrSaleNotFound
}

func (m *mockSaleRepository) List() ([]model.Sale, error) {
	out := make([]model.Sale, 0, len(m.store))
	for _, s := range m.store {
		out = append(out, *s)
	}
	return out, nil
}

type mockRefundRepository struct {
	store map[uuid.UUID]*model.Refund
}

func newMockRefundRepository() *mockRefundRepository {
	return &mockRefundRepository{store: make(map[uuid.UUID]*model.Refund)}
}

func (m *mockRefundRepository) NextID() (uuid.UUID, error) { return uuid.New(), nil }

func (m *mockRefundRepository) Create(r *model.Refund) error {
	clone := *r
	m.store[r.ID] = &clone
	return nil
}

func (m *mockRefundRepository) FindBySale(saleID uuid.UUID) (*model.Refund, error) {
	for _, r := range m.store {
		if r.SaleID == saleID {
			clone := *r
			return &clone, nil
		}
	}
	return nil, model.ErrRefundNotFound
}

func (m *mockRefundRepository) List() ([]model.Refund, error) {
	out := make([]model.Refund, 0, len(m.store))
	for _, r := range m.store {
		out = append(out, *r)
	}
	return out, nil
}

type mockUserRepository struct {
	store map[uuid.UUID]*model.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{store: make(map[uuid.UUID]*model.User)}
}

func (m *mockUserRepository) NextID() (uuid.UUID, error) { return uuid.New(), nil }

func (m *mockUserRepository) Create(u *model.User) error {
	clone := *u
	m.store[u.ID] = &clone
	return nil
}

func (m *mockUserRepository) Find(id uuid.UUID) (*model.User, error) {
	if u, ok := m.store[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) FindByUsername(username string) (*model.User, error) {
	for _, u := range m.store {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, model.ErrUserNotFound
}

type mockPasswordManager struct{}

func (m *mockPasswordManager) Hash(pwd string) (string, error) {
	if pwd == "" {
		return "", errors.New("empty password")
	}
	return fmt.Sprintf("%s-hashed", pwd), nil
}

func (m *mockPasswordManager) Check(hashed, pwd string) (bool, error) {
	return hashed == fmt.Sprintf("%s-hashed", pwd), nil
}

type mockEventDispatcher struct {
	events []service.Event
}

func (m *mockEventDispatcher) Dispatch(event service.Event) error {
	m.events = append(m.events, event)
	return nil
}

func (m *mockEventDispatcher) Reset() {
	m.events = nil
}
