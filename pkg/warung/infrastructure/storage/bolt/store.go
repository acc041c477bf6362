// Package bolt provides BoltDB-backed repositories.
//
// All collections live in a single database file, one bucket per collection
// with JSON values keyed by record UUID. Every write runs inside a single
// bolt transaction, so a crash cannot leave a record half-written.
package bolt

import (
	"encoding/json"
	"time"

	bolt "github.com/boltdb/bolt"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/karlos2005535/warung-sederhana/pkg/warung/domain/model"
)

const (
	productsBucket   = "products"
	categoriesBucket = "categories"
	debtsBucket      = "debts"
	salesBucket      = "sales"
	refundsBucket    = "refunds"
	usersBucket      = "users"
)

var buckets = []string{
	productsBucket,
	categoriesBucket,
	debtsBucket,
	salesBucket,
	refundsBucket,
	usersBucket,
}

// Store owns the database handle and hands out per-collection repositories.
type Store struct {
	db *bolt.DB
}

// Open opens (or creates) the database file and ensures every bucket exists.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, errors.Wrap(err, "open bolt database")
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range buckets {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create buckets")
	}

	return &Store{db: db}, nil
}

// Close releases the database file lock.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Products() model.ProductRepository {
	return &productRepository{store: s}
}

func (s *Store) Categories() model.CategoryRepository {
	return &categoryRepository{store: s}
}

func (s *Store) Debts() model.DebtRepository {
	return &debtRepository{store: s}
}

func (s *Store) Sales() model.SaleRepository {
	return &saleRepository{store: s}
}

func (s *Store) Refunds() model.RefundRepository {
	return &refundRepository{store: s}
}

func (s *Store) Users() model.UserRepository {
	return &userRepository{store: s}
}

func (s *Store) put(bucket string, id uuid.UUID, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "marshal %s record", bucket)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucket)).Put([]byte(id.String()), data)
	})
}

func (s *Store) get(bucket string, id uuid.UUID, v interface{}, notFound error) error {
	return s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket([]byte(bucket)).Get([]byte(id.String()))
		if data == nil {
			return notFound
		}
		return errors.Wrapf(json.Unmarshal(data, v), "unmarshal %s record", bucket)
	})
}

func (s *Store) delete(bucket string, id uuid.UUID) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucket)).Delete([]byte(id.String()))
	})
}

// forEach walks a bucket, skipping values that no longer decode. A corrupt
// record therefore degrades to an absent one instead of poisoning every read.
func (s *Store) forEach(bucket string, fn func(data []byte) error) error {
	return s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucket)).ForEach(func(_, data []byte) error {
			return fn(data)
		})
	})
}

type productRepository struct {
	store *Store
}

func (r *productRepository) NextID() (uuid.UUID, error) { return uuid.New(), nil }

func (r *productRepository) Create(product *model.Product) error {
	return r.store.put(productsBucket, product.ID, product)
}

func (r *productRepository) Update(product *model.Product) error {
	var existing model.Product
	if err := r.store.get(productsBucket, product.ID, &existing, model.ErrProductNotFound); err != nil {
		return err
	}
	return r.store.put(productsBucket, product.ID, product)
}

func (r *productRepository) Delete(id uuid.UUID) error {
	return r.store.delete(productsBucket, id)
}

func (r *productRepository) Find(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	if err := r.store.get(productsBucket, id, &product, model.ErrProductNotFound); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindByBarcode(barcode string) (*model.Product, error) {
	products, err := r.List()
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].Barcode == barcode {
			return &products[i], nil
		}
	}
	return nil, model.ErrProductNotFound
}

func (r *productRepository) List() ([]model.Product, error) {
	products := []model.Product{}
	err := r.store.forEach(productsBucket, func(data []byte) error {
		var product model.Product
		if err := json.Unmarshal(data, &product); err != nil {
			return nil
		}
		products = append(products, product)
		return nil
	})
	return products, err
}

type categoryRepository struct {
	store *Store
}

func (r *categoryRepository) NextID() (uuid.UUID, error) { return uuid.New(), nil }

func (r *categoryRepository) Create(category *model.Category) error {
	return r.store.put(categoriesBucket, category.ID, category)
}

func (r *categoryRepository) Update(category *model.Category) error {
	var existing model.Category
	if err := r.store.get(categoriesBucket, category.ID, &existing, model.ErrCategoryNotFound); err != nil {
		return err
	}
	return r.store.put(categoriesBucket, category.ID, category)
}

func (r *categoryRepository) Delete(id uuid.UUID) error {
	return r.store.delete(categoriesBucket, id)
}

func (r *categoryRepository) Find(id uuid.UUID) (*model.Category, error) {
	var category model.Category
	if err := r.store.get(categoriesBucket, id, &category, model.ErrCategoryNotFound); err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) List() ([]model.Category, error) {
	categories := []model.Category{}
	err := r.store.forEach(categoriesBucket, func(data []byte) error {
		var category model.Category
		if err := json.Unmarshal(data, &category); err != nil {
			return nil
		}
		categories = append(categories, category)
		return nil
	})
	return categories, err
}

type debtRepository struct {
	store *Store
}

func (r *debtRepository) NextID() (uuid.UUID, error) { return uuid.New(), nil }

func (r *debtRepository) Create(debt *model.Debt) error {
	return r.store.put(debtsBucket, debt.ID, debt)
}

func (r *debtRepository) Update(debt *model.Debt) error {
	var existing model.Debt
	if err := r.store.get(debtsBucket, debt.ID, &existing, model.ErrDebtNotFound); err != nil {
		return err
	}
	return r.store.put(debtsBucket, debt.ID, debt)
}

func (r *debtRepository) Delete(id uuid.UUID) error {
	return r.store.delete(debtsBucket, id)
}

func (r *debtRepository) Find(id uuid.UUID) (*model.Debt, error) {
	var debt model.Debt
	if err := r.store.get(debtsBucket, id, &debt, model.ErrDebtNotFound); err != nil {
		return nil, err
	}
	return &debt, nil
}

func (r *debtRepository) List() ([]model.Debt, error) {
	debts := []model.Debt{}
	err := r.store.forEach(debtsBucket, func(data []byte) error {
		var debt model.Debt
		if err := json.Unmarshal(data, &debt); err != nil {
			return nil
		}
		debts = append(debts, debt)
		return nil
	})
	return debts, err
}

type saleRepository struct {
	store *Store
}

func (r *saleRepository) NextID() (uuid.UUID, error) { return uuid.New(), nil }

func (r *saleRepository) Create(sale *model.Sale) error {
	return r.store.put(salesBucket, sale.ID, sale)
}

func (r *saleRepository) Update(sale *model.Sale) error {
	var existing model.Sale
	if err := r.store.get(salesBucket, sale.ID, &existing, model.ErrSaleNotFound); err != nil {
		return err
	}
	return r.store.put(salesBucket, sale.ID, sale)
}

func (r *saleRepository) Find(id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	if err := r.store.get(salesBucket, id, &sale, model.ErrSaleNotFound); err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *saleRepository) List() ([]model.Sale, error) {
	sales := []model.Sale{}
	err := r.store.forEach(salesBucket, func(data []byte) error {
		var sale model.Sale
		if err := json.Unmarshal(data, &sale); err != nil {
			return nil
		}
		sales = append(sales, sale)
		return nil
	})
	return sales, err
}

type refundRepository struct {
	store *Store
}

func (r *refundRepository) NextID() (uuid.UUID, error) { return uuid.New(), nil }

func (r *refundRepository) Create(refund *model.Refund) error {
	return r.store.put(refundsBucket, refund.ID, refund)
}

func (r *refundRepository) FindBySale(saleID uuid.UUID) (*model.Refund, error) {
	refunds, err := r.List()
	if err != nil {
		return nil, err
	}
	for i := range refunds {
		if refunds[i].SaleID == saleID {
			return &refunds[i], nil
		}
	}
	return nil, model.ErrRefundNotFound
}

func (r *refundRepository) List() ([]model.Refund, error) {
	refunds := []model.Refund{}
	err := r.store.forEach(refundsBucket, func(data []byte) error {
		var refund model.Refund
		if err := json.Unmarshal(data, &refund); err != nil {
			return nil
		}
		refunds = append(refunds, refund)
		return nil
	})
	return refunds, err
}

type userRepository struct {
	store *Store
}

func (r *userRepository) NextID() (uuid.UUID, error) { return uuid.New(), nil }

func (r *userRepository) Create(user *model.User) error {
	return r.store.put(usersBucket, user.ID, user)
}

func (r *userRepository) Find(id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.store.get(usersBucket, id, &user, model.ErrUserNotFound); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(username string) (*model.User, error) {
	var found *model.User
	err := r.store.forEach(usersBucket, func(data []byte) error {
		var user model.User
		if err := json.Unmarshal(data, &user); err != nil {
			return nil
		}
		if user.Username == username {
			found = &user
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, model.ErrUserNotFound
	}
	return found, nil
}
