// Package mysql provides sqlx-backed repositories for a server-hosted
// deployment where several cashier clients share one database.
package mysql

import (
	"database/sql"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/karlos2005535/warung-sederhana/pkg/warung/domain/model"
)

type Store struct {
	db *sqlx.DB
}

// Connect opens the database and verifies the connection.
func Connect(dsn string) (*Store, error) {
	db, err := sqlx.Connect("mysql", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "connect to mysql")
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxLifetime(time.Minute * 5)
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Products() model.ProductRepository    { return &productRepository{db: s.db} }
func (s *Store) Categories() model.CategoryRepository { return &categoryRepository{db: s.db} }
func (s *Store) Debts() model.DebtRepository          { return &debtRepository{db: s.db} }
func (s *Store) Sales() model.SaleRepository          { return &saleRepository{db: s.db} }
func (s *Store) Refunds() model.RefundRepository      { return &refundRepository{db: s.db} }
func (s *Store) Users() model.UserRepository          { return &userRepository{db: s.db} }

type productRow struct {
	ID        string    `db:"id"`
	Barcode   string    `db:"barcode"`
	Name      string    `db:"name"`
	Category  string    `db:"category"`
	Price     int64     `db:"price"`
	Stock     int       `db:"stock"`
	MinStock  int       `db:"min_stock"`
	Supplier  string    `db:"supplier"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r productRow) toModel() (model.Product, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return model.Product{}, errors.Wrap(err, "parse product id")
	}
	return model.Product{
		ID:        id,
		Barcode:   r.Barcode,
		Name:      r.Name,
		Category:  r.Category,
		Price:     r.Price,
		Stock:     r.Stock,
		MinStock:  r.MinStock,
		Supplier:  r.Supplier,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}, nil
}

type productRepository struct {
	db *sqlx.DB
}

func (r *productRepository) NextID() (uuid.UUID, error) { return uuid.New(), nil }

func (r *productRepository) Create(product *model.Product) error {
	const query = `
		INSERT INTO products (id, barcode, name, category, price, stock, min_stock, supplier, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.Exec(query,
		product.ID.String(), product.Barcode, product.Name, product.Category,
		product.Price, product.Stock, product.MinStock, product.Supplier,
		product.CreatedAt, product.UpdatedAt,
	)
	return errors.Wrap(err, "insert product")
}

func (r *productRepository) Update(product *model.Product) error {
	const query = `
		UPDATE products
		SET barcode = ?, name = ?, category = ?, price = ?, stock = ?, min_stock = ?, supplier = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.Exec(query,
		product.Barcode, product.Name, product.Category, product.Price,
		product.Stock, product.MinStock, product.Supplier, product.UpdatedAt,
		product.ID.String(),
	)
	if err != nil {
		return errors.Wrap(err, "update product")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "update product rows affected")
	}
	if affected == 0 {
		// Zero rows can also mean an unchanged record; confirm existence.
		var exists int
		if err := r.db.Get(&exists, `SELECT COUNT(1) FROM products WHERE id = ?`, product.ID.String()); err != nil {
			return errors.Wrap(err, "check product existence")
		}
		if exists == 0 {
			return model.ErrProductNotFound
		}
	}
	return nil
}

func (r *productRepository) Delete(id uuid.UUID) error {
	_, err := r.db.Exec(`DELETE FROM products WHERE id = ?`, id.String())
	return errors.Wrap(err, "delete product")
}

func (r *productRepository) Find(id uuid.UUID) (*model.Product, error) {
	return r.findBy(`SELECT * FROM products WHERE id = ?`, id.String())
}

func (r *productRepository) FindByBarcode(barcode string) (*model.Product, error) {
	return r.findBy(`SELECT * FROM products WHERE barcode = ?`, barcode)
}

func (r *productRepository) findBy(query string, arg interface{}) (*model.Product, error) {
	var row productRow
	if err := r.db.Get(&row, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrProductNotFound
		}
		return nil, errors.Wrap(err, "query product")
	}
	product, err := row.toModel()
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) List() ([]model.Product, error) {
	var rows []productRow
	if err := r.db.Select(&rows, `SELECT * FROM products ORDER BY created_at`); err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	products := make([]model.Product, 0, len(rows))
	for _, row := range rows {
		product, err := row.toModel()
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, nil
}

type categoryRow struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type categoryRepository struct {
	db *sqlx.DB
}

func (r *categoryRepository) NextID() (uuid.UUID, error) { return uuid.New(), nil }

func (r *categoryRepository) Create(category *model.Category) error {
	_, err := r.db.Exec(
		`INSERT INTO categories (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		category.ID.String(), category.Name, category.CreatedAt, category.UpdatedAt,
	)
	return errors.Wrap(err, "insert category")
}

func (r *categoryRepository) Update(category *model.Category) error {
	res, err := r.db.Exec(
		`UPDATE categories SET name = ?, updated_at = ? WHERE id = ?`,
		category.Name, category.UpdatedAt, category.ID.String(),
	)
	if err != nil {
		return errors.Wrap(err, "update category")
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		var exists int
		if err := r.db.Get(&exists, `SELECT COUNT(1) FROM categories WHERE id = ?`, category.ID.String()); err == nil && exists == 0 {
			return model.ErrCategoryNotFound
		}
	}
	return nil
}

func (r *categoryRepository) Delete(id uuid.UUID) error {
	_, err := r.db.Exec(`DELETE FROM categories WHERE id = ?`, id.String())
	return errors.Wrap(err, "delete category")
}

func (r *categoryRepository) Find(id uuid.UUID) (*model.Category, error) {
	var row categoryRow
	if err := r.db.Get(&row, `SELECT * FROM categories WHERE id = ?`, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrCategoryNotFound
		}
		return nil, errors.Wrap(err, "query category")
	}
	parsed, err := uuid.Parse(row.ID)
	if err != nil {
		return nil, errors.Wrap(err, "parse category id")
	}
	return &model.Category{ID: parsed, Name: row.Name, CreatedAt: row.CreatedAt, UpdatedAt: row.UpdatedAt}, nil
}

func (r *categoryRepository) List() ([]model.Category, error) {
	var rows []categoryRow
	if err := r.db.Select(&rows, `SELECT * FROM categories ORDER BY name`); err != nil {
		return nil, errors.Wrap(err, "list categories")
	}
	categories := make([]model.Category, 0, len(rows))
	for _, row := range rows {
		parsed, err := uuid.Parse(row.ID)
		if err != nil {
			return nil, errors.Wrap(err, "parse category id")
		}
		categories = append(categories, model.Category{
			ID: parsed, Name: row.Name, CreatedAt: row.CreatedAt, UpdatedAt: row.UpdatedAt,
		})
	}
	return categories, nil
}

type debtRow struct {
	ID           string     `db:"id"`
	CustomerName string     `db:"customer_name"`
	Amount       int64      `db:"amount"`
	Description  string     `db:"description"`
	Status       int        `db:"status"`
	DueDate      time.Time  `db:"due_date"`
	PaidAt       *time.Time `db:"paid_at"`
	CreatedAt    time.Time  `db:"created_at"`
}

func (r debtRow) toModel() (model.Debt, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return model.Debt{}, errors.Wrap(err, "parse debt id")
	}
	return model.Debt{
		ID:           id,
		CustomerName: r.CustomerName,
		Amount:       r.Amount,
		Description:  r.Description,
		Status:       model.DebtStatus(r.Status),
		DueDate:      r.DueDate,
		PaidAt:       r.PaidAt,
		CreatedAt:    r.CreatedAt,
	}, nil
}

type debtRepository struct {
	db *sqlx.DB
}

func (r *debtRepository) NextID() (uuid.UUID, error) { return uuid.New(), nil }

func (r *debtRepository) Create(debt *model.Debt) error {
	_, err := r.db.Exec(
		`INSERT INTO debts (id, customer_name, amount, description, status, due_date, paid_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		debt.ID.String(), debt.CustomerName, debt.Amount, debt.Description,
		int(debt.Status), debt.DueDate, debt.PaidAt, debt.CreatedAt,
	)
	return errors.Wrap(err, "insert debt")
}

func (r *debtRepository) Update(debt *model.Debt) error {
	res, err := r.db.Exec(
		`UPDATE debts SET customer_name = ?, amount = ?, description = ?, status = ?, due_date = ?, paid_at = ? WHERE id = ?`,
		debt.CustomerName, debt.Amount, debt.Description, int(debt.Status),
		debt.DueDate, debt.PaidAt, debt.ID.String(),
	)
	if err != nil {
		return errors.Wrap(err, "update debt")
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		var exists int
		if err := r.db.Get(&exists, `SELECT COUNT(1) FROM debts WHERE id = ?`, debt.ID.String()); err == nil && exists == 0 {
			return model.ErrDebtNotFound
		}
	}
	return nil
}

func (r *debtRepository) Delete(id uuid.UUID) error {
	_, err := r.db.Exec(`DELETE FROM debts WHERE id = ?`, id.String())
	return errors.Wrap(err, "delete debt")
}

func (r *debtRepository) Find(id uuid.UUID) (*model.Debt, error) {
	var row debtRow
	if err := r.db.Get(&row, `SELECT * FROM debts WHERE id = ?`, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrDebtNotFound
		}
		return nil, errors.Wrap(err, "query debt")
	}
	debt, err := row.toModel()
	if err != nil {
		return nil, err
	}
	return &debt, nil
}

func (r *debtRepository) List() ([]model.Debt, error) {
	var rows []debtRow
	if err := r.db.Select(&rows, `SELECT * FROM debts ORDER BY created_at`); err != nil {
		return nil, errors.Wrap(err, "list debts")
	}
	debts := make([]model.Debt, 0, len(rows))
	for _, row := range rows {
		debt, err := row.toModel()
		if err != nil {
			return nil, err
		}
		debts = append(debts, debt)
	}
	return debts, nil
}
