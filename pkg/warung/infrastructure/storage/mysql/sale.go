package mysql

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/karlos2005535/warung-sederhana/pkg/warung/domain/model"
)

type saleRow struct {
	ID           string     `db:"id"`
	Total        int64      `db:"total"`
	CashReceived int64      `db:"cash_received"`
	ChangeDue    int64      `db:"change_due"`
	Status       int        `db:"status"`
	CreatedAt    time.Time  `db:"created_at"`
	CancelledAt  *time.Time `db:"cancelled_at"`
}

type saleItemRow struct {
	SaleID    string `db:"sale_id"`
	ProductID string `db:"product_id"`
	Name      string `db:"name"`
	Price     int64  `db:"price"`
	Quantity  int    `db:"quantity"`
}

type saleRepository struct {
	db *sqlx.DB
}

func (r *saleRepository) NextID() (uuid.UUID, error) { return uuid.New(), nil }

// Create writes the sale header and its lines in one transaction.
func (r *saleRepository) Create(sale *model.Sale) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return errors.Wrap(err, "begin sale transaction")
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO sales (id, total, cash_received, change_due, status, created_at, cancelled_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sale.ID.String(), sale.Total, sale.CashReceived, sale.Change,
		int(sale.Status), sale.CreatedAt, sale.CancelledAt,
	)
	if err != nil {
		return errors.Wrap(err, "insert sale")
	}

	for _, item := range sale.Items {
		_, err = tx.Exec(
			`INSERT INTO sale_items (sale_id, product_id, name, price, quantity) VALUES (?, ?, ?, ?, ?)`,
			sale.ID.String(), item.ProductID.String(), item.Name, item.Price, item.Quantity,
		)
		if err != nil {
			return errors.Wrap(err, "insert sale item")
		}
	}

	return errors.Wrap(tx.Commit(), "commit sale")
}

// Update touches only the mutable header fields; sale lines never change
// after the fact.
func (r *saleRepository) Update(sale *model.Sale) error {
	res, err := r.db.Exec(
		`UPDATE sales SET status = ?, cancelled_at = ? WHERE id = ?`,
		int(sale.Status), sale.CancelledAt, sale.ID.String(),
	)
	if err != nil {
		return errors.Wrap(err, "update sale")
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		var exists int
		if err := r.db.Get(&exists, `SELECT COUNT(1) FROM sales WHERE id = ?`, sale.ID.String()); err == nil && exists == 0 {
			return model.ErrSaleNotFound
		}
	}
	return nil
}

func (r *saleRepository) Find(id uuid.UUID) (*model.Sale, error) {
	var row saleRow
	if err := r.db.Get(&row, `SELECT * FROM sales WHERE id = ?`, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrSaleNotFound
		}
		return nil, errors.Wrap(err, "query sale")
	}

	sale, err := row.toModel()
	if err != nil {
		return nil, err
	}
	items, err := r.itemsFor(id)
	if err != nil {
		return nil, err
	}
	sale.Items = items
	return &sale, nil
}

func (r *saleRepository) List() ([]model.Sale, error) {
	var rows []saleRow
	if err := r.db.Select(&rows, `SELECT * FROM sales ORDER BY created_at`); err != nil {
		return nil, errors.Wrap(err, "list sales")
	}

	sales := make([]model.Sale, 0, len(rows))
	for _, row := range rows {
		sale, err := row.toModel()
		if err != nil {
			return nil, err
		}
		items, err := r.itemsFor(sale.ID)
		if err != nil {
			return nil, err
		}
		sale.Items = items
		sales = append(sales, sale)
	}
	return sales, nil
}

func (r saleRow) toModel() (model.Sale, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return model.Sale{}, errors.Wrap(err, "parse sale id")
	}
	return model.Sale{
		ID:           id,
		Total:        r.Total,
		CashReceived: r.CashReceived,
		Change:       r.ChangeDue,
		Status:       model.SaleStatus(r.Status),
		CreatedAt:    r.CreatedAt,
		CancelledAt:  r.CancelledAt,
	}, nil
}

func (r *saleRepository) itemsFor(saleID uuid.UUID) ([]model.SaleItem, error) {
	var rows []saleItemRow
	if err := r.db.Select(&rows, `SELECT * FROM sale_items WHERE sale_id = ?`, saleID.String()); err != nil {
		return nil, errors.Wrap(err, "list sale items")
	}
	items := make([]model.SaleItem, 0, len(rows))
	for _, row := range rows {
		productID, err := uuid.Parse(row.ProductID)
		if err != nil {
			return nil, errors.Wrap(err, "parse sale item product id")
		}
		items = append(items, model.SaleItem{
			ProductID: productID,
			Name:      row.Name,
			Price:     row.Price,
			Quantity:  row.Quantity,
		})
	}
	return items, nil
}

type refundRow struct {
	ID        string    `db:"id"`
	SaleID    string    `db:"sale_id"`
	Amount    int64     `db:"amount"`
	Reason    string    `db:"reason"`
	CreatedAt time.Time `db:"created_at"`
}

func (r refundRow) toModel() (model.Refund, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return model.Refund{}, errors.Wrap(err, "parse refund id")
	}
	saleID, err := uuid.Parse(r.SaleID)
	if err != nil {
		return model.Refund{}, errors.Wrap(err, "parse refund sale id")
	}
	return model.Refund{
		ID:        id,
		SaleID:    saleID,
		Amount:    r.Amount,
		Reason:    r.Reason,
		CreatedAt: r.CreatedAt,
	}, nil
}

type refundRepository struct {
	db *sqlx.DB
}

func (r *refundRepository) NextID() (uuid.UUID, error) { return uuid.New(), nil }

func (r *refundRepository) Create(refund *model.Refund) error {
	_, err := r.db.Exec(
		`INSERT INTO refunds (id, sale_id, amount, reason, created_at) VALUES (?, ?, ?, ?, ?)`,
		refund.ID.String(), refund.SaleID.String(), refund.Amount, refund.Reason, refund.CreatedAt,
	)
	return errors.Wrap(err, "insert refund")
}

func (r *refundRepository) FindBySale(saleID uuid.UUID) (*model.Refund, error) {
	var row refundRow
	if err := r.db.Get(&row, `SELECT * FROM refunds WHERE sale_id = ?`, saleID.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrRefundNotFound
		}
		return nil, errors.Wrap(err, "query refund")
	}
	refund, err := row.toModel()
	if err != nil {
		return nil, err
	}
	return &refund, nil
}

func (r *refundRepository) List() ([]model.Refund, error) {
	var rows []refundRow
	if err := r.db.Select(&rows, `SELECT * FROM refunds ORDER BY created_at`); err != nil {
		return nil, errors.Wrap(err, "list refunds")
	}
	refunds := make([]model.Refund, 0, len(rows))
	for _, row := range rows {
		refund, err := row.toModel()
		if err != nil {
			return nil, err
		}
		refunds = append(refunds, refund)
	}
	return refunds, nil
}

type userRow struct {
	ID             string    `db:"id"`
	Username       string    `db:"username"`
	HashedPassword string    `db:"hashed_password"`
	CreatedAt      time.Time `db:"created_at"`
}

func (r userRow) toModel() (model.User, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return model.User{}, errors.Wrap(err, "parse user id")
	}
	return model.User{
		ID:             id,
		Username:       r.Username,
		HashedPassword: r.HashedPassword,
		CreatedAt:      r.CreatedAt,
	}, nil
}

type userRepository struct {
	db *sqlx.DB
}

func (r *userRepository) NextID() (uuid.UUID, error) { return uuid.New(), nil }

func (r *userRepository) Create(user *model.User) error {
	_, err := r.db.Exec(
		`INSERT INTO users (id, username, hashed_password, created_at) VALUES (?, ?, ?, ?)`,
		user.ID.String(), user.Username, user.HashedPassword, user.CreatedAt,
	)
	return errors.Wrap(err, "insert user")
}

func (r *userRepository) Find(id uuid.UUID) (*model.User, error) {
	return r.findBy(`SELECT * FROM users WHERE id = ?`, id.String())
}

func (r *userRepository) FindByUsername(username string) (*model.User, error) {
	return r.findBy(`SELECT * FROM users WHERE username = ?`, username)
}

func (r *userRepository) findBy(query string, arg interface{}) (*model.User, error) {
	var row userRow
	if err := r.db.Get(&row, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, errors.Wrap(err, "query user")
	}
	user, err := row.toModel()
	if err != nil {
		return nil, err
	}
	return &user, nil
}
