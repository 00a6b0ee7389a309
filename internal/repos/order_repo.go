package repos

import (
	"fmt"

	"cellardoor/internal/domain"

	"github.com/jmoiron/sqlx"
)

type OrderRepo struct {
	db    *sqlx.DB
	stock *StockRepo
}

func NewOrderRepo(db *sqlx.DB, stock *StockRepo) *OrderRepo {
	return &OrderRepo{db: db, stock: stock}
}

// StockConflictError signals a lost conditional-decrement race: stock was
// validated as sufficient but another commit consumed it first.
type StockConflictError struct {
	ProductID string
	Requested int
}

func (e *StockConflictError) Error() string {
	return fmt.Sprintf("stock conflict on %s (requested %d)", e.ProductID, e.Requested)
}

// Commit writes the order header, its line items, and the per-item guarded
// stock decrements in one transaction. Either all of it becomes visible or
// none of it does; a failed decrement aborts the whole unit.
func (r *OrderRepo) Commit(o domain.Order, items []domain.OrderItem) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
	  INSERT INTO orders(id, customer_id, order_date, address, city, postal_code, country,
	                     payment_method, status, total_amount)
	  VALUES(?,?,?,?,?,?,?,?,?,?)
	`, o.ID, o.CustomerID, o.OrderDate, o.Shipping.Address, o.Shipping.City,
		o.Shipping.PostalCode, o.Shipping.Country, o.PaymentMethod, o.Status, o.TotalAmount); err != nil {
		return err
	}

	for _, it := range items {
		if _, err := tx.Exec(`
		  INSERT INTO order_items(order_id, product_id, quantity, unit_price)
		  VALUES(?,?,?,?)
		`, o.ID, it.ProductID, it.Quantity, it.UnitPrice); err != nil {
			return err
		}
		ok, err := r.stock.DecrementTx(tx, it.ProductID, it.Quantity)
		if err != nil {
			return err
		}
		if !ok {
			return &StockConflictError{ProductID: it.ProductID, Requested: it.Quantity}
		}
	}

	return tx.Commit()
}

type orderRow struct {
	ID            string  `db:"id"`
	CustomerID    string  `db:"customer_id"`
	OrderDate     string  `db:"order_date"`
	Address       string  `db:"address"`
	City          string  `db:"city"`
	PostalCode    string  `db:"postal_code"`
	Country       string  `db:"country"`
	PaymentMethod string  `db:"payment_method"`
	Status        string  `db:"status"`
	TotalAmount   float64 `db:"total_amount"`
}

func (row orderRow) toDomain() domain.Order {
	return domain.Order{
		ID:         row.ID,
		CustomerID: row.CustomerID,
		OrderDate:  row.OrderDate,
		Shipping: domain.ShippingAddress{
			Address:    row.Address,
			City:       row.City,
			PostalCode: row.PostalCode,
			Country:    row.Country,
		},
		PaymentMethod: row.PaymentMethod,
		Status:        row.Status,
		TotalAmount:   row.TotalAmount,
	}
}

func (r *OrderRepo) Get(orderID string) (domain.Order, error) {
	var row orderRow
	if err := r.db.Get(&row, `
	  SELECT id, customer_id, order_date, address, city, postal_code, country,
	         payment_method, status, total_amount
	  FROM orders WHERE id = ?`, orderID); err != nil {
		return domain.Order{}, err
	}
	o := row.toDomain()

	if err := r.db.Select(&o.Items, `
	  SELECT order_id, product_id, quantity, unit_price
	  FROM order_items WHERE order_id = ?`, orderID); err != nil {
		return domain.Order{}, err
	}
	return o, nil
}

func (r *OrderRepo) ListByCustomer(customerID string) ([]domain.Order, error) {
	var rows []orderRow
	if err := r.db.Select(&rows, `
	  SELECT id, customer_id, order_date, address, city, postal_code, country,
	         payment_method, status, total_amount
	  FROM orders WHERE customer_id = ?
	  ORDER BY datetime(order_date) DESC`, customerID); err != nil {
		return nil, err
	}
	out := make([]domain.Order, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *OrderRepo) UpdateStatus(orderID, status string) error {
	_, err := r.db.Exec(`UPDATE orders SET status = ? WHERE id = ?`, status, orderID)
	return err
}
