package repos

import (
	"cellardoor/internal/domain"

	"github.com/jmoiron/sqlx"
)

type StockRepo struct{ db *sqlx.DB }

func NewStockRepo(db *sqlx.DB) *StockRepo { return &StockRepo{db: db} }

// QuantityFor returns current stock for one product. sql.ErrNoRows means no
// stock record exists yet (callers treat that as zero).
func (r *StockRepo) QuantityFor(productID string) (int, error) {
	var qty int
	err := r.db.Get(&qty, `SELECT quantity FROM product_stocks WHERE product_id = ?`, productID)
	if err != nil {
		return 0, err
	}
	return qty, nil
}

// Snapshot reads stock for a set of products in one query. Products without
// a stock record are absent from the returned map.
func (r *StockRepo) Snapshot(productIDs []string) (map[string]int, error) {
	out := make(map[string]int, len(productIDs))
	if len(productIDs) == 0 {
		return out, nil
	}
	query, args, err := sqlx.In(`
	  SELECT product_id, quantity FROM product_stocks WHERE product_id IN (?)`, productIDs)
	if err != nil {
		return nil, err
	}
	var rows []domain.StockRecord
	if err := r.db.Select(&rows, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}
	for _, s := range rows {
		out[s.ProductID] = s.Quantity
	}
	return out, nil
}

func (r *StockRepo) ListAll() ([]domain.StockRecord, error) {
	var rows []domain.StockRecord
	err := r.db.Select(&rows, `
	  SELECT s.product_id, s.quantity
	  FROM product_stocks s JOIN products p ON p.product_id = s.product_id
	  ORDER BY p.name`)
	return rows, err
}

// Upsert sets the quantity for a product, creating the record if needed.
func (r *StockRepo) Upsert(productID string, qty int) error {
	_, err := r.db.Exec(`
	  INSERT INTO product_stocks(product_id, quantity, updated_at)
	  VALUES (?, ?, CURRENT_TIMESTAMP)
	  ON CONFLICT(product_id) DO UPDATE SET quantity = excluded.quantity, updated_at = CURRENT_TIMESTAMP
	`, productID, qty)
	return err
}

// DecrementTx subtracts "by" units inside the caller's transaction, but only
// if enough stock exists at the instant of the write. It reports whether the
// guarded update applied; false means another commit consumed the stock first.
func (r *StockRepo) DecrementTx(tx *sqlx.Tx, productID string, by int) (bool, error) {
	res, err := tx.Exec(`
	  UPDATE product_stocks
	  SET quantity = quantity - ?, updated_at = CURRENT_TIMESTAMP
	  WHERE product_id = ? AND quantity >= ?
	`, by, productID, by)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
