package repos

import (
	"database/sql"

	"cellardoor/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

// Cart ids mirror their owner key: session carts use the session id,
// account carts the account id. The two column uniques keep one cart per owner.

func (r *CartRepo) EnsureSessionCart(sessionID string) (string, error) {
	var cartID string
	if err := r.db.Get(&cartID, `SELECT id FROM carts WHERE session_id = ?`, sessionID); err == nil {
		return cartID, nil
	}
	_, err := r.db.Exec(`INSERT INTO carts(id, session_id, updated_at) VALUES(?,?,CURRENT_TIMESTAMP)`,
		sessionID, sessionID)
	if err != nil {
		return "", err
	}
	return sessionID, nil
}

func (r *CartRepo) EnsureAccountCart(accountID string) (string, error) {
	var cartID string
	if err := r.db.Get(&cartID, `SELECT id FROM carts WHERE account_id = ?`, accountID); err == nil {
		return cartID, nil
	}
	_, err := r.db.Exec(`INSERT INTO carts(id, account_id, updated_at) VALUES(?,?,CURRENT_TIMESTAMP)`,
		accountID, accountID)
	if err != nil {
		return "", err
	}
	return accountID, nil
}

// AccountCartExists reports whether a persistent cart row is already present,
// regardless of whether it holds items.
func (r *CartRepo) AccountCartExists(accountID string) (bool, error) {
	var id string
	err := r.db.Get(&id, `SELECT id FROM carts WHERE account_id = ?`, accountID)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *CartRepo) Items(cartID string) ([]domain.CartItem, error) {
	var out []domain.CartItem
	err := r.db.Select(&out, `
	  SELECT product_id, quantity FROM cart_items WHERE cart_id = ? ORDER BY created_at, product_id
	`, cartID)
	return out, err
}

type CartLine struct {
	ProductID string  `db:"product_id" json:"productId"`
	Name      string  `db:"name" json:"name"`
	Quantity  int     `db:"quantity" json:"quantity"`
	UnitPrice float64 `db:"unit_price" json:"unitPrice"`
	Subtotal  float64 `db:"subtotal" json:"subtotal"`
}

func (r *CartRepo) Lines(cartID string) ([]CartLine, float64, error) {
	rows := []CartLine{}
	if err := r.db.Select(&rows, `
	  SELECT ci.product_id, p.name, ci.quantity, p.price AS unit_price,
	         (ci.quantity * p.price) AS subtotal
	  FROM cart_items ci JOIN products p ON p.product_id = ci.product_id
	  WHERE ci.cart_id = ?
	  ORDER BY p.name
	`, cartID); err != nil {
		return nil, 0, err
	}
	total := 0.0
	for _, l := range rows {
		total += l.Subtotal
	}
	return rows, total, nil
}

// UpsertItem adds quantity to an existing line or inserts a new one; a
// product appears at most once per cart.
func (r *CartRepo) UpsertItem(cartID, productID string, qty int) error {
	_, err := r.db.Exec(`
	  INSERT INTO cart_items(cart_id, product_id, quantity, created_at)
	  VALUES(?,?,?,CURRENT_TIMESTAMP)
	  ON CONFLICT(cart_id, product_id) DO UPDATE
	  SET quantity = cart_items.quantity + excluded.quantity, updated_at = CURRENT_TIMESTAMP
	`, cartID, productID, qty)
	return err
}

func (r *CartRepo) SetQuantity(cartID, productID string, qty int) error {
	_, err := r.db.Exec(`
	  UPDATE cart_items SET quantity = ?, updated_at = CURRENT_TIMESTAMP
	  WHERE cart_id = ? AND product_id = ?
	`, qty, cartID, productID)
	return err
}

// RemoveItem is idempotent: removing an absent line is not an error.
func (r *CartRepo) RemoveItem(cartID, productID string) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE cart_id = ? AND product_id = ?`, cartID, productID)
	return err
}

func (r *CartRepo) Clear(cartID string) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE cart_id = ?`, cartID)
	return err
}

func (r *CartRepo) ClearByAccount(accountID string) error {
	_, err := r.db.Exec(`
	  DELETE FROM cart_items WHERE cart_id IN (SELECT id FROM carts WHERE account_id = ?)
	`, accountID)
	return err
}

func (r *CartRepo) ClearBySession(sessionID string) error {
	_, err := r.db.Exec(`
	  DELETE FROM cart_items WHERE cart_id IN (SELECT id FROM carts WHERE session_id = ?)
	`, sessionID)
	return err
}

// MigrateToAccount turns a guest session cart into the account's persistent
// cart. It runs at most once: if a persistent cart row already exists the
// call is a no-op, and the session cart is removed in the same transaction
// as the migration so items are never duplicated.
func (r *CartRepo) MigrateToAccount(sessionID, accountID string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var existing string
	err = tx.Get(&existing, `SELECT id FROM carts WHERE account_id = ?`, accountID)
	if err == nil {
		return tx.Commit() // already migrated (or created directly)
	}
	if err != sql.ErrNoRows {
		return err
	}

	var sessionCart string
	err = tx.Get(&sessionCart, `SELECT id FROM carts WHERE session_id = ?`, sessionID)
	if err == sql.ErrNoRows {
		return tx.Commit() // nothing to migrate
	}
	if err != nil {
		return err
	}

	var n int
	if err := tx.Get(&n, `SELECT COUNT(*) FROM cart_items WHERE cart_id = ?`, sessionCart); err != nil {
		return err
	}
	if n == 0 {
		return tx.Commit()
	}

	if _, err := tx.Exec(`INSERT INTO carts(id, account_id, updated_at) VALUES(?,?,CURRENT_TIMESTAMP)`,
		accountID, accountID); err != nil {
		return err
	}
	if _, err := tx.Exec(`UPDATE cart_items SET cart_id = ? WHERE cart_id = ?`,
		accountID, sessionCart); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM carts WHERE id = ?`, sessionCart); err != nil {
		return err
	}

	return tx.Commit()
}
