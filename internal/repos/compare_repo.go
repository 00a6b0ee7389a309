package repos

import (
	"database/sql"

	"cellardoor/internal/domain"

	"github.com/jmoiron/sqlx"
)

// CompareRepo stores compare lists: product-id sets with the same guest
// session / account duality as carts.
type CompareRepo struct{ db *sqlx.DB }

func NewCompareRepo(db *sqlx.DB) *CompareRepo { return &CompareRepo{db: db} }

func (r *CompareRepo) EnsureSessionList(sessionID string) (string, error) {
	var id string
	if err := r.db.Get(&id, `SELECT id FROM compare_lists WHERE session_id = ?`, sessionID); err == nil {
		return id, nil
	}
	_, err := r.db.Exec(`INSERT INTO compare_lists(id, session_id, updated_at) VALUES(?,?,CURRENT_TIMESTAMP)`,
		sessionID, sessionID)
	if err != nil {
		return "", err
	}
	return sessionID, nil
}

func (r *CompareRepo) EnsureAccountList(accountID string) (string, error) {
	var id string
	if err := r.db.Get(&id, `SELECT id FROM compare_lists WHERE account_id = ?`, accountID); err == nil {
		return id, nil
	}
	_, err := r.db.Exec(`INSERT INTO compare_lists(id, account_id, updated_at) VALUES(?,?,CURRENT_TIMESTAMP)`,
		accountID, accountID)
	if err != nil {
		return "", err
	}
	return accountID, nil
}

// Add is set insertion: re-adding a member is a no-op.
func (r *CompareRepo) Add(listID, productID string) error {
	_, err := r.db.Exec(`
	  INSERT INTO compare_items(list_id, product_id, created_at)
	  VALUES(?,?,CURRENT_TIMESTAMP)
	  ON CONFLICT(list_id, product_id) DO NOTHING
	`, listID, productID)
	return err
}

func (r *CompareRepo) Remove(listID, productID string) error {
	_, err := r.db.Exec(`DELETE FROM compare_items WHERE list_id = ? AND product_id = ?`, listID, productID)
	return err
}

func (r *CompareRepo) Products(listID string) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT p.id, p.product_id, p.name, p.price, p.brand, p.category_id,
	         COALESCE(p.promotion_id,'') AS promotion_id,
	         COALESCE(p.description,'') AS description,
	         COALESCE(p.image,'') AS image,
	         p.created_at
	  FROM compare_items ci JOIN products p ON p.product_id = ci.product_id
	  WHERE ci.list_id = ?
	  ORDER BY p.name
	`, listID)
	return out, err
}

// MigrateToAccount follows the cart migration rule: at most once, skipped
// entirely when the account already has a list.
func (r *CompareRepo) MigrateToAccount(sessionID, accountID string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var existing string
	err = tx.Get(&existing, `SELECT id FROM compare_lists WHERE account_id = ?`, accountID)
	if err == nil {
		return tx.Commit()
	}
	if err != sql.ErrNoRows {
		return err
	}

	var sessionList string
	err = tx.Get(&sessionList, `SELECT id FROM compare_lists WHERE session_id = ?`, sessionID)
	if err == sql.ErrNoRows {
		return tx.Commit()
	}
	if err != nil {
		return err
	}

	var n int
	if err := tx.Get(&n, `SELECT COUNT(*) FROM compare_items WHERE list_id = ?`, sessionList); err != nil {
		return err
	}
	if n == 0 {
		return tx.Commit()
	}

	if _, err := tx.Exec(`INSERT INTO compare_lists(id, account_id, updated_at) VALUES(?,?,CURRENT_TIMESTAMP)`,
		accountID, accountID); err != nil {
		return err
	}
	if _, err := tx.Exec(`UPDATE compare_items SET list_id = ? WHERE list_id = ?`,
		accountID, sessionList); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM compare_lists WHERE id = ?`, sessionList); err != nil {
		return err
	}

	return tx.Commit()
}
