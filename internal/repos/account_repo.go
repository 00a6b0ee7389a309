package repos

import (
	"cellardoor/internal/domain"

	"github.com/jmoiron/sqlx"
)

type AccountRepo struct{ DB *sqlx.DB }

func NewAccountRepo(db *sqlx.DB) *AccountRepo { return &AccountRepo{DB: db} }

func (r *AccountRepo) ByEmail(email string) (*domain.Account, error) {
	var a domain.Account
	err := r.DB.Get(&a, `
	  SELECT id,email,password_hash,role,customer_id
	  FROM accounts WHERE LOWER(email)=LOWER(?)`, email)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AccountRepo) ByID(id string) (*domain.Account, error) {
	var a domain.Account
	err := r.DB.Get(&a, `
	  SELECT id,email,password_hash,role,customer_id
	  FROM accounts WHERE id=?`, id)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Register creates the customer profile and its account in one transaction.
func (r *AccountRepo) Register(a domain.Account, c domain.Customer) error {
	tx, err := r.DB.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`INSERT INTO customers(id,name,email,phone,address) VALUES(?,?,?,?,?)`,
		c.ID, c.Name, c.Email, c.Phone, c.Address); err != nil {
		return err
	}
	if _, err := tx.Exec(`INSERT INTO accounts(id,email,password_hash,role,customer_id) VALUES(?,?,?,?,?)`,
		a.ID, a.Email, a.Hash, a.Role, a.CustomerID); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *AccountRepo) Customer(customerID string) (*domain.Customer, error) {
	var c domain.Customer
	err := r.DB.Get(&c, `
	  SELECT id, name, email, COALESCE(phone,'') AS phone, COALESCE(address,'') AS address
	  FROM customers WHERE id=?`, customerID)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *AccountRepo) UpdateCustomer(c domain.Customer) error {
	_, err := r.DB.Exec(`UPDATE customers SET name=?, phone=?, address=? WHERE id=?`,
		c.Name, c.Phone, c.Address, c.ID)
	return err
}

func (r *AccountRepo) BindSession(sid, accountID string) error {
	_, err := r.DB.Exec(`
	  INSERT INTO sessions(id,account_id,last_seen)
	  VALUES(?,?,CURRENT_TIMESTAMP)
	  ON CONFLICT(id) DO UPDATE SET account_id=excluded.account_id,last_seen=CURRENT_TIMESTAMP`, sid, accountID)
	return err
}

func (r *AccountRepo) SessionAccount(sid string) (*domain.Account, error) {
	var a domain.Account
	err := r.DB.Get(&a, `
	  SELECT a.id,a.email,a.password_hash,a.role,a.customer_id
	  FROM sessions s JOIN accounts a ON a.id=s.account_id
	  WHERE s.id=?`, sid)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AccountRepo) UnbindSession(sid string) error {
	_, err := r.DB.Exec(`UPDATE sessions SET account_id=NULL,last_seen=CURRENT_TIMESTAMP WHERE id=?`, sid)
	return err
}
