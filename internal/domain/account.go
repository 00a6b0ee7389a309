package domain

type Account struct {
	ID         string `db:"id" json:"accountId"`
	Email      string `db:"email" json:"email"`
	Hash       string `db:"password_hash" json:"-"`
	Role       string `db:"role" json:"role"` // USER | ADMIN
	CustomerID string `db:"customer_id" json:"customerId"`
}

type Customer struct {
	ID      string `db:"id" json:"customerId"`
	Name    string `db:"name" json:"name"`
	Email   string `db:"email" json:"email"`
	Phone   string `db:"phone" json:"phone,omitempty"`
	Address string `db:"address" json:"address,omitempty"`
}

// Identity is what the auth collaborator hands to the rest of the system:
// both ids resolved, or neither (guest).
type Identity struct {
	CustomerID string
	AccountID  string
	SessionID  string
}

func (id Identity) Authenticated() bool { return id.AccountID != "" }
