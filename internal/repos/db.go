package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed demo catalog/stock if DB is empty (idempotent; safe to run every start)
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	if err := seedAccounts(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Categories
CREATE TABLE IF NOT EXISTS categories(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_name_nocase ON categories(LOWER(name));

-- Promotions
CREATE TABLE IF NOT EXISTS promotions(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  percent NUMERIC NOT NULL DEFAULT 0 CHECK (percent >= 0 AND percent <= 100)
);

-- Products. product_id is the business key used by every other table;
-- id is the storage rowid and stays internal.
CREATE TABLE IF NOT EXISTS products(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  product_id TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  price NUMERIC NOT NULL CHECK (price >= 0),
  brand TEXT NOT NULL DEFAULT '',
  category_id TEXT NOT NULL REFERENCES categories(id) ON DELETE RESTRICT,
  promotion_id TEXT NULL REFERENCES promotions(id) ON DELETE SET NULL,
  description TEXT,
  image TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id);
CREATE INDEX IF NOT EXISTS idx_products_brand    ON products(brand);
CREATE INDEX IF NOT EXISTS idx_products_name     ON products(LOWER(name));

-- Stock. One row per business key; quantity may never go negative.
CREATE TABLE IF NOT EXISTS product_stocks(
  product_id TEXT PRIMARY KEY REFERENCES products(product_id) ON DELETE CASCADE,
  quantity INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
  updated_at TEXT
);

-- Customers & accounts
CREATE TABLE IF NOT EXISTS customers(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL,
  phone TEXT,
  address TEXT
);

CREATE TABLE IF NOT EXISTS accounts(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('USER','ADMIN')),
  customer_id TEXT NOT NULL REFERENCES customers(id) ON DELETE CASCADE,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_accounts_email ON accounts(LOWER(email));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  account_id TEXT NULL REFERENCES accounts(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_account ON sessions(account_id);

-- Carts. A cart belongs to a session (guest) or to an account (persistent),
-- never both. Migration moves items from the former to the latter.
CREATE TABLE IF NOT EXISTS carts(
  id TEXT PRIMARY KEY,
  session_id TEXT NULL UNIQUE,
  account_id TEXT NULL UNIQUE REFERENCES accounts(id) ON DELETE CASCADE,
  updated_at TEXT,
  CHECK (session_id IS NOT NULL OR account_id IS NOT NULL)
);

CREATE TABLE IF NOT EXISTS cart_items(
  cart_id    TEXT NOT NULL REFERENCES carts(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL REFERENCES products(product_id) ON DELETE RESTRICT,
  quantity INTEGER NOT NULL CHECK (quantity >= 1),
  created_at TEXT,
  updated_at TEXT,
  PRIMARY KEY (cart_id, product_id)
);

-- Compare lists: same session/account duality, set membership only.
CREATE TABLE IF NOT EXISTS compare_lists(
  id TEXT PRIMARY KEY,
  session_id TEXT NULL UNIQUE,
  account_id TEXT NULL UNIQUE REFERENCES accounts(id) ON DELETE CASCADE,
  updated_at TEXT,
  CHECK (session_id IS NOT NULL OR account_id IS NOT NULL)
);

CREATE TABLE IF NOT EXISTS compare_items(
  list_id    TEXT NOT NULL REFERENCES compare_lists(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL REFERENCES products(product_id) ON DELETE RESTRICT,
  created_at TEXT,
  PRIMARY KEY (list_id, product_id)
);

-- Orders
CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  customer_id TEXT NOT NULL,
  order_date TEXT NOT NULL,
  address TEXT NOT NULL,
  city TEXT NOT NULL,
  postal_code TEXT NOT NULL DEFAULT '',
  country TEXT NOT NULL,
  payment_method TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'Pending',
  total_amount NUMERIC NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders(customer_id);

CREATE TABLE IF NOT EXISTS order_items(
  order_id   TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL REFERENCES products(product_id),
  quantity INTEGER NOT NULL CHECK (quantity >= 1),
  unit_price NUMERIC NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id);

-- Content
CREATE TABLE IF NOT EXISTS blogs(
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  body TEXT NOT NULL,
  image TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS faqs(
  id TEXT PRIMARY KEY,
  question TEXT NOT NULL,
  answer TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS feedbacks(
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL REFERENCES products(product_id) ON DELETE CASCADE,
  customer_name TEXT NOT NULL,
  rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
  comment TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_feedbacks_product ON feedbacks(product_id);

CREATE TABLE IF NOT EXISTS memberships(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);

-- Chat messages (user-to-support channel)
CREATE TABLE IF NOT EXISTS messages(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  user TEXT NOT NULL,
  target_user TEXT NOT NULL,
  body TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_messages_pair ON messages(user, target_user);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM categories`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo categories/products/stock")

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	tx.MustExec(`INSERT INTO categories(id,name) VALUES
	  ('red-wine','Red Wine'),
	  ('white-wine','White Wine'),
	  ('sparkling','Sparkling'),
	  ('spirits','Spirits')`)

	tx.MustExec(`INSERT INTO promotions(id,name,percent) VALUES
	  ('promo-summer','Summer Sale',10),
	  ('promo-club','Club Members',5)`)

	tx.MustExec(`INSERT INTO products(product_id,name,price,brand,category_id,promotion_id,description,image) VALUES
	  ('w-cab-001','Cabernet Sauvignon Reserva 2019',420000,'Santa Rita','red-wine','promo-summer','Full-bodied Chilean cabernet.','products/w-cab-001.jpg'),
	  ('w-mer-002','Merlot Classic 2021',310000,'Concha y Toro','red-wine',NULL,'Soft, plummy merlot.','products/w-mer-002.jpg'),
	  ('w-chd-003','Chardonnay Estate 2022',280000,'Dalat Wine','white-wine',NULL,'Crisp tropical chardonnay.','products/w-chd-003.jpg'),
	  ('w-prs-004','Prosecco DOC Brut',350000,'Zonin','sparkling','promo-club','Dry Italian sparkler.','products/w-prs-004.jpg'),
	  ('s-why-005','Single Malt 12yr',1250000,'Glen Keith','spirits',NULL,'Speyside single malt.','products/s-why-005.jpg')`)

	tx.MustExec(`INSERT INTO product_stocks(product_id,quantity) VALUES
	  ('w-cab-001',24),
	  ('w-mer-002',60),
	  ('w-chd-003',12),
	  ('w-prs-004',5),
	  ('s-why-005',3)`)

	tx.MustExec(`INSERT INTO faqs(id,question,answer) VALUES
	  ('faq-ship','How long does delivery take?','2-4 business days within the city, up to a week elsewhere.'),
	  ('faq-age','Do you check age on delivery?','Yes, the courier verifies you are of legal drinking age.')`)

	return tx.Commit()
}

// seedAccounts ensures a demo USER, its customer profile, and one ADMIN exist.
func seedAccounts(db *sqlx.DB) error {
	type acct struct {
		ID, Email, Role, Hash, CustomerID, Name string
	}
	mk := func(id, email, role, raw, customerID, name string) acct {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return acct{ID: id, Email: email, Role: role, Hash: string(h), CustomerID: customerID, Name: name}
	}

	accounts := []acct{
		mk("a-lan", "lan@cellardoor.test", "USER", "Passw0rd!", "c-lan", "Lan Pham"),
		mk("a-minh", "minh@cellardoor.test", "USER", "Passw0rd!", "c-minh", "Minh Tran"),
		mk("a-admin", "admin@cellardoor.test", "ADMIN", "Passw0rd!", "c-admin", "Support Staff"),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, a := range accounts {
		if _, err := tx.Exec(`
			INSERT INTO customers(id,name,email) VALUES(?,?,?)
			ON CONFLICT(id) DO NOTHING
		`, a.CustomerID, a.Name, a.Email); err != nil {
			return err
		}
		if _, err := tx.Exec(`
			INSERT INTO accounts(id,email,password_hash,role,customer_id)
			VALUES(?,?,?,?,?)
			ON CONFLICT(email) DO NOTHING
		`, a.ID, a.Email, a.Hash, a.Role, a.CustomerID); err != nil {
			return err
		}
	}

	return tx.Commit()
}
