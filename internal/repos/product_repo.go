package repos

import (
	"cellardoor/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
  id, product_id, name, price, brand, category_id,
  COALESCE(promotion_id,'') AS promotion_id,
  COALESCE(description,'') AS description,
  COALESCE(image,'') AS image,
  created_at`

// ProductFilter narrows List; zero values mean "no constraint".
type ProductFilter struct {
	CategoryID string
	Brand      string
	Query      string
	MinPrice   float64
	MaxPrice   float64
	Promoted   bool
}

func (r *ProductRepo) List(f ProductFilter, limit, offset int) ([]domain.Product, error) {
	where := `1=1`
	args := []any{}
	if f.CategoryID != "" {
		where += ` AND category_id = ?`
		args = append(args, f.CategoryID)
	}
	if f.Brand != "" {
		where += ` AND LOWER(brand) = LOWER(?)`
		args = append(args, f.Brand)
	}
	if f.Query != "" {
		where += ` AND (LOWER(name) LIKE ? OR LOWER(description) LIKE ?)`
		q := "%" + f.Query + "%"
		args = append(args, q, q)
	}
	if f.MinPrice > 0 {
		where += ` AND price >= ?`
		args = append(args, f.MinPrice)
	}
	if f.MaxPrice > 0 {
		where += ` AND price <= ?`
		args = append(args, f.MaxPrice)
	}
	if f.Promoted {
		where += ` AND promotion_id IS NOT NULL`
	}
	args = append(args, limit, offset)

	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT `+productCols+`
	  FROM products
	  WHERE `+where+`
	  ORDER BY created_at DESC
	  LIMIT ? OFFSET ?`, args...)
	return out, err
}

// Get looks a product up by business key, not storage id.
func (r *ProductRepo) Get(productID string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `
	  SELECT `+productCols+`
	  FROM products
	  WHERE product_id = ?`, productID)
	return p, err
}

// GetMany resolves a set of business keys in one query and returns a map
// keyed by product id. Missing keys are simply absent from the map.
func (r *ProductRepo) GetMany(productIDs []string) (map[string]domain.Product, error) {
	out := make(map[string]domain.Product, len(productIDs))
	if len(productIDs) == 0 {
		return out, nil
	}
	query, args, err := sqlx.In(`
	  SELECT `+productCols+`
	  FROM products
	  WHERE product_id IN (?)`, productIDs)
	if err != nil {
		return nil, err
	}
	var rows []domain.Product
	if err := r.db.Select(&rows, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}
	for _, p := range rows {
		out[p.ProductID] = p
	}
	return out, nil
}

func (r *ProductRepo) Create(p domain.Product) error {
	_, err := r.db.Exec(`
	  INSERT INTO products(product_id,name,price,brand,category_id,promotion_id,description,image)
	  VALUES(?,?,?,?,?,NULLIF(?,''),?,?)
	`, p.ProductID, p.Name, p.Price, p.Brand, p.CategoryID, p.PromotionID, p.Description, p.Image)
	return err
}
