package repos

import (
	"cellardoor/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

func (r *CategoryRepo) List() ([]domain.Category, error) {
	var out []domain.Category
	err := r.db.Select(&out, `
	  SELECT id, name, created_at, COALESCE(updated_at,'') AS updated_at
	  FROM categories
	  ORDER BY name`)
	return out, err
}

func (r *CategoryRepo) Create(c domain.Category) error {
	_, err := r.db.Exec(`INSERT INTO categories(id,name) VALUES(?,?)`, c.ID, c.Name)
	return err
}

func (r *CategoryRepo) ListPromotions() ([]domain.Promotion, error) {
	var out []domain.Promotion
	err := r.db.Select(&out, `SELECT id, name, percent FROM promotions ORDER BY name`)
	return out, err
}
