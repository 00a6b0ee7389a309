package repos

import (
	"cellardoor/internal/domain"

	"github.com/jmoiron/sqlx"
)

type FeedbackRepo struct{ db *sqlx.DB }

func NewFeedbackRepo(db *sqlx.DB) *FeedbackRepo { return &FeedbackRepo{db: db} }

func (r *FeedbackRepo) ListByProduct(productID string) ([]domain.Feedback, error) {
	var out []domain.Feedback
	err := r.db.Select(&out, `
	  SELECT id, product_id, customer_name, rating, COALESCE(comment,'') AS comment, created_at
	  FROM feedbacks WHERE product_id = ?
	  ORDER BY datetime(created_at) DESC`, productID)
	return out, err
}

func (r *FeedbackRepo) Create(f domain.Feedback) error {
	_, err := r.db.Exec(`
	  INSERT INTO feedbacks(id,product_id,customer_name,rating,comment)
	  VALUES(?,?,?,?,?)`, f.ID, f.ProductID, f.Customer, f.Rating, f.Comment)
	return err
}

func (r *FeedbackRepo) AverageRating(productID string) (float64, int, error) {
	var row struct {
		Avg   float64 `db:"avg"`
		Count int     `db:"count"`
	}
	err := r.db.Get(&row, `
	  SELECT COALESCE(AVG(rating),0) AS avg, COUNT(*) AS count
	  FROM feedbacks WHERE product_id = ?`, productID)
	return row.Avg, row.Count, err
}
