package repos

import (
	"cellardoor/internal/domain"

	"github.com/jmoiron/sqlx"
)

// ContentRepo covers the flat content tables: blogs, faqs, memberships.
type ContentRepo struct{ db *sqlx.DB }

func NewContentRepo(db *sqlx.DB) *ContentRepo { return &ContentRepo{db: db} }

func (r *ContentRepo) ListBlogs(limit, offset int) ([]domain.Blog, error) {
	var out []domain.Blog
	err := r.db.Select(&out, `
	  SELECT id, title, body, COALESCE(image,'') AS image, created_at
	  FROM blogs ORDER BY datetime(created_at) DESC LIMIT ? OFFSET ?`, limit, offset)
	return out, err
}

func (r *ContentRepo) GetBlog(id string) (domain.Blog, error) {
	var b domain.Blog
	err := r.db.Get(&b, `
	  SELECT id, title, body, COALESCE(image,'') AS image, created_at
	  FROM blogs WHERE id = ?`, id)
	return b, err
}

func (r *ContentRepo) CreateBlog(b domain.Blog) error {
	_, err := r.db.Exec(`INSERT INTO blogs(id,title,body,image) VALUES(?,?,?,?)`,
		b.ID, b.Title, b.Body, b.Image)
	return err
}

func (r *ContentRepo) ListFAQs() ([]domain.FAQ, error) {
	var out []domain.FAQ
	err := r.db.Select(&out, `SELECT id, question, answer FROM faqs ORDER BY id`)
	return out, err
}

func (r *ContentRepo) CreateFAQ(f domain.FAQ) error {
	_, err := r.db.Exec(`INSERT INTO faqs(id,question,answer) VALUES(?,?,?)`,
		f.ID, f.Question, f.Answer)
	return err
}

// Subscribe is idempotent on email: re-subscribing is a no-op.
func (r *ContentRepo) Subscribe(m domain.Membership) error {
	_, err := r.db.Exec(`
	  INSERT INTO memberships(id,email) VALUES(?,?)
	  ON CONFLICT(email) DO NOTHING`, m.ID, m.Email)
	return err
}

func (r *ContentRepo) ListMemberships() ([]domain.Membership, error) {
	var out []domain.Membership
	err := r.db.Select(&out, `
	  SELECT id, email, created_at FROM memberships ORDER BY datetime(created_at) DESC`)
	return out, err
}
