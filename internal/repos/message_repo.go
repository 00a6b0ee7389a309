package repos

import (
	"cellardoor/internal/domain"

	"github.com/jmoiron/sqlx"
)

type MessageRepo struct{ db *sqlx.DB }

func NewMessageRepo(db *sqlx.DB) *MessageRepo { return &MessageRepo{db: db} }

func (r *MessageRepo) Save(m domain.Message) error {
	_, err := r.db.Exec(`
	  INSERT INTO messages(user, target_user, body) VALUES(?,?,?)`,
		m.User, m.TargetUser, m.Body)
	return err
}

// Conversation returns the full two-way history between two usernames in
// chronological order.
func (r *MessageRepo) Conversation(userA, userB string, limit int) ([]domain.Message, error) {
	if limit <= 0 {
		limit = 200
	}
	var out []domain.Message
	err := r.db.Select(&out, `
	  SELECT id, user, target_user, body, created_at
	  FROM messages
	  WHERE (user = ? AND target_user = ?) OR (user = ? AND target_user = ?)
	  ORDER BY id
	  LIMIT ?`, userA, userB, userB, userA, limit)
	return out, err
}
