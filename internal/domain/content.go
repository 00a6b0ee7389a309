package domain

type Blog struct {
	ID        string `db:"id" json:"id"`
	Title     string `db:"title" json:"title"`
	Body      string `db:"body" json:"body"`
	Image     string `db:"image" json:"image,omitempty"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}

type FAQ struct {
	ID       string `db:"id" json:"id"`
	Question string `db:"question" json:"question"`
	Answer   string `db:"answer" json:"answer"`
}

type Feedback struct {
	ID        string `db:"id" json:"id"`
	ProductID string `db:"product_id" json:"productId"`
	Customer  string `db:"customer_name" json:"customerName"`
	Rating    int    `db:"rating" json:"rating"` // 1..5
	Comment   string `db:"comment" json:"comment,omitempty"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}

type Membership struct {
	ID        string `db:"id" json:"id"`
	Email     string `db:"email" json:"email"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}

type Message struct {
	ID         int64  `db:"id" json:"-"`
	User       string `db:"user" json:"user"`
	TargetUser string `db:"target_user" json:"targetUser"`
	Body       string `db:"body" json:"message"`
	CreatedAt  string `db:"created_at" json:"timestamp"`
}
