package domain

type Category struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	CreatedAt string `db:"created_at" json:"createdAt"`
	UpdatedAt string `db:"updated_at" json:"updatedAt,omitempty"`
}

type Promotion struct {
	ID      string  `db:"id" json:"id"`
	Name    string  `db:"name" json:"name"`
	Percent float64 `db:"percent" json:"percent"`
}

type Product struct {
	// ProductID is the stable business key shown to clients; ID is the
	// storage row key and never leaves the repo layer.
	ID          int64   `db:"id" json:"-"`
	ProductID   string  `db:"product_id" json:"productId"`
	Name        string  `db:"name" json:"name"`
	Price       float64 `db:"price" json:"price"`
	Brand       string  `db:"brand" json:"brand"`
	CategoryID  string  `db:"category_id" json:"categoryId"`
	PromotionID string  `db:"promotion_id" json:"promotionId,omitempty"`
	Description string  `db:"description" json:"description,omitempty"`
	Image       string  `db:"image" json:"image,omitempty"`
	CreatedAt   string  `db:"created_at" json:"createdAt"`
}

type StockRecord struct {
	ProductID string `db:"product_id" json:"productId"`
	Quantity  int    `db:"quantity" json:"quantity"`
}

type CartItem struct {
	ProductID string `db:"product_id" json:"productId"`
	Quantity  int    `db:"quantity" json:"quantity"`
}
