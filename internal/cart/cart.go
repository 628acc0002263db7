package cart

import "time"

// CartItem is one staged row. At most one row exists per
// (user_id, product_id); adding the same product again increments the
// quantity instead of duplicating the row.
type CartItem struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	ProductID int       `json:"product_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

// CartLine is a cart item joined with its product's current catalog data.
// Prices here are live; only a committed order carries snapshots.
type CartLine struct {
	ID        int       `json:"id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	ProductID int       `json:"product_id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Category  string    `json:"category"`
	ImageURL  *string   `json:"image_url"`
	ItemTotal float64   `json:"item_total"`
}

// CartView is what GET /api/cart returns: the lines plus derived totals.
// TotalAmount is formatted to two decimal places.
type CartView struct {
	Items       []CartLine `json:"items"`
	TotalItems  int        `json:"totalItems"`
	TotalAmount string     `json:"totalAmount"`
}
