package order

import "time"

// StatusConfirmed is the only status an order ever has: there is no
// cancel/refund/ship state machine here.
const StatusConfirmed = "confirmed"

// Order is immutable once the checkout transaction commits.
type Order struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Total     float64   `json:"total"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// OrderItem snapshots the product name and price as read inside the
// checkout transaction. Later catalog edits or deletions never alter it.
type OrderItem struct {
	OrderID   int     `json:"order_id"`
	ProductID int     `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// OrderWithItems pairs an order with its snapshot lines for listing.
type OrderWithItems struct {
	Order
	Items []OrderItem `json:"items"`
}
