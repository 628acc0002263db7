package order

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/radheymart/storefront-backend/internal/cart"
)

// ErrEmptyCart rejects checkout when the caller has nothing staged.
var ErrEmptyCart = errors.New("cart is empty")

type Repository interface {
	// Checkout atomically converts the user's cart into an order plus
	// snapshot items and empties the cart. Either all of that happened or
	// none of it did.
	Checkout(ctx context.Context, userID int) (Order, []OrderItem, error)
	ListByUser(userID int) ([]Order, error)
	ItemsForOrders(orderIDs []int) ([]OrderItem, error)
}

// InMemoryRepository backs tests and local scenarios. It checks out
// against an in-memory cart repository; the mutex serializes concurrent
// checkouts the way row locks do in Postgres.
type InMemoryRepository struct {
	mu     sync.Mutex
	carts  cart.Repository
	orders []Order
	items  []OrderItem
	nextID int

	// failWith, when set, makes Checkout fail after reading the cart but
	// before any write, simulating a rolled-back transaction.
	failWith error
}

func NewInMemoryRepository(carts cart.Repository) *InMemoryRepository {
	return &InMemoryRepository{carts: carts, nextID: 1}
}

// FailNextCheckout arms a simulated transaction failure.
func (r *InMemoryRepository) FailNextCheckout(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failWith = err
}

func (r *InMemoryRepository) Checkout(ctx context.Context, userID int) (Order, []OrderItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	lines, err := r.carts.Lines(userID)
	if err != nil {
		return Order{}, nil, err
	}
	if len(lines) == 0 {
		return Order{}, nil, ErrEmptyCart
	}

	if r.failWith != nil {
		err := r.failWith
		r.failWith = nil
		return Order{}, nil, err
	}

	total := 0.0
	items := make([]OrderItem, 0, len(lines))
	for _, l := range lines {
		total += l.Price * float64(l.Quantity)
		items = append(items, OrderItem{
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     l.Price,
			Quantity:  l.Quantity,
		})
	}

	ord := Order{
		ID:        r.nextID,
		UserID:    userID,
		Total:     total,
		Status:    StatusConfirmed,
		CreatedAt: time.Now().UTC(),
	}
	r.nextID++

	for i := range items {
		items[i].OrderID = ord.ID
	}
	r.orders = append(r.orders, ord)
	r.items = append(r.items, items...)

	if err := r.carts.Clear(userID); err != nil {
		return Order{}, nil, err
	}
	return ord, items, nil
}

func (r *InMemoryRepository) ListByUser(userID int) ([]Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Order, 0)
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) ItemsForOrders(orderIDs []int) ([]OrderItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	want := make(map[int]bool, len(orderIDs))
	for _, id := range orderIDs {
		want[id] = true
	}
	out := make([]OrderItem, 0)
	for _, it := range r.items {
		if want[it.OrderID] {
			out = append(out, it)
		}
	}
	return out, nil
}
