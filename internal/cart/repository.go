package cart

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/radheymart/storefront-backend/internal/product"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrItemNotFound    = errors.New("cart item not found")
)

type Repository interface {
	// Add inserts a row or increments the quantity of an existing one.
	Add(userID, productID, qty int) (CartItem, error)
	// Lines returns the user's items joined with live product data,
	// newest first.
	Lines(userID int) ([]CartLine, error)
	// UpdateItem overwrites the quantity of the caller's own item.
	UpdateItem(itemID, userID, qty int) (CartItem, error)
	RemoveItem(itemID, userID int) error
	// Clear succeeds even when the cart is already empty.
	Clear(userID int) error
}

// InMemoryRepository backs tests and local scenarios. It needs a product
// repository to resolve the join that Postgres does in SQL.
type InMemoryRepository struct {
	mu       sync.Mutex
	products product.Repository
	items    []CartItem
	nextID   int
}

func NewInMemoryRepository(products product.Repository) *InMemoryRepository {
	return &InMemoryRepository{products: products, nextID: 1}
}

func (r *InMemoryRepository) Add(userID, productID, qty int) (CartItem, error) {
	if _, err := r.products.GetByID(productID); err != nil {
		return CartItem{}, ErrProductNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, it := range r.items {
		if it.UserID == userID && it.ProductID == productID {
			r.items[i].Quantity += qty
			return r.items[i], nil
		}
	}

	item := CartItem{
		ID:        r.nextID,
		UserID:    userID,
		ProductID: productID,
		Quantity:  qty,
		CreatedAt: time.Now().UTC(),
	}
	r.nextID++
	r.items = append(r.items, item)
	return item, nil
}

func (r *InMemoryRepository) Lines(userID int) ([]CartLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	lines := make([]CartLine, 0)
	for _, it := range r.items {
		if it.UserID != userID {
			continue
		}
		p, err := r.products.GetByID(it.ProductID)
		if err != nil {
			// product deleted after staging: the join drops the row
			continue
		}
		lines = append(lines, CartLine{
			ID:        it.ID,
			Quantity:  it.Quantity,
			CreatedAt: it.CreatedAt,
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Category:  p.Category,
			ImageURL:  p.ImageURL,
			ItemTotal: float64(it.Quantity) * p.Price,
		})
	}
	sort.Slice(lines, func(i, j int) bool {
		return lines[i].CreatedAt.After(lines[j].CreatedAt)
	})
	return lines, nil
}

func (r *InMemoryRepository) UpdateItem(itemID, userID, qty int) (CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, it := range r.items {
		if it.ID == itemID && it.UserID == userID {
			r.items[i].Quantity = qty
			return r.items[i], nil
		}
	}
	return CartItem{}, ErrItemNotFound
}

func (r *InMemoryRepository) RemoveItem(itemID, userID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, it := range r.items {
		if it.ID == itemID && it.UserID == userID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return ErrItemNotFound
}

func (r *InMemoryRepository) Clear(userID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.items[:0]
	for _, it := range r.items {
		if it.UserID != userID {
			kept = append(kept, it)
		}
	}
	r.items = kept
	return nil
}
