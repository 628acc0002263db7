package cart

import (
	"errors"
	"fmt"
)

var ErrInvalidQuantity = errors.New("quantity must be at least 1")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Add stages qty more of a product. It is deliberately not idempotent:
// calling twice adds twice.
func (s *Service) Add(userID, productID, qty int) (CartItem, error) {
	if qty < 1 {
		return CartItem{}, ErrInvalidQuantity
	}
	return s.repo.Add(userID, productID, qty)
}

// Get returns the cart joined with live product data plus derived totals.
// Totals use current catalog prices, unlike order snapshots.
func (s *Service) Get(userID int) (CartView, error) {
	lines, err := s.repo.Lines(userID)
	if err != nil {
		return CartView{}, err
	}

	totalItems := 0
	totalAmount := 0.0
	for _, l := range lines {
		totalItems += l.Quantity
		totalAmount += l.ItemTotal
	}

	return CartView{
		Items:       lines,
		TotalItems:  totalItems,
		TotalAmount: fmt.Sprintf("%.2f", totalAmount),
	}, nil
}

// UpdateItem overwrites the quantity (it does not increment).
func (s *Service) UpdateItem(itemID, userID, qty int) (CartItem, error) {
	if qty < 1 {
		return CartItem{}, ErrInvalidQuantity
	}
	return s.repo.UpdateItem(itemID, userID, qty)
}

func (s *Service) RemoveItem(itemID, userID int) error {
	return s.repo.RemoveItem(itemID, userID)
}

func (s *Service) Clear(userID int) error {
	return s.repo.Clear(userID)
}
