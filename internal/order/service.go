package order

import (
	"context"
	"log"
)

// Notifier delivers an order summary to the given recipients. Checkout
// treats every notifier failure as log-only.
type Notifier interface {
	SendOrderNotification(to []string, ord Order, items []OrderItem) error
}

// AdminDirectory yields the recipients for order notifications. The user
// service satisfies it.
type AdminDirectory interface {
	ListAdminEmails() ([]string, error)
}

type Service struct {
	repo     Repository
	admins   AdminDirectory
	notifier Notifier
}

func NewService(repo Repository, admins AdminDirectory, notifier Notifier) *Service {
	return &Service{repo: repo, admins: admins, notifier: notifier}
}

// Checkout converts the caller's cart into an order. The repository runs
// the conversion atomically; once it has committed, the admin notification
// is dispatched out of band and can no longer affect the result.
func (s *Service) Checkout(ctx context.Context, userID int) (Order, []OrderItem, error) {
	ord, items, err := s.repo.Checkout(ctx, userID)
	if err != nil {
		return Order{}, nil, err
	}

	go s.notifyAdmins(ord, items)

	return ord, items, nil
}

// notifyAdmins is fire-and-forget: the order is already durable, so every
// failure here is logged and dropped.
func (s *Service) notifyAdmins(ord Order, items []OrderItem) {
	if s.notifier == nil {
		return
	}
	emails, err := s.admins.ListAdminEmails()
	if err != nil {
		log.Printf("order %d: could not load admin emails: %v", ord.ID, err)
		return
	}
	if err := s.notifier.SendOrderNotification(emails, ord, items); err != nil {
		log.Printf("order %d: admin notification failed: %v", ord.ID, err)
	}
}

// ListByUser returns the caller's orders with their snapshot items.
func (s *Service) ListByUser(userID int) ([]OrderWithItems, error) {
	orders, err := s.repo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return []OrderWithItems{}, nil
	}

	ids := make([]int, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	items, err := s.repo.ItemsForOrders(ids)
	if err != nil {
		return nil, err
	}

	byOrder := make(map[int][]OrderItem, len(orders))
	for _, it := range items {
		byOrder[it.OrderID] = append(byOrder[it.OrderID], it)
	}

	out := make([]OrderWithItems, 0, len(orders))
	for _, o := range orders {
		items := byOrder[o.ID]
		if items == nil {
			items = []OrderItem{}
		}
		out = append(out, OrderWithItems{Order: o, Items: items})
	}
	return out, nil
}
