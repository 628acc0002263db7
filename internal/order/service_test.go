package order

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/radheymart/storefront-backend/internal/cart"
	"github.com/radheymart/storefront-backend/internal/product"
)

type fakeNotifier struct {
	mu    sync.Mutex
	calls int
	to    []string
	ord   Order
	items []OrderItem
	err   error
}

func (n *fakeNotifier) SendOrderNotification(to []string, ord Order, items []OrderItem) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls++
	n.to = to
	n.ord = ord
	n.items = items
	return n.err
}

type fakeAdmins struct {
	emails []string
	err    error
}

func (a fakeAdmins) ListAdminEmails() ([]string, error) {
	return a.emails, a.err
}

func newFixture(t *testing.T) (*product.InMemoryRepository, *cart.InMemoryRepository, *InMemoryRepository, *Service, *fakeNotifier) {
	t.Helper()
	products := product.NewInMemoryRepository([]product.Product{
		{ID: 1, Name: "Basmati Rice", Price: 100.00, Category: "grocery", CreatedBy: 99},
		{ID: 2, Name: "Ghee 500ml", Price: 49.50, Category: "grocery", CreatedBy: 99},
	})
	carts := cart.NewInMemoryRepository(products)
	repo := NewInMemoryRepository(carts)
	notifier := &fakeNotifier{}
	svc := NewService(repo, fakeAdmins{emails: []string{"admin@shop.test"}}, notifier)
	return products, carts, repo, svc, notifier
}

func TestCheckout_TotalAndSnapshots(t *testing.T) {
	_, carts, _, svc, _ := newFixture(t)

	if _, err := carts.Add(7, 1, 2); err != nil {
		t.Fatalf("staging failed: %v", err)
	}
	if _, err := carts.Add(7, 2, 1); err != nil {
		t.Fatalf("staging failed: %v", err)
	}

	ord, items, err := svc.Checkout(context.Background(), 7)
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if ord.Total != 249.50 {
		t.Fatalf("expected total 249.50, got %v", ord.Total)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(items))
	}
	for _, it := range items {
		switch it.ProductID {
		case 1:
			if it.Price != 100.00 || it.Quantity != 2 {
				t.Fatalf("bad snapshot for product 1: %+v", it)
			}
		case 2:
			if it.Price != 49.50 || it.Quantity != 1 {
				t.Fatalf("bad snapshot for product 2: %+v", it)
			}
		default:
			t.Fatalf("unexpected product in order: %+v", it)
		}
	}
}

func TestCheckout_EmptiesCartAndRejectsSecondAttempt(t *testing.T) {
	_, carts, _, svc, _ := newFixture(t)

	if _, err := carts.Add(7, 1, 1); err != nil {
		t.Fatalf("staging failed: %v", err)
	}
	if _, _, err := svc.Checkout(context.Background(), 7); err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	lines, err := carts.Lines(7)
	if err != nil {
		t.Fatalf("reading cart failed: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("expected empty cart after checkout, got %d lines", len(lines))
	}

	if _, _, err := svc.Checkout(context.Background(), 7); err != ErrEmptyCart {
		t.Fatalf("expected ErrEmptyCart on second attempt, got %v", err)
	}
}

func TestCheckout_EmptyCartCreatesNothing(t *testing.T) {
	_, _, repo, svc, notifier := newFixture(t)

	if _, _, err := svc.Checkout(context.Background(), 7); err != ErrEmptyCart {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
	orders, _ := repo.ListByUser(7)
	if len(orders) != 0 {
		t.Fatalf("expected no orders, got %d", len(orders))
	}
	if notifier.calls != 0 {
		t.Fatalf("expected no notification for failed checkout")
	}
}

func TestCheckout_FailureLeavesCartIntact(t *testing.T) {
	_, carts, repo, svc, _ := newFixture(t)

	if _, err := carts.Add(7, 1, 2); err != nil {
		t.Fatalf("staging failed: %v", err)
	}
	repo.FailNextCheckout(errors.New("connection lost"))

	if _, _, err := svc.Checkout(context.Background(), 7); err == nil {
		t.Fatal("expected checkout to fail")
	}

	lines, _ := carts.Lines(7)
	if len(lines) != 1 || lines[0].Quantity != 2 {
		t.Fatalf("cart changed by failed checkout: %+v", lines)
	}
	orders, _ := repo.ListByUser(7)
	if len(orders) != 0 {
		t.Fatalf("expected no orders after failed checkout, got %d", len(orders))
	}

	// the cart is still usable and the retry succeeds
	if _, _, err := svc.Checkout(context.Background(), 7); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
}

// Catalog edits after checkout must never reach an already-created order.
func TestCheckout_SnapshotsSurviveCatalogEdits(t *testing.T) {
	products, carts, repo, svc, _ := newFixture(t)

	if _, err := carts.Add(7, 1, 1); err != nil {
		t.Fatalf("staging failed: %v", err)
	}
	ord, items, err := svc.Checkout(context.Background(), 7)
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if items[0].Price != 100.00 {
		t.Fatalf("expected snapshot price 100.00, got %v", items[0].Price)
	}

	if _, err := products.Update(1, 99, product.Product{
		Name: "Basmati Rice", Price: 250.00, Category: "grocery",
	}); err != nil {
		t.Fatalf("price change failed: %v", err)
	}

	stored, err := repo.ItemsForOrders([]int{ord.ID})
	if err != nil {
		t.Fatalf("loading snapshots failed: %v", err)
	}
	if len(stored) != 1 || stored[0].Price != 100.00 {
		t.Fatalf("snapshot changed after catalog edit: %+v", stored)
	}
}

// A product deleted between staging and checkout simply drops out of the
// join; the order is built from the remaining rows.
func TestCheckout_DropsOrphanedCartRows(t *testing.T) {
	products, carts, _, svc, _ := newFixture(t)

	if _, err := carts.Add(7, 1, 1); err != nil {
		t.Fatalf("staging failed: %v", err)
	}
	if _, err := carts.Add(7, 2, 3); err != nil {
		t.Fatalf("staging failed: %v", err)
	}
	if err := products.Delete(1, 99); err != nil {
		t.Fatalf("deleting product failed: %v", err)
	}

	ord, items, err := svc.Checkout(context.Background(), 7)
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if len(items) != 1 || items[0].ProductID != 2 {
		t.Fatalf("expected only product 2 in order, got %+v", items)
	}
	if ord.Total != 148.50 {
		t.Fatalf("expected total 148.50, got %v", ord.Total)
	}
}

func TestNotifyAdmins_SendsOrderSummary(t *testing.T) {
	_, carts, _, svc, notifier := newFixture(t)

	if _, err := carts.Add(7, 2, 2); err != nil {
		t.Fatalf("staging failed: %v", err)
	}
	ord, items, err := svc.repo.Checkout(context.Background(), 7)
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	svc.notifyAdmins(ord, items)

	if notifier.calls != 1 {
		t.Fatalf("expected one notification, got %d", notifier.calls)
	}
	if len(notifier.to) != 1 || notifier.to[0] != "admin@shop.test" {
		t.Fatalf("unexpected recipients: %v", notifier.to)
	}
	if notifier.ord.ID != ord.ID || len(notifier.items) != 1 {
		t.Fatalf("unexpected payload: %+v %+v", notifier.ord, notifier.items)
	}
}

// A failing notifier must not surface anywhere: the order is already
// committed.
func TestNotifyAdmins_FailureIsSwallowed(t *testing.T) {
	_, carts, repo, _, _ := newFixture(t)
	notifier := &fakeNotifier{err: errors.New("smtp down")}
	svc := NewService(repo, fakeAdmins{err: nil, emails: []string{"admin@shop.test"}}, notifier)

	if _, err := carts.Add(7, 1, 1); err != nil {
		t.Fatalf("staging failed: %v", err)
	}
	ord, items, err := svc.repo.Checkout(context.Background(), 7)
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	svc.notifyAdmins(ord, items)

	if notifier.calls != 1 {
		t.Fatalf("expected the notifier to be invoked, got %d calls", notifier.calls)
	}
}

func TestListByUser_GroupsItemsByOrder(t *testing.T) {
	_, carts, _, svc, _ := newFixture(t)

	if _, err := carts.Add(7, 1, 1); err != nil {
		t.Fatalf("staging failed: %v", err)
	}
	first, _, err := svc.Checkout(context.Background(), 7)
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if _, err := carts.Add(7, 2, 2); err != nil {
		t.Fatalf("staging failed: %v", err)
	}
	second, _, err := svc.Checkout(context.Background(), 7)
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	orders, err := svc.ListByUser(7)
	if err != nil {
		t.Fatalf("listing failed: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}
	for _, o := range orders {
		if o.ID != first.ID && o.ID != second.ID {
			t.Fatalf("unexpected order %d", o.ID)
		}
		if len(o.Items) != 1 {
			t.Fatalf("expected 1 item on order %d, got %d", o.ID, len(o.Items))
		}
		if o.Items[0].OrderID != o.ID {
			t.Fatalf("item grouped under wrong order: %+v", o.Items[0])
		}
	}
}
