package product

import (
	"strings"
	"testing"
	"time"
)

func seedRepo() *InMemoryRepository {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	seed := make([]Product, 0, 60)
	for i := 1; i <= 60; i++ {
		seed = append(seed, Product{
			ID:        i,
			Name:      "Item " + strings.Repeat("x", i%5),
			Price:     float64(i),
			Category:  "grocery",
			CreatedBy: 99,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}
	return NewInMemoryRepository(seed)
}

func TestList_ClampsPaging(t *testing.T) {
	svc := NewService(seedRepo())

	// limit above the cap is clamped to 50
	res, err := svc.List(ListParams{Page: 1, Limit: 500})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if res.Limit != 50 {
		t.Fatalf("expected limit clamped to 50, got %d", res.Limit)
	}
	if len(res.Products) != 50 {
		t.Fatalf("expected 50 products, got %d", len(res.Products))
	}
	if res.Total != 60 {
		t.Fatalf("expected total 60, got %d", res.Total)
	}

	// page zero and negative limit fall back to first page, default limit
	res, err = svc.List(ListParams{Page: 0, Limit: -3})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if res.Page != 1 || res.Limit != 20 {
		t.Fatalf("expected page 1 limit 20, got page %d limit %d", res.Page, res.Limit)
	}
}

func TestCreate_Validation(t *testing.T) {
	svc := NewService(seedRepo())

	cases := []Product{
		{Name: "", Category: "grocery", Price: 10},
		{Name: "   ", Category: "grocery", Price: 10},
		{Name: "Rice", Category: "", Price: 10},
		{Name: "Rice", Category: "grocery", Price: -1},
	}
	for _, p := range cases {
		if _, err := svc.Create(p); err != ErrValidation {
			t.Fatalf("expected ErrValidation for %+v, got %v", p, err)
		}
	}

	created, err := svc.Create(Product{Name: "  Rice  ", Category: " grocery ", Price: 0, CreatedBy: 99})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Name != "Rice" || created.Category != "grocery" {
		t.Fatalf("expected trimmed fields, got %+v", created)
	}
}

func TestUpdate_OwnershipLeavesProductUntouched(t *testing.T) {
	repo := seedRepo()
	svc := NewService(repo)

	before, err := repo.GetByID(1)
	if err != nil {
		t.Fatalf("seed missing: %v", err)
	}

	_, err = svc.Update(1, 8, Product{Name: "Hijacked", Category: "grocery", Price: 1})
	if err != ErrNotOwner {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}

	after, err := repo.GetByID(1)
	if err != nil {
		t.Fatalf("product vanished: %v", err)
	}
	if after != before {
		t.Fatalf("rejected update changed the product: %+v vs %+v", after, before)
	}

	// unknown id reads the same as foreign ownership
	if _, err := svc.Update(4040, 99, Product{Name: "Ghost", Category: "grocery", Price: 1}); err != ErrNotOwner {
		t.Fatalf("expected ErrNotOwner for unknown id, got %v", err)
	}
}

func TestDelete_Ownership(t *testing.T) {
	repo := seedRepo()
	svc := NewService(repo)

	if err := svc.Delete(1, 8); err != ErrNotOwner {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	if _, err := repo.GetByID(1); err != nil {
		t.Fatalf("rejected delete removed the product: %v", err)
	}

	if err := svc.Delete(1, 99); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := repo.GetByID(1); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
