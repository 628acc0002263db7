package product

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"
)

var (
	ErrNotFound = errors.New("product not found")

	// ErrNotOwner covers both "product does not exist" and "product belongs
	// to someone else". The two cases are deliberately not distinguished so
	// a mutation attempt cannot probe for another admin's product ids.
	ErrNotOwner = errors.New("not allowed or not found")
)

type Repository interface {
	Create(p Product) (Product, error)
	List(params ListParams) (ListResult, error)
	GetByID(id int) (Product, error)
	ListByOwner(ownerID int) ([]Product, error)
	Update(id, ownerID int, p Product) (Product, error)
	Delete(id, ownerID int) error
}

// InMemoryRepository backs tests and local scenarios.
type InMemoryRepository struct {
	mu       sync.RWMutex
	products []Product
	nextID   int
}

func NewInMemoryRepository(seed []Product) *InMemoryRepository {
	r := &InMemoryRepository{products: make([]Product, 0, len(seed)), nextID: 1}
	maxID := 0
	for _, p := range seed {
		r.products = append(r.products, p)
		if p.ID > maxID {
			maxID = p.ID
		}
	}
	r.nextID = maxID + 1
	return r
}

func (r *InMemoryRepository) Create(p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.ID == 0 {
		p.ID = r.nextID
		r.nextID++
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	r.products = append(r.products, p)
	return p, nil
}

func (r *InMemoryRepository) List(params ListParams) (ListResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]Product, 0)
	for _, p := range r.products {
		if params.Category != "" && !strings.EqualFold(p.Category, params.Category) {
			continue
		}
		if params.Search != "" {
			needle := strings.ToLower(params.Search)
			desc := ""
			if p.Description != nil {
				desc = *p.Description
			}
			if !strings.Contains(strings.ToLower(p.Name), needle) &&
				!strings.Contains(strings.ToLower(desc), needle) {
				continue
			}
		}
		matched = append(matched, p)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	offset := (params.Page - 1) * params.Limit
	if offset > total {
		offset = total
	}
	end := offset + params.Limit
	if end > total {
		end = total
	}

	seen := make(map[string]bool)
	categories := make([]string, 0)
	for _, p := range r.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}
	sort.Strings(categories)

	return ListResult{
		Products:   matched[offset:end],
		Total:      total,
		Page:       params.Page,
		Limit:      params.Limit,
		Categories: categories,
	}, nil
}

func (r *InMemoryRepository) GetByID(id int) (Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) ListByOwner(ownerID int) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Product, 0)
	for _, p := range r.products {
		if p.CreatedBy == ownerID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *InMemoryRepository) Update(id, ownerID int, upd Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID == id && p.CreatedBy == ownerID {
			p.Name = upd.Name
			p.Price = upd.Price
			p.Category = upd.Category
			p.ImageURL = upd.ImageURL
			p.Description = upd.Description
			r.products[i] = p
			return p, nil
		}
	}
	return Product{}, ErrNotOwner
}

func (r *InMemoryRepository) Delete(id, ownerID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID == id && p.CreatedBy == ownerID {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return ErrNotOwner
}
