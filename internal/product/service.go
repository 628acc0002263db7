package product

import (
	"errors"
	"strings"
)

var ErrValidation = errors.New("invalid product data")

const (
	defaultLimit = 20
	maxLimit     = 50
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(p Product) (Product, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.Category = strings.TrimSpace(p.Category)
	if p.Name == "" || p.Category == "" || p.Price < 0 {
		return Product{}, ErrValidation
	}
	return s.repo.Create(p)
}

// List clamps paging before hitting the store: page at least 1, limit
// within [1, 50].
func (s *Service) List(params ListParams) (ListResult, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 {
		params.Limit = defaultLimit
	}
	if params.Limit > maxLimit {
		params.Limit = maxLimit
	}
	params.Category = strings.TrimSpace(params.Category)
	params.Search = strings.TrimSpace(params.Search)
	return s.repo.List(params)
}

func (s *Service) GetByID(id int) (Product, error) {
	return s.repo.GetByID(id)
}

func (s *Service) ListMine(ownerID int) ([]Product, error) {
	return s.repo.ListByOwner(ownerID)
}

func (s *Service) Update(id, ownerID int, p Product) (Product, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.Category = strings.TrimSpace(p.Category)
	if p.Name == "" || p.Category == "" || p.Price < 0 {
		return Product{}, ErrValidation
	}
	return s.repo.Update(id, ownerID, p)
}

func (s *Service) Delete(id, ownerID int) error {
	return s.repo.Delete(id, ownerID)
}
