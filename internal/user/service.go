package user

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// ServiceInterface is what other packages depend on when they need user
// lookups without pulling in the concrete service.
type ServiceInterface interface {
	GetByID(id int) (User, error)
	ListAdminEmails() ([]string, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List() ([]User, error) {
	return s.repo.List()
}

func (s *Service) GetByID(id int) (User, error) {
	return s.repo.GetByID(id)
}

func (s *Service) ListAdminEmails() ([]string, error) {
	return s.repo.ListAdminEmails()
}

// Register creates an account with a hashed password. The caller decides
// the role; the admin-secret check lives at the handler boundary.
func (s *Service) Register(u User) (User, error) {
	u.Email = normalizeEmail(u.Email)

	if _, err := s.repo.GetByEmail(u.Email); err == nil {
		return User{}, ErrEmailExists
	} else if err != ErrNotFound {
		return User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}
	u.Password = string(hashed)

	created, err := s.repo.Create(u)
	if err != nil {
		return User{}, err
	}
	return sanitize(created), nil
}

func (s *Service) Authenticate(email, password string) (User, error) {
	u, err := s.repo.GetByEmail(normalizeEmail(email))
	if err != nil {
		return User{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}
	return sanitize(u), nil
}

// Update replaces name and email, and re-hashes the password when one is
// supplied. An empty password leaves the stored credential untouched.
func (s *Service) Update(id int, u User) (User, error) {
	u.Email = normalizeEmail(u.Email)
	if u.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return User{}, err
		}
		u.Password = string(hashed)
	}

	updated, err := s.repo.Update(id, u)
	if err != nil {
		return User{}, err
	}
	return sanitize(updated), nil
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
