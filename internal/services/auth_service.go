package services

import (
	"cellardoor/internal/domain"
	"cellardoor/internal/repos"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	Accounts *repos.AccountRepo
}

func (s *AuthService) Register(name, email, password string) (*domain.Account, error) {
	if existing, _ := s.Accounts.ByEmail(email); existing != nil {
		return nil, ErrEmailTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, err
	}
	customerID := "c-" + uuid.NewString()
	a := domain.Account{
		ID:         "a-" + uuid.NewString(),
		Email:      email,
		Hash:       string(hash),
		Role:       "USER",
		CustomerID: customerID,
	}
	c := domain.Customer{ID: customerID, Name: name, Email: email}
	if err := s.Accounts.Register(a, c); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *AuthService) Login(sid, email, password string) (*domain.Account, error) {
	a, err := s.Accounts.ByEmail(email)
	if err != nil {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(a.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	if err := s.Accounts.BindSession(sid, a.ID); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AuthService) Logout(sid string) error {
	return s.Accounts.UnbindSession(sid)
}

func (s *AuthService) Current(sid string) (*domain.Account, error) {
	return s.Accounts.SessionAccount(sid)
}

// Identify resolves the caller's identity from its session cookie. A guest
// gets a session-only identity; an authenticated caller gets both ids.
func (s *AuthService) Identify(sid string) domain.Identity {
	ident := domain.Identity{SessionID: sid}
	if sid == "" {
		return ident
	}
	if a, err := s.Accounts.SessionAccount(sid); err == nil && a != nil {
		ident.AccountID = a.ID
		ident.CustomerID = a.CustomerID
	}
	return ident
}
