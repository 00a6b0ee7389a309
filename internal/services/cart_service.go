package services

import (
	"cellardoor/internal/domain"
	"cellardoor/internal/repos"
)

type CartService struct {
	Carts *repos.CartRepo
	Prods *repos.ProductRepo
}

func NewCartService(carts *repos.CartRepo, prods *repos.ProductRepo) *CartService {
	return &CartService{Carts: carts, Prods: prods}
}

// targetCart resolves which cart an identity operates on, migrating the guest
// session cart into the account cart on first authenticated access.
func (s *CartService) targetCart(ident domain.Identity) (string, error) {
	if ident.Authenticated() {
		if ident.SessionID != "" {
			if err := s.Carts.MigrateToAccount(ident.SessionID, ident.AccountID); err != nil {
				return "", err
			}
		}
		return s.Carts.EnsureAccountCart(ident.AccountID)
	}
	return s.Carts.EnsureSessionCart(ident.SessionID)
}

type CartView struct {
	Items []repos.CartLine `json:"items"`
	Total float64          `json:"total"`
}

func (s *CartService) Get(ident domain.Identity) (CartView, error) {
	cartID, err := s.targetCart(ident)
	if err != nil {
		return CartView{}, err
	}
	items, total, err := s.Carts.Lines(cartID)
	if err != nil {
		return CartView{}, err
	}
	return CartView{Items: items, Total: total}, nil
}

func (s *CartService) AddItem(ident domain.Identity, productID string, qty int) error {
	if qty < 1 {
		return ErrBadQuantity
	}
	// Product must exist before it can enter a cart.
	if _, err := s.Prods.Get(productID); err != nil {
		return &ProductNotFoundError{ProductID: productID}
	}
	cartID, err := s.targetCart(ident)
	if err != nil {
		return err
	}
	return s.Carts.UpsertItem(cartID, productID, qty)
}

func (s *CartService) SetQuantity(ident domain.Identity, productID string, qty int) error {
	if qty < 1 {
		return ErrBadQuantity
	}
	cartID, err := s.targetCart(ident)
	if err != nil {
		return err
	}
	return s.Carts.SetQuantity(cartID, productID, qty)
}

// RemoveItem is idempotent; removing an absent product succeeds.
func (s *CartService) RemoveItem(ident domain.Identity, productID string) error {
	cartID, err := s.targetCart(ident)
	if err != nil {
		return err
	}
	return s.Carts.RemoveItem(cartID, productID)
}

func (s *CartService) Clear(ident domain.Identity) error {
	cartID, err := s.targetCart(ident)
	if err != nil {
		return err
	}
	return s.Carts.Clear(cartID)
}
