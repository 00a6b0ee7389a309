package services

import (
	"cellardoor/internal/domain"
	"cellardoor/internal/repos"
)

type CompareService struct {
	Lists *repos.CompareRepo
	Prods *repos.ProductRepo
}

func NewCompareService(lists *repos.CompareRepo, prods *repos.ProductRepo) *CompareService {
	return &CompareService{Lists: lists, Prods: prods}
}

func (s *CompareService) targetList(ident domain.Identity) (string, error) {
	if ident.Authenticated() {
		if ident.SessionID != "" {
			if err := s.Lists.MigrateToAccount(ident.SessionID, ident.AccountID); err != nil {
				return "", err
			}
		}
		return s.Lists.EnsureAccountList(ident.AccountID)
	}
	return s.Lists.EnsureSessionList(ident.SessionID)
}

func (s *CompareService) Get(ident domain.Identity) ([]domain.Product, error) {
	listID, err := s.targetList(ident)
	if err != nil {
		return nil, err
	}
	return s.Lists.Products(listID)
}

func (s *CompareService) Add(ident domain.Identity, productID string) error {
	if _, err := s.Prods.Get(productID); err != nil {
		return &ProductNotFoundError{ProductID: productID}
	}
	listID, err := s.targetList(ident)
	if err != nil {
		return err
	}
	return s.Lists.Add(listID, productID)
}

func (s *CompareService) Remove(ident domain.Identity, productID string) error {
	listID, err := s.targetList(ident)
	if err != nil {
		return err
	}
	return s.Lists.Remove(listID, productID)
}
