package services

import (
	"cellardoor/internal/domain"
	"cellardoor/internal/repos"
)

type CatalogService struct {
	Cats  *repos.CategoryRepo
	Prods *repos.ProductRepo
}

func NewCatalogService(cats *repos.CategoryRepo, prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Cats: cats, Prods: prods}
}

func (s *CatalogService) ListCategories() ([]domain.Category, error) {
	return s.Cats.List()
}

func (s *CatalogService) ListPromotions() ([]domain.Promotion, error) {
	return s.Cats.ListPromotions()
}

func (s *CatalogService) ListProducts(f repos.ProductFilter, page, pageSize int) ([]domain.Product, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 60 {
		pageSize = 12
	}
	offset := (page - 1) * pageSize
	return s.Prods.List(f, pageSize, offset)
}

func (s *CatalogService) GetProduct(productID string) (domain.Product, error) {
	return s.Prods.Get(productID)
}

func (s *CatalogService) CreateProduct(p domain.Product) error {
	if existing, err := s.Prods.Get(p.ProductID); err == nil && existing.ProductID != "" {
		return ErrProductExists
	}
	return s.Prods.Create(p)
}

func (s *CatalogService) CreateCategory(c domain.Category) error {
	return s.Cats.Create(c)
}
