package services

import (
	"database/sql"

	"cellardoor/internal/domain"
	"cellardoor/internal/repos"
)

type Availability struct {
	Status string `json:"status"` // IN_STOCK | LOW_STOCK | OUT_OF_STOCK
	Qty    int    `json:"qty"`
}

type StockService struct {
	Stock *repos.StockRepo
	Prods *repos.ProductRepo
}

func NewStockService(stock *repos.StockRepo, prods *repos.ProductRepo) *StockService {
	return &StockService{Stock: stock, Prods: prods}
}

// CheckAvailability converts a raw quantity into a storefront status. A
// missing stock record reads as zero on hand.
func (s *StockService) CheckAvailability(productID string) (Availability, error) {
	qty, err := s.Stock.QuantityFor(productID)
	if err != nil {
		if err == sql.ErrNoRows {
			return Availability{Status: "OUT_OF_STOCK", Qty: 0}, nil
		}
		return Availability{}, err
	}

	status := "OUT_OF_STOCK"
	switch {
	case qty >= 5:
		status = "IN_STOCK"
	case qty > 0:
		status = "LOW_STOCK"
	}
	return Availability{Status: status, Qty: qty}, nil
}

func (s *StockService) ListAll() ([]domain.StockRecord, error) {
	return s.Stock.ListAll()
}

// SetQuantity upserts a stock record; the product must exist in the catalog.
func (s *StockService) SetQuantity(productID string, qty int) error {
	if qty < 0 {
		return ErrBadQuantity
	}
	if _, err := s.Prods.Get(productID); err != nil {
		return &ProductNotFoundError{ProductID: productID}
	}
	return s.Stock.Upsert(productID, qty)
}
