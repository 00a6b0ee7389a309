package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"cellardoor/internal/domain"
	applog "cellardoor/internal/log"
	"cellardoor/internal/repos"

	"github.com/google/uuid"
)

// OrderItemInput is one client-submitted {productId, quantity} pair. Clients
// never supply prices; the catalog is the only price source.
type OrderItemInput struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type OrderService struct {
	Products *repos.ProductRepo
	Stock    *repos.StockRepo
	Orders   *repos.OrderRepo
	Carts    *repos.CartRepo

	DefaultCountry string
}

func NewOrderService(products *repos.ProductRepo, stock *repos.StockRepo,
	orders *repos.OrderRepo, carts *repos.CartRepo, defaultCountry string) *OrderService {
	return &OrderService{
		Products: products, Stock: stock, Orders: orders, Carts: carts,
		DefaultCountry: defaultCountry,
	}
}

// Place validates the submitted items against the live catalog and stock,
// computes the total from catalog prices, and commits the order, its line
// items, and the stock decrements as one atomic unit. On success the
// requester's cart is cleared best-effort.
//
// Duplicate product ids in the list are allowed: each entry is validated and
// decremented independently, so their demands accumulate at commit time.
func (s *OrderService) Place(ident domain.Identity, items []OrderItemInput,
	addr domain.ShippingAddress, payment string) (*domain.Order, error) {

	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}
	if !domain.ValidPaymentMethod(payment) {
		return nil, ErrBadPayment
	}
	addr.Address = strings.TrimSpace(addr.Address)
	addr.City = strings.TrimSpace(addr.City)
	if addr.Address == "" || addr.City == "" {
		return nil, ErrBadAddress
	}
	if strings.TrimSpace(addr.Country) == "" {
		addr.Country = s.DefaultCountry
	}

	// One batch lookup each for catalog and stock, keyed by business id.
	ids := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		if !seen[it.ProductID] {
			seen[it.ProductID] = true
			ids = append(ids, it.ProductID)
		}
	}
	catalog, err := s.Products.GetMany(ids)
	if err != nil {
		return nil, err
	}
	stock, err := s.Stock.Snapshot(ids)
	if err != nil {
		return nil, err
	}

	// Optimistic pre-check: good error messages for the common case. The
	// guarded decrement at commit time is the actual safety net.
	for _, it := range items {
		if it.Quantity <= 0 {
			return nil, &InvalidItemError{ProductID: it.ProductID, Quantity: it.Quantity}
		}
		if _, ok := catalog[it.ProductID]; !ok {
			return nil, &ProductNotFoundError{ProductID: it.ProductID}
		}
		if have := stock[it.ProductID]; have < it.Quantity {
			return nil, &InsufficientStockError{ProductID: it.ProductID, Requested: it.Quantity, Available: have}
		}
	}

	total := 0.0
	lines := make([]domain.OrderItem, 0, len(items))
	for _, it := range items {
		unit := catalog[it.ProductID].Price
		total += unit * float64(it.Quantity)
		lines = append(lines, domain.OrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: unit,
		})
	}

	order := domain.Order{
		ID:            newOrderID(),
		CustomerID:    ident.CustomerID,
		OrderDate:     time.Now().UTC().Format(time.RFC3339),
		Shipping:      addr,
		PaymentMethod: payment,
		Status:        domain.OrderStatusPending,
		TotalAmount:   total,
	}
	for i := range lines {
		lines[i].OrderID = order.ID
	}

	if err := s.Orders.Commit(order, lines); err != nil {
		var conflict *repos.StockConflictError
		if errors.As(err, &conflict) {
			// Lost the conditional-decrement race; the whole unit rolled back.
			return nil, fmt.Errorf("%w: %s", ErrCommitFailed, conflict.Error())
		}
		return nil, fmt.Errorf("%w: %v", ErrCommitFailed, err)
	}
	order.Items = lines

	// Best-effort: a cart that refuses to clear must not unwind the order.
	var clearErr error
	if ident.Authenticated() {
		clearErr = s.Carts.ClearByAccount(ident.AccountID)
	} else if ident.SessionID != "" {
		clearErr = s.Carts.ClearBySession(ident.SessionID)
	}
	if clearErr != nil {
		applog.Error(nil, "order.cart_clear.fail", clearErr, map[string]any{"order_id": order.ID})
	}

	return &order, nil
}

// newOrderID builds a time-prefixed, collision-resistant order identifier.
// Every placement attempt gets a fresh one, including retries.
func newOrderID() string {
	return fmt.Sprintf("ORD-%s-%s",
		time.Now().UTC().Format("20060102T150405"),
		strings.Split(uuid.NewString(), "-")[0])
}
