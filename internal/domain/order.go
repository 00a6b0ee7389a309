package domain

// Payment methods accepted at checkout. Anything else is rejected before
// storage is touched.
const (
	PaymentCreditCard     = "CreditCard"
	PaymentCashOnDelivery = "CashOnDelivery"
	PaymentBankTransfer   = "BankTransfer"
)

func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCreditCard, PaymentCashOnDelivery, PaymentBankTransfer:
		return true
	}
	return false
}

const OrderStatusPending = "Pending"

type ShippingAddress struct {
	Address    string `db:"address" json:"address"`
	City       string `db:"city" json:"city"`
	PostalCode string `db:"postal_code" json:"postalCode,omitempty"`
	Country    string `db:"country" json:"country"`
}

type Order struct {
	ID            string          `db:"id" json:"orderId"`
	CustomerID    string          `db:"customer_id" json:"customerId"`
	OrderDate     string          `db:"order_date" json:"orderDate"`
	Shipping      ShippingAddress `json:"shippingAddress"`
	PaymentMethod string          `db:"payment_method" json:"paymentMethod"`
	Status        string          `db:"status" json:"status"`
	TotalAmount   float64         `db:"total_amount" json:"totalAmount"`
	Items         []OrderItem     `json:"items,omitempty"`
}

type OrderItem struct {
	OrderID   string  `db:"order_id" json:"orderId"`
	ProductID string  `db:"product_id" json:"productId"`
	Quantity  int     `db:"quantity" json:"quantity"`
	UnitPrice float64 `db:"unit_price" json:"unitPrice"`
}
