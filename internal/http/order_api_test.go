package handlers_test

import (
	"net/http"
	"strings"
	"testing"
)

func TestPlaceOrderRequiresLogin(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(jsonRequest("POST", "/api/orders",
		`{"items":[{"productId":"w-mer-002","quantity":1}],
		  "shippingAddress":{"address":"12 Hang Gai","city":"Hanoi"},
		  "paymentMethod":"CreditCard"}`))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for guest checkout, got %d", resp.StatusCode)
	}
}

func TestPlaceOrderSuccessShape(t *testing.T) {
	app := newTestApp(t)
	sid := login(t, app, "lan@cellardoor.test")

	req := jsonRequest("POST", "/api/orders",
		`{"items":[{"productId":"w-mer-002","quantity":2}],
		  "shippingAddress":{"address":"12 Hang Gai","city":"Hanoi","postalCode":"100000"},
		  "paymentMethod":"CashOnDelivery"}`)
	req.AddCookie(sid)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var order struct {
		OrderID     string  `json:"orderId"`
		CustomerID  string  `json:"customerId"`
		Status      string  `json:"status"`
		TotalAmount float64 `json:"totalAmount"`
		Shipping    struct {
			Country string `json:"country"`
		} `json:"shippingAddress"`
		Items []struct {
			ProductID string  `json:"productId"`
			Quantity  int     `json:"quantity"`
			UnitPrice float64 `json:"unitPrice"`
		} `json:"items"`
	}
	decodeBody(t, resp, &order)

	if !strings.HasPrefix(order.OrderID, "ORD-") {
		t.Fatalf("unexpected order id %q", order.OrderID)
	}
	if order.CustomerID != "c-lan" {
		t.Fatalf("order not attributed to the logged-in customer: %q", order.CustomerID)
	}
	if order.Status != "Pending" {
		t.Fatalf("want Pending, got %q", order.Status)
	}
	if order.TotalAmount != 620000 { // 2 x seeded merlot price
		t.Fatalf("want total 620000, got %v", order.TotalAmount)
	}
	if order.Shipping.Country != "Vietnam" {
		t.Fatalf("country should default, got %q", order.Shipping.Country)
	}
	if len(order.Items) != 1 || order.Items[0].UnitPrice != 310000 {
		t.Fatalf("unexpected line items: %+v", order.Items)
	}
}

func TestPlaceOrderRejectsUnknownPaymentMethod(t *testing.T) {
	app := newTestApp(t)
	sid := login(t, app, "lan@cellardoor.test")

	req := jsonRequest("POST", "/api/orders",
		`{"items":[{"productId":"w-mer-002","quantity":1}],
		  "shippingAddress":{"address":"12 Hang Gai","city":"Hanoi"},
		  "paymentMethod":"Bitcoin"}`)
	req.AddCookie(sid)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown payment method, got %d", resp.StatusCode)
	}
}

func TestPlaceOrderInsufficientStockDetail(t *testing.T) {
	app := newTestApp(t)
	sid := login(t, app, "lan@cellardoor.test")

	// seeded single malt has only 3 units
	req := jsonRequest("POST", "/api/orders",
		`{"items":[{"productId":"s-why-005","quantity":10}],
		  "shippingAddress":{"address":"12 Hang Gai","city":"Hanoi"},
		  "paymentMethod":"CreditCard"}`)
	req.AddCookie(sid)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	var body struct {
		Error     string `json:"error"`
		ProductID string `json:"productId"`
		Requested int    `json:"requested"`
		Available int    `json:"available"`
	}
	decodeBody(t, resp, &body)
	if body.ProductID != "s-why-005" || body.Requested != 10 || body.Available != 3 {
		t.Fatalf("wrong stock detail: %+v", body)
	}
}

func TestOrderHistoryAndLookupAreOwnerScoped(t *testing.T) {
	app := newTestApp(t)
	lan := login(t, app, "lan@cellardoor.test")

	req := jsonRequest("POST", "/api/orders",
		`{"items":[{"productId":"w-cab-001","quantity":1}],
		  "shippingAddress":{"address":"12 Hang Gai","city":"Hanoi"},
		  "paymentMethod":"BankTransfer"}`)
	req.AddCookie(lan)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	var placed struct {
		OrderID string `json:"orderId"`
	}
	decodeBody(t, resp, &placed)

	// owner sees it in history
	histReq := jsonRequest("GET", "/api/orders", "")
	histReq.AddCookie(lan)
	histResp, err := app.Test(histReq)
	if err != nil {
		t.Fatal(err)
	}
	var hist struct {
		Orders []struct {
			OrderID string `json:"orderId"`
		} `json:"orders"`
	}
	decodeBody(t, histResp, &hist)
	if len(hist.Orders) != 1 || hist.Orders[0].OrderID != placed.OrderID {
		t.Fatalf("history mismatch: %+v", hist)
	}

	// another customer cannot see the order, not even its existence
	minh := login(t, app, "minh@cellardoor.test")
	peek := jsonRequest("GET", "/api/orders/"+placed.OrderID, "")
	peek.AddCookie(minh)
	peekResp, err := app.Test(peek)
	if err != nil {
		t.Fatal(err)
	}
	if peekResp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign order, got %d", peekResp.StatusCode)
	}

	// admins can
	admin := login(t, app, "admin@cellardoor.test")
	adminPeek := jsonRequest("GET", "/api/orders/"+placed.OrderID, "")
	adminPeek.AddCookie(admin)
	adminResp, err := app.Test(adminPeek)
	if err != nil {
		t.Fatal(err)
	}
	if adminResp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for admin lookup, got %d", adminResp.StatusCode)
	}
}
