package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
)

type cartBody struct {
	Items []struct {
		ProductID string  `json:"productId"`
		Quantity  int     `json:"quantity"`
		Subtotal  float64 `json:"subtotal"`
	} `json:"items"`
	Total float64 `json:"total"`
}

// getCart fetches the cart for the given session cookie.
func getCart(t *testing.T, app *fiber.App, sid *http.Cookie) cartBody {
	t.Helper()
	req := jsonRequest("GET", "/api/cart", "")
	req.AddCookie(sid)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get cart: status %d", resp.StatusCode)
	}
	var cb cartBody
	decodeBody(t, resp, &cb)
	return cb
}

func TestGuestCartMintedOnFirstContact(t *testing.T) {
	app := newTestApp(t)

	// no cookie on the first request; the server mints one
	resp, err := app.Test(jsonRequest("GET", "/api/cart", ""))
	if err != nil {
		t.Fatal(err)
	}
	sid := cookieValue(resp, "sid")
	if sid == "" {
		t.Fatal("first contact should set a sid cookie")
	}

	var cb cartBody
	decodeBody(t, resp, &cb)
	if len(cb.Items) != 0 || cb.Total != 0 {
		t.Fatalf("fresh cart should be empty: %+v", cb)
	}
}

func TestGuestCartAddAccumulatesAndPrices(t *testing.T) {
	app := newTestApp(t)
	sid := &http.Cookie{Name: "sid", Value: "guest-test-1"}

	for _, qty := range []string{"2", "3"} {
		req := jsonRequest("POST", "/api/cart",
			`{"productId":"w-chd-003","quantity":`+qty+`}`)
		req.AddCookie(sid)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("add to cart: status %d", resp.StatusCode)
		}
	}

	cb := getCart(t, app, sid)
	if len(cb.Items) != 1 || cb.Items[0].Quantity != 5 {
		t.Fatalf("adds should accumulate into one line: %+v", cb)
	}
	if cb.Total != 5*280000 { // seeded chardonnay price
		t.Fatalf("want total %v, got %v", 5*280000, cb.Total)
	}
}

func TestCartAddRejectsZeroQuantityAndUnknownProduct(t *testing.T) {
	app := newTestApp(t)
	sid := &http.Cookie{Name: "sid", Value: "guest-test-2"}

	req := jsonRequest("POST", "/api/cart", `{"productId":"w-chd-003","quantity":0}`)
	req.AddCookie(sid)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for zero quantity, got %d", resp.StatusCode)
	}

	req = jsonRequest("POST", "/api/cart", `{"productId":"ghost","quantity":1}`)
	req.AddCookie(sid)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown product, got %d", resp.StatusCode)
	}
}

func TestGuestCartFollowsAccountAfterLogin(t *testing.T) {
	app := newTestApp(t)

	// build up a guest cart under an anonymous session
	guest := &http.Cookie{Name: "sid", Value: "guest-test-3"}
	req := jsonRequest("POST", "/api/cart", `{"productId":"w-prs-004","quantity":2}`)
	req.AddCookie(guest)
	if _, err := app.Test(req); err != nil {
		t.Fatal(err)
	}

	// log in on the same session
	loginReq := jsonRequest("POST", "/api/auth/login",
		`{"email":"lan@cellardoor.test","password":"Passw0rd!"}`)
	loginReq.AddCookie(guest)
	loginResp, err := app.Test(loginReq)
	if err != nil {
		t.Fatal(err)
	}
	if loginResp.StatusCode != http.StatusOK {
		t.Fatalf("login: status %d", loginResp.StatusCode)
	}

	// the account cart now holds the guest items
	cb := getCart(t, app, guest)
	if len(cb.Items) != 1 || cb.Items[0].ProductID != "w-prs-004" || cb.Items[0].Quantity != 2 {
		t.Fatalf("cart did not follow the login: %+v", cb)
	}

	// a later visit on a brand new device sees the same cart once logged in
	other := login(t, app, "lan@cellardoor.test")
	cb2 := getCart(t, app, other)
	if len(cb2.Items) != 1 || cb2.Items[0].Quantity != 2 {
		t.Fatalf("account cart not persistent across sessions: %+v", cb2)
	}
}

func TestCartRemoveIsIdempotentOverHTTP(t *testing.T) {
	app := newTestApp(t)
	sid := &http.Cookie{Name: "sid", Value: "guest-test-4"}

	req := jsonRequest("POST", "/api/cart", `{"productId":"w-cab-001","quantity":1}`)
	req.AddCookie(sid)
	if _, err := app.Test(req); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 2; i++ {
		del := jsonRequest("DELETE", "/api/cart/w-cab-001", "")
		del.AddCookie(sid)
		resp, err := app.Test(del)
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("remove #%d: status %d", i+1, resp.StatusCode)
		}
	}

	if cb := getCart(t, app, sid); len(cb.Items) != 0 {
		t.Fatalf("cart should be empty after removal: %+v", cb)
	}
}
