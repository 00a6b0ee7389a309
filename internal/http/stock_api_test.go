package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAvailabilityValidationAndStatuses(t *testing.T) {
	app := newTestApp(t)

	// missing productId is a client error, not an empty answer
	resp, err := app.Test(httptest.NewRequest("GET", "/api/productstocks/availability", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 without productId, got %d", resp.StatusCode)
	}

	cases := []struct {
		pid    string
		status string
		qty    int
	}{
		{"w-mer-002", "IN_STOCK", 60},
		{"s-why-005", "LOW_STOCK", 3},
		{"no-such-product", "OUT_OF_STOCK", 0},
	}
	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest("GET",
			"/api/productstocks/availability?productId="+tc.pid, nil))
		if err != nil {
			t.Fatal(err)
		}
		var a struct {
			Status string `json:"status"`
			Qty    int    `json:"qty"`
		}
		decodeBody(t, resp, &a)
		if a.Status != tc.status || a.Qty != tc.qty {
			t.Fatalf("%s: want %s/%d, got %s/%d", tc.pid, tc.status, tc.qty, a.Status, a.Qty)
		}
	}
}

func TestStockAdminEndpointsRequireAdmin(t *testing.T) {
	app := newTestApp(t)

	// anonymous
	resp, err := app.Test(httptest.NewRequest("GET", "/api/productstocks", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 anonymous, got %d", resp.StatusCode)
	}

	// regular user
	user := login(t, app, "lan@cellardoor.test")
	req := httptest.NewRequest("GET", "/api/productstocks", nil)
	req.AddCookie(user)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for USER role, got %d", resp.StatusCode)
	}

	// admin can update, and the storefront sees the new status
	admin := login(t, app, "admin@cellardoor.test")
	up := jsonRequest("PUT", "/api/productstocks", `{"productId":"s-why-005","quantity":0}`)
	up.AddCookie(admin)
	resp, err = app.Test(up)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin upsert: status %d", resp.StatusCode)
	}

	check, err := app.Test(httptest.NewRequest("GET",
		"/api/productstocks/availability?productId=s-why-005", nil))
	if err != nil {
		t.Fatal(err)
	}
	var a struct {
		Status string `json:"status"`
	}
	decodeBody(t, check, &a)
	if a.Status != "OUT_OF_STOCK" {
		t.Fatalf("want OUT_OF_STOCK after zeroing, got %s", a.Status)
	}
}

func TestStockUpsertRejectsNegativeAndUnknown(t *testing.T) {
	app := newTestApp(t)
	admin := login(t, app, "admin@cellardoor.test")

	neg := jsonRequest("PUT", "/api/productstocks", `{"productId":"w-mer-002","quantity":-1}`)
	neg.AddCookie(admin)
	resp, err := app.Test(neg)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative quantity, got %d", resp.StatusCode)
	}

	ghost := jsonRequest("PUT", "/api/productstocks", `{"productId":"ghost","quantity":4}`)
	ghost.AddCookie(admin)
	resp, err = app.Test(ghost)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown product, got %d", resp.StatusCode)
	}
}
