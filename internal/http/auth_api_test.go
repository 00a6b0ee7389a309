package handlers_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRegisterValidatesAndConflicts(t *testing.T) {
	app := newTestApp(t)

	// weak password
	resp, err := app.Test(jsonRequest("POST", "/api/auth/register",
		`{"name":"Thu Ngo","email":"thu@cellardoor.test","password":"weak"}`))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for weak password, got %d", resp.StatusCode)
	}

	// first registration succeeds
	resp, err = app.Test(jsonRequest("POST", "/api/auth/register",
		`{"name":"Thu Ngo","email":"thu@cellardoor.test","password":"Str0ng!pass"}`))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	raw, _ := io.ReadAll(resp.Body)
	if strings.Contains(string(raw), "Str0ng!pass") || strings.Contains(string(raw), "$2") {
		t.Fatal("response must not leak the password or its hash")
	}

	// duplicate email is a conflict, case-insensitively
	resp, err = app.Test(jsonRequest("POST", "/api/auth/register",
		`{"name":"Thu Ngo","email":"THU@cellardoor.test","password":"Str0ng!pass"}`))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate email, got %d", resp.StatusCode)
	}
}

func TestLoginFailureIsGeneric(t *testing.T) {
	app := newTestApp(t)

	for _, body := range []string{
		`{"email":"lan@cellardoor.test","password":"wrongpass!"}`,
		`{"email":"nobody@cellardoor.test","password":"Passw0rd!"}`,
		`{"email":"not-an-email","password":"Passw0rd!"}`,
	} {
		resp, err := app.Test(jsonRequest("POST", "/api/auth/login", body))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d for %s", resp.StatusCode, body)
		}
		var e struct {
			Error string `json:"error"`
		}
		decodeBody(t, resp, &e)
		// same message for every failure; no account enumeration
		if e.Error != "invalid email or password" {
			t.Fatalf("unexpected error message %q", e.Error)
		}
	}
}

func TestMeReflectsLoginAndLogout(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/auth/me", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 before login, got %d", resp.StatusCode)
	}

	sid := login(t, app, "lan@cellardoor.test")
	me := httptest.NewRequest("GET", "/api/auth/me", nil)
	me.AddCookie(sid)
	resp, err = app.Test(me)
	if err != nil {
		t.Fatal(err)
	}
	var a struct {
		AccountID  string `json:"accountId"`
		CustomerID string `json:"customerId"`
		Role       string `json:"role"`
	}
	decodeBody(t, resp, &a)
	if a.AccountID != "a-lan" || a.CustomerID != "c-lan" || a.Role != "USER" {
		t.Fatalf("unexpected identity: %+v", a)
	}

	out := jsonRequest("POST", "/api/auth/logout", "")
	out.AddCookie(sid)
	if _, err := app.Test(out); err != nil {
		t.Fatal(err)
	}

	me = httptest.NewRequest("GET", "/api/auth/me", nil)
	me.AddCookie(sid)
	resp, err = app.Test(me)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", resp.StatusCode)
	}
}
