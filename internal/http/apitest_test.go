package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"cellardoor/internal/config"
	"cellardoor/internal/http/handlers"
	"cellardoor/internal/repos"
	"cellardoor/internal/services"
)

// newTestApp wires the real handlers over a fresh in-memory database with the
// demo seed in place. Routes mirror the production table minus the global
// middlewares, which have their own tests.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	// every sqlx connection would otherwise get its own private :memory: db
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	cfg := config.Config{DefaultCountry: "Vietnam"}
	authSvc := &services.AuthService{Accounts: repos.NewAccountRepo(db)}
	authH := &handlers.AuthHandler{Auth: authSvc}
	deps := handlers.NewDeps(db, cfg, authSvc)

	app := fiber.New()
	api := app.Group("/api")

	api.Get("/products", deps.ProductHandler.List)
	api.Get("/products/:id", deps.ProductHandler.Get)
	api.Post("/products", handlers.RequireAdmin(authSvc), deps.ProductHandler.Create)

	api.Post("/auth/register", authH.Register)
	api.Post("/auth/login", authH.Login)
	api.Post("/auth/logout", authH.Logout)
	api.Get("/auth/me", authH.Me)

	api.Get("/cart", deps.CartHandler.Get)
	api.Post("/cart", deps.CartHandler.Add)
	api.Put("/cart", deps.CartHandler.Update)
	api.Delete("/cart", deps.CartHandler.Clear)
	api.Delete("/cart/:productId", deps.CartHandler.Remove)

	api.Post("/orders", deps.OrderHandler.Place)
	api.Get("/orders", handlers.RequireUser(authSvc), deps.OrderHandler.History)
	api.Get("/orders/:id", deps.OrderHandler.Get)
	api.Post("/orders/:id/status", handlers.RequireAdmin(authSvc), deps.OrderHandler.UpdateStatus)

	api.Get("/productstocks/availability", deps.StockHandler.Check)
	api.Get("/productstocks", handlers.RequireAdmin(authSvc), deps.StockHandler.List)
	api.Put("/productstocks", handlers.RequireAdmin(authSvc), deps.StockHandler.Upsert)

	return app
}

func cookieValue(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// login authenticates a seeded account and returns its session cookie.
func login(t *testing.T, app *fiber.App, email string) *http.Cookie {
	t.Helper()
	resp, err := app.Test(jsonRequest("POST", "/api/auth/login",
		`{"email":"`+email+`","password":"Passw0rd!"}`))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login as %s: status %d", email, resp.StatusCode)
	}
	sid := cookieValue(resp, "sid")
	if sid == "" {
		t.Fatal("login did not set a sid cookie")
	}
	return &http.Cookie{Name: "sid", Value: sid}
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		t.Fatalf("decode %q: %v", raw, err)
	}
}
