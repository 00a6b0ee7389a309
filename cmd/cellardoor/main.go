package main

import (
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"cellardoor/internal/chat"
	"cellardoor/internal/config"
	"cellardoor/internal/http/handlers"
	applog "cellardoor/internal/log"
	"cellardoor/internal/repos"
	"cellardoor/internal/services"
	"cellardoor/internal/validate"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	// Auth wiring
	accountRepo := repos.NewAccountRepo(db)
	authSvc := &services.AuthService{Accounts: accountRepo}
	authH := &handlers.AuthHandler{Auth: authSvc}

	// Chat hub
	hub := chat.NewHub(repos.NewMessageRepo(db))
	go hub.Run()

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Log internals, answer with a generic message
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "something went wrong, please try again",
			})
		},
	})
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Content-Type,Authorization",
		AllowCredentials: true,
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
	}))

	// ---------- Routes ----------
	deps := handlers.NewDeps(db, cfg, authSvc)
	api := app.Group("/api")

	// Catalog
	api.Get("/products", deps.ProductHandler.List)
	api.Get("/products/:id", deps.ProductHandler.Get)
	api.Post("/products", handlers.RequireAdmin(authSvc), deps.ProductHandler.Create)
	api.Get("/categories", deps.CategoryHandler.List)
	api.Post("/categories", handlers.RequireAdmin(authSvc), deps.CategoryHandler.Create)
	api.Get("/promotions", deps.CategoryHandler.Promotions)

	// Auth (login throttled)
	auth := api.Group("/auth")
	auth.Post("/register", authH.Register)
	auth.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "too many attempts, please try again later",
			})
		},
	}), authH.Login)
	auth.Post("/logout", authH.Logout)
	auth.Get("/me", authH.Me)

	// Cart & compare
	api.Get("/cart", deps.CartHandler.Get)
	api.Post("/cart", deps.CartHandler.Add)
	api.Put("/cart", deps.CartHandler.Update)
	api.Delete("/cart", deps.CartHandler.Clear)
	api.Delete("/cart/:productId", deps.CartHandler.Remove)
	api.Get("/compare", deps.CompareHandler.Get)
	api.Post("/compare", deps.CompareHandler.Add)
	api.Delete("/compare/:productId", deps.CompareHandler.Remove)

	// Orders
	api.Post("/orders", deps.OrderHandler.Place)
	api.Get("/orders", handlers.RequireUser(authSvc), deps.OrderHandler.History)
	api.Get("/orders/:id", deps.OrderHandler.Get)
	api.Post("/orders/:id/status", handlers.RequireAdmin(authSvc), deps.OrderHandler.UpdateStatus)

	// Stock
	api.Get("/productstocks/availability", limiter.New(limiter.Config{
		Max:        15,
		Expiration: 30 * time.Second,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|avail"
		},
	}), deps.StockHandler.Check)
	api.Get("/productstocks", handlers.RequireAdmin(authSvc), deps.StockHandler.List)
	api.Put("/productstocks", handlers.RequireAdmin(authSvc), deps.StockHandler.Upsert)

	// Content
	api.Get("/blogs", deps.ContentHandler.ListBlogs)
	api.Get("/blogs/:id", deps.ContentHandler.GetBlog)
	api.Post("/blogs", handlers.RequireAdmin(authSvc), deps.ContentHandler.CreateBlog)
	api.Get("/faqs", deps.ContentHandler.ListFAQs)
	api.Post("/faqs", handlers.RequireAdmin(authSvc), deps.ContentHandler.CreateFAQ)
	api.Post("/memberships", deps.ContentHandler.Subscribe)
	api.Get("/memberships", handlers.RequireAdmin(authSvc), deps.ContentHandler.ListMemberships)

	// Reviews, profile, mail, chat history
	api.Get("/feedbacks/:productId", deps.FeedbackHandler.ListByProduct)
	api.Post("/feedbacks", deps.FeedbackHandler.Create)
	api.Get("/customers/me", handlers.RequireUser(authSvc), deps.CustomerHandler.Me)
	api.Put("/customers/me", handlers.RequireUser(authSvc), deps.CustomerHandler.Update)
	api.Post("/email", deps.EmailHandler.Send)
	api.Get("/messages", deps.MessageHandler.Conversation)

	// Live chat channel
	app.Use("/ws/chat", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		user, ok := validate.Username(c.Query("user"))
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "user required"})
		}
		c.Locals("chatUser", user)
		return c.Next()
	})
	app.Get("/ws/chat", websocket.New(func(conn *websocket.Conn) {
		user, _ := conn.Locals("chatUser").(string)
		hub.Serve(conn, user)
	}))

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	})

	// Graceful shutdown on SIGINT/SIGTERM
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Println("[shutdown] draining connections")
		close(hub.Quit)
		_ = app.Shutdown()
	}()

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
	_ = db.Close()
	log.Println("[shutdown] database closed")
}
