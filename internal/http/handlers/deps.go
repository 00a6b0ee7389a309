package handlers

import (
	"cellardoor/internal/config"
	"cellardoor/internal/repos"
	"cellardoor/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	ProductHandler  *ProductHandler
	CategoryHandler *CategoryHandler
	CartHandler     *CartHandler
	CompareHandler  *CompareHandler
	OrderHandler    *OrderHandler
	StockHandler    *StockHandler
	ContentHandler  *ContentHandler
	FeedbackHandler *FeedbackHandler
	CustomerHandler *CustomerHandler
	MessageHandler  *MessageHandler
	EmailHandler    *EmailHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, auth *services.AuthService) *Deps {
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	stockRepo := repos.NewStockRepo(db)
	cartRepo := repos.NewCartRepo(db)
	compareRepo := repos.NewCompareRepo(db)
	orderRepo := repos.NewOrderRepo(db, stockRepo)
	contentRepo := repos.NewContentRepo(db)
	feedbackRepo := repos.NewFeedbackRepo(db)
	messageRepo := repos.NewMessageRepo(db)
	accountRepo := repos.NewAccountRepo(db)

	catalogSvc := services.NewCatalogService(catRepo, prodRepo)
	stockSvc := services.NewStockService(stockRepo, prodRepo)
	cartSvc := services.NewCartService(cartRepo, prodRepo)
	compareSvc := services.NewCompareService(compareRepo, prodRepo)
	orderSvc := services.NewOrderService(prodRepo, stockRepo, orderRepo, cartRepo, cfg.DefaultCountry)
	mailSvc := &services.MailService{
		Addr: cfg.SMTPAddr, From: cfg.SMTPFrom, User: cfg.SMTPUser, Pass: cfg.SMTPPass,
	}

	return &Deps{
		ProductHandler:  &ProductHandler{Catalog: catalogSvc},
		CategoryHandler: &CategoryHandler{Catalog: catalogSvc},
		CartHandler:     &CartHandler{Cart: cartSvc, Auth: auth},
		CompareHandler:  &CompareHandler{Compare: compareSvc, Auth: auth},
		OrderHandler:    &OrderHandler{Order: orderSvc, Repo: orderRepo, Auth: auth},
		StockHandler:    &StockHandler{Stock: stockSvc},
		ContentHandler:  &ContentHandler{Content: contentRepo},
		FeedbackHandler: &FeedbackHandler{Feedback: feedbackRepo, Prods: prodRepo},
		CustomerHandler: &CustomerHandler{Accounts: accountRepo},
		MessageHandler:  &MessageHandler{Messages: messageRepo},
		EmailHandler:    &EmailHandler{Mail: mailSvc},
	}
}
