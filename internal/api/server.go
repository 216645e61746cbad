package api

import (
	"github.com/gin-gonic/gin"

	"github.com/quangdm/finvi/internal/api/handlers"
	"github.com/quangdm/finvi/internal/api/middleware"
	"github.com/quangdm/finvi/internal/auth"
	"github.com/quangdm/finvi/internal/config"
	"github.com/quangdm/finvi/internal/finance"
	"github.com/quangdm/finvi/internal/log"
)

type Server struct {
	router  *gin.Engine
	config  *config.Config
	auth    *auth.Service
	stores  *finance.Manager
	advisor handlers.AdvisorService
	board   handlers.QuoteBoard
}

func NewServer(cfg *config.Config, authService *auth.Service, stores *finance.Manager, advisor handlers.AdvisorService, board handlers.QuoteBoard, logger *log.Logger) *Server {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.RequestLogger(logger))

	server := &Server{
		router:  router,
		config:  cfg,
		auth:    authService,
		stores:  stores,
		advisor: advisor,
		board:   board,
	}

	server.setupRoutes()

	return server
}

func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Router exposes the underlying engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := s.router.Group("/api")

	authHandler := handlers.NewAuthHandler(s.auth)
	transactionHandler := handlers.NewTransactionHandler(s.stores)
	budgetHandler := handlers.NewBudgetHandler(s.stores)
	goalHandler := handlers.NewGoalHandler(s.stores)
	categoryHandler := handlers.NewCategoryHandler(s.stores)
	recurringHandler := handlers.NewRecurringHandler(s.stores)
	debtHandler := handlers.NewDebtHandler(s.stores)
	reportHandler := handlers.NewReportHandler(s.stores)
	settingsHandler := handlers.NewSettingsHandler(s.stores)
	advisorHandler := handlers.NewAdvisorHandler(s.stores, s.advisor)
	marketHandler := handlers.NewMarketHandler(s.board)
	portfolioHandler := handlers.NewPortfolioHandler(s.stores, s.board)

	// public
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	// everything else requires a session
	protected := api.Group("")
	protected.Use(middleware.Auth(s.auth))
	{
		transactions := protected.Group("/transactions")
		{
			transactions.POST("", transactionHandler.Create)
			transactions.POST("/bulk", transactionHandler.CreateBulk)
			transactions.GET("", transactionHandler.List)
			transactions.PUT("/:id", transactionHandler.Update)
			transactions.DELETE("/:id", transactionHandler.Delete)
		}

		budgets := protected.Group("/budgets")
		{
			budgets.POST("", budgetHandler.Create)
			budgets.GET("", budgetHandler.List)
			budgets.PUT("/:id", budgetHandler.Update)
			budgets.DELETE("/:id", budgetHandler.Delete)
		}

		goals := protected.Group("/goals")
		{
			goals.POST("", goalHandler.Create)
			goals.GET("", goalHandler.List)
			goals.PUT("/:id", goalHandler.Update)
			goals.POST("/:id/funds", goalHandler.AddFunds)
			goals.DELETE("/:id", goalHandler.Delete)
		}

		categories := protected.Group("/categories")
		{
			categories.GET("", categoryHandler.List)
			categories.POST("", categoryHandler.Create)
			categories.PUT("/:name", categoryHandler.Update)
			categories.DELETE("/:name", categoryHandler.Delete)
		}

		recurring := protected.Group("/recurring")
		{
			recurring.POST("", recurringHandler.Create)
			recurring.GET("", recurringHandler.List)
			recurring.PUT("/:id", recurringHandler.Update)
			recurring.POST("/:id/post", recurringHandler.Post)
			recurring.DELETE("/:id", recurringHandler.Delete)
		}

		loans := protected.Group("/loans")
		{
			loans.POST("", debtHandler.CreateLoan)
			loans.GET("", debtHandler.ListLoans)
			loans.DELETE("/:id", debtHandler.DeleteLoan)
		}

		debts := protected.Group("/debts")
		{
			debts.POST("", debtHandler.CreateDebt)
			debts.GET("", debtHandler.ListDebts)
			debts.DELETE("/:id", debtHandler.DeleteDebt)
		}

		protected.GET("/reports", reportHandler.Report)
		protected.GET("/dashboard", reportHandler.Dashboard)

		protected.GET("/settings/currency", settingsHandler.GetCurrency)
		protected.PUT("/settings/currency", settingsHandler.SetCurrency)

		advisor := protected.Group("/advisor")
		{
			advisor.POST("", advisorHandler.Advise)
			advisor.POST("/scan-bill", advisorHandler.ScanBill)
			advisor.GET("/forecast", advisorHandler.Forecast)
		}

		marketGroup := protected.Group("/market")
		{
			marketGroup.GET("/quotes", marketHandler.Quotes)
			marketGroup.GET("/quotes/:symbol", marketHandler.Quote)
		}

		portfolio := protected.Group("/portfolio")
		{
			portfolio.GET("", portfolioHandler.Get)
			portfolio.POST("/holdings", portfolioHandler.CreateHolding)
			portfolio.PUT("/holdings/:id", portfolioHandler.UpdateHolding)
			portfolio.DELETE("/holdings/:id", portfolioHandler.DeleteHolding)
		}
	}
}
