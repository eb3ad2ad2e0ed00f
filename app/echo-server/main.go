package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"recomart/app/echo-server/router"
	"recomart/business/customer"
	"recomart/business/history"
	"recomart/business/orders"
	"recomart/business/product"
	"recomart/business/recommend"
	"recomart/internal/middleware"
	"recomart/internal/repository/llm"
	psqlRepo "recomart/internal/repository/postgres"
	"recomart/internal/rest"
	"recomart/pkg/config"
	"recomart/pkg/database"
	"recomart/pkg/logger"
	"recomart/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment, cfg.App.LogLevel)
	logger.Info("Starting RecoMart", "version", cfg.App.Version)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	metrics.Init()

	// Init completion provider
	llmRepo := llm.NewLLMRepository(llm.LLMConfig{
		BaseURL: cfg.LLM.BaseURL,
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.Model,
	})
	if !llmRepo.IsConfigured() {
		logger.Warn("LLM provider not configured, recommendations run on the heuristic fallback")
	}

	// Init validate
	validate := validator.New()

	// Init repo
	customerRepo := psqlRepo.NewCustomerRepository(db)
	productsRepo := psqlRepo.NewProductRepository(db)
	ordersRepo := psqlRepo.NewOrdersRepository(db)

	// Init service
	customerService := customer.NewCustomerService(customerRepo, ordersRepo, validate)
	productService := product.NewProductService(productsRepo)
	ordersService := orders.NewOrdersService(ordersRepo, customerRepo, productsRepo)
	historyService := history.NewHistoryService(customerRepo, ordersRepo, productsRepo, cfg.LLM.HistoryLookback)
	recommendService := recommend.NewRecommendService(
		historyService,
		productsRepo,
		ordersRepo,
		llmRepo,
		time.Duration(cfg.LLM.TimeoutSeconds)*time.Second,
	)

	// Init handler
	customerHandler := rest.NewCustomerHandler(customerService)
	productHandler := rest.NewProductHandler(productService)
	ordersHandler := rest.NewOrdersHandler(ordersService)
	recoHandler := rest.NewRecommendationHandler(recommendService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.Trace())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// Liveness and metrics
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupCustomerRoutes(api, customerHandler, recoHandler)
	router.SetupProductRoutes(api, productHandler)
	router.SetOrdersRoutes(api, ordersHandler)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
