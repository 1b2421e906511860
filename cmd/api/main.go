package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/lromero86/tacopos-api/internal/application/service"
	"github.com/lromero86/tacopos-api/internal/config"
	fsrepo "github.com/lromero86/tacopos-api/internal/infrastructure/firestore"
	"github.com/lromero86/tacopos-api/internal/infrastructure/identity"
	"github.com/lromero86/tacopos-api/internal/presentation/http/handler"
	"github.com/lromero86/tacopos-api/internal/presentation/http/routes"
	"github.com/lromero86/tacopos-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	// Connect to the document store
	client, err := fsrepo.NewClient(ctx, &cfg.Firestore)
	if err != nil {
		log.Fatalf("Failed to connect to Firestore: %v", err)
	}
	defer client.Close()

	// Initialize the identity provider
	provider, err := identity.NewProvider(ctx, &cfg.Firebase)
	if err != nil {
		log.Fatalf("Failed to initialize identity provider: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	orderRepo := fsrepo.NewOrderRepository(client)
	expenseRepo := fsrepo.NewExpenseRepository(client)
	operatorRepo := fsrepo.NewOperatorRepository(client)

	// Initialize services
	sessions := service.NewSessionManager(orderRepo, expenseRepo)
	reports := service.NewReportService(cfg.Till.HistoryDisplayLimit)
	confirmer := service.NewPINConfirmer()
	authService := service.NewAuthService(provider, operatorRepo, sessions, jwtManager)
	tillService := service.NewTillService(
		sessions,
		orderRepo,
		expenseRepo,
		reports,
		confirmer,
		cfg.Till.ExpenseDisplayLimit,
	)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Till:    handler.NewTillHandler(tillService, sessions),
		Order:   handler.NewOrderHandler(tillService),
		Expense: handler.NewExpenseHandler(tillService),
		Report:  handler.NewReportHandler(tillService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager: jwtManager,
		Cfg:        cfg,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
