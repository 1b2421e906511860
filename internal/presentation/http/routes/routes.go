package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lromero86/tacopos-api/internal/config"
	"github.com/lromero86/tacopos-api/internal/presentation/http/handler"
	"github.com/lromero86/tacopos-api/internal/presentation/http/middleware"
	"github.com/lromero86/tacopos-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth    *handler.AuthHandler
	Till    *handler.TillHandler
	Order   *handler.OrderHandler
	Expense *handler.ExpenseHandler
	Report  *handler.ReportHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager *utils.JWTManager
	Cfg        *config.Config
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	v1 := router.Group("/api/v1")
	{
		registerAuthRoutes(v1, h)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		rateLimiter := middleware.NewOperatorRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/google", h.Auth.GoogleLogin)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers) {
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.GetProfile)
	protected.PUT("/profile/pin", h.Auth.SetPIN)

	registerTillRoutes(protected, h)
	registerOrderRoutes(protected, h)
	registerExpenseRoutes(protected, h)
	registerReportRoutes(protected, h)
}

func registerTillRoutes(protected *gin.RouterGroup, h *Handlers) {
	till := protected.Group("/till")
	{
		till.GET("", h.Till.GetTill)
		till.GET("/stream", h.Till.Stream)
		till.PUT("/cutoff", h.Till.ChangeCutoff)

		// Active-tab operations; the client selects a tab, then edits
		// it through these.
		till.POST("/items", h.Order.AddItem)
		till.POST("/items/remove", h.Order.RemoveItem)
		till.DELETE("/items", h.Order.ClearItems)
		till.POST("/pay", h.Order.Pay)
		till.POST("/cancel", h.Order.Cancel)
	}
}

func registerOrderRoutes(protected *gin.RouterGroup, h *Handlers) {
	orders := protected.Group("/orders")
	{
		orders.GET("", h.Order.ListOrders)
		orders.POST("", h.Order.CreateOrder)
		orders.POST("/:id/select", h.Order.SelectOrder)
		orders.DELETE("/:id", h.Order.DeleteOrder)
	}
}

func registerExpenseRoutes(protected *gin.RouterGroup, h *Handlers) {
	expenses := protected.Group("/expenses")
	{
		expenses.GET("", h.Expense.ListExpenses)
		expenses.POST("", h.Expense.CreateExpense)
	}
}

func registerReportRoutes(protected *gin.RouterGroup, h *Handlers) {
	report := protected.Group("/report")
	{
		report.GET("", h.Report.GetReport)
		report.GET("/history", h.Report.GetHistory)
	}
}
