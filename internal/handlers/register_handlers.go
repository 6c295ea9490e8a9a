package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/arduabooks/backend/internal/core/ports/services"
	"github.com/arduabooks/backend/internal/middleware"
	"github.com/arduabooks/backend/pkg/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Setup API v1 routes, passing service interfaces
	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Define rate limit: 300 requests per minute per IP
	rate, _ := limiter.NewRateFromFormatted("300-M")
	store := memory.NewStore()
	ipLimiter := limiter.New(store, rate)

	// Authentication happens upstream; the acting user arrives as a header
	v1 := r.Group("/api/v1", middleware.ActingUserMiddleware(), middleware.RateLimit(ipLimiter))

	// Delegate route registration to specific handlers, passing required services
	registerAccountRoutes(v1, services.Account)
	registerLedgerRoutes(v1, services.Ledger)
	registerClientRoutes(v1, services.Client, services.BillingItem)
	registerBillingItemRoutes(v1, services.BillingItem)
	registerInvoiceRoutes(v1, services.Invoice)
	registerPaymentRoutes(v1, services.Payment)
	registerBankAccountRoutes(v1, services.BankAccount)
}
