package routes

import (
	"net/http"
	"time"

	"opsledger/handlers"
	"opsledger/middleware"
	"opsledger/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// ApplyCORS installs the cross-origin policy for the API.
func ApplyCORS(r *gin.Engine) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
}

// RegisterSessionRoutes sets up the session lifecycle endpoints.
func RegisterSessionRoutes(r *gin.Engine, sh *handlers.SessionHandler, authCache *redis.Client) {
	api := r.Group("/api/sessions")
	{
		api.Use(middleware.JWTAuthMiddleware(authCache))
		api.POST("", sh.CreateSession)
		api.GET("", sh.ListSessions)
		api.GET("/:id", sh.GetSession)
		api.PATCH("/:id", sh.UpdateSessionSchedule)
		api.PATCH("/:id/status", sh.UpdateSessionStatus)
		api.POST("/:id/notes", sh.AddSessionNote)
		api.GET("/:id/trail", sh.GetSessionTrail)
	}
}

// RegisterAuditRoutes sets up the audit feed and performance endpoints.
func RegisterAuditRoutes(r *gin.Engine, ah *handlers.AuditHandler, authCache *redis.Client) {
	api := r.Group("/api/audit")
	{
		api.Use(middleware.JWTAuthMiddleware(authCache))
		api.GET("/performance", ah.GetPerformanceMetrics)

		// The raw cross-tenant feed is platform scope only.
		protected := api.Group("")
		protected.Use(middleware.RequireGlobalScope())
		protected.GET("", ah.GetAllAuditEntries)
	}
}

// RegisterFinanceRoutes sets up the ledger reporting endpoints.
func RegisterFinanceRoutes(r *gin.Engine, fh *handlers.FinancialHandler, authCache *redis.Client) {
	api := r.Group("/api/finance")
	{
		api.Use(middleware.JWTAuthMiddleware(authCache))
		api.GET("/summary", fh.GetFinancialSummary)
		api.GET("/records", fh.GetFinancialRecords)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}
