// Package router assembles the gin engine that serves the journal API.
package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "wheeltradr/internal/docs" // swagger spec registration
	"wheeltradr/internal/handlers"
	"wheeltradr/internal/middleware"
	"wheeltradr/internal/services"
)

// Deps are the services and auth settings the API is built from.
type Deps struct {
	Trades    services.TradeServicer
	Settings  services.SettingsServicer
	Analytics services.AnalyticsServicer
	Snapshots services.PerformanceSnapshotServicer
	Backup    services.BackupServicer
	Market    services.MarketServicer
	Auth      services.AuthServicer

	JWTSecret string
	TokenTTL  time.Duration
}

// New builds the engine with every route mounted.
func New(deps Deps) *gin.Engine {
	tradeHandler := handlers.NewTradeHandler(deps.Trades)
	analyticsHandler := handlers.NewAnalyticsHandler(deps.Analytics)
	snapshotHandler := handlers.NewSnapshotHandler(deps.Snapshots)
	settingsHandler := handlers.NewSettingsHandler(deps.Settings)
	marketHandler := handlers.NewMarketHandler(deps.Market)
	backupHandler := handlers.NewBackupHandler(deps.Backup)
	authHandler := handlers.NewAuthHandler(deps.Auth, deps.JWTSecret, deps.TokenTTL)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(cors())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "auth": deps.Auth.Enabled()})
	})

	v1 := router.Group("/api/v1")
	v1.POST("/auth/token", authHandler.Token)

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(deps.JWTSecret, deps.Auth.Enabled()))

	trades := protected.Group("/trades")
	trades.GET("", tradeHandler.ListTrades)
	trades.POST("", tradeHandler.CreateTrade)
	trades.GET("/:id", tradeHandler.GetTrade)
	trades.PUT("/:id", tradeHandler.UpdateTrade)
	trades.DELETE("/:id", tradeHandler.DeleteTrade)
	trades.POST("/:id/close", tradeHandler.QuickClose)

	protected.GET("/dashboard", analyticsHandler.Dashboard)
	protected.GET("/cycles", analyticsHandler.Cycles)
	protected.GET("/cycles/options", analyticsHandler.CycleOptions)
	protected.GET("/performance/summary", analyticsHandler.Summary)
	protected.GET("/performance/calendar", analyticsHandler.Calendar)
	protected.GET("/snapshots", snapshotHandler.GetSnapshots)

	settings := protected.Group("/settings")
	settings.GET("", settingsHandler.GetSettings)
	settings.PUT("", settingsHandler.UpdateSettings)
	settings.PUT("/prices/:ticker", settingsHandler.SetTickerPrice)
	settings.PUT("/vix", settingsHandler.SetManualVix)

	protected.POST("/market/refresh", marketHandler.Refresh)

	backup := protected.Group("/backup")
	backup.GET("/export", backupHandler.Export)
	backup.POST("/import", backupHandler.Import)

	return router
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
