package app

import (
	"HabitTracker/internal/auth"
	"HabitTracker/internal/cache"
	"HabitTracker/internal/clock"
	"HabitTracker/internal/config"
	"HabitTracker/internal/handlers"
	"HabitTracker/internal/metrics"
	"HabitTracker/internal/repo"
	"HabitTracker/internal/service"
	"HabitTracker/internal/streak"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
)

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, store repo.Store, rdb *redis.Client, clk clock.Clock) {
	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))
	if cfg.Metrics.Enabled {
		r.GET("/metrics", metrics.Handler())
	}
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(302, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
		ginSwagger.PersistAuthorization(true),
	))

	api := r.Group("/api/v1")

	sessionStore := auth.NewStore(rdb, cfg.Session.TTL.Duration())
	userSvc := service.NewUserService(store.Users())
	authHandler := handlers.NewAuthHandler(sessionStore, userSvc)
	requireSession := auth.RequireSession(sessionStore)
	registerAuthRoutes(api, authHandler, requireSession)

	protected := api.Group("", requireSession)
	progressCache := cache.NewProgressCache(rdb, cfg.Redis.DefaultTTL.Duration())
	calc := streak.NewCalculator(cfg.Streak.MaxScanDays)

	habitHandler := handlers.NewHabitHandler(service.NewHabitService(store, clk, calc, progressCache))
	progressHandler := handlers.NewProgressHandler(service.NewProgressService(store, clk, calc, progressCache))
	recHandler := handlers.NewRecommendationHandler(service.NewRecommendationService(store, clk, progressCache))
	RegisterHabitRoutes(protected, habitHandler, progressHandler, recHandler)
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "Habit Tracker API",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"docs":    "/swagger/index.html",
			"spec":    "/swagger-doc.json",
			"health":  "/health",
			"api":     "/api/v1",
		})
	}
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.Data(200, "application/json; charset=utf-8", []byte(doc))
	}
}

// RegisterHabitRoutes mounts habit, progress and recommendation endpoints on api.
func RegisterHabitRoutes(api *gin.RouterGroup, h *handlers.HabitHandler, p *handlers.ProgressHandler, rec *handlers.RecommendationHandler) {
	api.POST("/habits", h.Create)
	api.GET("/habits", h.List)
	api.GET("/habits/:id", h.GetByID)
	api.PATCH("/habits/:id", h.Update)
	api.DELETE("/habits/:id", h.Delete)
	api.POST("/habits/:id/complete", h.Complete)
	api.POST("/habits/:id/progress", h.MarkDay)
	api.GET("/habits/:id/progress", p.HabitProgress)
	api.GET("/habits/:id/history", p.History)
	api.GET("/habits/:id/stats", p.Stats)

	api.GET("/progress", p.All)
	api.GET("/progress/today/incomplete", p.IncompleteToday)

	api.GET("/recommendations", rec.List)
}

func registerAuthRoutes(api *gin.RouterGroup, h *handlers.AuthHandler, requireSession gin.HandlerFunc) {
	api.POST("/auth/login", h.Login)
	api.POST("/auth/register", h.Register)
	api.POST("/auth/logout", h.Logout)
	api.GET("/auth/me", requireSession, h.Me)
}
