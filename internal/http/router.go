package http

import (
	"log/slog"
	"os"

	"github.com/giftlinkhq/giftlink/internal/auth"
	"github.com/giftlinkhq/giftlink/internal/cache"
	"github.com/giftlinkhq/giftlink/internal/config"
	"github.com/giftlinkhq/giftlink/internal/http/handlers"
	"github.com/giftlinkhq/giftlink/internal/http/middlewares"
	"github.com/giftlinkhq/giftlink/internal/observability"
	"github.com/giftlinkhq/giftlink/internal/repo/mongodb"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

type RouterDeps struct {
	Log       *slog.Logger
	Cfg       config.Config
	DB        *mongo.Database
	GiftCache cache.Cache
	Prom      *observability.Prom
	Gatherer  prometheus.Gatherer
	// Ping probes the backing stores for readiness; nil means always ready.
	Ping func() error
}

func NewRouter(deps RouterDeps) *gin.Engine {
	cfgEnv := os.Getenv("APP_ENV")

	if cfgEnv != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// middleware

	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(deps.Log))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(deps.Cfg.CORSOrigins))
	r.Use(middlewares.MaxBodyBytes(1 << 20))
	r.Use(otelgin.Middleware("giftlink-api"))

	if deps.Prom != nil {
		r.Use(deps.Prom.GinHandleMiddleware())
	}

	// health + metrics

	h := handlers.NewHealthHandler(deps.Ping)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	// wire up repositories
	usersRepo := mongodb.NewUsersRepo(deps.DB, deps.Prom)
	giftsRepo := mongodb.NewGiftsRepo(deps.DB, deps.Prom)

	// wire up handlers
	jwtManager := auth.NewManager(deps.Cfg.JWTSecret)
	authHandler := handlers.NewAuthHandler(usersRepo, jwtManager, deps.Log)
	giftsHandler := handlers.NewGiftsHandler(giftsRepo, deps.GiftCache, deps.Prom, deps.Log)
	searchHandler := handlers.NewSearchHandler(giftsRepo, deps.Log)

	api := r.Group("/api")
	api.Use(middlewares.RequireJSON())

	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.PUT("/auth/update", authHandler.Update)

	api.GET("/gifts", giftsHandler.ListGifts)
	api.GET("/gifts/:id", giftsHandler.GetGiftByID)
	api.GET("/search", searchHandler.SearchGifts)

	return r
}
