package httpapi

import (
	"context"
	"time"

	"atelier/internal/orders"
	"atelier/internal/session"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimiter is satisfied by *redis.Client from pkg/redis.
type RateLimiter interface {
	CheckRateLimit(ctx context.Context, key string, limit int64, window time.Duration) (bool, error)
}

type Deps struct {
	Sessions    *session.Service
	Orders      *orders.Service
	Logger      *zap.Logger
	CORSOrigins []string

	// Limiter may be nil, which disables order rate limiting.
	Limiter    RateLimiter
	RateLimit  int64
	RateWindow time.Duration
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(d.Logger))

	corsCfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "DELETE"},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}
	if len(d.CORSOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = d.CORSOrigins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	calc := NewCalculatorHandler(d.Sessions)
	ord := NewOrderHandler(d.Orders, d.Logger)

	api := r.Group("/api")
	{
		api.GET("/catalog", calc.GetCatalog())

		api.POST("/sessions", calc.CreateSession())
		api.GET("/sessions/:id", calc.GetSession())
		api.DELETE("/sessions/:id", calc.EndSession())
		api.POST("/sessions/:id/view", calc.ShowView())
		api.POST("/sessions/:id/garment", calc.SelectGarment())
		api.POST("/sessions/:id/fabric", calc.SelectFabric())
		api.POST("/sessions/:id/services/:serviceID/toggle", calc.ToggleService())
		api.POST("/sessions/:id/estimate", calc.Calculate())
		api.POST("/sessions/:id/reset", calc.Reset())

		api.POST("/orders",
			rateLimit(d.Limiter, "orders", d.RateLimit, d.RateWindow, d.Logger),
			ord.Submit())
	}

	return r
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}

// rateLimit rejects a client IP that exceeds limit hits of action per window.
// Limiter failures are logged and the request goes through.
func rateLimit(limiter RateLimiter, action string, limit int64, window time.Duration, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil || limit <= 0 {
			c.Next()
			return
		}

		key := "ratelimit:" + action + ":" + c.ClientIP()
		exceeded, err := limiter.CheckRateLimit(c.Request.Context(), key, limit, window)
		if err != nil {
			logger.Warn("Rate limit check failed",
				zap.String("key", key),
				zap.Error(err))
			c.Next()
			return
		}
		if exceeded {
			c.AbortWithStatusJSON(429, gin.H{"error": "too many requests, try again later"})
			return
		}
		c.Next()
	}
}
