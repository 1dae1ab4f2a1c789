package handler

import (
	"net/http"

	"HRPolicyGateway/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterOptions struct {
	RateLimitRPS   float64
	RateLimitBurst int
	// Swagger serves /swagger/*any when true.
	Swagger bool
}

// NewRouter registers every route on a fresh engine.
func NewRouter(h *Handler, opts RouterOptions) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(h.logger, h.metrics))

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowHeaders = append(config.AllowHeaders, "Authorization")
	router.Use(cors.New(config))

	router.GET("/healthz", h.Healthz)
	router.GET("/metrics", gin.WrapH(metricsHandler(h)))
	if opts.Swagger {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	limited := router.Group("/")
	if opts.RateLimitRPS > 0 {
		limited.Use(middleware.RateLimit(opts.RateLimitRPS, opts.RateLimitBurst))
	}
	limited.POST("/auth/login", h.Login)
	limited.GET("/ws/ask", h.HandleAskConnection)

	protected := limited.Group("/").Use(middleware.AuthMiddleware(h.tokens, h.metrics, h.logger))
	{
		protected.POST("/ask", h.Ask)
		protected.GET("/profile/:user", h.Profile)
	}
	return router
}

func metricsHandler(h *Handler) http.Handler {
	if h.metrics == nil {
		return http.NotFoundHandler()
	}
	return h.metrics.Handler()
}
