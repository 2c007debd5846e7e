package v1

import (
	"time"

	"portfolio-backend/config"
	"portfolio-backend/internal/delivery/http/middleware"
	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/usecase"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	PortfolioUC domain.PortfolioUsecase
	HealthUC    usecase.HealthUsecase
	Config      *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	if cfg == nil {
		cfg = &config.Config{RateLimitWindowSeconds: 60, RateLimitGlobalThreshold: 120, RateLimitWriteThreshold: 10}
	}
	window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second

	r := gin.New()

	// CORS first so preflights are answered before anything else runs.
	r.Use(middleware.CORSMiddleware(cfg.FrontendURL, gin.Mode() != gin.ReleaseMode))
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")
	v1.Use(middleware.RateLimitMiddleware(middleware.GlobalRateLimitConfig(cfg.RateLimitGlobalThreshold, window)))

	NewHealthHandler(v1, deps.HealthUC)
	NewPortfolioHandler(v1, deps.PortfolioUC,
		middleware.RateLimitMiddleware(middleware.WriteRateLimitConfig(cfg.RateLimitWriteThreshold, window)))
	NewPlaceholderHandler(v1)

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
