package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"slidetext/internal/config"
	"slidetext/internal/handler"
	"slidetext/internal/middleware"
)

// bodyLimitSlack is headroom above the policy size ceiling so the validator,
// not the transport, rejects merely-oversized uploads. Multipart framing also
// needs a little room beyond the file itself.
const bodyLimitSlack = 10 * 1024 * 1024

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	indexH *handler.IndexHandler,
	convertH *handler.ConvertHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	r.Use(middleware.BodyLimit(cfg.Limits.MaxFileSizeBytes() + bodyLimitSlack))

	// Upload page and health checks
	r.GET("/", indexH.Index)
	r.GET("/healthz", healthH.Liveness)

	// API docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	v1.POST("/convert", convertH.Convert)
	v1.POST("/convert/download", convertH.Download)

	return r
}
