package v1

import (
	"net/http"
	"time"

	"contacts-api/config"
	"contacts-api/internal/delivery/http/middleware"
	"contacts-api/internal/delivery/http/response"
	"contacts-api/internal/domain"
	"contacts-api/internal/usecase"
	"contacts-api/pkg/logger"
	"contacts-api/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	goredis "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const docsPrefix = "/api-docs"

type RouterDeps struct {
	ContactUC domain.ContactUsecase
	HealthUC  usecase.HealthUsecase
	Redis     *goredis.Client // optional, backs the rate limiter
	Config    *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(v)
	}

	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.CORSAllowedOrigins)) // CORS must be first!
	r.Use(gin.CustomRecovery(recoverPanic))
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware(docsPrefix))
	r.Use(middleware.RateLimitMiddleware(middleware.DefaultRateLimitConfig(
		deps.Config.RateLimitGlobalThreshold,
		time.Duration(deps.Config.RateLimitWindowSeconds)*time.Second,
	), deps.Redis))
	r.Use(middleware.ErrorHandler())

	r.GET("/", Greeting)

	// Health Check
	if deps.HealthUC != nil {
		r.GET("/health", func(c *gin.Context) {
			status, healthy := deps.HealthUC.Check(c.Request.Context())
			code := http.StatusOK
			if !healthy {
				code = http.StatusServiceUnavailable
			}
			response.Success(c, code, status)
		})
	}

	NewContactHandler(r, deps.ContactUC)

	// Swagger
	r.GET(docsPrefix+"/*any", ginSwagger.WrapHandler(swaggerFiles.Handler,
		ginSwagger.DocExpansion("list"),
		ginSwagger.DeepLinking(true),
	))

	return r
}

// recoverPanic keeps the {error, message} shape for handler panics.
func recoverPanic(c *gin.Context, recovered interface{}) {
	logger.Log.Error("Panic recovered", "request_id", response.RequestID(c), "panic", recovered)
	response.Error(c, http.StatusInternalServerError, "Internal server error", "An unexpected error occurred", nil)
	c.Abort()
}

// Greeting godoc
// @Summary      Greeting
// @Tags         root
// @Produce      plain
// @Success      200  {string}  string  "Hello World"
// @Router       / [get]
func Greeting(c *gin.Context) {
	c.String(http.StatusOK, "Hello World")
}
