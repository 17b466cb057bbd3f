package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"metizcare/internal/metrics"
	"metizcare/internal/service"
)

// RouterDeps agrupa handlers y middlewares compartidos.
type RouterDeps struct {
	Users       *UserHandler
	Products    *ProductHandler
	Quiz        *QuizHandler
	Face        *FaceHandler
	Tips        *TipHandler
	Assistant   *AssistantHandler
	JWT         *service.JWTService
	FaceLimiter service.RateLimiter
}

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(logger *zap.Logger, deps RouterDeps) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := gin.New()

	r.Use(zapLoggerMiddleware(logger), metricsMiddleware(), gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := JWTAuthMiddleware(deps.JWT)
	api := r.Group("/api", jsonContentTypeMiddleware())

	users := api.Group("/users")
	users.POST("", deps.Users.Register)
	users.POST("/login", deps.Users.Login)
	users.GET("/profile", auth, deps.Users.Profile)

	authGroup := api.Group("/auth")
	authGroup.POST("/refresh", deps.Users.RefreshToken)
	authGroup.POST("/logout", deps.Users.Logout)

	products := api.Group("/products")
	products.GET("", deps.Products.List)
	products.GET("/:id", deps.Products.Get)

	quiz := api.Group("/quiz")
	quiz.POST("/submit", OptionalJWTMiddleware(deps.JWT), deps.Quiz.Submit)
	quiz.GET("/stats", deps.Quiz.Stats)
	quiz.GET("/:sessionId", deps.Quiz.GetBySession)

	face := api.Group("/face-analysis")
	face.POST("/analyze", RateLimitByIP(deps.FaceLimiter, "face_analysis", logger), deps.Face.Analyze)
	face.GET("/recommendations", auth, deps.Face.Recommendations)

	tips := api.Group("/skincare-tips")
	tips.GET("", deps.Tips.List)
	tips.GET("/categories", deps.Tips.Categories)
	tips.GET("/concerns", deps.Tips.Concerns)
	tips.GET("/:id", deps.Tips.Get)
	tips.POST("/:id/like", deps.Tips.Like)
	tips.POST("", auth, AdminOnly(), deps.Tips.Create)
	tips.PUT("/:id", auth, AdminOnly(), deps.Tips.Update)
	tips.DELETE("/:id", auth, AdminOnly(), deps.Tips.Delete)

	api.POST("/ai/chat", deps.Assistant.Chat)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// metricsMiddleware usa la ruta registrada (no el path) para acotar la cardinalidad.
func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		metrics.RecordHTTPRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
