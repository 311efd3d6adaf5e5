package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tripflux/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	jwtSvc *service.JWTService,
	authH *AuthHandler,
	travelH *TravelLogHandler,
	expenseH *ExpenseHandler,
	mediaH *MediaHandler,
	assistantH *AssistantHandler,
	allowedOrigins []string,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery y CORS.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), corsMiddleware(allowedOrigins))

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Server is running")
	})

	requireAuth := AuthRequired(jwtSvc)

	auth := r.Group("/api/auth")
	auth.POST("/signup", authH.Signup)
	auth.POST("/login", authH.Login)
	auth.GET("", requireAuth, authH.Me)
	auth.POST("/forgot-password", authH.ForgotPassword)
	auth.POST("/reset-password/:token", authH.ResetPassword)

	logs := r.Group("/api/travelLogs")
	logs.GET("/public", travelH.ListPublic)
	logs.GET("", requireAuth, travelH.List)
	logs.GET("/:id", requireAuth, travelH.Get)
	logs.POST("", requireAuth, travelH.Create)
	logs.PUT("/like/:id", requireAuth, travelH.Like)
	logs.PUT("/unlike/:id", requireAuth, travelH.Unlike)
	logs.PUT("/bookmark/:id", requireAuth, travelH.Bookmark)
	logs.PUT("/unbookmark/:id", requireAuth, travelH.Unbookmark)
	logs.PUT("/:id", requireAuth, travelH.Update)
	logs.DELETE("/:id", requireAuth, travelH.Delete)

	expenses := r.Group("/api/expenses", requireAuth)
	expenses.POST("", expenseH.Create)
	expenses.GET("", expenseH.List)
	expenses.GET("/:id", expenseH.Get)
	expenses.PUT("/:id", expenseH.Update)
	expenses.DELETE("/:id", expenseH.Delete)

	media := r.Group("/api/media", requireAuth)
	media.POST("", mediaH.Upload)
	media.GET("", mediaH.List)
	media.GET("/:id", mediaH.Get)
	media.PUT("/:id", mediaH.Update)
	media.DELETE("/:id", mediaH.Delete)

	r.POST("/api/ai-assistant", assistantH.Suggest)

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

// corsMiddleware habilita CORS para los orígenes del SPA.
func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && allowed[origin] {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, x-auth-token")
			c.Header("Access-Control-Allow-Credentials", "true")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
