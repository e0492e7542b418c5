package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	"user-directory-service/internal/adapter/gin/handler"
	"user-directory-service/internal/adapter/gin/middleware"
)

// SetupRouter configures a gin engine with the fixed middleware chain
// (recovery, request logging, optional rate limiting, bearer auth) and
// all routes. Health and the swagger document stay outside the auth
// gate; everything under /api requires a configured token.
func SetupRouter(
	userHandler *handler.UserHandler,
	rateLimiter *middleware.RateLimiter,
	authTokens []string,
	log *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	router.Use(middleware.Recovery(log))
	router.Use(middleware.Logger(log))
	router.Use(rateLimiter.Handler())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "user-directory-service",
		})
	})

	// Swagger UI plus the document it renders, multiplexed under one route.
	docs := http.NewServeMux()
	docs.HandleFunc("/swagger/users.swagger.json", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/swagger/users.swagger.json")
	})
	docs.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/users.swagger.json"),
	))
	router.GET("/swagger/*any", gin.WrapH(docs))

	api := router.Group("/api")
	api.Use(middleware.Auth(authTokens, log))
	{
		users := api.Group("/users")
		{
			users.GET("", userHandler.ListUsers)
			users.POST("", userHandler.CreateUser)
			users.GET("/:id", userHandler.GetUser)
			users.PUT("/:id", userHandler.UpdateUser)
			users.DELETE("/:id", userHandler.DeleteUser)
		}
	}

	return router
}
