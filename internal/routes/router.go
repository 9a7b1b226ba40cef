package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	commentHandler "blogiq-backend/internal/comment/handler"
	commentRepository "blogiq-backend/internal/comment/repository"
	commentService "blogiq-backend/internal/comment/service"
	"blogiq-backend/internal/config"
	"blogiq-backend/internal/database"
	"blogiq-backend/internal/logger"
	"blogiq-backend/internal/mailer"
	"blogiq-backend/internal/middleware"
	postHandler "blogiq-backend/internal/post/handler"
	postRepository "blogiq-backend/internal/post/repository"
	postService "blogiq-backend/internal/post/service"
	"blogiq-backend/internal/upload"
	userHandler "blogiq-backend/internal/user/handler"
	userRepository "blogiq-backend/internal/user/repository"
	userService "blogiq-backend/internal/user/service"
)

func SetupRoutes(cfg *config.Config, db *database.Database) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(10 << 20))

	router.GET("/health", func(c *gin.Context) {
		if err := db.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"message": "Database connection failed",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Service is running",
		})
	})

	router.Static("/images", cfg.Upload.Dir)

	postRepo := postRepository.NewRepository(db)
	postSvc := postService.NewService(postRepo)
	postHdl := postHandler.NewHandler(postSvc)

	commentRepo := commentRepository.NewRepository(db)
	commentSvc := commentService.NewService(commentRepo, postRepo)
	commentHdl := commentHandler.NewHandler(commentSvc)

	userRepo := userRepository.NewRepository(db)
	userSvc := userService.NewService(userRepo, mailer.New(&cfg.SMTP), cfg, postRepo, commentRepo)
	userHdl := userHandler.NewHandler(userSvc)

	uploadHdl := upload.NewHandler(&cfg.Upload)

	api := router.Group("/api")
	{
		userHdl.RegisterRoutes(api)
		postHdl.RegisterRoutes(api)
		commentHdl.RegisterRoutes(api)
		uploadHdl.RegisterRoutes(api)

		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			userHdl.RegisterProtectedRoutes(protected)
			postHdl.RegisterProtectedRoutes(protected)
			commentHdl.RegisterProtectedRoutes(protected)
		}
	}

	logger.Info("All routes initialized")
	return router
}
