package main

import (
	"blog-platform/handlers"
	"blog-platform/pkg/cache"
	"blog-platform/pkg/config"
	"blog-platform/pkg/database"
	"blog-platform/pkg/jwt"
	"blog-platform/pkg/logger"
	"blog-platform/pkg/middleware"
	"blog-platform/pkg/models"
	"blog-platform/pkg/s3"
	"blog-platform/repository"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "blog-platform/docs" // Swagger docs
)

func init() {
	gin.SetMode(gin.ReleaseMode)
}

// @title           Blog Platform API
// @version         1.0
// @description     Blog publishing backend: admin auth, multipart blog ingestion with media uploads, listing and deletion.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if cfg.JWTSecret == "your-secret-key-change-in-production" || cfg.JWTSecret == "" {
		panic("JWT_SECRET must be set in environment variables")
	}

	log := logger.New()

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	if err := db.AutoMigrate(&models.Admin{}, &models.Blog{}); err != nil {
		log.Error("Failed to migrate database: %v", err)
		panic(err)
	}

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Error("Failed to create media storage client: %v", err)
		panic(err)
	}

	// Listing cache is supplementary: without redis the listing endpoint
	// serves straight from the store.
	var redisClient *redis.Client
	if rc, err := cache.NewRedisClient(cfg); err != nil {
		log.Warn("Redis unavailable, listing cache disabled: %v", err)
	} else {
		redisClient = rc
	}

	jwtService := jwt.NewService(cfg.JWTSecret)
	adminRepo := repository.NewAdminRepository(db)
	blogRepo := repository.NewBlogRepository(db)
	authHandler := handlers.NewAuthHandler(adminRepo, jwtService, log)
	blogHandler := handlers.NewBlogHandler(blogRepo, s3Client, redisClient, log)

	r := gin.Default()

	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
		corsConfig.AllowCredentials = true
	}
	r.Use(cors.New(corsConfig))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	auth := r.Group("/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
	}

	api := r.Group("/api")
	{
		api.GET("/blogs", blogHandler.ListBlogs)

		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(jwtService))
		{
			protected.POST("/create", blogHandler.CreateBlog)
			protected.GET("/:id", blogHandler.GetBlog)
			protected.DELETE("/:id", blogHandler.DeleteBlog)
		}
	}

	log.Info("Blog platform starting on port %s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Error("Failed to start server: %v", err)
		panic(err)
	}
}
