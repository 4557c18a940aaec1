package main

import (
	"fmt"
	"os"
	"time"

	"blog-platform/pkg/config"
	"blog-platform/pkg/database"
	"blog-platform/pkg/logger"
	"blog-platform/pkg/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
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

	if err := seedDatabase(db, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(db *gorm.DB, log *logger.Logger) error {
	username := getEnv("SEED_ADMIN_USERNAME", "admin")
	email := getEnv("SEED_ADMIN_EMAIL", "admin@example.com")
	password := getEnv("SEED_ADMIN_PASSWORD", "change-me")

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &models.Admin{
		Username: username,
		Email:    email,
		Password: string(hashedPassword),
	}

	var existing models.Admin
	result := db.Where("username = ? OR email = ?", admin.Username, admin.Email).First(&existing)
	if result.Error == nil {
		log.Info("Admin %s already exists, skipping", admin.Username)
	} else {
		if err := admin.BeforeCreate(nil); err != nil {
			return fmt.Errorf("failed to generate admin ID: %w", err)
		}
		if err := db.Create(admin).Error; err != nil {
			return fmt.Errorf("failed to create admin %s: %w", admin.Username, err)
		}
		log.Info("Created admin: %s (%s)", admin.Username, admin.Email)
	}

	sampleBlogs := []*models.Blog{
		{
			Title:       "Welcome to the blog",
			Author:      username,
			Description: "First post seeded into the platform.",
			Tags:        []string{"welcome", "meta"},
			Images:      []string{"https://placehold.co/600x400.png"},
			PubDate:     time.Now(),
			Popular:     true,
		},
		{
			Title:       "Second post",
			Author:      username,
			Description: "Another seeded post for local development.",
			Tags:        []string{"dev"},
			Images:      []string{"https://placehold.co/600x400.png"},
			PubDate:     time.Now(),
		},
	}

	for _, blog := range sampleBlogs {
		var existingBlog models.Blog
		result := db.Where("title = ?", blog.Title).First(&existingBlog)
		if result.Error == nil {
			log.Info("Blog %q already exists, skipping", blog.Title)
			continue
		}

		if err := db.Create(blog).Error; err != nil {
			log.Error("Failed to create blog %q: %v", blog.Title, err)
			continue
		}
		log.Info("Created blog: %q", blog.Title)
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
