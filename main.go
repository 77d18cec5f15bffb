package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"cestas/internal/config"
	"cestas/internal/database"
	"cestas/internal/handlers"
	"cestas/internal/middleware"
	"cestas/internal/notify"
	"cestas/internal/service"
	"cestas/internal/storage"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	client, err := database.Connect(cfg.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(cfg.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureIndexes(db); err != nil {
		log.Printf("⚠️ index warning: %v", err)
	}

	store := database.NewStore(db)

	var notifier service.Notifier
	if cfg.SMTP.Enabled() && cfg.NotifyEmail != "" {
		notifier = notify.NewMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From, cfg.NotifyEmail)
		log.Println("Pre-check-in notifications go to:", cfg.NotifyEmail)
	}

	var uploader handlers.Uploader
	if cfg.S3Bucket != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		s3Uploader, err := storage.NewS3Uploader(ctx, cfg.S3Bucket, cfg.AWSRegion, cfg.UploadBaseURL)
		cancel()
		if err != nil {
			log.Printf("⚠️ upload storage disabled: %v", err)
		} else {
			uploader = s3Uploader
		}
	}

	auth := service.NewAuthService(store, cfg.JWTSecret, cfg.AccessTokenTTL)
	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		created, err := auth.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword)
		cancel()
		switch {
		case err != nil:
			log.Printf("⚠️ admin bootstrap failed: %v", err)
		case created:
			log.Println("Bootstrap admin created:", cfg.AdminEmail)
		}
	}

	services := handlers.Services{
		Comandas:    service.NewComandaService(store),
		Surveys:     service.NewSurveyService(store, store),
		Links:       service.NewLinkService(store),
		PreCheckIns: service.NewPreCheckInService(store, notifier),
		Stock:       service.NewStockService(store),
		Catalog:     service.NewCatalogService(store, store, store),
		Auth:        auth,
		Dashboard:   service.NewDashboardService(store),
		Uploader:    uploader,
		DB:          database.NewPinger(client),
	}

	r := gin.Default()
	r.Use(middleware.RequestID())
	r.Use(cors.New(corsConfig(cfg.AllowedOrigins)))
	r.Use(middleware.RequestTimeout(cfg.RequestTimeout))

	handlers.RegisterRoutes(r, services, cfg.JWTSecret)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader, "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	for _, origin := range origins {
		if origin == "*" {
			c.AllowAllOrigins = true
			return c
		}
	}
	c.AllowOrigins = origins
	return c
}
