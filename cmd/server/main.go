package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/rajnishk05/anaadyanta1/internal/config"
	"github.com/rajnishk05/anaadyanta1/internal/database"
	"github.com/rajnishk05/anaadyanta1/internal/handlers"
	"github.com/rajnishk05/anaadyanta1/internal/middleware"
	"github.com/rajnishk05/anaadyanta1/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	db := database.Connect(cfg)
	database.AutoMigrate(db)

	if err := os.MkdirAll(cfg.UploadDir, 0755); err != nil {
		log.Fatalf("failed to create upload directory: %v", err)
	}

	pool := services.NewCodePool(cfg.CodePoolSize)
	log.Printf("generated %d unique codes", pool.Remaining())

	driveService, err := services.NewDriveService(cfg.DriveCredentialsFile)
	if err != nil {
		log.Fatalf("failed to load drive credentials: %v", err)
	}
	log.Printf("authorize the drive client by visiting: %s", driveService.AuthURL())

	authService := services.NewAuthService(db)
	loginService := services.NewGoogleLoginService(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleCallbackURL)
	sheetService := services.NewSpreadsheetService(cfg.SpreadsheetPath)
	submissionService := services.NewSubmissionService(db, driveService, pool, sheetService)

	authHandler := handlers.NewAuthHandler(authService)
	oauthHandler := handlers.NewOAuthHandler(loginService, authService, driveService)
	submissionHandler := handlers.NewSubmissionHandler(submissionService, cfg.UploadDir)
	exportHandler := handlers.NewExportHandler(submissionService, sheetService)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: true,
	}))

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("session", store))
	r.Use(middleware.CurrentUser(authService))

	r.StaticFile("/", filepath.Join(cfg.WebDir, "index.html"))
	r.Static("/static", cfg.WebDir)
	r.Static("/uploads", cfg.UploadDir)

	r.GET("/auth/callback", oauthHandler.DriveCallback)
	r.GET("/auth/google", oauthHandler.GoogleLogin)
	r.GET("/auth/google/callback", oauthHandler.GoogleCallback)
	r.GET("/logout", authHandler.Logout)
	r.POST("/signup", authHandler.Signup)
	r.POST("/login", authHandler.Login)
	r.GET("/user", authHandler.Me)
	r.POST("/submit", submissionHandler.Submit)
	r.GET("/export", exportHandler.Export)
	r.GET("/download", exportHandler.Download)

	log.Printf("server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
