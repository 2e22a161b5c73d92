package main

import (
	"fmt"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/vacansy/vacansy-api/internal/auth"
	"github.com/vacansy/vacansy-api/internal/config"
	"github.com/vacansy/vacansy-api/internal/database"
	"github.com/vacansy/vacansy-api/internal/handlers"
	"github.com/vacansy/vacansy-api/internal/logger"
	"github.com/vacansy/vacansy-api/internal/models"
	"github.com/vacansy/vacansy-api/internal/services"
	"github.com/vacansy/vacansy-api/internal/storage"
	"github.com/vacansy/vacansy-api/internal/store"
)

func main() {
	// .env is a local-dev convenience; absence is fine in production.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	db, err := database.Connect(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("failed to connect to PostgreSQL", zap.Error(err))
	}
	log.Info("database connected, migrations applied")

	stores := store.New(db)
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	mailer := services.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)

	uploader, err := storage.NewDiskUploader(cfg.UploadDir)
	if err != nil {
		log.Fatal("failed to prepare upload dir", zap.Error(err))
	}

	authService := services.NewAuthService(stores.Users, stores.Companies, tokens, mailer, log)
	jobService := services.NewJobService(stores.Jobs, stores.Companies, stores.Users, stores.Applications, log)
	seekerService := services.NewSeekerService(
		stores.Jobs, stores.Users, stores.Companies,
		stores.Saved, stores.Applications,
		uploader, mailer, log,
	)

	authHandler := handlers.NewAuthHandler(authService)
	jobHandler := handlers.NewJobHandler(jobService)
	seekerHandler := handlers.NewSeekerHandler(seekerService)

	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	if cfg.CORSOrigin != "" {
		corsConfig.AllowOrigins = []string{cfg.CORSOrigin}
		corsConfig.AllowCredentials = true
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	r.GET("/health", handlers.HealthCheck)

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register/user", authHandler.RegisterUser)
		authGroup.POST("/register/company", authHandler.RegisterCompany)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/logout", authHandler.Logout)
		authGroup.POST("/forgot-password", authHandler.ForgotPassword)
		authGroup.POST("/reset-password", authHandler.ResetPassword)
		authGroup.GET("/me", auth.RequireAuth(tokens), authHandler.Me)
		authGroup.GET("/companies", authHandler.Companies)
		authGroup.GET("/companies/:id", authHandler.CompanyByID)
	}

	jobs := r.Group("/jobs")
	{
		jobs.GET("", auth.OptionalAuth(tokens), jobHandler.List)
		jobs.GET("/:id", auth.OptionalAuth(tokens), jobHandler.Get)

		jobs.GET("/pending", auth.RequireAuth(tokens), auth.RequireRoles(models.RoleAdmin), jobHandler.Pending)
		jobs.PUT("/:id/status", auth.RequireAuth(tokens), auth.RequireRoles(models.RoleAdmin), jobHandler.SetStatus)

		company := jobs.Group("", auth.RequireAuth(tokens), auth.RequireRoles(models.RoleCompany))
		{
			company.POST("", jobHandler.Create)
			company.GET("/me", jobHandler.MyJobs)
			company.GET("/me/:id", jobHandler.MyJob)
		}

		// Ownership and role checks for edit/delete/applications live in the
		// policy, since admins share these routes with companies.
		jobs.PUT("/:id", auth.RequireAuth(tokens), jobHandler.Update)
		jobs.DELETE("/:id", auth.RequireAuth(tokens), jobHandler.Delete)
		jobs.GET("/:id/applications", auth.RequireAuth(tokens), jobHandler.Applications)

		seeker := jobs.Group("", auth.RequireAuth(tokens), auth.RequireRoles(models.RoleSeeker))
		{
			seeker.POST("/:id/apply", seekerHandler.Apply)
			seeker.POST("/:id/save", seekerHandler.Save)
			seeker.DELETE("/:id/save", seekerHandler.Unsave)
			seeker.GET("/saved", seekerHandler.SavedJobs)
		}
	}

	log.Info("server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("server failed", zap.Error(err))
	}
}
