package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "maintdesk/docs"
	"maintdesk/internal/config"
	"maintdesk/internal/db"
	"maintdesk/internal/handlers"
	"maintdesk/internal/pdf"
	"maintdesk/internal/repositories"
	"maintdesk/internal/routes"
	"maintdesk/internal/scheduler"
	"maintdesk/internal/services"
)

func Run() {
	cfg := config.LoadConfig()

	// === DB ===
	database, err := db.Open(cfg.Database.Path)
	if err != nil {
		log.Fatal("Failed to open database: ", err)
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}()

	// === Timezone for the sweep ===
	loc := time.Local
	if cfg.Reminders.Timezone != "" {
		loc, err = time.LoadLocation(cfg.Reminders.Timezone)
		if err != nil {
			log.Fatal("Invalid reminders timezone: ", err)
		}
	}

	// === Repos ===
	userRepo := repositories.NewUserRepository(database)
	taskRepo := repositories.NewTaskRepository(database)
	assetRepo := repositories.NewAssetRepository(database)
	contractorRepo := repositories.NewContractorRepository(database)
	propertyRepo := repositories.NewPropertyRepository(database)

	// === Services ===
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)

	var tgService *services.TelegramService
	if cfg.Telegram.Enabled {
		tgService, err = services.NewTelegramService(cfg.Telegram.BotToken)
		if err != nil {
			// Telegram is optional; keep serving without it
			log.Printf("Telegram disabled: %v", err)
			tgService = nil
		}
	}

	userService := services.NewUserService(userRepo)
	taskService := services.NewTaskService(taskRepo, userRepo, propertyRepo)
	assetService := services.NewAssetService(assetRepo, propertyRepo)
	contractorService := services.NewContractorService(contractorRepo)
	reminderService := services.NewReminderService(taskRepo, assetRepo, userRepo, emailService, tgService, loc)
	reportService := services.NewReportService(taskRepo, pdf.NewReportGenerator())

	// === Handlers ===
	jwtKey := []byte(cfg.Auth.JWTSecret)
	tokenTTL := time.Duration(cfg.Auth.TokenTTLHours) * time.Hour

	authHandler := handlers.NewAuthHandler(userService, jwtKey, tokenTTL)
	taskHandler := handlers.NewTaskHandler(taskService, userService, tgService)
	reminderHandler := handlers.NewReminderHandler(reminderService)
	userHandler := handlers.NewUserHandler(userService)
	assetHandler := handlers.NewAssetHandler(assetService)
	contractorHandler := handlers.NewContractorHandler(contractorService)
	propertyHandler := handlers.NewPropertyHandler(propertyRepo)
	reportHandler := handlers.NewReportHandler(reportService)

	// === Scheduler ===
	if *cfg.Reminders.Enabled {
		sched := scheduler.New(loc)
		err := sched.AddDailyJob(cfg.Reminders.At, func() {
			// scheduled runs swallow failures; there is no caller to report to
			if _, err := reminderService.RunSweep(context.Background()); err != nil {
				log.Printf("[reminder][cron][err] %v", err)
			}
		})
		if err != nil {
			log.Fatal("Failed to schedule reminder sweep: ", err)
		}
		sched.Start()
		defer sched.Stop()
	} else {
		log.Printf("[reminder] scheduled sweep disabled by config")
	}

	// === Gin ===
	router := gin.Default()
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(
		router,
		jwtKey,
		authHandler,
		taskHandler,
		reminderHandler,
		userHandler,
		assetHandler,
		contractorHandler,
		propertyHandler,
		reportHandler,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("Server failed: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
