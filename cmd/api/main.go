package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"rentora/config"
	"rentora/internal/handler"
	"rentora/internal/hub"
	"rentora/internal/jobs"
	"rentora/internal/mail"
	"rentora/internal/metrics"
	"rentora/internal/middleware"
	"rentora/internal/redis"
	"rentora/internal/repository"
	"rentora/internal/services"
	"rentora/internal/storage"
	"rentora/internal/transport/httpdto"
	"rentora/pkg/database"
	"rentora/pkg/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.LoadConfig()
	l := logger.New(cfg.AppMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to Database
	database.Connect(cfg)
	if err := database.Migrate(database.DB); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}
	// Connection rows from a previous run are stale by definition.
	if err := database.ClearConnections(database.DB); err != nil {
		log.Fatalf("Failed to clear connection registry: %v", err)
	}

	redisClient := redis.NewClient(redis.Config{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
	})
	cache := redis.NewCacheStore(redisClient, 10*time.Minute)
	limiter := redis.NewRateLimiter(redisClient, redis.DefaultRateLimitConfig())

	publisher := jobs.NewPublisher(cfg.AMQPURL, cfg.MailExchange, l)
	defer publisher.Close()

	mailer := mail.NewSMTPMailer(mail.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		User:     cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	})
	if cfg.AMQPURL != "" {
		worker := jobs.NewMailWorker(cfg.AMQPURL, cfg.MailExchange, mailer, l)
		go func() {
			if err := worker.Run(ctx); err != nil {
				l.Errorf("mail worker stopped: %v", err)
			}
		}()
	}

	photos, err := storage.NewClient(ctx, storage.S3Config{
		Region:     cfg.S3Region,
		Bucket:     cfg.S3Bucket,
		AccessKey:  cfg.S3AccessKey,
		SecretKey:  cfg.S3SecretKey,
		Endpoint:   cfg.S3Endpoint,
		PublicBase: cfg.S3PublicBase,
	})
	if err != nil {
		log.Fatalf("Failed to init object storage: %v", err)
	}

	userRepo := repository.NewUserRepository(database.DB)
	messageRepo := repository.NewMessageRepository(database.DB)
	cityRepo := repository.NewCityRepository(database.DB)
	contactRepo := repository.NewContactRepository(database.DB)
	propertyRepo := repository.NewPropertyRepository(database.DB)

	authService := services.NewAuthService(cfg)
	userService := services.NewUserService(userRepo, messageRepo, publisher, cfg)
	messageService := services.NewMessageService(messageRepo)
	cityService := services.NewCityService(cityRepo, cache)
	contactService := services.NewContactService(contactRepo, publisher, cfg)
	propertyService := services.NewPropertyService(propertyRepo, photos, cache)

	presenceHub := hub.New(l)
	chatHub := hub.New(l)
	notifier := hub.NewFriendNotifier(presenceHub, userService, l)
	presence := hub.NewPresenceChannel(presenceHub, userService, notifier, l)
	chat := hub.NewChatChannel(chatHub, presenceHub, userService, messageService, notifier, l)

	userHandler := handler.NewUserHandler(userService, authService)
	cityHandler := handler.NewCityHandler(cityService)
	contactHandler := handler.NewContactHandler(contactService)
	propertyHandler := handler.NewPropertyHandler(propertyService)

	if cfg.AppMode == logger.ProductionMode {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggingMiddleware(l))
	r.Use(metrics.GinMiddleware())
	r.Use(middleware.ErrorHandler(l))
	r.Use(middleware.RateLimitMiddleware(limiter))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	r.GET("/metrics", metrics.Handler())

	authRequired := middleware.AuthMiddleware(authService)

	api := r.Group("/api/v1")
	{
		api.POST("/users/register", userHandler.Register)
		api.POST("/users/confirm-email", userHandler.ConfirmEmail)
		api.POST("/users/login", userHandler.Login)
		api.POST("/users/forgot-password", userHandler.ForgotPassword)
		api.POST("/users/reset-password", userHandler.ResetPassword)

		api.GET("/cities", cityHandler.List)
		api.GET("/cities/:id", cityHandler.Get)

		api.POST("/contacts", contactHandler.Create)

		api.GET("/properties", propertyHandler.List)
		api.GET("/properties/:id", propertyHandler.Get)
		api.GET("/enums", propertyHandler.Enums)

		authed := api.Group("", authRequired)
		{
			authed.GET("/users", userHandler.List)
			authed.GET("/users/:id", userHandler.Get)
			authed.GET("/profile", userHandler.Me)
			authed.PUT("/profile", userHandler.UpdateMe)

			authed.POST("/cities", cityHandler.Create)
			authed.PUT("/cities/:id", cityHandler.Update)
			authed.DELETE("/cities/:id", cityHandler.Delete)

			authed.GET("/contacts", contactHandler.List)
			authed.GET("/contacts/:id", contactHandler.Get)
			authed.DELETE("/contacts/:id", contactHandler.Delete)

			authed.POST("/properties", propertyHandler.Create)
			authed.PUT("/properties/:id", propertyHandler.Update)
			authed.DELETE("/properties/:id", propertyHandler.Delete)
			authed.POST("/properties/:id/photos", propertyHandler.AddPhoto)
			authed.PUT("/properties/:id/photos/:photoId/primary", propertyHandler.SetPrimaryPhoto)
			authed.DELETE("/properties/:id/photos/:photoId", propertyHandler.DeletePhoto)
			authed.POST("/properties/:id/bookmark", propertyHandler.AddBookmark)
			authed.DELETE("/properties/:id/bookmark", propertyHandler.DeleteBookmark)
			authed.GET("/my/properties", propertyHandler.ListMine)
			authed.GET("/my/bookmarks", propertyHandler.ListBookmarked)
		}
	}

	hubs := r.Group("/hubs", authRequired)
	{
		hubs.GET("/presence", presence.Handle)
		hubs.GET("/chat", chat.Handle)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, httpdto.NewErrorResponse("not found", "NOT_FOUND"))
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.AppPort),
		Handler: r,
	}

	go func() {
		l.Infof("Starting server on port %s", cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	l.Infof("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		l.Errorf("server shutdown: %v", err)
	}
}
