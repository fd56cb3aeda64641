package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/viper"
	"github.com/wastewise/backend/docs"
	"github.com/wastewise/backend/internal/audit"
	"github.com/wastewise/backend/internal/config"
	"github.com/wastewise/backend/internal/database"
	"github.com/wastewise/backend/internal/handlers"
	mW "github.com/wastewise/backend/internal/middleware"
	"github.com/wastewise/backend/internal/models"
	"github.com/wastewise/backend/internal/services"
	"go.uber.org/zap"
)

// @title WasteWise Admin API
// @version 1.0
// @description User administration for the municipal waste-management panel
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	if err := config.Init(".env"); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := config.LoadLogger("wastewise-backend")
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	serverCfg := config.LoadServerConfig()
	docs.SwaggerInfo.Host = "localhost:" + serverCfg.Port

	ctx := context.Background()

	db, err := database.Open(ctx, database.GetConfig(), logger)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	redisClient := database.InitRedis(ctx, database.RedisOptions(), logger)
	if redisClient != nil {
		defer redisClient.Close()
	}

	var events services.EventPublisher
	if url := viper.GetString("nats.url"); url != "" {
		conn, err := services.ConnectNATS(url, logger)
		if err != nil {
			logger.Warn("continuing without event publishing", zap.Error(err))
		} else {
			defer conn.Drain()
			events = services.NewNATSPublisher(conn, viper.GetString("nats.subject"))
		}
	}

	userService := services.NewUserService(db, events, logger)
	if err := userService.EnsureSchema(ctx); err != nil {
		logger.Fatal("failed to prepare users table", zap.Error(err))
	}

	var store services.DraftStore
	if redisClient != nil {
		store = services.NewRedisDraftStore(redisClient)
	} else {
		logger.Warn("keeping form drafts in memory")
		store = services.NewMemoryDraftStore()
	}

	formService := services.NewFormService(
		store,
		config.LoadFormConfig(),
		services.LoadArgon2Params(),
		services.Collaborators{
			OnSave: userService.Save,
			OnClose: func(_ context.Context, formID string) {
				logger.Debug("user form closed", zap.String("form_id", formID))
			},
		},
		audit.NewLogger(logger),
		logger,
	)

	secret := viper.GetString("jwt.secret_key")
	if secret == "" {
		logger.Fatal("jwt.secret_key is not set")
	}
	auth := mW.NewAuthenticator(secret, redisClient, logger)

	router := handlers.NewRouter(handlers.Router{
		Server: serverCfg,
		Auth:   auth,
		Forms:  handlers.NewUserFormHandler(formService, userService, logger),
		Tags:   handlers.NewUserTagHandler(services.NewQRService(), userService, logger),
		Logout: handlers.NewAuthHandler(auth, logger),
		Logger: logger,
	})

	server := &http.Server{
		Addr:         ":" + serverCfg.Port,
		Handler:      router,
		ReadTimeout:  serverCfg.ReadTimeout,
		WriteTimeout: serverCfg.WriteTimeout,
		IdleTimeout:  serverCfg.IdleTimeout,
	}

	// Graceful shutdown
	go func() {
		logger.Info("server starting",
			zap.String("addr", server.Addr),
			zap.Int("wards", models.WardCount))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), serverCfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
