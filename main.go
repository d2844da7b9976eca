package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recipe-share/config"
	"recipe-share/events"
	"recipe-share/handlers"
	"recipe-share/helper"
	"recipe-share/middleware"
	"recipe-share/repositories"
	"recipe-share/services"
	"recipe-share/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := config.NewLogger(cfg.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()
	if cfg.DotEnvMissing {
		logger.Info("no .env file found, using process environment")
	}
	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := config.InitDB(cfg.DB, logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}

	rdb := config.NewRedisClient(cfg.Redis)
	if rdb == nil {
		logger.Warn("redis unavailable, rate limiting disabled")
	} else {
		defer rdb.Close()
	}

	var publisher events.Publisher = events.Noop{}
	if cfg.RabbitMQURL != "" {
		p, err := events.NewAMQPPublisher(cfg.RabbitMQURL, logger)
		if err != nil {
			logger.Warn("rabbitmq unavailable, audit events disabled", zap.Error(err))
		} else {
			publisher = p
		}
	}
	defer publisher.Close()

	store, err := newStore(context.Background(), cfg.Storage)
	if err != nil {
		logger.Fatal("object storage", zap.Error(err))
	}

	var decrypter services.Decrypter
	if cipher, err := helper.LoadRSACipher(cfg.RSADir); err != nil {
		logger.Warn("rsa key pair not loaded, encrypted credentials disabled", zap.String("dir", cfg.RSADir), zap.Error(err))
	} else {
		decrypter = cipher
	}

	httpHelper, err := helper.NewHTTPHelper()
	if err != nil {
		logger.Fatal("validator", zap.Error(err))
	}

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	tokenRepo := repositories.NewTokenRepository(db)
	groupRepo := repositories.NewGroupRepository(db)
	recipeRepo := repositories.NewRecipeRepository(db)
	partRepo := repositories.NewRecipePartRepository(db)
	postRepo := repositories.NewPostRepository(db)

	// Initialize services
	hasher := services.NewPasswordHasher(cfg.Password)
	tokenService := services.NewTokenService(cfg.Token, tokenRepo, userRepo, logger)
	authService := services.NewAuthService(userRepo, tokenService, hasher, decrypter, publisher, logger)
	adminService := services.NewAdminService(userRepo, hasher, decrypter, publisher, logger)
	groupService := services.NewGroupService(groupRepo, recipeRepo)
	recipeService := services.NewRecipeService(recipeRepo, partRepo, groupRepo)
	postService := services.NewPostService(postRepo)
	coverService := services.NewCoverService(recipeRepo, store, cfg.MaxCoverBytes, logger)

	// Setup router
	router := handlers.NewRouter(handlers.Router{
		Helper:    httpHelper,
		Tokens:    tokenService,
		RateLimit: middleware.NewTokenBucket(cfg.RateLimit, rdb, httpHelper, logger),
		Logger:    middleware.RequestLogger(logger),
		Users:     handlers.NewUserHandler(authService, tokenService, httpHelper),
		Admin:     handlers.NewAdminHandler(adminService, httpHelper),
		Recipes:   handlers.NewRecipeHandler(recipeService, httpHelper),
		Groups:    handlers.NewGroupHandler(groupService, httpHelper),
		Posts:     handlers.NewPostHandler(postService, httpHelper),
		Covers:    handlers.NewCoverHandler(coverService, cfg.MaxCoverBytes, httpHelper),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newStore(ctx context.Context, cfg config.StorageConfig) (storage.Store, error) {
	if cfg.Type == config.StorageS3 {
		return storage.NewS3Store(ctx, storage.S3Options{
			Region:    cfg.Region,
			Endpoint:  cfg.Endpoint,
			AccessKey: cfg.SecretID,
			SecretKey: cfg.SecretKey,
			Bucket:    cfg.Bucket,
		})
	}
	return storage.NewLocalStore(cfg.LocalPath)
}
