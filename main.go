package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"adcraft/config"
	"adcraft/controllers"
	"adcraft/database"
	"adcraft/middleware"
	"adcraft/routes"
	"adcraft/services"
	"adcraft/storage"
	"adcraft/utils"
)

// Application bundles the pieces that need explicit shutdown.
type Application struct {
	config  *config.Config
	server  *http.Server
	cascade *services.CascadeService
	cleanup *services.CascadeConfigService
	stopBg  chan struct{}
}

func main() {
	cfg := config.Load()

	if err := utils.InitLogger(cfg.Environment); err != nil {
		panic(err)
	}
	defer utils.SyncLogger()
	logger := utils.Logger()

	app, err := newApplication(cfg)
	if err != nil {
		logger.Fatal("failed to initialize application", zap.Error(err))
	}

	app.startBackgroundJobs()

	go func() {
		logger.Info("server starting", zap.String("port", cfg.Port))
		if err := app.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	app.shutdown()
}

func newApplication(cfg *config.Config) (*Application, error) {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := database.GetManager().Initialize(&database.Config{
		MongoURI:        cfg.MongoURI,
		DatabaseName:    cfg.DatabaseName,
		MaxPoolSize:     cfg.MaxPoolSize,
		MinPoolSize:     cfg.MinPoolSize,
		MaxConnIdleTime: 30 * time.Second,
		ConnectTimeout:  10 * time.Second,
		ServerTimeout:   10 * time.Second,
		SocketTimeout:   30 * time.Second,
	}); err != nil {
		return nil, err
	}
	if err := database.CreateIndexes(); err != nil {
		return nil, err
	}

	store, err := storage.NewClient(storage.Config{
		Provider:  cfg.StorageProvider,
		Region:    cfg.StorageRegion,
		AccountID: cfg.StorageAccountID,
		AccessKey: cfg.StorageAccessKey,
		SecretKey: cfg.StorageSecretKey,
		Bucket:    cfg.StorageBucket,
		PublicURL: cfg.StoragePublicURL,
	})
	if err != nil {
		return nil, err
	}

	jwtManager := utils.NewJWTManager(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	emailService := services.NewEmailService(services.EmailConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.EmailFrom,
	})

	txnRunner := services.NewMongoTxnRunner(database.GetManager().GetClient())
	cascadeService := services.NewCascadeService(txnRunner, store)
	cascadeConfig := services.NewCascadeConfigService(
		database.Workspaces(),
		database.Folders(),
		database.Assets(),
		database.Ads(),
	)

	authService := services.NewAuthService(emailService, jwtManager, cfg.AppBaseURL)
	workspaceService := services.NewWorkspaceService(cascadeService, cascadeConfig, store)
	folderService := services.NewFolderService(cascadeService, cascadeConfig)
	assetService := services.NewAssetService(cascadeService, cascadeConfig, store)
	adService := services.NewAdService(cascadeService, cascadeConfig)
	mediaService := services.NewMediaService(store)
	userService := services.NewUserService(store)

	engine := gin.New()
	routes.Setup(engine, &routes.Dependencies{
		JWTManager:  jwtManager,
		AuthService: authService,
		RateLimiter: middleware.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst),

		Auth:       controllers.NewAuthController(authService),
		Workspaces: controllers.NewWorkspaceController(workspaceService),
		Folders:    controllers.NewFolderController(folderService),
		Assets:     controllers.NewAssetController(assetService),
		Ads:        controllers.NewAdController(adService),
		Media:      controllers.NewMediaController(mediaService),
		Users:      controllers.NewUserController(userService),
	}, cfg.AllowedOrigins)

	return &Application{
		config: cfg,
		server: &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      engine,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		cascade: cascadeService,
		cleanup: cascadeConfig,
		stopBg:  make(chan struct{}),
	}, nil
}

// startBackgroundJobs launches the retention sweep: rows left in the trash
// past the retention window are purged for good.
func (app *Application) startBackgroundJobs() {
	logger := utils.Logger()

	go func() {
		ticker := time.NewTicker(app.config.CleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
				counts, err := app.cascade.BulkCleanupDeleted(ctx, app.cleanup.CleanupTargets(), app.config.TrashRetentionDays)
				cancel()
				if err != nil {
					logger.Error("trash purge failed", zap.Error(err))
					continue
				}
				logger.Info("trash purge run",
					zap.Int("retention_days", app.config.TrashRetentionDays),
					zap.Any("purged", counts))
			case <-app.stopBg:
				return
			}
		}
	}()
}

func (app *Application) shutdown() {
	logger := utils.Logger()
	close(app.stopBg)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}
	if err := database.GetManager().Close(); err != nil {
		logger.Error("database close failed", zap.Error(err))
	}
	logger.Info("shutdown complete")
}
