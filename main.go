// Package main provides the main entry point for the news and ads platform
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/khabarhub/newsads/app/handlers"
	"github.com/khabarhub/newsads/app/middleware"
	"github.com/khabarhub/newsads/app/router"
	"github.com/khabarhub/newsads/app/scheduler"
	"github.com/khabarhub/newsads/app/services"
	businessflow "github.com/khabarhub/newsads/business_flow"
	"github.com/khabarhub/newsads/config"
	"github.com/khabarhub/newsads/models"
	"github.com/khabarhub/newsads/repository"
	"github.com/khabarhub/newsads/utils"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Application represents the main application structure
type Application struct {
	router    *router.FiberRouter
	config    *config.ProductionConfig
	server    *fiber.App
	stopFuncs []func()
}

func main() {
	log.Println("Starting newsads application...")

	// Load production configuration
	cfg, err := config.LoadProductionConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize application
	app, err := initializeApplication(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	// Setup routes
	app.router.SetupRoutes()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		address := cfg.Server.Address()
		log.Printf("Server starting on %s", address)

		if err := app.server.Listen(address); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-sigChan
	log.Println("Shutting down gracefully...")

	// Stop background workers
	for _, fn := range app.stopFuncs {
		fn()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := app.server.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	log.Println("Server stopped")
}

// initializeDatabase initializes the database connection with connection pooling
func initializeDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB for connection pooling configuration
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pooling
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// Test the connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Printf("Database connection established with %d max open connections, %d max idle connections",
		cfg.MaxOpenConns, cfg.MaxIdleConns)

	return db, nil
}

// initializeCache initializes the Redis client and verifies connectivity.
// Returns a nil client when caching is disabled; the flows treat a nil
// client as "no cache" and the rate limiter fails per its fail-open setting.
func initializeCache(cfg config.CacheConfig) (*redis.Client, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	rc := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rc.Ping(ctx).Err(); err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Printf("Redis connection established to %s (db=%d)", cfg.RedisAddr(), cfg.RedisDB)
	return rc, nil
}

// startCacheHealthMonitor starts a background goroutine that periodically pings Redis
// to detect connectivity issues. The returned cancel function stops the monitor.
func startCacheHealthMonitor(parent context.Context, client *redis.Client, interval time.Duration) func() {
	monitorCtx, cancel := context.WithCancel(parent)
	if interval <= 0 {
		interval = 30 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-monitorCtx.Done():
				return
			case <-ticker.C:
				ctx, c := context.WithTimeout(context.Background(), 3*time.Second)
				if err := client.Ping(ctx).Err(); err != nil {
					log.Printf("Redis healthcheck failed: %v", err)
				}
				c()
			}
		}
	}()
	return cancel
}

// ensureSchema applies the gorm schema for all domain entities
func ensureSchema(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.CategoryTranslation{},
		&models.Tag{},
		&models.Media{},
		&models.News{},
		&models.NewsTranslation{},
		&models.NewsHistory{},
		&models.AdsCampaign{},
		&models.AdsCreative{},
		&models.AdsCreativeTranslation{},
		&models.AdsPlacement{},
		&models.AdsAssignment{},
	)
}

// ensureAdminUser creates the bootstrap admin account on first start. Nothing
// happens when the username is unset or already taken.
func ensureAdminUser(db *gorm.DB, cfg config.AdminConfig) error {
	if cfg.Username == "" || cfg.Password == "" {
		return nil
	}

	userRepo := repository.NewUserRepository(db)

	existing, err := userRepo.ByUsername(context.Background(), cfg.Username)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hash, err := utils.HashPassword(cfg.Password)
	if err != nil {
		return err
	}

	admin := &models.User{
		Username:     cfg.Username,
		PasswordHash: hash,
		FullName:     cfg.FullName,
		Role:         models.UserRoleAdmin,
		IsActive:     true,
		CreatedAt:    utils.UTCNow(),
	}
	if err := userRepo.Save(context.Background(), admin); err != nil {
		return err
	}

	log.Printf("Bootstrap admin user %q created", cfg.Username)
	return nil
}

// initializeApplication initializes the main application components
func initializeApplication(cfg *config.ProductionConfig) (*Application, error) {
	var stopFuncs []func()

	// Initialize database
	db, err := initializeDatabase(cfg.Database)
	if err != nil {
		return nil, err
	}

	rc, err := initializeCache(cfg.Cache)
	if err != nil {
		return nil, err
	}
	if rc != nil {
		cancel := startCacheHealthMonitor(context.Background(), rc, 30*time.Second)
		stopFuncs = append(stopFuncs, cancel)
	}

	if err := ensureSchema(db); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	if err := ensureAdminUser(db, cfg.Admin); err != nil {
		return nil, fmt.Errorf("failed to ensure admin user: %w", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	newsRepo := repository.NewNewsRepository(db)
	historyRepo := repository.NewNewsHistoryRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	tagRepo := repository.NewTagRepository(db)
	mediaRepo := repository.NewMediaRepository(db)
	campaignRepo := repository.NewAdsCampaignRepository(db)
	creativeRepo := repository.NewAdsCreativeRepository(db)
	placementRepo := repository.NewAdsPlacementRepository(db)
	assignmentRepo := repository.NewAdsAssignmentRepository(db)

	txm := repository.NewGormTxManager(db)

	// Initialize services
	tokenService, err := services.NewTokenService(
		cfg.JWT.AccessTokenTTL,
		cfg.JWT.Issuer,
		cfg.JWT.Audience,
		cfg.JWT.UseRSAKeys,
		cfg.JWT.PrivateKey,
		cfg.JWT.PublicKey,
		cfg.JWT.SecretKey,
		rc,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}
	log.Printf("Token service initialized with issuer: %s, audience: %s", cfg.JWT.Issuer, cfg.JWT.Audience)

	rateLimitService := services.NewRateLimitService(rc, cfg.RateLimit.Enabled, cfg.RateLimit.FailOpen)

	storageService, err := services.NewStorageService(
		cfg.Storage.Endpoint,
		cfg.Storage.AccessKey,
		cfg.Storage.SecretKey,
		cfg.Storage.Bucket,
		cfg.Storage.UseSSL,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage service: %w", err)
	}

	// Initialize flows
	authFlow := businessflow.NewAuthFlow(userRepo, tokenService, txm)
	newsFlow := businessflow.NewNewsFlow(newsRepo, historyRepo, tagRepo, categoryRepo, mediaRepo, txm)
	publicNewsFlow := businessflow.NewPublicNewsFlow(newsRepo, categoryRepo, tagRepo, rc)
	publicAdsFlow := businessflow.NewPublicAdsFlow(placementRepo, assignmentRepo, rc, utils.AdCacheTTL)
	adsAdminFlow := businessflow.NewAdsAdminFlow(campaignRepo, creativeRepo, placementRepo, assignmentRepo, mediaRepo, txm)
	categoryFlow := businessflow.NewCategoryFlow(categoryRepo, newsRepo, txm)
	tagFlow := businessflow.NewTagFlow(tagRepo)
	userFlow := businessflow.NewUserFlow(userRepo, txm)
	mediaFlow := businessflow.NewMediaFlow(mediaRepo, newsRepo, storageService, txm)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(tokenService, userRepo)
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(rateLimitService)

	// Initialize router
	appRouter := router.NewFiberRouter(cfg, router.Handlers{
		Auth:       handlers.NewAuthHandler(authFlow),
		News:       handlers.NewNewsHandler(newsFlow),
		PublicNews: handlers.NewPublicNewsHandler(publicNewsFlow),
		PublicAds:  handlers.NewPublicAdsHandler(publicAdsFlow),
		AdsAdmin:   handlers.NewAdsAdminHandler(adsAdminFlow),
		Category:   handlers.NewCategoryHandler(categoryFlow),
		Tag:        handlers.NewTagHandler(tagFlow),
		Media:      handlers.NewMediaHandler(mediaFlow),
		User:       handlers.NewUserHandler(userFlow),
	}, authMiddleware, rateLimitMiddleware)

	if cfg.Scheduler.Enabled {
		sched := scheduler.NewNewsScheduler(newsRepo, historyRepo, txm, cfg.Scheduler.Interval)
		stopScheduler := sched.Start(context.Background())
		stopFuncs = append(stopFuncs, stopScheduler)
	}

	// Create application struct from FiberRouter
	fiberRouter := appRouter.(*router.FiberRouter)
	application := &Application{
		router:    fiberRouter,
		config:    cfg,
		server:    fiberRouter.GetApp(),
		stopFuncs: stopFuncs,
	}

	return application, nil
}
