package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/khoahotran/profile-directory/adapters/event"
	httpAdapter "github.com/khoahotran/profile-directory/adapters/http"
	"github.com/khoahotran/profile-directory/adapters/persistence"
	"github.com/khoahotran/profile-directory/internal/application/service"
	profileUC "github.com/khoahotran/profile-directory/internal/application/usecase/profile"
	skillUC "github.com/khoahotran/profile-directory/internal/application/usecase/skill"
	"github.com/khoahotran/profile-directory/internal/config"
	"github.com/khoahotran/profile-directory/internal/domain/profile"
	"github.com/khoahotran/profile-directory/pkg/logger"
	"github.com/khoahotran/profile-directory/pkg/tracing"
)

func main() {
	fmt.Println("Start Profile Directory API Server...")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: cannot load config: %v\n", err)
		os.Exit(1)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	tp, err := tracing.NewTracerProvider(cfg, appLogger, "profile-directory-api")
	if err != nil {
		appLogger.Fatal("cannot init tracing", err)
	}
	defer tracing.Shutdown(context.Background(), tp, appLogger)

	// Repository
	profileRepo, closeStore, err := newProfileRepository(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot init profile store", err, zap.String("driver", cfg.DB.Driver))
	}
	defer closeStore()

	// Cache and skill index
	var (
		listCache  service.ListCache
		skillIndex service.SkillIndex
	)
	if cfg.Redis.Addr != "" {
		redisClient, err := persistence.NewRedisClient(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("cannot connect Redis", err)
		}
		defer redisClient.Close()
		listCache = persistence.NewRedisListCache(redisClient, cfg.Redis.CacheTTL)
		skillIndex = persistence.NewRedisSkillIndex(redisClient)
	} else {
		appLogger.Info("Redis not configured, list cache and popular skills disabled")
	}

	// Events
	var publisher service.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaClient, err := event.NewKafkaProducerClient(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("cannot init Kafka", err)
		}
		defer kafkaClient.Close()
		publisher = kafkaClient
	} else {
		appLogger.Info("Kafka not configured, profile events will not be published")
		publisher = event.NewNoopPublisher(appLogger)
	}

	// Use Cases
	opts := []profileUC.Option{
		profileUC.WithEventPublisher(publisher),
		profileUC.WithPageLimits(cfg.Pagination.DefaultLimit, cfg.Pagination.MaxLimit),
	}
	if listCache != nil {
		opts = append(opts, profileUC.WithListCache(listCache))
	}
	profileUseCase := profileUC.NewProfileUseCase(profileRepo, appLogger, opts...)
	skillUseCase := skillUC.NewSkillUseCase(skillIndex, appLogger)

	// HTTP
	router := httpAdapter.NewRouter(httpAdapter.RouterDeps{
		ProfileHandler:     httpAdapter.NewProfileHandler(profileUseCase, appLogger),
		SkillHandler:       httpAdapter.NewSkillHandler(skillUseCase),
		Logger:             appLogger,
		CORSOrigins:        cfg.App.CORSOrigins,
		ExposeErrorDetails: !cfg.IsProduction(),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("Server running", zap.String("port", cfg.App.Port), zap.String("driver", cfg.DB.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("Cannot run server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", err)
	}

	profileUseCase.Wait()
	appLogger.Info("Server exited")
}

func newProfileRepository(cfg config.Config, log logger.Logger) (profile.Repository, func(), error) {
	switch cfg.DB.Driver {
	case config.DriverPostgres:
		pool, err := persistence.NewPostgresPool(cfg, log)
		if err != nil {
			return nil, nil, err
		}
		return persistence.NewPostgresProfileRepo(pool, log), pool.Close, nil
	case config.DriverMongo:
		client, db, err := persistence.NewMongoDatabase(cfg, log)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Disconnect(ctx); err != nil {
				log.Error("Failed to disconnect MongoDB", err)
			}
		}
		return persistence.NewMongoProfileRepo(db, log), closeFn, nil
	case config.DriverMemory:
		log.Warn("Using in-memory profile store, data is lost on restart")
		return persistence.NewMemoryProfileRepo(), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown db driver %q", cfg.DB.Driver)
}
