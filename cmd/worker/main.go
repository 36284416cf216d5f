package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/profile-directory/adapters/event"
	"github.com/khoahotran/profile-directory/adapters/persistence"
	skillUC "github.com/khoahotran/profile-directory/internal/application/usecase/skill"
	"github.com/khoahotran/profile-directory/internal/config"
	"github.com/khoahotran/profile-directory/pkg/logger"
	"github.com/khoahotran/profile-directory/pkg/tracing"
)

const consumerGroup = "profile-skill-indexer"

func main() {
	fmt.Println("Starting Profile Directory Worker...")

	// Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: cannot load config: %v\n", err)
		os.Exit(1)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	if err := run(cfg, appLogger); err != nil {
		appLogger.Error("Worker stopped", err)
		_ = appLogger.Sync()
		os.Exit(1)
	}
	_ = appLogger.Sync()
}

// run returns once the worker is signalled, or with an error when an event
// cannot be applied; the process then exits non-zero and the uncommitted
// event is consumed again on restart.
func run(cfg config.Config, appLogger logger.Logger) error {
	if len(cfg.Kafka.Brokers) == 0 {
		return errors.New("worker requires KAFKA_BROKERS")
	}
	if cfg.Redis.Addr == "" {
		return errors.New("worker requires REDIS_ADDR")
	}

	tp, err := tracing.NewTracerProvider(cfg, appLogger, "profile-directory-worker")
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer tracing.Shutdown(context.Background(), tp, appLogger)

	// Skill index
	redisClient, err := persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	skillUseCase := skillUC.NewSkillUseCase(persistence.NewRedisSkillIndex(redisClient), appLogger)

	// Kafka Consumer
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicProfileEvents,
		GroupID:  consumerGroup,
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	defer reader.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	appLogger.Info("Worker listening", zap.String("topic", event.TopicProfileEvents), zap.String("group", consumerGroup))

	consumer := event.NewProfileEventConsumer(reader, appLogger)
	if err := consumer.Run(ctx, skillUseCase.ExecuteApplyEvent); err != nil {
		return err
	}

	appLogger.Info("Worker stopped")
	return nil
}
