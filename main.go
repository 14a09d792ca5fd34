package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sweephouse/application"
	"sweephouse/config"
	"sweephouse/database"
	"sweephouse/domain/interfaces"
	"sweephouse/infrastructure"
	"sweephouse/infrastructure/cache"
	"sweephouse/repository"

	log "github.com/sirupsen/logrus"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		if err := handleMigrationCommand(); err != nil {
			log.Fatal("Migration error: ", err)
		}
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("Received shutdown signal, shutting down gracefully...")
		cancel()
	}()

	if err := run(ctx); err != nil {
		log.Fatal("Application error: ", err)
	}
}

func handleMigrationCommand() error {
	if len(os.Args) < 3 {
		return fmt.Errorf("usage: sweephouse migrate up")
	}

	switch os.Args[2] {
	case "up":
		return database.MigrateUp()
	default:
		return fmt.Errorf("unknown migration command: %s", os.Args[2])
	}
}

func run(ctx context.Context) error {
	cfg := config.Get()

	log.SetFormatter(&log.JSONFormatter{})
	if cfg.Environment == "development" {
		log.SetLevel(log.DebugLevel)
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	if err := database.MigrateUp(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	redisClient, err := cache.ConnectRedis(ctx, cfg.RedisAddr)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	defer redisClient.Close()
	oddsCache := cache.NewRedisEventCache(redisClient)

	// NATS is optional: without it domain events are dropped
	newPublisher := func() interfaces.TransactionalEventPublisher {
		return infrastructure.NewNoopEventPublisher()
	}
	natsClient := infrastructure.NewNATSClient(cfg.NATSServers)
	if err := natsClient.Connect(ctx); err != nil {
		log.WithError(err).Warn("NATS unavailable, domain events disabled")
	} else {
		defer natsClient.Close()
		eventPublisher := infrastructure.NewNATSEventPublisher(natsClient, infrastructure.NewEventSubjectMapper())
		if err := eventPublisher.EnsureDomainEventStream(); err != nil {
			return fmt.Errorf("failed to ensure domain event stream: %w", err)
		}
		newPublisher = func() interfaces.TransactionalEventPublisher {
			return infrastructure.NewNATSTransactionalPublisher(eventPublisher)
		}
	}

	uowFactory := repository.NewUnitOfWorkFactory(db, newPublisher)
	ops := application.NewOperations(uowFactory, oddsCache)

	if err := ops.WarmUpOddsCache(ctx, 5*time.Minute); err != nil {
		log.WithError(err).Warn("Failed to warm odds cache at startup")
	}

	worker := application.NewParlayResolutionWorker(ops, time.Duration(cfg.ResolutionSweepSeconds)*time.Second)
	stopWorker := worker.Start(ctx)
	defer stopWorker()

	log.WithFields(log.Fields{
		"environment": cfg.Environment,
	}).Info("Sweephouse ledger core started")

	<-ctx.Done()
	log.Info("Sweephouse ledger core stopped")
	return nil
}
