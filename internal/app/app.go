package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/YanPetrov7/blog-content-management-system/config"
	"github.com/YanPetrov7/blog-content-management-system/internal/controller/restapi"
	"github.com/YanPetrov7/blog-content-management-system/internal/controller/worker/outbox"
	infrakafka "github.com/YanPetrov7/blog-content-management-system/internal/infrastructure/kafka"
	"github.com/YanPetrov7/blog-content-management-system/internal/infrastructure/processor"
	"github.com/YanPetrov7/blog-content-management-system/internal/repo/persistent"
	"github.com/YanPetrov7/blog-content-management-system/internal/usecase/category"
	"github.com/YanPetrov7/blog-content-management-system/internal/usecase/comment"
	"github.com/YanPetrov7/blog-content-management-system/internal/usecase/media"
	outboxuc "github.com/YanPetrov7/blog-content-management-system/internal/usecase/outbox"
	"github.com/YanPetrov7/blog-content-management-system/internal/usecase/post"
	"github.com/YanPetrov7/blog-content-management-system/internal/usecase/user"
	"github.com/YanPetrov7/blog-content-management-system/migrations"
	"github.com/YanPetrov7/blog-content-management-system/pkg/httpserver"
	"github.com/YanPetrov7/blog-content-management-system/pkg/kafka/producer"
	"github.com/YanPetrov7/blog-content-management-system/pkg/logger"
	"github.com/YanPetrov7/blog-content-management-system/pkg/postgres"
	"github.com/YanPetrov7/blog-content-management-system/pkg/s3client"
)

func Run(cfg *config.Config) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Logger
	l := logger.New(cfg.Log.Level)

	// Repository

	// s3
	s3Ctx, s3Cancel := context.WithTimeout(ctx, cfg.S3.CfgLoadTimeout)
	defer s3Cancel()
	s3c, err := s3client.New(s3Ctx, cfg.S3.Endpoint, cfg.S3.AccessKey, cfg.S3.SecretKey)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - s3client.New: %w", err))
	}

	// postgres
	pg, err := postgres.New(cfg.PG.URL, postgres.MaxPoolSize(cfg.PG.PoolMax))
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - postgres.New: %w", err))
	}
	defer pg.Close()

	err = postgres.Migrate(cfg.PG.URL, migrations.FS, ".")
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - postgres.Migrate: %w", err))
	}

	objectStore := persistent.NewObjectStoreRepo(s3c, cfg.S3.Bucket, cfg.S3.PublicURL)
	userRepo := persistent.NewUserRepo(pg)
	postRepo := persistent.NewPostRepo(pg)
	categoryRepo := persistent.NewCategoryRepo(pg)
	commentRepo := persistent.NewCommentRepo(pg)
	keyRepo := persistent.NewVerificationKeyRepo(pg)
	outboxRepo := persistent.NewOutboxRepo(pg)

	// Use-Case

	deriver := processor.New()
	orchestrator := media.NewOrchestrator(objectStore, l)

	avatarLifecycle := media.NewLifecycle(deriver, orchestrator, objectStore, userRepo, cfg.Media.AvatarsFolder, l)
	postImageLifecycle := media.NewLifecycle(deriver, orchestrator, objectStore, postRepo, cfg.Media.PostsFolder, l)

	userUseCase := user.New(
		userRepo,
		keyRepo,
		outboxRepo,
		pg,
		avatarLifecycle,
		user.VerificationConfig{
			BaseURL:  cfg.Verification.BaseURL,
			FromAddr: cfg.Verification.FromAddr,
			KeyTTL:   cfg.Verification.KeyTTL,
		},
		l,
	)
	postUseCase := post.New(postRepo, userRepo, categoryRepo, postImageLifecycle, l)
	categoryUseCase := category.New(categoryRepo)
	commentUseCase := comment.New(commentRepo, postRepo, userRepo)
	outboxUseCase := outboxuc.New(outboxRepo, l)

	// Kafka Producer
	kafkaProducer, err := producer.New(ctx, cfg.Kafka.Brokers)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - producer.New: %w", err))
	}

	// Outbox Relay Worker
	outboxRelayWorker := outbox.New(
		outboxUseCase,
		infrakafka.NewEventProducer(kafkaProducer, cfg.OutboxRelay.MaxRetries, cfg.Kafka.Topic),
		l,
		cfg.OutboxRelay.PollInterval,
		cfg.OutboxRelay.CleanupInterval,
		cfg.OutboxRelay.MarkFailedInterval,
		cfg.OutboxRelay.ProcessBatchTimeout,
		cfg.OutboxRelay.BatchSize,
		cfg.OutboxRelay.MaxRetries,
	)

	// HTTP Server
	httpServer := httpserver.New(l, httpserver.Port(cfg.HTTP.Port), httpserver.Prefork(cfg.HTTP.UsePreforkMode))
	restapi.NewRouter(httpServer.App, cfg, userUseCase, postUseCase, categoryUseCase, commentUseCase, l)

	// Start Components
	err = outboxRelayWorker.Start(ctx)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - outboxRelayWorker.Start: %w", err))
	}
	httpServer.Start()

	// Waiting Signal
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		l.Info("app - Run - signal: %s", s.String())
	case err = <-httpServer.Notify():
		l.Error(fmt.Errorf("app - Run - httpServer.Notify: %w", err))
	}

	// Shutdown
	err = httpServer.Shutdown()
	if err != nil {
		l.Error(fmt.Errorf("app - Run - httpServer.Shutdown: %w", err))
	}

	orlShutdownCtx, orlShutdownCancel := context.WithTimeout(ctx, cfg.OutboxRelay.ShutdownTimeout)
	defer orlShutdownCancel()
	err = outboxRelayWorker.Shutdown(orlShutdownCtx)
	if err != nil {
		l.Error(fmt.Errorf("app - Run - outboxRelayWorker.Shutdown: %w", err))
	}
}
