package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	notificationservice "chainimpact/contexts/engagement/notification-service"
	notificationentities "chainimpact/contexts/engagement/notification-service/domain/entities"
	notificationpostgres "chainimpact/contexts/engagement/notification-service/adapters/postgres"
	notificationcommands "chainimpact/contexts/engagement/notification-service/application/commands"
	campaignservice "chainimpact/contexts/giving/campaign-service"
	campaignpostgres "chainimpact/contexts/giving/campaign-service/adapters/postgres"
	campaignworkers "chainimpact/contexts/giving/campaign-service/application/workers"
	oracleservice "chainimpact/contexts/verification/oracle-service"
	"chainimpact/contexts/verification/oracle-service/adapters/campaignstore"
	oraclepostgres "chainimpact/contexts/verification/oracle-service/adapters/postgres"
	"chainimpact/contexts/verification/oracle-service/adapters/httpfetch"
	"chainimpact/contexts/verification/oracle-service/adapters/simulation"
	oracleports "chainimpact/contexts/verification/oracle-service/ports"
	"chainimpact/internal/platform/config"
	"chainimpact/internal/platform/db"
	"chainimpact/internal/platform/httpserver"
	"chainimpact/internal/platform/messaging"
	"chainimpact/internal/platform/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres       *db.Postgres
	bus            *messaging.Bus
	outboxRelay    campaignworkers.OutboxRelay
	notifications  notificationservice.Module
	outboxInterval time.Duration
	consumeEvents  bool
	relayOutbox    bool
	logger         *slog.Logger
}

// notificationBridge adapts the oracle's notification port onto the
// notification-service append use case.
type notificationBridge struct {
	Append notificationcommands.AppendNotificationUseCase
}

func (b notificationBridge) AppendNotification(ctx context.Context, notification oracleports.MilestoneNotification) error {
	index := notification.MilestoneIndex
	_, err := b.Append.Execute(ctx, notificationcommands.AppendNotificationCommand{
		RecipientID:    notification.RecipientID,
		Type:           notificationentities.NotificationTypeMilestone,
		Message:        notification.Message,
		CampaignID:     notification.CampaignID,
		MilestoneIndex: &index,
	})
	return err
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	campaignRepo := campaignpostgres.NewRepository(pg.DB, logger)
	if err := campaignRepo.AutoMigrate(); err != nil {
		return nil, err
	}
	campaignModule := campaignservice.NewModule(campaignservice.Dependencies{
		Campaigns:      campaignRepo,
		Donations:      campaignRepo,
		Idempotency:    campaignRepo,
		Outbox:         campaignRepo,
		Clock:          campaignpostgres.SystemClock{},
		IDGenerator:    campaignpostgres.UUIDGenerator{},
		IdempotencyTTL: 7 * 24 * time.Hour,
		Logger:         logger,
	})

	notificationRepo := notificationpostgres.NewRepository(pg.DB, logger)
	if err := notificationRepo.AutoMigrate(); err != nil {
		return nil, err
	}
	notificationModule := notificationservice.NewModule(notificationservice.Dependencies{
		Notifications: notificationRepo,
		Clock:         notificationpostgres.SystemClock{},
		IDGenerator:   notificationpostgres.UUIDGenerator{},
		Logger:        logger,
	})

	oracleRepo, err := buildOracleRegistry(pg, logger)
	if err != nil {
		return nil, err
	}
	oracleModule := oracleservice.NewModule(oracleservice.Dependencies{
		Fetcher:       httpfetch.New(cfg.ProofFetchTimeout),
		Classifier:    simulation.Classifier{Delay: cfg.AnalysisDelay},
		Campaigns:     campaignstore.New(campaignRepo),
		Notifications: notificationBridge{Append: notificationModule.Append},
		Balances:      &simulation.WalletBalances{Default: 1.0},
		Registry:      oracleRepo,
		Status:        simulation.StatusProvider{},
		Clock:         campaignpostgres.SystemClock{},
		IDGenerator:   campaignpostgres.UUIDGenerator{},
		Logger:        logger,
	})

	registry := prometheus.NewRegistry()
	meter := metrics.New(registry)

	server := httpserver.New(
		campaignModule,
		oracleModule,
		notificationModule,
		meter,
		logger,
		normalizeAddr(cfg.HTTPPort),
	)
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	bus := messaging.NewBus(logger)

	campaignRepo := campaignpostgres.NewRepository(pg.DB, logger)
	notificationRepo := notificationpostgres.NewRepository(pg.DB, logger)
	notificationModule := notificationservice.NewModule(notificationservice.Dependencies{
		Notifications: notificationRepo,
		Clock:         notificationpostgres.SystemClock{},
		IDGenerator:   notificationpostgres.UUIDGenerator{},
		Logger:        logger,
	})

	return &WorkerApp{
		postgres: pg,
		bus:      bus,
		outboxRelay: campaignworkers.OutboxRelay{
			Outbox:    campaignRepo,
			Publisher: bus,
			Clock:     campaignpostgres.SystemClock{},
			BatchSize: 100,
			Logger:    logger,
		},
		notifications:  notificationModule,
		outboxInterval: cfg.OutboxInterval,
		consumeEvents:  cfg.EnableNotificationConsumer,
		relayOutbox:    cfg.EnableOutboxRelay,
		logger:         logger,
	}, nil
}

func buildOracleRegistry(pg *db.Postgres, logger *slog.Logger) (oracleports.VerifierRegistry, error) {
	repo := oraclepostgres.NewRepository(pg.DB, logger)
	if err := repo.AutoMigrate(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	if w.consumeEvents {
		if err := w.notifications.Consumer.Start(ctx, w.bus); err != nil {
			return err
		}
	}

	scheduler := cron.New()
	if w.relayOutbox {
		spec := fmt.Sprintf("@every %s", w.outboxInterval)
		if _, err := scheduler.AddFunc(spec, func() {
			if err := w.outboxRelay.RunOnce(ctx); err != nil {
				w.logger.Error("outbox relay run failed",
					"event", "outbox_relay_run_failed",
					"module", "internal/app/bootstrap",
					"layer", "platform",
					"error", err.Error(),
				)
			}
		}); err != nil {
			return err
		}
	}
	scheduler.Start()
	defer scheduler.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"outbox_interval", w.outboxInterval.String(),
	)

	<-ctx.Done()
	return nil
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
