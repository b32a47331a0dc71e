// Package app wires configuration, storage, services, flows and the
// Telegram adapter into a runnable application.
package app

import (
	"context"
	"fmt"

	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/m3rciful/coachbot/core/bootstrap"
	"github.com/m3rciful/coachbot/core/logger"
	coretelegram "github.com/m3rciful/coachbot/core/telegram"
	"github.com/m3rciful/coachbot/internal/bot"
	"github.com/m3rciful/coachbot/internal/config"
	"github.com/m3rciful/coachbot/internal/dialog"
	"github.com/m3rciful/coachbot/internal/flows"
	"github.com/m3rciful/coachbot/internal/observability"
	"github.com/m3rciful/coachbot/internal/scheduler"
	"github.com/m3rciful/coachbot/internal/service"
	"github.com/m3rciful/coachbot/internal/storage"
	"github.com/m3rciful/coachbot/internal/storage/memory"
	"github.com/m3rciful/coachbot/internal/storage/postgres"
)

// App holds everything the runtime needs after bootstrap.
type App struct {
	cfg       *config.AppConfig
	adapter   *bot.Bot
	transport *bot.Transport
	sched     *scheduler.Scheduler
	metrics   *observability.Metrics
	promReg   *prometheus.Registry
}

// Bootstrap initializes infrastructure and wires the application.
// An empty database host selects the in-memory store with development
// seed data instead of Postgres.
func Bootstrap(cfg *config.AppConfig) (*App, error) {
	var store *storage.Store
	if cfg.Database.Host == "" {
		if err := logger.InitLogger(cfg.CoreConfig()); err != nil {
			return nil, fmt.Errorf("app: logger init failed: %w", err)
		}
		store = memory.New()
		for _, seeder := range devSeeders(store) {
			if err := seeder.Seed(context.Background(), store); err != nil {
				return nil, fmt.Errorf("app: seed failed: %w", err)
			}
		}
		logger.LogEvent(context.Background(), logger.SEED, slog.LevelInfo, "memory.seeded")
	} else {
		res, err := bootstrap.Run(bootstrap.Options{
			Config:   cfg.CoreConfig(),
			Database: cfg.Database,
		})
		if err != nil {
			return nil, err
		}
		store = postgres.New(res.DB)
	}

	promReg := prometheus.NewRegistry()
	promReg.MustRegister(collectors.NewGoCollector())
	metrics := observability.New(promReg)

	users := service.NewUsers(store)
	profiles := service.NewProfiles(store)
	progress := service.NewProgress(store)
	content := service.NewContent(store)
	relay := service.NewRelay(store)

	transport := bot.NewTransport()
	broadcast := service.NewBroadcast(store.Users, transport, cfg.Assistant.BroadcastWorkers)
	broadcast.OnReport = func(r service.Report) {
		metrics.ObserveBroadcast(r.Sent, r.Failed)
	}

	sessions := dialog.NewSessionStore()
	elevation := dialog.NewElevationStore()
	dialogReg := dialog.NewRegistry()

	fl := &flows.Flows{
		Users:         users,
		Profiles:      profiles,
		Progress:      progress,
		Content:       content,
		Relay:         relay,
		Broadcast:     broadcast,
		Notify:        transport,
		Elevation:     elevation,
		AdminPassword: cfg.Assistant.AdminPassword,
	}
	fl.Register(dialogReg)

	router := dialog.NewRouter(sessions, elevation, dialogReg)

	adapter := bot.New(bot.Options{
		Config:    cfg,
		Dialog:    router,
		DialogReg: dialogReg,
		Sessions:  sessions,
		Users:     users,
		Profiles:  profiles,
		Metrics:   metrics,
	})

	var sched *scheduler.Scheduler
	if cfg.Assistant.RemindersEnabled {
		var err error
		sched, err = scheduler.New(users, profiles, transport, metrics, cfg.Assistant.Timezone)
		if err != nil {
			return nil, err
		}
	}

	return &App{
		cfg:       cfg,
		adapter:   adapter,
		transport: transport,
		sched:     sched,
		metrics:   metrics,
		promReg:   promReg,
	}, nil
}

// TelegramRunOptions assembles the runtime options for the core runner.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	opts := coretelegram.RunOptions{
		Config:      a.cfg.CoreConfig(),
		Registry:    a.adapter.Registry(),
		Middlewares: a.adapter.Middlewares(),
		Routes:      a.adapter.Routes(),
		OnStart: func(ctx context.Context, rt coretelegram.Runtime) error {
			a.transport.Bind(rt.Bot)
			if a.sched != nil {
				if err := a.sched.Start(); err != nil {
					return err
				}
			}
			if a.cfg.Metrics.Enabled {
				go func() {
					if err := observability.Serve(ctx, a.cfg.Metrics.Listen, a.promReg); err != nil {
						logger.LogEvent(ctx, logger.L, slog.LevelError, "metrics.listener_failed",
							slog.String("err", err.Error()),
						)
					}
				}()
			}
			return nil
		},
		OnStop: func(_ context.Context, _ coretelegram.Runtime) error {
			if a.sched != nil {
				a.sched.Stop()
			}
			return nil
		},
	}
	return opts, nil
}
