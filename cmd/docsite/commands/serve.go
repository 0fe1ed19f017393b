package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/notify"
	"git.home.luguber.info/inful/docsite/internal/server"
	"git.home.luguber.info/inful/docsite/internal/service"
)

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	Addr string `short:"a" help:"Listen address (overrides serve.addr)"`
	Dev  bool   `help:"Force development mode (short cache TTL)"`
}

func (s *ServeCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	if s.Addr != "" {
		cfg.Serve.Addr = s.Addr
	}
	if s.Dev {
		cfg.Mode = config.ModeDevelopment
	}

	registry := prometheus.NewRegistry()
	recorder := metrics.NewPrometheusRecorder(registry)

	var opts []service.Option
	if cfg.Notify.Enabled {
		publisher, err := notify.NewPublisher(cfg.Notify)
		if err != nil {
			return fmt.Errorf("connect notify publisher: %w", err)
		}
		defer publisher.Close()
		opts = append(opts, service.WithPublisher(publisher))
	}

	svc := service.New(cfg, recorder, opts...)
	defer svc.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if interval := cfg.Cache.SweepInterval.Std(); interval > 0 {
		scheduler, err := gocron.NewScheduler()
		if err != nil {
			return fmt.Errorf("create sweep scheduler: %w", err)
		}
		_, err = scheduler.NewJob(
			gocron.DurationJob(interval),
			gocron.NewTask(func() {
				if removed := svc.Store().Sweep(); removed > 0 {
					slog.Debug("Swept expired cache entries", slog.Int("removed", removed))
				}
			}),
			gocron.WithName("cache-sweep"),
		)
		if err != nil {
			return fmt.Errorf("schedule cache sweep: %w", err)
		}
		scheduler.Start()
		defer func() { _ = scheduler.Shutdown() }()
	}

	srv := server.New(cfg, svc, registry)
	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("start server: %w", err)
	}

	<-ctx.Done()
	slog.Info("Shutdown signal received, stopping server")

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer stopCancel()
	if err := srv.Stop(stopCtx); err != nil {
		slog.Error("Server shutdown failed", logfields.Error(err))
		return err
	}
	return nil
}
