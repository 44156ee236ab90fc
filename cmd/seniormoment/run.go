package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	v1 "github.com/seniormoment/seniormoment/api/v1"
	"github.com/seniormoment/seniormoment/internal/config"
	"github.com/seniormoment/seniormoment/internal/handlers"
	"github.com/seniormoment/seniormoment/internal/metrics"
	"github.com/seniormoment/seniormoment/internal/server"
	"github.com/seniormoment/seniormoment/internal/services"
	"github.com/seniormoment/seniormoment/internal/sound"
	"github.com/seniormoment/seniormoment/pkg/funnel"
)

const shutdownTimeout = 10 * time.Second

func NewRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the alarm daemon and its HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(viper.New(), cmd.Flags())
			if err != nil {
				return err
			}

			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()
			undo := zap.ReplaceGlobals(logger)
			defer undo()

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			return run(ctx, cfg)
		},
	}

	config.RegisterFlags(cmd.Flags())
	return cmd
}

func run(ctx context.Context, cfg *config.Configuration) error {
	zap.S().Infow("configuration loaded", "config", cfg.DebugMap())

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	device := sound.NewSimulatedDevice(sound.WithWordDuration(cfg.Sound.WordDuration))

	opts := []funnel.Option{
		funnel.WithMaxPending(cfg.Funnel.MaxPending),
		funnel.WithRunTimeout(cfg.Funnel.RunTimeout),
		funnel.WithAdvanceOnComplete(cfg.Funnel.AdvanceOnComplete),
		funnel.WithMetrics(metrics.NewFunnel(registry)),
		funnel.WithLogger(zap.S().Named("funnel")),
	}
	if cfg.Funnel.GateOnDevice {
		opts = append(opts, funnel.WithBusyGate(device.Busy))
	}
	f := funnel.New(opts...)
	defer f.Close()
	f.Subscribe(announce)

	player := sound.NewPlayer(f, device)
	alarmSrv := services.NewAlarmService(player,
		services.WithReRing(cfg.Alarms.ReRingInitial, cfg.Alarms.ReRingMax),
		services.WithMaxRings(cfg.Alarms.MaxRings),
	)

	if cfg.Alarms.PresetsFile != "" {
		presets, err := services.LoadPresets(cfg.Alarms.PresetsFile)
		if err != nil {
			return err
		}
		if _, err := alarmSrv.CreateFromPresets(ctx, presets); err != nil {
			return fmt.Errorf("failed to create preset alarms: %w", err)
		}
	}

	hb := funnel.NewHeartbeat(cfg.Funnel.HeartbeatInterval, alarmSrv, f)
	if err := hb.Start(ctx); err != nil {
		return err
	}
	defer hb.Stop()

	srv, err := server.NewServer(cfg, func(router *gin.RouterGroup) {
		v1.RegisterHandlers(router, handlers.New(alarmSrv, player, f))
	}, server.WithMetrics(registry))
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(ctx)
	}()

	color.New(color.FgGreen, color.Bold).Printf("seniormoment %s listening on http://%s\n", version, srv.Addr())

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	zap.S().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		zap.S().Errorw("failed to stop server", "error", err)
	}
	return nil
}

var (
	startedColor   = color.New(color.FgCyan)
	completedColor = color.New(color.FgHiBlack)
	failedColor    = color.New(color.FgRed)
)

// announce prints what the audio device is doing.
func announce(e funnel.Event) {
	switch e.Kind {
	case funnel.EventStarted:
		startedColor.Printf("♪ %s (priority %d)\n", e.Item.Name(), e.Item.Priority())
	case funnel.EventCompleted:
		if e.Err != nil {
			failedColor.Printf("✗ %s: %v\n", e.Item.Name(), e.Err)
			return
		}
		completedColor.Printf("  %s done\n", e.Item.Name())
	}
}
