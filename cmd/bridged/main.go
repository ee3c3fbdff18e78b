package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashgraph-online/desktop-bridge/internal/approval"
	"github.com/hashgraph-online/desktop-bridge/internal/bridge"
	"github.com/hashgraph-online/desktop-bridge/internal/config"
	"github.com/hashgraph-online/desktop-bridge/internal/enrich"
	"github.com/hashgraph-online/desktop-bridge/internal/mirror"
	"github.com/hashgraph-online/desktop-bridge/internal/notify"
	"github.com/hashgraph-online/desktop-bridge/internal/parser"
	"github.com/hashgraph-online/desktop-bridge/internal/poller"
	"github.com/hashgraph-online/desktop-bridge/internal/status"
	"github.com/hashgraph-online/desktop-bridge/internal/tracing"
	"github.com/hashgraph-online/desktop-bridge/internal/wallet"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Setup logger
	logLevel := slog.LevelInfo
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	switch cfg.Log.Level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	logger.Info("starting desktop-bridge",
		"network", cfg.Network.Default,
		"mirror_mainnet", cfg.Mirror.MainnetBaseURL,
		"mirror_testnet", cfg.Mirror.TestnetBaseURL,
		"decoder_command", cfg.Decoder.Command,
		"decoder_script", cfg.Decoder.ScriptPath,
		"status_port", cfg.Server.StatusPort,
	)

	// Initialize OpenTelemetry tracing
	shutdownTracing, err := tracing.Init(context.Background(), "desktop-bridge", cfg.Tracing.Endpoint, cfg.Tracing.Insecure)
	if err != nil {
		logger.Error("failed to initialize tracing", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn("tracing shutdown error", "error", err)
		}
	}()
	if cfg.Tracing.Endpoint != "" {
		logger.Info("tracing enabled", "endpoint", cfg.Tracing.Endpoint)
	}

	// Bridge transport: Redis pub/sub when configured, in-memory otherwise.
	transport, transportName, closeTransport, err := resolveTransport(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize bridge transport", "error", err, "redis_url", cfg.Bridge.RedisURL)
		os.Exit(1)
	}
	defer closeTransport()
	logger.Info("bridge transport ready", "transport", transportName)

	channel := bridge.NewChannel(transport, logger)

	mirrorClient := mirror.NewClient(mirror.Config{
		MainnetBaseURL: cfg.Mirror.MainnetBaseURL,
		TestnetBaseURL: cfg.Mirror.TestnetBaseURL,
		Timeout:        cfg.Mirror.Timeout,
		RPS:            cfg.Mirror.RPS,
		Burst:          cfg.Mirror.Burst,
	}, logger)

	decoder := parser.NewScriptDecoder(cfg.Decoder.Command, cfg.Decoder.ScriptPath, logger)
	resolver := parser.NewResolver(decoder, mirrorClient, logger)

	enricher := enrich.NewPipeline(mirrorClient, enrich.Config{
		SettleDelay: cfg.Enrich.SettleDelay,
		Timeout:     cfg.Enrich.Timeout,
	}, logger)

	notifier := buildNotifier(cfg, logger)
	walletClient := wallet.NewClient(channel, logger)
	walletStatus := wallet.NewStatus()
	detachStatus := wallet.NewStatusAdapter(channel, walletStatus, logger).Attach()
	defer detachStatus()

	schedulePoller := poller.New(mirrorClient, poller.Config{Interval: cfg.Poller.Interval}, logger)
	approvals := approval.NewService(approval.Deps{
		Parser:   resolver,
		Executor: walletClient,
		Enricher: enricher,
		Notifier: notifier,
		Logger:   logger,
	}, approval.Pacing{
		Signing:    cfg.Approval.SigningHold,
		Confirming: cfg.Approval.ConfirmingHold,
	}, schedulePoller, mirrorClient)

	statusServer := status.NewServer(walletStatus, cfg.Network.Default, logger,
		status.WithBreaker(mirrorClient),
		status.WithTransportName(transportName),
		status.WithApprovals(approvals),
	)

	// Context with signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	g, gCtx := errgroup.WithContext(ctx)

	// Status server
	g.Go(func() error {
		return runStatusServer(gCtx, cfg.Server.StatusPort, statusServer.Handler(), logger)
	})

	// Signal handler
	g.Go(func() error {
		select {
		case sig := <-sigCh:
			logger.Info("received signal, shutting down", "signal", sig)
			cancel()
			return nil
		case <-gCtx.Done():
			return nil
		}
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		logger.Error("desktop-bridge exited with error", "error", err)
		os.Exit(1)
	}

	logger.Info("desktop-bridge shut down gracefully")
}

// resolveTransport picks the bridge transport from config. An empty Redis
// URL means host and UI share this process, served by the in-memory fabric.
func resolveTransport(cfg *config.Config, logger *slog.Logger) (bridge.Transport, string, func(), error) {
	if cfg.Bridge.RedisURL == "" {
		return bridge.NewInMemoryTransport(), "in_memory", func() {}, nil
	}

	rt, err := bridge.NewRedisTransport(cfg.Bridge.RedisURL, logger)
	if err != nil {
		return nil, "", nil, fmt.Errorf("redis transport: %w", err)
	}
	closer := func() {
		if err := rt.Close(); err != nil {
			logger.Warn("redis transport close error", "error", err)
		}
	}
	return rt, "redis", closer, nil
}

// buildNotifier fans user notifications out to the configured sinks. The
// structured log sink is always present so a notification is never lost.
func buildNotifier(cfg *config.Config, logger *slog.Logger) notify.Notifier {
	sinks := []notify.Notifier{notify.NewLogNotifier(logger)}
	if cfg.Notify.WebhookURL != "" {
		sinks = append(sinks, notify.NewWebhookNotifier(cfg.Notify.WebhookURL))
	}
	return notify.NewFanout(logger, sinks...)
}

func runStatusServer(ctx context.Context, port int, handler http.Handler, logger *slog.Logger) error {
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: handler,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && err != http.ErrServerClosed {
			logger.Warn("status server shutdown error", "error", err)
		}
	}()

	logger.Info("status server started", "port", port)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		return fmt.Errorf("status server: %w", err)
	}
	return nil
}
