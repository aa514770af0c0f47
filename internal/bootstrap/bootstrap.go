// Package bootstrap assembles the server: configuration, logging, storage,
// the task runtime, and the HTTP transport, plus graceful shutdown.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"wavecast-server-go/internal/domain/access"
	"wavecast-server-go/internal/domain/eventbus"
	"wavecast-server-go/internal/domain/podcast"
	"wavecast-server-go/internal/domain/task"
	taskstore "wavecast-server-go/internal/domain/task/store"
	"wavecast-server-go/internal/domain/tts"
	platformconfig "wavecast-server-go/internal/platform/config"
	platformerrors "wavecast-server-go/internal/platform/errors"
	platformlogging "wavecast-server-go/internal/platform/logging"
	platformobservability "wavecast-server-go/internal/platform/observability"
	platformstorage "wavecast-server-go/internal/platform/storage"
	httptransport "wavecast-server-go/internal/transport/http"
	httppodcasts "wavecast-server-go/internal/transport/http/podcasts"
	httpsystem "wavecast-server-go/internal/transport/http/system"
)

// Version is stamped at build time.
var Version = "dev"

// Run starts the whole service lifecycle: load config, initialise
// dependencies, serve, and shut down cleanly on SIGINT/SIGTERM.
func Run(ctx context.Context, configPath string) error {
	result, err := platformconfig.NewLoader(configPath).Load()
	if err != nil {
		return platformerrors.Wrap(platformerrors.KindBootstrap, "bootstrap.config",
			"failed to load configuration", err)
	}
	cfg := result.Config

	logger, err := platformlogging.New(platformlogging.Config{
		Level:    cfg.Log.Level,
		Dir:      cfg.Log.Dir,
		Filename: cfg.Log.File,
	})
	if err != nil {
		return platformerrors.Wrap(platformerrors.KindBootstrap, "bootstrap.logging",
			"failed to initialise logging", err)
	}
	defer logger.Close()
	logger.InfoTag("Bootstrap", "configuration loaded from %s", result.Path)

	obsShutdown, err := platformobservability.Setup(ctx,
		platformobservability.Config{Enabled: true}, logger.Slog())
	if err != nil {
		return platformerrors.Wrap(platformerrors.KindBootstrap, "bootstrap.observability",
			"failed to initialise observability", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := obsShutdown(shutdownCtx); err != nil {
			logger.WarnTag("Bootstrap", "observability shutdown: %v", err)
		}
	}()

	db, err := platformstorage.Open(cfg.Storage.DataDir)
	if err != nil {
		return platformerrors.Wrap(platformerrors.KindBootstrap, "bootstrap.storage",
			"failed to open storage", err)
	}

	outcomes, err := taskstore.New(outcomeStoreConfig(cfg))
	if err != nil {
		return platformerrors.Wrap(platformerrors.KindBootstrap, "bootstrap.tasks",
			"failed to initialise outcome store", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := outcomes.Close(closeCtx); err != nil {
			logger.WarnTag("Task", "outcome store close: %v", err)
		}
	}()

	manager := task.NewManager(task.Config{
		Workers:   cfg.Tasks.Workers,
		QueueSize: cfg.Tasks.QueueSize,
	}, outcomes, logger)
	defer manager.Stop()

	gate := access.NewGate(db)
	store := podcast.NewStore(db)
	streamer := podcast.NewArtifactStreamer(store, gate)
	orchestrator := podcast.NewOrchestrator(gate, manager, logger)

	worker := podcast.NewWorker(
		store,
		tts.NewFactory(cfg.TTS, logger),
		cfg.Storage.AudioDir,
		cfg.TTS.DefaultProvider,
		logger,
	)
	worker.Register(manager)

	registerLifecycleLogging(logger)

	server, err := buildHTTPServer(ctx, cfg, logger, store, gate, orchestrator, streamer, manager)
	if err != nil {
		return err
	}

	signalCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(signalCtx)
	group.Go(func() error {
		logger.InfoTag("HTTP", "listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return platformerrors.Wrap(platformerrors.KindTransport, "http.serve",
				"http server failed", err)
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		logger.InfoTag("Bootstrap", "shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.InfoTag("Bootstrap", "server stopped")
	return nil
}

func outcomeStoreConfig(cfg *platformconfig.Config) taskstore.Config {
	sc := taskstore.Config{
		Driver: cfg.Tasks.ResultStore.Driver,
		TTL:    time.Duration(cfg.Tasks.ResultStore.TTL),
	}
	if sc.Driver == taskstore.DriverRedis {
		sc.Redis = &taskstore.RedisConfig{
			Addr:     cfg.Tasks.ResultStore.Redis.Addr,
			Password: cfg.Tasks.ResultStore.Redis.Password,
			DB:       cfg.Tasks.ResultStore.Redis.DB,
			Prefix:   cfg.Tasks.ResultStore.Redis.Prefix,
		}
	}
	return sc
}

// registerLifecycleLogging subscribes audit logging to podcast lifecycle
// events so creations and deletions show up regardless of entry point.
func registerLifecycleLogging(logger *platformlogging.Logger) {
	_ = eventbus.SubscribeAsync(eventbus.TopicPodcastCreated, func(podcastID, spaceID uint) {
		logger.InfoTag("Audit", "podcast %d created in search space %d", podcastID, spaceID)
	})
	_ = eventbus.SubscribeAsync(eventbus.TopicPodcastDeleted, func(podcastID, spaceID uint) {
		logger.InfoTag("Audit", "podcast %d deleted from search space %d", podcastID, spaceID)
	})
}

func buildHTTPServer(
	ctx context.Context,
	cfg *platformconfig.Config,
	logger *platformlogging.Logger,
	store *podcast.Store,
	gate *access.Gate,
	orchestrator *podcast.Orchestrator,
	streamer *podcast.ArtifactStreamer,
	manager *task.Manager,
) (*http.Server, error) {
	router, err := httptransport.Build(httptransport.Options{
		Config:         cfg,
		Logger:         logger,
		AuthMiddleware: httptransport.NewAuthMiddleware(cfg.Server.AuthSecret),
	})
	if err != nil {
		return nil, platformerrors.Wrap(platformerrors.KindBootstrap, "bootstrap.http",
			"failed to build http router", err)
	}

	router.Engine.NoRoute(func(c *gin.Context) {
		httptransport.RespondError(c, http.StatusNotFound, "Not Found")
	})

	podcastService, err := httppodcasts.NewService(store, gate, orchestrator, streamer, manager, logger)
	if err != nil {
		return nil, err
	}
	if err := podcastService.Register(ctx, router.Secured); err != nil {
		return nil, err
	}
	if err := httpsystem.NewService(Version, logger).Register(ctx, router.API); err != nil {
		return nil, err
	}

	return &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router.Engine,
	}, nil
}
