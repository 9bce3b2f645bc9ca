package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/tabadul/exchange-engine/internal/api/handlers"
	"github.com/tabadul/exchange-engine/internal/api/middleware"
	"github.com/tabadul/exchange-engine/internal/cache"
	"github.com/tabadul/exchange-engine/internal/catalog"
	"github.com/tabadul/exchange-engine/internal/config"
	"github.com/tabadul/exchange-engine/internal/engine"
	"github.com/tabadul/exchange-engine/internal/events"
	"github.com/tabadul/exchange-engine/internal/store"
	"github.com/tabadul/exchange-engine/internal/tracing"
	"github.com/tabadul/exchange-engine/pkg/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the matching API server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	_ = godotenv.Load()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if cfg.Tracing.Enabled {
		tp, err := tracing.Init(ctx, cfg.Tracing.Endpoint, cfg.Tracing.ServiceName)
		if err != nil {
			return fmt.Errorf("initializing tracing: %w", err)
		}
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			if err := tp.Shutdown(shutdownCtx); err != nil {
				log.Warn("tracer shutdown", "err", err)
			}
		}()
	}

	st, err := store.NewPostgresStore(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer st.Close()

	provider, err := catalog.NewFileProvider(cfg.Catalog.Path)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	reloader, err := catalog.NewReloader(provider, cfg.Catalog.ReloadInterval, log)
	if err != nil {
		return fmt.Errorf("creating catalog reloader: %w", err)
	}
	reloader.Start()
	defer reloader.Stop()

	opts := []engine.Option{
		engine.WithLogger(log),
		engine.WithLimits(limitsFromConfig(cfg.Matching)),
	}

	if cfg.Redis.Enabled {
		mc, err := cache.New(ctx, cfg.Redis.Addr, cfg.Redis.TTL)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer mc.Close()
		opts = append(opts, engine.WithCache(mc))
		log.Info("match cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.TTL)
	}

	if cfg.NATS.Enabled {
		pub, err := events.NewNATSPublisher(cfg.NATS.URL)
		if err != nil {
			return fmt.Errorf("connecting to nats: %w", err)
		}
		defer pub.Close()
		opts = append(opts, engine.WithPublisher(pub))
		log.Info("event publishing enabled", "url", cfg.NATS.URL)
	}

	eng := engine.NewEngine(st, provider, opts...)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(log))
	e.Use(middleware.RequestLog(log))
	e.Use(middleware.Metrics())
	e.Use(middleware.RateLimit(cfg.RateLimit.PerSecond, cfg.RateLimit.Burst))

	health := handlers.NewHealthHandler(st)
	e.GET("/healthz", health.Healthz)
	e.GET("/readyz", health.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := humaecho.New(e, huma.DefaultConfig("Exchange Engine API", Version))
	handlers.RegisterListingRoutes(api, handlers.NewListingsHandler(st))
	handlers.RegisterMatchRoutes(api, handlers.NewMatchesHandler(st, eng))
	handlers.RegisterCatalogRoutes(api, handlers.NewCatalogHandler(provider))

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("starting server", "addr", addr)

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "err", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	log.Info("server stopped")
	return nil
}

// limitsFromConfig overlays configured bounds on the engine defaults.
// Zero config values keep the default.
func limitsFromConfig(m config.MatchingConfig) engine.Limits {
	l := engine.DefaultLimits()
	if m.PoolACap > 0 {
		l.PoolACap = m.PoolACap
	}
	if m.PoolBCap > 0 {
		l.PoolBCap = m.PoolBCap
	}
	if m.PoolCCap > 0 {
		l.PoolCCap = m.PoolCCap
	}
	if m.FloorScore > 0 {
		l.FloorScore = m.FloorScore
	}
	if m.MaxResults > 0 {
		l.MaxResults = m.MaxResults
	}
	if m.ChainBCap > 0 {
		l.ChainBCap = m.ChainBCap
	}
	if m.ChainCCap > 0 {
		l.ChainCCap = m.ChainCCap
	}
	if m.MaxChains > 0 {
		l.MaxChains = m.MaxChains
	}
	if m.ChainScore > 0 {
		l.ChainScore = m.ChainScore
	}
	return l
}
