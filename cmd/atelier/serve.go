package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"atelier/internal/httpapi"
	"atelier/internal/notify"
	"atelier/internal/orders"
	"atelier/internal/session"
	"atelier/internal/storage"
	"atelier/pkg/api"
	"atelier/pkg/redis"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API",
		Action: func(c *cli.Context) error {
			return serve(fromContext(c))
		},
	}
}

func serve(a *appContext) error {
	cfg, log := a.cfg, a.logger

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	catalog, err := loadCatalog(cfg.Catalog.Path)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	log.Info("Catalog loaded",
		zap.String("path", cfg.Catalog.Path),
		zap.Int("garments", len(catalog.Garments())),
		zap.Int("fabrics", len(catalog.Fabrics())),
		zap.Int("services", len(catalog.Services())))

	// Sessions and rate limiting live in Redis when configured.
	var store session.Store = session.NewMemoryStore()
	var limiter httpapi.RateLimiter
	if cfg.Redis.Addr != "" {
		redisClient := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer redisClient.Close()

		if err := redisClient.Ping(ctx); err != nil {
			return fmt.Errorf("redis ping: %w", err)
		}
		store = session.NewRedisStore(redisClient, cfg.Redis.SessionTTL)
		limiter = redisClient
	} else {
		log.Warn("REDIS_ADDR not set, sessions are kept in memory and orders are not rate limited")
	}

	var repo orders.Repository = orders.NewInMemoryRepository()
	if cfg.Database.Enabled() {
		pg, err := storage.NewPostgresStorage(ctx, cfg.Database, log)
		if err != nil {
			return err
		}
		defer pg.Close()

		if err := storage.RunMigrations(ctx, pg.DB(), log); err != nil {
			return err
		}
		repo = pg
	} else {
		log.Warn("DB_HOST not set, orders are kept in memory")
	}

	notifiers := notify.Multi{}
	if cfg.Telegram.Token != "" {
		tg, err := notify.NewTelegramNotifier(cfg.Telegram.Token, cfg.Telegram.ChannelID, log)
		if err != nil {
			return err
		}
		notifiers = append(notifiers, tg)
	}
	if cfg.CRM.BaseURL != "" {
		crm := api.NewClient(cfg.CRM.BaseURL, cfg.CRM.APIKey, cfg.CRM.Timeout, log)
		notifiers = append(notifiers, notify.NewCRMNotifier(crm))
	}
	var notifier orders.Notifier = notify.NopNotifier{}
	if len(notifiers) > 0 {
		notifier = notifiers
	}

	sessions := session.NewService(store, catalog, log)
	orderService := orders.NewService(repo, notifier, sessions, log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := httpapi.NewRouter(httpapi.Deps{
		Sessions:    sessions,
		Orders:      orderService,
		Logger:      log,
		CORSOrigins: cfg.HTTP.CORSOrigins,
		Limiter:     limiter,
		RateLimit:   cfg.Orders.RateLimit,
		RateWindow:  cfg.Orders.RateWindow,
	})

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", zap.String("addr", cfg.HTTP.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	orderService.Wait()

	log.Info("Server shutdown gracefully")
	return nil
}
