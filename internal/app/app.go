// Package app boots the marketplace settings and admission service.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"github.com/vendora/vendora-backend/internal/cache"
	"github.com/vendora/vendora-backend/internal/config"
	"github.com/vendora/vendora-backend/internal/db"
	internalhttp "github.com/vendora/vendora-backend/internal/http"
	"github.com/vendora/vendora-backend/internal/models"
	"github.com/vendora/vendora-backend/internal/security"
	"gorm.io/gorm"
)

// shutdownTimeout bounds graceful HTTP shutdown.
const shutdownTimeout = 10 * time.Second

// RunServer opens the database, prepares the cache client, and serves
// the HTTP API until ctx is cancelled.
func RunServer(ctx context.Context, cfg config.Config) error {
	conn, err := db.Open(cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	if errMigrate := db.Migrate(conn); errMigrate != nil {
		return errMigrate
	}
	if errBootstrap := ensureBootstrapAdmin(ctx, conn, cfg); errBootstrap != nil {
		return errBootstrap
	}

	cacheClient, err := buildCacheClient(ctx, cfg)
	if err != nil {
		return err
	}

	router := internalhttp.NewRouter(internalhttp.RouterConfig{
		DB:          conn,
		Cache:       cacheClient,
		JWTSecret:   cfg.JWTSecret,
		TokenExpiry: cfg.TokenExpiry,
		CacheTTL:    cfg.CacheTTL(),
	})

	server := &http.Server{
		Addr:    cfg.Listen,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("listen", cfg.Listen).Info("http server starting")
		if errServe := server.ListenAndServe(); errServe != nil && !errors.Is(errServe, http.ErrServerClosed) {
			errCh <- errServe
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if errShutdown := server.Shutdown(shutdownCtx); errShutdown != nil {
			return fmt.Errorf("app: shutdown: %w", errShutdown)
		}
		return <-errCh
	case errServe := <-errCh:
		return errServe
	}
}

// buildCacheClient connects to Redis when configured, otherwise falls
// back to the in-process cache. A Redis that is configured but
// unreachable at startup is an error; a degraded cache at runtime is
// handled by the gateway's fallthrough.
func buildCacheClient(ctx context.Context, cfg config.Config) (cache.Client, error) {
	if cfg.Redis.Addr == "" {
		log.Info("no redis configured, using in-process settings cache")
		return cache.NewMemoryClient(), nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if errPing := rdb.Ping(pingCtx).Err(); errPing != nil {
		return nil, fmt.Errorf("app: redis ping: %w", errPing)
	}
	log.WithField("addr", cfg.Redis.Addr).Info("redis settings cache connected")
	return cache.NewRedisClient(rdb), nil
}

// ensureBootstrapAdmin creates the configured admin account when no
// account with that username exists yet.
func ensureBootstrapAdmin(ctx context.Context, conn *gorm.DB, cfg config.Config) error {
	if cfg.BootstrapAdminUsername == "" || cfg.BootstrapAdminPassword == "" {
		return nil
	}

	var count int64
	if errCount := conn.WithContext(ctx).Model(&models.Admin{}).
		Where("username = ?", cfg.BootstrapAdminUsername).Count(&count).Error; errCount != nil {
		return fmt.Errorf("app: count admins: %w", errCount)
	}
	if count > 0 {
		return nil
	}

	hash, errHash := security.HashPassword(cfg.BootstrapAdminPassword)
	if errHash != nil {
		return fmt.Errorf("app: hash bootstrap password: %w", errHash)
	}
	admin := models.Admin{
		Username: cfg.BootstrapAdminUsername,
		Password: hash,
		Active:   true,
	}
	if errCreate := conn.WithContext(ctx).Create(&admin).Error; errCreate != nil {
		return fmt.Errorf("app: create bootstrap admin: %w", errCreate)
	}
	log.WithField("username", cfg.BootstrapAdminUsername).Info("bootstrap admin created")
	return nil
}
