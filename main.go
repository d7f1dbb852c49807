package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"time"

	_ "github.com/go-sql-driver/mysql"
	goredis "github.com/redis/go-redis/v9"

	"example.com/cart-sync/internal/infra/inventory"
	"example.com/cart-sync/internal/infra/notify"
	memorystore "example.com/cart-sync/internal/infra/persistence/memory"
	mysqlstore "example.com/cart-sync/internal/infra/persistence/mysql"
	redisstore "example.com/cart-sync/internal/infra/persistence/redis"
	apihttp "example.com/cart-sync/internal/interface/http"
	cartuc "example.com/cart-sync/internal/usecase/cart"
	"example.com/cart-sync/pkg/config"
	"example.com/cart-sync/pkg/logger"
	"example.com/cart-sync/pkg/shutdown"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Service: "cart-sync",
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
	})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	snapshots, cleanup, err := buildSnapshotStore(ctx, cfg)
	if err != nil {
		log.Error("snapshot backend init failed", "backend", cfg.SnapshotBackend, "error", err)
		os.Exit(1)
	}
	defer cleanup()

	inventoryClient := inventory.NewClient(cfg.InventoryBaseURL, cfg.RemoteTimeout)
	notifier := notify.NewSlogNotifier(log)

	cartStore := cartuc.NewStore(ctx, inventoryClient, snapshots, notifier, log, cartuc.Options{
		Policy:        cartuc.Policy(cfg.StockPolicy),
		RemoteTimeout: cfg.RemoteTimeout,
	})

	api := apihttp.NewAPI(cartStore)
	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: api.Router(),
	}

	go func() {
		log.Info("http server listening", "addr", cfg.HTTPAddr, "policy", cfg.StockPolicy)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Error("http server error", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("http server shutdown failed", "error", err)
	}
	log.Info("http server stopped")
}

func buildSnapshotStore(ctx context.Context, cfg config.Config) (cartuc.SnapshotStore, func(), error) {
	switch cfg.SnapshotBackend {
	case "redis":
		client := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, nil, err
		}
		return redisstore.NewStore(client), func() { _ = client.Close() }, nil
	case "mysql":
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			return nil, nil, err
		}
		db.SetMaxOpenConns(10)
		db.SetConnMaxLifetime(5 * time.Minute)
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return mysqlstore.NewStore(db), func() { _ = db.Close() }, nil
	default:
		return memorystore.NewStore(), func() {}, nil
	}
}
