// Command server runs the record anchoring service: fingerprinting and
// anchoring of medical records, streak rewards for uploading doctors, and the
// health-pass codec, all behind one HTTP API.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"healthanchor/internal/anchor"
	anchormetrics "healthanchor/internal/anchor/metrics"
	anchorservice "healthanchor/internal/anchor/service"
	anchormemory "healthanchor/internal/anchor/store/memory"
	anchorpostgres "healthanchor/internal/anchor/store/postgres"
	"healthanchor/internal/audit"
	"healthanchor/internal/platform/config"
	"healthanchor/internal/platform/httpserver"
	"healthanchor/internal/platform/logger"
	"healthanchor/internal/platform/metrics"
	platformredis "healthanchor/internal/platform/redis"
	"healthanchor/internal/streak"
	streakmetrics "healthanchor/internal/streak/metrics"
	streakservice "healthanchor/internal/streak/service"
	streakmemory "healthanchor/internal/streak/store/memory"
	streakredis "healthanchor/internal/streak/store/redis"
	httptransport "healthanchor/internal/transport/http"
)

const (
	auditBuffer     = 256
	shutdownTimeout = 10 * time.Second
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	anchorStore, cleanup, err := buildAnchorStore(ctx, cfg)
	if err != nil {
		log.Error("anchor store init failed", "error", err.Error())
		os.Exit(1)
	}
	defer cleanup()

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis init failed", "error", err.Error())
		os.Exit(1)
	}
	var streakStore streak.Store = streakmemory.New()
	var healthDeps []httptransport.HealthChecker
	if redisClient != nil {
		defer redisClient.Close()
		streakStore = streakredis.New(redisClient.Client)
		healthDeps = append(healthDeps, redisClient)
		log.Info("using redis streak store")
	}

	sink, sinkCleanup, err := buildAuditSink(cfg, log)
	if err != nil {
		log.Error("audit sink init failed", "error", err.Error())
		os.Exit(1)
	}
	defer sinkCleanup()
	auditor := audit.NewPublisher(auditBuffer, log)
	worker := audit.NewWorker(sink, auditor.Events(), log)

	anchors := anchorservice.NewService(
		anchorStore,
		auditor,
		anchormetrics.New(),
		log,
		cfg.IssuerPlaceholder,
		cfg.WalletPlaceholder,
	)
	streaks := streakservice.NewService(streakStore, auditor, streakmetrics.New(), log)

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:          log,
		Metrics:         m,
		IssuerJWTSecret: cfg.IssuerJWTSecret,
		Anchors:         anchors,
		Streaks:         streaks,
		HealthDeps:      healthDeps,
	})
	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return worker.Run(gctx)
	})
	g.Go(func() error {
		log.Info("starting healthanchor", "addr", cfg.Addr, "anchor_store", cfg.AnchorStore)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("server exited", "error", err.Error())
		os.Exit(1)
	}
	log.Info("shutdown complete")
}

func buildAnchorStore(ctx context.Context, cfg config.Server) (anchor.Store, func(), error) {
	switch cfg.AnchorStore {
	case "postgres":
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		store := anchorpostgres.New(db)
		if err := store.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return store, func() { db.Close() }, nil
	default:
		return anchormemory.New(), func() {}, nil
	}
}

func buildAuditSink(cfg config.Server, log *slog.Logger) (audit.Sink, func(), error) {
	if len(cfg.KafkaBrokers) == 0 {
		return audit.NewInMemoryStore(), func() {}, nil
	}
	sink, err := audit.NewKafkaSink(cfg.KafkaBrokers, cfg.AuditTopic)
	if err != nil {
		return nil, nil, err
	}
	log.Info("using kafka audit sink", "topic", cfg.AuditTopic)
	return sink, func() { sink.Close() }, nil
}
