package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"claimflow/internal/awards"
	claimhandler "claimflow/internal/claim/handler"
	"claimflow/internal/claim/service"
	claimstore "claimflow/internal/claim/store"
	"claimflow/internal/eligibility"
	"claimflow/internal/eligibility/earlycareer"
	"claimflow/internal/eligibility/levellingup"
	"claimflow/internal/eligibility/studentloans"
	"claimflow/internal/journey"
	journeystore "claimflow/internal/journey/store"
	"claimflow/internal/platform/config"
	"claimflow/internal/platform/httpserver"
	"claimflow/internal/platform/logger"
	"claimflow/internal/platform/metrics"
	platformredis "claimflow/internal/platform/redis"
	httptransport "claimflow/internal/transport/http"
	"claimflow/internal/verify"
	verifyhandler "claimflow/internal/verify/handler"
	"claimflow/internal/verify/notify"
	"claimflow/migrations"
	"claimflow/pkg/domain"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps
// the server lifecycle small. Business logic lives in internal services.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	claimYear := domain.AcademicYearAt(time.Now())
	if cfg.ClaimYear != "" {
		parsed, err := domain.ParseAcademicYear(cfg.ClaimYear)
		if err != nil {
			log.Fatalf("CLAIMFLOW_CLAIM_YEAR: %v", err)
		}
		claimYear = parsed
	}

	health := map[string]httptransport.HealthCheck{}

	// Storage. Postgres when configured, in-memory for local development.
	var (
		claims     claimstore.Store
		awardTable awards.Lookup
	)
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("open postgres: %v", err)
		}
		defer db.Close()
		if err := db.PingContext(context.Background()); err != nil {
			log.Fatalf("postgres ping failed: %v", err)
		}
		if err := migrations.Apply(context.Background(), db); err != nil {
			log.Fatalf("apply migrations: %v", err)
		}
		claims = claimstore.NewPostgres(db)
		awardTable = awards.NewPostgres(db)
		health["postgres"] = db.PingContext
	} else {
		log.Printf("no CLAIMFLOW_DATABASE_URL, using in-memory stores")
		claims = claimstore.NewMemory()
		awardTable = awards.NewMemory()
	}

	// Journey page state. Redis when configured, in-memory otherwise.
	var completed journeystore.CompletedStore
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Fatalf("connect redis: %v", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
		completed = journeystore.NewRedis(redisClient.Client, cfg.SessionTTL)
		health["redis"] = redisClient.Health
	} else {
		log.Printf("no CLAIMFLOW_REDIS_URL, journey state is in-memory")
		completed = journeystore.NewMemory()
	}

	// Verification event stream. Absent brokers keep events in-process.
	var notifier notify.Notifier = notify.NewMemory()
	if len(cfg.Kafka.Brokers) > 0 {
		kafka, err := notify.NewKafka(cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
		if err != nil {
			log.Fatalf("connect kafka: %v", err)
		}
		defer kafka.Close()
		if err := kafka.EnsureTopic(context.Background()); err != nil {
			log.Fatalf("kafka topic: %v", err)
		}
		notifier = kafka
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	checkers, err := eligibility.NewRegistry(
		studentloans.New(),
		earlycareer.New(),
		levellingup.New(awardTable, claimYear),
	)
	if err != nil {
		log.Fatalf("eligibility registry: %v", err)
	}
	pages, err := journey.NewRegistry(checkers)
	if err != nil {
		log.Fatalf("page registry: %v", err)
	}

	claimService, err := service.New(claims, completed, checkers, pages, awardTable, m, log)
	if err != nil {
		log.Fatalf("claim service: %v", err)
	}
	verifier, err := verify.NewVerifier(claims, notifier, m, log)
	if err != nil {
		log.Fatalf("verifier: %v", err)
	}

	router := httptransport.NewRouter(log, registry, health,
		claimhandler.New(claimService, log),
		verifyhandler.New(claimService, verifier, log),
	)
	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("starting claimflow on %s (claim year %s)", cfg.Addr, claimYear)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
