// Command server wires high-level dependencies and keeps the lifecycle
// small. Business logic lives in the internal service packages.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"coursehub/internal/audit"
	catalogHandler "coursehub/internal/catalog/handler"
	catalogService "coursehub/internal/catalog/service"
	catalogStore "coursehub/internal/catalog/store"
	courseStore "coursehub/internal/catalog/store/course"
	instructorStore "coursehub/internal/catalog/store/instructor"
	enrollHandler "coursehub/internal/enrollment/handler"
	enrollService "coursehub/internal/enrollment/service"
	enrollStore "coursehub/internal/enrollment/store"
	httpapi "coursehub/internal/http"
	"coursehub/internal/lockout"
	"coursehub/internal/platform/config"
	"coursehub/internal/platform/httpserver"
	"coursehub/internal/platform/logger"
	"coursehub/internal/platform/metrics"
	"coursehub/internal/platform/postgres"
	platformRedis "coursehub/internal/platform/redis"
	"coursehub/internal/token"
	"coursehub/pkg/platform/circuit"
)

func main() {
	log := logger.New()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tokens, err := token.New(cfg.JWTSigningKey, config.TokenTTL)
	if err != nil {
		log.Error("token service init failed", "error", err)
		os.Exit(1)
	}

	m := metrics.New()

	// Catalog stores: postgres when configured, memory otherwise.
	var (
		instructors catalogStore.InstructorStore
		courses     catalogStore.CourseStore
	)
	if cfg.DatabaseURL != "" {
		db, err := postgres.NewDB(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("postgres connection failed", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		instructors = instructorStore.NewPostgres(db)
		courses = courseStore.NewPostgres(db)
	} else {
		log.Warn("DATABASE_URL not set, using in-memory catalog stores")
		instructors = instructorStore.NewMemory()
		courses = courseStore.NewMemory()
	}

	// Enrollment ledger: redis when configured, then postgres, then memory.
	var ledger enrollStore.Ledger
	switch {
	case cfg.Redis.URL != "":
		redisClient, err := platformRedis.New(cfg.Redis)
		if err != nil {
			log.Error("redis connection failed", "error", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		ledger = enrollStore.NewRedis(redisClient.Client)
	case cfg.DatabaseURL != "":
		pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("postgres pool failed", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		ledger = enrollStore.NewPostgres(pool)
	default:
		log.Warn("no durable backend configured, using in-memory enrollment ledger")
		ledger = enrollStore.NewMemory()
	}

	// Audit pipeline: always buffer through the publisher; sink to Kafka when
	// brokers are configured, in-memory otherwise.
	publisher := audit.NewPublisher(1024, log)
	sinks := []audit.Sink{audit.NewInMemoryStore()}
	if cfg.Kafka.Brokers != "" {
		kafkaSink, err := audit.NewKafkaSink(strings.Split(cfg.Kafka.Brokers, ","), cfg.Kafka.AuditTopic)
		if err != nil {
			log.Error("kafka sink init failed", "error", err)
			os.Exit(1)
		}
		defer kafkaSink.Close()
		breaker := circuit.New("audit-kafka",
			circuit.WithFailureThreshold(5),
			circuit.WithSuccessThreshold(2),
		)
		sinks = append(sinks, audit.NewCircuitSink(kafkaSink, breaker, log))
	}
	worker := audit.NewWorker(publisher.Inbox(), log, sinks...)

	catalog, err := catalogService.New(instructors, courses, tokens,
		catalogService.WithLogger(log),
		catalogService.WithMetrics(m),
		catalogService.WithAudit(publisher),
		catalogService.WithLockout(lockout.New()),
	)
	if err != nil {
		log.Error("catalog service init failed", "error", err)
		os.Exit(1)
	}

	enrollment, err := enrollService.New(ledger, catalog,
		enrollService.WithLogger(log),
		enrollService.WithMetrics(m),
		enrollService.WithAudit(publisher),
	)
	if err != nil {
		log.Error("enrollment service init failed", "error", err)
		os.Exit(1)
	}

	router := httpapi.NewRouter(
		catalogHandler.New(catalog, tokens, log),
		enrollHandler.New(enrollment, tokens, log),
		m,
		log,
	)
	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting coursehub", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		if err := worker.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
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
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}
