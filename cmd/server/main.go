// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal packages.
package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"feria/internal/audit"
	auditpg "feria/internal/audit/store/postgres"
	"feria/internal/identity"
	"feria/internal/jwttoken"
	"feria/internal/listing"
	liststore "feria/internal/listing/store"
	"feria/internal/platform/config"
	"feria/internal/platform/httpserver"
	"feria/internal/platform/kafka"
	"feria/internal/platform/logger"
	"feria/internal/platform/metrics"
	"feria/internal/platform/redis"
	httptransport "feria/internal/transport/http"
	"feria/internal/user"
	userstore "feria/internal/user/store"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	policy, err := identity.ParsePolicy(cfg.ProvisionPolicy)
	if err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	m := metrics.New()

	// Stores: Postgres when configured, in-memory for local development.
	var (
		users    user.Store
		listings listing.Store
		db       *sql.DB
	)
	if cfg.DatabaseURL != "" {
		db, err = sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Error("open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			log.Error("ping database", "error", err)
			os.Exit(1)
		}
		users = userstore.NewPostgres(db)
		listings = liststore.NewPostgres(db)
	} else {
		log.Warn("DATABASE_URL not set, using in-memory stores")
		users = userstore.NewMemory()
		listings = liststore.NewMemory()
	}

	// Optional subject cache.
	var cache identity.SubjectCache = identity.NopCache{}
	redisClient, err := redis.New(cfg.Redis)
	if err != nil {
		log.Error("connect redis", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		cache = identity.NewRedisSubjectCache(redisClient.Client, 15*time.Minute)
	}

	// Audit pipeline: Kafka when brokers are configured, otherwise the
	// Postgres outbox, otherwise the structured log.
	recorder := audit.NewChannelRecorder(256, log)
	var sink audit.Sink
	switch {
	case len(cfg.KafkaBrokers) > 0:
		publisher, err := kafka.NewPublisher(ctx, cfg.KafkaBrokers, cfg.KafkaAuditTopic)
		if err != nil {
			log.Error("connect kafka", "error", err)
			os.Exit(1)
		}
		defer publisher.Close()
		sink = publisher
	case db != nil:
		sink = auditpg.New(db)
	default:
		sink = audit.NewLogSink(log)
	}
	worker := audit.NewWorker(sink, recorder.Events(), log)

	jwtService := jwttoken.NewService(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.JWTAudience)
	userService := user.NewService(users, recorder, m, log)
	listingService := listing.NewService(listings, userService, recorder, m, log)

	gateway := identity.NewGateway(jwttoken.NewServiceAdapter(jwtService), userService, cache, policy, log)

	handler := httptransport.NewHandler(userService, listingService, log)
	router := httptransport.NewRouter(handler, gateway, m, log)
	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting feria api",
		"addr", cfg.Addr,
		"provision_policy", policy.String(),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
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
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}
