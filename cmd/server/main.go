package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"callgate/internal/accounts"
	"callgate/internal/admintoken"
	"callgate/internal/discovery"
	"callgate/internal/emergency"
	"callgate/internal/emergency/extphone"
	emergencymetrics "callgate/internal/emergency/metrics"
	"callgate/internal/platform/config"
	"callgate/internal/platform/httpserver"
	"callgate/internal/platform/logger"
	platformmetrics "callgate/internal/platform/metrics"
	platformredis "callgate/internal/platform/redis"
	"callgate/internal/routing"
	routingmetrics "callgate/internal/routing/metrics"
	httptransport "callgate/internal/transport/http"
	"callgate/pkg/platform/audit"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Registry store: postgres when configured, redis next, memory otherwise.
	var store accounts.Store = accounts.NewInMemoryStore()
	healthChecks := map[string]func(context.Context) error{}

	if cfg.Postgres.DSN != "" {
		pool, err := pgxpool.New(ctx, cfg.Postgres.DSN)
		if err != nil {
			log.Error("postgres connect failed", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		store = accounts.NewPostgresStore(pool)
		healthChecks["postgres"] = pool.Ping
	} else if cfg.Redis.URL != "" {
		redisClient, err := platformredis.New(cfg.Redis)
		if err != nil {
			log.Error("redis connect failed", "error", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		store = accounts.NewRedisStore(redisClient.Client)
		healthChecks["redis"] = redisClient.Health
	}

	registry, err := accounts.NewService(store, accounts.WithLogger(log))
	if err != nil {
		log.Error("account service init failed", "error", err)
		os.Exit(1)
	}

	// Audit sink: kafka behind a buffered worker when brokers are
	// configured, memory otherwise.
	var auditStore audit.Store = audit.NewInMemoryStore()
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaStore, err := audit.NewKafkaStore(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			log.Error("kafka connect failed", "error", err)
			os.Exit(1)
		}
		defer kafkaStore.Close()

		buffer := audit.NewBuffer(256)
		worker := audit.NewWorker(kafkaStore, buffer.Inbox(), log)
		go func() {
			if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("audit worker stopped", "error", err)
			}
		}()
		auditStore = buffer
	}
	auditor := audit.NewPublisher(auditStore)

	// Classification authority: extphone when configured, otherwise every
	// emergency query resolves to the safe negative.
	var classifier emergency.Classifier = emergency.Unavailable{}
	if cfg.AuthorityURL != "" {
		authority := extphone.New(cfg.AuthorityURL, extphone.WithTimeout(cfg.AuthorityTimeout))
		classifier = authority
		healthChecks[extphone.ServiceName] = authority.Health
	}
	proxy := emergency.NewProxy(classifier,
		emergency.WithLogger(log),
		emergency.WithMetrics(emergencymetrics.New()),
	)

	router := routing.NewService(registry, proxy,
		routing.WithLogger(log),
		routing.WithMetrics(routingmetrics.New()),
		routing.WithAudit(auditor),
	)

	// Component discovery: the registry doubles as the installed-component
	// index; the packaged allow-list decides what may be chosen per role.
	var resolver *discovery.Resolver
	if allowList, err := discovery.LoadAllowList(cfg.AllowListPath); err != nil {
		log.Warn("component allow-list unavailable, discovery disabled",
			"path", cfg.AllowListPath, "error", err)
	} else {
		resolver = discovery.NewResolver(discovery.NewRegistryCandidates(registry), allowList,
			discovery.WithLogger(log))
	}

	tokens := admintoken.NewService(cfg.JWTSigningKey, "callgate", "callgate-admin")
	metrics := platformmetrics.New()

	handler := httptransport.NewRouter(httptransport.Dependencies{
		Accounts:  httptransport.NewAccountsHandler(router, registry, log, metrics, auditor),
		Emergency: httptransport.NewEmergencyHandler(router, log),
		Logger:    log,
		Discovery: discoveryHandler(resolver, log),
		Validator: tokens,
		Health: func() map[string]string {
			status := make(map[string]string, len(healthChecks))
			checkCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			for name, check := range healthChecks {
				if err := check(checkCtx); err != nil {
					status[name] = "down"
				} else {
					status[name] = "up"
				}
			}
			return status
		},
	})

	srv := httpserver.New(cfg.Addr, handler)

	log.Info("starting callgate", "addr", cfg.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}

func discoveryHandler(resolver *discovery.Resolver, log *slog.Logger) *httptransport.DiscoveryHandler {
	if resolver == nil {
		return nil
	}
	return httptransport.NewDiscoveryHandler(resolver, log)
}
