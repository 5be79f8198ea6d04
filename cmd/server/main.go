package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	grpcServer "github.com/iho/ledgercore/internal/adapter/grpc/server"
	httpAdapter "github.com/iho/ledgercore/internal/adapter/http"
	"github.com/iho/ledgercore/internal/adapter/http/handler"
	apimiddleware "github.com/iho/ledgercore/internal/adapter/http/middleware"
	"github.com/iho/ledgercore/internal/adapter/repository/memory"
	postgresRepo "github.com/iho/ledgercore/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/ledgercore/internal/adapter/repository/redis"
	"github.com/iho/ledgercore/internal/infrastructure/config"
	"github.com/iho/ledgercore/internal/infrastructure/eventpublisher"
	"github.com/iho/ledgercore/internal/infrastructure/logger"
	"github.com/iho/ledgercore/internal/infrastructure/metrics"
	"github.com/iho/ledgercore/internal/infrastructure/postgres"
	"github.com/iho/ledgercore/internal/infrastructure/redis"
	"github.com/iho/ledgercore/internal/usecase"
)

const serviceName = "ledgercore"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	l := logger.New(logger.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: serviceName,
	})
	logger.SetGlobal(l)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, l, prometheus.DefaultRegisterer, prometheus.DefaultGatherer); err != nil {
		log.Error().Err(err).Msg("server exited with error")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}

// storage bundles the repositories of one storage driver.
type storage struct {
	txManager    usecase.TxManager
	accounts     usecase.AccountRepository
	transactions usecase.TransactionRepository
	entries      usecase.EntryRepository
	ledger       usecase.LedgerRepository
	ping         handler.Pinger
	close        func()
}

// run wires the service and blocks until ctx is cancelled or a server fails.
func run(ctx context.Context, cfg *config.Config, l zerolog.Logger, reg prometheus.Registerer, gatherer prometheus.Gatherer) error {
	store, err := openStorage(ctx, cfg, l)
	if err != nil {
		return err
	}
	defer store.close()

	var redisClient *goredis.Client
	if cfg.RedisURL != "" {
		redisClient, err = redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		defer redisClient.Close()
		l.Info().Msg("connected to redis")
	}

	var cache usecase.BalanceCache
	if redisClient != nil && cfg.BalanceCacheTTL > 0 {
		cache = redisRepo.NewBalanceCache(redisClient, cfg.BalanceCacheTTL)
	}

	publisher, closePublisher, err := buildPublisher(cfg, redisClient, l)
	if err != nil {
		return err
	}
	defer closePublisher()

	m := metrics.NewWithRegisterer(reg)
	gateway := eventpublisher.NewGateway(eventpublisher.GatewayConfig{
		Publisher:   publisher,
		TopicPrefix: cfg.EventsTopicPrefix,
		BufferSize:  cfg.EventsBufferSize,
		Metrics:     m,
		Logger:      l.With().Str("component", "events").Logger(),
	})

	// Use cases
	idGen := postgresRepo.NewUUIDGenerator()
	eventIDGen := postgresRepo.NewULIDGenerator()

	accountUC := usecase.NewAccountUseCase(usecase.AccountConfig{
		TxManager:   store.txManager,
		AccountRepo: store.accounts,
		Events:      gateway,
		Cache:       cache,
		IDGen:       idGen,
		EventIDGen:  eventIDGen,
		Metrics:     m,
		Logger:      l,
	})
	postingUC := usecase.NewPostingUseCase(usecase.PostingConfig{
		TxManager:       store.txManager,
		AccountRepo:     store.accounts,
		TransactionRepo: store.transactions,
		EntryRepo:       store.entries,
		Events:          gateway,
		Cache:           cache,
		Retrier: postgresRepo.NewRetrier(postgresRepo.RetrierConfig{
			MaxRetries:      cfg.PostingMaxRetries,
			InitialInterval: cfg.PostingRetryInitial,
			MaxInterval:     cfg.PostingRetryMax,
		}, l),
		IDGen:      idGen,
		EventIDGen: eventIDGen,
		Metrics:    m,
		Logger:     l,
		Timeout:    cfg.PostingTimeout,
	})
	historyUC := usecase.NewEntryUseCase(store.entries)
	reconciliationUC := usecase.NewReconciliationUseCase(store.ledger, l)

	// gRPC
	grpcSrv := grpcServer.NewGRPCServer(grpcServer.NewLedgerServer(accountUC, postingUC, historyUC, l), m, l)
	grpcLis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		return fmt.Errorf("listen grpc: %w", err)
	}

	// HTTP
	checks := map[string]handler.Pinger{cfg.StorageDriver: store.ping}
	if redisClient != nil {
		checks["redis"] = handler.PingerFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	}

	var limiter *apimiddleware.RateLimiter
	if cfg.RateLimitRPS > 0 && cfg.RateLimitBurst > 0 {
		limiter = apimiddleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:     handler.NewAccountHandler(accountUC),
		TransactionHandler: handler.NewTransactionHandler(postingUC),
		EntryHandler:       handler.NewEntryHandler(historyUC),
		LedgerHandler:      handler.NewLedgerHandler(reconciliationUC),
		HealthHandler:      handler.NewHealthHandler(checks),
		RateLimiter:        limiter,
		MetricsHandler:     promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}),
		Logger:             l.With().Str("component", "http").Logger(),
	})
	httpSrv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// The gateway outlives the servers so events of in-flight requests are flushed.
	gatewayCtx, stopGateway := context.WithCancel(context.WithoutCancel(ctx))
	defer stopGateway()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return gateway.Start(gatewayCtx)
	})

	g.Go(func() error {
		l.Info().Str("port", cfg.GRPCPort).Msg("starting grpc server")
		if err := grpcSrv.Serve(grpcLis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("grpc server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		l.Info().Str("port", cfg.HTTPPort).Msg("starting http server")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	if limiter != nil {
		g.Go(func() error {
			ticker := time.NewTicker(time.Minute)
			defer ticker.Stop()
			for {
				select {
				case <-gctx.Done():
					return nil
				case <-ticker.C:
					limiter.CleanupLimiters(10 * time.Minute)
				}
			}
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		l.Info().Msg("shutting down servers")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownTimeout)
		defer cancel()

		stopped := make(chan struct{})
		go func() {
			grpcSrv.GracefulStop()
			close(stopped)
		}()

		err := httpSrv.Shutdown(shutdownCtx)

		select {
		case <-stopped:
		case <-shutdownCtx.Done():
			grpcSrv.Stop()
		}

		stopGateway()
		return err
	})

	return g.Wait()
}

// openStorage connects the configured storage driver.
func openStorage(ctx context.Context, cfg *config.Config, l zerolog.Logger) (*storage, error) {
	switch cfg.StorageDriver {
	case config.DriverMemory:
		store := memory.NewStore()
		l.Warn().Msg("using in-memory storage; data is lost on restart")
		return &storage{
			txManager:    store,
			accounts:     memory.NewAccountRepository(store),
			transactions: memory.NewTransactionRepository(store),
			entries:      memory.NewEntryRepository(store),
			ledger:       memory.NewLedgerRepository(store),
			close:        func() {},
		}, nil

	case config.DriverPostgres:
		connectCtx, cancel := context.WithTimeout(ctx, cfg.DatabaseTimeout)
		defer cancel()

		pool, err := postgres.NewPool(connectCtx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		l.Info().Msg("connected to postgres")

		if cfg.DatabaseMigrate {
			if err := postgres.RunMigrations(cfg.DatabaseURL); err != nil {
				pool.Close()
				return nil, err
			}
		}

		return &storage{
			txManager:    postgresRepo.NewTxManager(pool),
			accounts:     postgresRepo.NewAccountRepository(pool),
			transactions: postgresRepo.NewTransactionRepository(),
			entries:      postgresRepo.NewEntryRepository(pool),
			ledger:       postgresRepo.NewLedgerRepository(pool),
			ping:         pool,
			close:        pool.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

// buildPublisher selects the event transport. Broker transports are wrapped in
// a circuit breaker.
func buildPublisher(cfg *config.Config, redisClient *goredis.Client, l zerolog.Logger) (eventpublisher.Publisher, func(), error) {
	breaker := eventpublisher.BreakerConfig{
		Name:                cfg.EventsTransport,
		ConsecutiveFailures: cfg.EventsBreakerFailures,
		OpenTimeout:         cfg.EventsBreakerTimeout,
	}

	switch cfg.EventsTransport {
	case config.TransportLog:
		return eventpublisher.NewLogPublisher(l), func() {}, nil

	case config.TransportRedis:
		if redisClient == nil {
			return nil, nil, errors.New("redis event transport requires REDIS_URL")
		}
		stream := eventpublisher.NewRedisStreamPublisher(redisClient, cfg.EventsStreamMaxLen)
		return eventpublisher.NewBreakerPublisher(stream, breaker, l), func() {}, nil

	case config.TransportAMQP:
		amqpPub, err := eventpublisher.DialAMQP(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := amqpPub.Close(); err != nil {
				l.Warn().Err(err).Msg("close amqp publisher")
			}
		}
		return eventpublisher.NewBreakerPublisher(amqpPub, breaker, l), closeFn, nil

	default:
		return nil, nil, fmt.Errorf("unknown events transport %q", cfg.EventsTransport)
	}
}
