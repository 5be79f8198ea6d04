package main

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/iho/ledgercore/internal/infrastructure/config"
	"github.com/iho/ledgercore/internal/infrastructure/eventpublisher"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv("STORAGE_DRIVER", config.DriverMemory)
	t.Setenv("GRPC_PORT", "0")
	t.Setenv("HTTP_PORT", "0")
	t.Setenv("SHUTDOWN_TIMEOUT", "2s")

	cfg, err := config.LoadFile(t.TempDir() + "/missing.env")
	require.NoError(t, err)
	return cfg
}

func TestRunStopsOnCancel(t *testing.T) {
	cfg := testConfig(t)
	reg := prometheus.NewRegistry()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- run(ctx, cfg, zerolog.Nop(), reg, reg) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after cancel")
	}
}

func TestRunFailsOnUnreachableRedis(t *testing.T) {
	cfg := testConfig(t)
	cfg.RedisURL = "redis://127.0.0.1:1/0"
	reg := prometheus.NewRegistry()

	err := run(context.Background(), cfg, zerolog.Nop(), reg, reg)
	require.ErrorContains(t, err, "connect to redis")
}

func TestBuildPublisher(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := testConfig(t)

	cfg.EventsTransport = config.TransportLog
	pub, closeFn, err := buildPublisher(cfg, nil, zerolog.Nop())
	require.NoError(t, err)
	require.IsType(t, &eventpublisher.LogPublisher{}, pub)
	closeFn()

	cfg.EventsTransport = config.TransportRedis
	pub, closeFn, err = buildPublisher(cfg, client, zerolog.Nop())
	require.NoError(t, err)
	require.IsType(t, &eventpublisher.BreakerPublisher{}, pub)
	closeFn()

	_, _, err = buildPublisher(cfg, nil, zerolog.Nop())
	require.Error(t, err)

	cfg.EventsTransport = "kafka"
	_, _, err = buildPublisher(cfg, nil, zerolog.Nop())
	require.ErrorContains(t, err, "unknown events transport")
}

func TestOpenStorageRejectsUnknownDriver(t *testing.T) {
	cfg := testConfig(t)
	cfg.StorageDriver = "sqlite"

	_, err := openStorage(context.Background(), cfg, zerolog.Nop())
	require.ErrorContains(t, err, "unknown storage driver")
}
