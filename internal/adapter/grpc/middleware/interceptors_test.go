package middleware

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/iho/ledgercore/internal/infrastructure/metrics"
)

var testInfo = &grpc.UnaryServerInfo{FullMethod: "/ledger.v1.LedgerService/PostTransaction"}

func TestRecoveryInterceptor(t *testing.T) {
	var buf bytes.Buffer
	interceptor := RecoveryInterceptor(zerolog.New(&buf))

	_, err := interceptor(context.Background(), nil, testInfo, func(context.Context, any) (any, error) {
		panic("boom")
	})

	if status.Code(err) != codes.Internal {
		t.Fatalf("expected Internal, got %v", err)
	}
	if !strings.Contains(buf.String(), "panic recovered") || !strings.Contains(buf.String(), "stack") {
		t.Fatalf("expected panic log with stack, got %q", buf.String())
	}
}

func TestLoggingInterceptor(t *testing.T) {
	var buf bytes.Buffer
	interceptor := LoggingInterceptor(zerolog.New(&buf))

	_, err := interceptor(context.Background(), nil, testInfo, func(context.Context, any) (any, error) {
		return nil, status.Error(codes.FailedPrecondition, "insufficient funds")
	})
	if status.Code(err) != codes.FailedPrecondition {
		t.Fatalf("expected error to pass through, got %v", err)
	}

	line := buf.String()
	if strings.Count(line, "\n") != 1 {
		t.Fatalf("expected exactly one log line, got %q", line)
	}
	if !strings.Contains(line, `"level":"warn"`) || !strings.Contains(line, "FailedPrecondition") {
		t.Fatalf("unexpected log line: %q", line)
	}
}

func TestMetricsInterceptor(t *testing.T) {
	m := metrics.NewWithRegisterer(prometheus.NewRegistry())
	interceptor := MetricsInterceptor(m)

	for i := 0; i < 2; i++ {
		_, _ = interceptor(context.Background(), nil, testInfo, func(context.Context, any) (any, error) {
			return "ok", nil
		})
	}

	if got := testutil.ToFloat64(m.GRPCRequests.WithLabelValues(testInfo.FullMethod, "OK")); got != 2 {
		t.Fatalf("expected 2 OK requests, got %v", got)
	}
}
