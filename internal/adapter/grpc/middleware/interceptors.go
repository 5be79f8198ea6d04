package middleware

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	grpcErrors "github.com/iho/ledgercore/internal/adapter/grpc/errors"
	"github.com/iho/ledgercore/internal/infrastructure/metrics"
)

// RecoveryInterceptor turns handler panics into Internal errors.
func RecoveryInterceptor(logger zerolog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error().
					Interface("panic", r).
					Str("method", info.FullMethod).
					Bytes("stack", debug.Stack()).
					Msg("panic recovered")
				resp = nil
				err = status.Error(codes.Internal, grpcErrors.InternalMessage)
			}
		}()

		return handler(ctx, req)
	}
}

// LoggingInterceptor emits one line per call.
func LoggingInterceptor(logger zerolog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		code := status.Code(err)

		event := logger.Info()
		switch code {
		case codes.OK:
		case codes.Internal, codes.Unknown, codes.DataLoss:
			event = logger.Error()
		default:
			event = logger.Warn()
		}

		event.
			Str("method", info.FullMethod).
			Str("code", code.String()).
			Dur("duration", time.Since(start)).
			Msg("grpc request")

		return resp, err
	}
}

// MetricsInterceptor counts calls by method and status code and observes their latency.
func MetricsInterceptor(m *metrics.Metrics) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		m.GRPCRequests.WithLabelValues(info.FullMethod, status.Code(err).String()).Inc()
		m.GRPCDuration.WithLabelValues(info.FullMethod).Observe(time.Since(start).Seconds())

		return resp, err
	}
}
