package eventpublisher

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/ledgercore/internal/domain"
	"github.com/iho/ledgercore/internal/infrastructure/metrics"
	"github.com/iho/ledgercore/internal/usecase"
)

const (
	defaultBufferSize     = 1024
	defaultPublishTimeout = 5 * time.Second
)

// GatewayConfig for Gateway.
type GatewayConfig struct {
	Publisher      Publisher
	TopicPrefix    string
	BufferSize     int           // Queue capacity; events beyond it are dropped
	PublishTimeout time.Duration // Per-message deadline for the transport
	Metrics        *metrics.Metrics
	Logger         zerolog.Logger
}

// Gateway implements usecase.EventGateway on top of a buffered queue
// drained by a single worker.
type Gateway struct {
	publisher      Publisher
	prefix         string
	publishTimeout time.Duration
	metrics        *metrics.Metrics
	logger         zerolog.Logger
	queue          chan domain.Event
}

// NewGateway creates a new Gateway. Call Start to begin delivery.
func NewGateway(cfg GatewayConfig) *Gateway {
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = defaultBufferSize
	}
	if cfg.PublishTimeout <= 0 {
		cfg.PublishTimeout = defaultPublishTimeout
	}

	return &Gateway{
		publisher:      cfg.Publisher,
		prefix:         cfg.TopicPrefix,
		publishTimeout: cfg.PublishTimeout,
		metrics:        cfg.Metrics,
		logger:         cfg.Logger,
		queue:          make(chan domain.Event, cfg.BufferSize),
	}
}

var _ usecase.EventGateway = (*Gateway)(nil)

// PublishAfterCommit enqueues event once uow commits, or immediately when uow is nil.
func (g *Gateway) PublishAfterCommit(ctx context.Context, uow usecase.UnitOfWork, event domain.Event) {
	if uow == nil {
		g.enqueue(event)
		return
	}
	uow.AfterCommit(func(context.Context) {
		g.enqueue(event)
	})
}

// Publish enqueues event immediately.
func (g *Gateway) Publish(_ context.Context, event domain.Event) {
	g.enqueue(event)
}

func (g *Gateway) enqueue(event domain.Event) {
	select {
	case g.queue <- event:
	default:
		if g.metrics != nil {
			g.metrics.EventsDropped.Inc()
		}
		g.logger.Error().
			Str("event_id", event.ID).
			Str("topic", event.Topic).
			Msg("event queue full, dropping event")
	}
}

// Start drains the queue until ctx is cancelled, then flushes what is already queued.
func (g *Gateway) Start(ctx context.Context) error {
	g.logger.Info().Int("buffer_size", cap(g.queue)).Str("topic_prefix", g.prefix).Msg("event gateway started")

	for {
		select {
		case <-ctx.Done():
			g.drain(context.WithoutCancel(ctx))
			g.logger.Info().Msg("event gateway stopped")
			return nil
		case event := <-g.queue:
			g.deliver(ctx, event)
		}
	}
}

func (g *Gateway) drain(ctx context.Context) {
	for {
		select {
		case event := <-g.queue:
			g.deliver(ctx, event)
		default:
			return
		}
	}
}

func (g *Gateway) deliver(ctx context.Context, event domain.Event) {
	msg, err := Encode(g.prefix, event)
	if err != nil {
		g.record(event.Topic, "encode_error")
		g.logger.Error().Err(err).Str("event_id", event.ID).Msg("failed to encode event")
		return
	}

	pubCtx, cancel := context.WithTimeout(ctx, g.publishTimeout)
	defer cancel()

	if err := g.publisher.Publish(pubCtx, msg); err != nil {
		g.record(event.Topic, "error")
		g.logger.Error().Err(err).
			Str("event_id", msg.ID).
			Str("topic", msg.Topic).
			Msg("failed to publish event")
		return
	}

	g.record(event.Topic, "ok")
	g.logger.Debug().Str("event_id", msg.ID).Str("topic", msg.Topic).Msg("event published")
}

func (g *Gateway) record(topic, result string) {
	if g.metrics != nil {
		g.metrics.EventsPublished.WithLabelValues(topic, result).Inc()
	}
}
