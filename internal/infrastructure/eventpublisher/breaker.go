package eventpublisher

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
)

// BreakerConfig tunes BreakerPublisher.
type BreakerConfig struct {
	Name                string
	ConsecutiveFailures uint32        // Failures in a row that open the breaker
	OpenTimeout         time.Duration // Time spent open before probing again
	HalfOpenRequests    uint32
}

// BreakerPublisher short-circuits a failing transport.
type BreakerPublisher struct {
	next Publisher
	cb   *gobreaker.CircuitBreaker
}

// NewBreakerPublisher wraps next with a circuit breaker.
func NewBreakerPublisher(next Publisher, cfg BreakerConfig, logger zerolog.Logger) *BreakerPublisher {
	if cfg.Name == "" {
		cfg.Name = "events"
	}
	if cfg.ConsecutiveFailures == 0 {
		cfg.ConsecutiveFailures = 5
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 30 * time.Second
	}
	if cfg.HalfOpenRequests == 0 {
		cfg.HalfOpenRequests = 1
	}

	threshold := cfg.ConsecutiveFailures
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.HalfOpenRequests,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).
				Msg("event transport breaker changed state")
		},
	})

	return &BreakerPublisher{next: next, cb: cb}
}

// Publish forwards msg unless the breaker is open.
func (p *BreakerPublisher) Publish(ctx context.Context, msg Message) error {
	_, err := p.cb.Execute(func() (interface{}, error) {
		return nil, p.next.Publish(ctx, msg)
	})
	return err
}

// State reports the breaker state.
func (p *BreakerPublisher) State() gobreaker.State {
	return p.cb.State()
}
