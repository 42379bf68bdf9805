package metrics

import (
	"context"
	"log/slog"
	"time"
)

// SizeSource reports the number of in-memory identities
type SizeSource interface {
	Len() int
}

// Pinger checks the durable repository
type Pinger interface {
	Ping(ctx context.Context) error
}

// Sampler periodically refreshes gauges that have no natural update point
type Sampler struct {
	metrics  *Metrics
	index    SizeSource
	storage  Pinger
	logger   *slog.Logger
	interval time.Duration
	done     chan struct{}
}

// NewSampler creates a new gauge sampler worker
func NewSampler(m *Metrics, index SizeSource, storage Pinger, logger *slog.Logger, interval time.Duration) *Sampler {
	if interval == 0 {
		interval = 15 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Sampler{
		metrics:  m,
		index:    index,
		storage:  storage,
		logger:   logger,
		interval: interval,
		done:     make(chan struct{}),
	}
}

// Start samples once immediately and then on every tick until ctx is done or Stop is called
func (s *Sampler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Debug("metrics sampler started", "interval", s.interval)
	s.sample(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("metrics sampler stopped")
			return
		case <-s.done:
			s.logger.Debug("metrics sampler stopped")
			return
		case <-ticker.C:
			s.sample(ctx)
		}
	}
}

// Stop gracefully shuts down the sampler
func (s *Sampler) Stop() {
	close(s.done)
}

func (s *Sampler) sample(ctx context.Context) {
	s.metrics.SetIndexSize(s.index.Len())

	if s.storage == nil {
		return
	}

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := s.storage.Ping(pingCtx); err != nil {
		s.logger.Warn("storage ping failed", "error", err)
		s.metrics.SetStorageUp(false)
		return
	}
	s.metrics.SetStorageUp(true)
}
