package reconciler

import (
	"context"
	"time"

	"github.com/tanvir-rahman/skillshare-backend/internal/cache"
	"github.com/tanvir-rahman/skillshare-backend/internal/repositories"
	"go.uber.org/zap"
)

// Config controls the reconciliation loop.
type Config struct {
	Interval time.Duration
	TopN     int64
}

// Reconciler periodically re-derives hot counters from relation cardinality,
// repairing any drift between the persisted counter columns, the redis cache
// and the true relation set.
type Reconciler struct {
	counters cache.CounterCache
	repo     repositories.CounterRepository
	cfg      Config
	logger   *zap.Logger
	quit     chan struct{}
	doneCh   chan struct{}
}

// New creates a new Reconciler.
func New(counters cache.CounterCache, repo repositories.CounterRepository, cfg Config, logger *zap.Logger) *Reconciler {
	return &Reconciler{
		counters: counters,
		repo:     repo,
		cfg:      cfg,
		logger:   logger,
		quit:     make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start launches the reconciler in a background goroutine.
func (r *Reconciler) Start(ctx context.Context) {
	go r.run(ctx)
}

// Stop signals the reconciler to stop and returns immediately.
// Call Done() to wait for it to exit.
func (r *Reconciler) Stop() {
	close(r.quit)
}

// Done returns a channel that is closed when the reconciler has fully stopped.
func (r *Reconciler) Done() <-chan struct{} {
	return r.doneCh
}

func (r *Reconciler) run(ctx context.Context) {
	defer close(r.doneCh)

	interval := r.cfg.Interval
	if interval <= 0 {
		interval = 60 * time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.quit:
			return
		case <-ticker.C:
			r.reconcile(ctx)
		}
	}
}

func (r *Reconciler) reconcile(ctx context.Context) {
	topN := r.cfg.TopN
	if topN <= 0 {
		topN = 100
	}

	hotKeys, err := r.counters.GetTopHotKeys(ctx, topN)
	if err != nil {
		r.logger.Error("reconciler: failed to get top hot keys", zap.Error(err))
		return
	}
	if len(hotKeys) == 0 {
		return
	}

	for _, key := range hotKeys {
		// Actor-side following counts are repaired by the next toggle; the
		// hot keys track target-side counters only.
		count, err := r.repo.Reconcile(ctx, key.TargetID, key.TargetID, key.Kind)
		if err != nil {
			r.logger.Error("reconciler: counter re-derivation failed",
				zap.Uint("target_id", key.TargetID),
				zap.String("kind", string(key.Kind)),
				zap.Error(err))
			continue
		}
		if err := r.counters.SetCount(ctx, key.TargetID, key.Kind, count); err != nil {
			r.logger.Error("reconciler: cache refresh failed",
				zap.Uint("target_id", key.TargetID),
				zap.String("kind", string(key.Kind)),
				zap.Error(err))
		}
	}

	if err := r.counters.ResetHotKeyScores(ctx); err != nil {
		r.logger.Error("reconciler: failed to reset hot key scores", zap.Error(err))
	}

	r.logger.Info("reconciler: counter reconciliation complete", zap.Int("count", len(hotKeys)))
}
