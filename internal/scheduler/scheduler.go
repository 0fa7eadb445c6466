// Package scheduler drives the periodic crawl fan-out and the coverage
// quota balancer.
package scheduler

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/bobocheung/Distributed-Web-Crawler/internal/feeds"
	"github.com/bobocheung/Distributed-Web-Crawler/internal/metrics"
	"github.com/bobocheung/Distributed-Web-Crawler/internal/store"
	"github.com/bobocheung/Distributed-Web-Crawler/internal/task"
)

// Config controls cycle timing and the coverage thresholds.
type Config struct {
	Interval      time.Duration
	Window        time.Duration
	MinPerCountry int
	MinPerLang    int
}

// Scheduler enqueues fetch_feed tasks on an interval and backfills
// under-represented countries and languages from the supplemental catalog.
// Dispatch is fire and forget: no cycle waits for a previous cycle's tasks.
type Scheduler struct {
	cfg      Config
	registry *feeds.Registry
	store    store.Provider
	queue    task.Queue
	logger   *zap.Logger
}

func New(cfg Config, registry *feeds.Registry, provider store.Provider, queue task.Queue, logger *zap.Logger) *Scheduler {
	if cfg.Interval <= 0 {
		cfg.Interval = 15 * time.Minute
	}
	if cfg.Window <= 0 {
		cfg.Window = 24 * time.Hour
	}
	if cfg.MinPerCountry <= 0 {
		cfg.MinPerCountry = 20
	}
	if cfg.MinPerLang <= 0 {
		cfg.MinPerLang = 20
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		cfg:      cfg,
		registry: registry,
		store:    provider,
		queue:    queue,
		logger:   logger,
	}
}

// Run blocks, firing a cycle immediately and then on every interval tick
// until the context finishes.
func (s *Scheduler) Run(ctx context.Context) {
	s.Cycle(ctx)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Cycle(ctx)
		}
	}
}

// Cycle enqueues the primary catalog and runs the quota balancer once.
func (s *Scheduler) Cycle(ctx context.Context) {
	primary := s.registry.Primary()
	for _, desc := range primary {
		s.enqueue(ctx, desc)
	}
	s.logger.Info("cycle dispatched", zap.Int("primary_feeds", len(primary)))
	s.balance(ctx)
}

// balance reads coverage over the trailing window and enqueues every feed of
// each supplemental group still under its threshold.
func (s *Scheduler) balance(ctx context.Context) {
	stats, err := s.store.CoverageStats(ctx, s.cfg.Window)
	if err != nil {
		s.logger.Warn("coverage stats unavailable; skipping balancer", zap.Error(err))
		return
	}

	s.backfill(ctx, "country:", countsByCode(stats.ByCountry), s.cfg.MinPerCountry)
	s.backfill(ctx, "lang:", countsByCode(stats.ByLang), s.cfg.MinPerLang)
}

func (s *Scheduler) backfill(ctx context.Context, prefix string, counts map[string]int, threshold int) {
	for _, key := range s.registry.SupplementalKeys(prefix) {
		code := strings.TrimPrefix(key, prefix)
		if counts[code] >= threshold {
			continue
		}
		group := s.registry.Supplemental(key)
		s.logger.Info("coverage below threshold; backfilling",
			zap.String("group", key),
			zap.Int("count", counts[code]),
			zap.Int("threshold", threshold),
			zap.Int("feeds", len(group)))
		for _, desc := range group {
			if s.enqueue(ctx, desc) {
				metrics.ObserveSupplementalEnqueue(key)
			}
		}
	}
}

// enqueue pushes one fetch_feed task, dropping it with a warning when the
// queue is full so the loop never blocks.
func (s *Scheduler) enqueue(ctx context.Context, desc feeds.Descriptor) bool {
	t := task.NewFetchFeed(desc, task.DefaultFeedAttempts)
	if err := s.queue.Enqueue(ctx, t); err != nil {
		s.logger.Warn("enqueue dropped", zap.String("feed", desc.URL), zap.Error(err))
		return false
	}
	return true
}

func countsByCode(counts []store.CodeCount) map[string]int {
	out := make(map[string]int, len(counts))
	for _, cc := range counts {
		out[cc.Code] = cc.Count
	}
	return out
}
