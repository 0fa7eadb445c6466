// Package pipeline binds the crawl stages to task handlers: fetch_feed runs
// fetch → parse → ingest and fans out enrichment, enrich_article runs the
// full-text pass.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/bobocheung/Distributed-Web-Crawler/internal/enrich"
	"github.com/bobocheung/Distributed-Web-Crawler/internal/fetch"
	"github.com/bobocheung/Distributed-Web-Crawler/internal/ingest"
	"github.com/bobocheung/Distributed-Web-Crawler/internal/metrics"
	"github.com/bobocheung/Distributed-Web-Crawler/internal/parse"
	"github.com/bobocheung/Distributed-Web-Crawler/internal/store"
	"github.com/bobocheung/Distributed-Web-Crawler/internal/task"
)

// Handlers owns the stage wiring for the worker pool.
type Handlers struct {
	parser   *parse.Parser
	ingestor *ingest.Ingestor
	fetcher  *fetch.Fetcher
	store    store.Provider
	queue    task.Queue
	ledger   *fetch.Ledger
	logger   *zap.Logger
}

func New(
	parser *parse.Parser,
	ingestor *ingest.Ingestor,
	fetcher *fetch.Fetcher,
	provider store.Provider,
	queue task.Queue,
	ledger *fetch.Ledger,
	logger *zap.Logger,
) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		parser:   parser,
		ingestor: ingestor,
		fetcher:  fetcher,
		store:    provider,
		queue:    queue,
		ledger:   ledger,
		logger:   logger,
	}
}

// Register binds both handlers onto the runner.
func (h *Handlers) Register(r *task.Runner) {
	r.Register(task.NameFetchFeed, h.FetchFeed)
	r.Register(task.NameEnrichArticle, h.EnrichArticle)
}

// FetchFeed crawls one feed descriptor end to end. A fully exhausted fetch
// chain is an error so the task budget can re-attempt the feed; each parse
// pass records its failure on the shared ledger either way.
func (h *Handlers) FetchFeed(ctx context.Context, t task.Task) error {
	if t.Feed == nil {
		h.logger.Warn("fetch_feed task without descriptor", zap.String("id", t.ID))
		return nil
	}
	start := time.Now()

	local := &fetch.Ledger{}
	items := h.parser.ParseFeed(ctx, *t.Feed, local)
	for _, f := range local.Records() {
		h.ledger.Append(f)
		metrics.ObserveCrawlFailure(f.Reason)
	}

	if len(items) == 0 && local.Len() > 0 {
		metrics.ObserveFeedFetch("failure", time.Since(start))
		rec := local.Records()[0]
		return fmt.Errorf("feed %s exhausted: %s", t.Feed.URL, rec.Reason)
	}

	res, accepted, err := h.ingestor.Ingest(ctx, items)
	if err != nil {
		metrics.ObserveFeedFetch("store_error", time.Since(start))
		return fmt.Errorf("ingest feed %s: %w", t.Feed.URL, err)
	}
	metrics.ObserveFeedFetch("success", time.Since(start))
	metrics.ObserveIngest(res.Created, res.Updated)
	h.logger.Info("feed ingested",
		zap.String("feed", t.Feed.URL),
		zap.Int("items", len(items)),
		zap.Int("created", res.Created),
		zap.Int("updated", res.Updated))

	for _, up := range accepted {
		et := task.NewEnrichArticle(up.URL, up.URLHash, task.DefaultArticleAttempts)
		if err := h.queue.Enqueue(ctx, et); err != nil {
			h.logger.Warn("enrichment enqueue dropped",
				zap.String("url", up.URL), zap.Error(err))
		}
	}
	return nil
}

// EnrichArticle fetches the article page and persists extracted content,
// language, and fingerprint. Pages that yield no readable text are done,
// not failed.
func (h *Handlers) EnrichArticle(ctx context.Context, t task.Task) error {
	body, fail := h.fetcher.Fetch(ctx, t.URL)
	if fail != nil {
		return fmt.Errorf("fetch article %s: %s", t.URL, fail.Reason)
	}

	e := enrich.Enrich(body)
	if e.Content == "" {
		h.logger.Debug("no readable content", zap.String("url", t.URL))
		return nil
	}
	if err := h.store.UpsertEnrichment(ctx, t.URLHash, t.URL, e); err != nil {
		return fmt.Errorf("persist enrichment %s: %w", t.URL, err)
	}
	return nil
}
