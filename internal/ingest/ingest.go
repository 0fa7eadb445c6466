// Package ingest turns parsed feed items into store upserts, deriving the
// canonical URL, hash, normalized source, category labels, and country.
package ingest

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/bobocheung/Distributed-Web-Crawler/internal/canonical"
	"github.com/bobocheung/Distributed-Web-Crawler/internal/classify"
	"github.com/bobocheung/Distributed-Web-Crawler/internal/parse"
	"github.com/bobocheung/Distributed-Web-Crawler/internal/store"
)

// Ingestor classifies and persists raw feed items.
type Ingestor struct {
	store      store.Provider
	classifier classify.Classifier
	logger     *zap.Logger
}

func New(provider store.Provider, classifier classify.Classifier, logger *zap.Logger) *Ingestor {
	if classifier == nil {
		classifier = classify.Noop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ingestor{store: provider, classifier: classifier, logger: logger}
}

// Ingest derives the persistent fields for each item and merges the batch
// into the store. Items with an empty trimmed title or link are skipped and
// counted in neither bucket. The accepted upserts are returned so the caller
// can follow up on each persisted article.
func (i *Ingestor) Ingest(ctx context.Context, items []parse.RawItem) (store.IngestResult, []store.Upsert, error) {
	upserts := make([]store.Upsert, 0, len(items))
	for _, item := range items {
		title := strings.TrimSpace(item.Title)
		link := strings.TrimSpace(item.Link)
		if title == "" || link == "" {
			i.logger.Debug("skipping incomplete item",
				zap.String("title", title), zap.String("link", link))
			continue
		}
		upserts = append(upserts, i.derive(title, link, item))
	}
	if len(upserts) == 0 {
		return store.IngestResult{}, nil, nil
	}
	res, err := i.store.BulkIngest(ctx, upserts)
	if err != nil {
		return store.IngestResult{}, nil, err
	}
	return res, upserts, nil
}

// Derive exposes the field derivation for one item, used by tests.
func (i *Ingestor) Derive(item parse.RawItem) store.Upsert {
	return i.derive(strings.TrimSpace(item.Title), strings.TrimSpace(item.Link), item)
}

func (i *Ingestor) derive(title, link string, item parse.RawItem) store.Upsert {
	urlCanonical := canonical.CanonicalURL(link)
	sourceNorm := canonical.NormalizeSource(item.SourceLabel)

	text := title
	if s := strings.TrimSpace(item.Summary); s != "" {
		text = title + " " + s
	}
	matched := classify.Categories(text)
	categories := classify.WithSourceBias(matched, sourceNorm)

	country := item.Country
	if country == "" {
		country = canonical.CountryFromURL(link)
	}

	return store.Upsert{
		Title:        title,
		URL:          link,
		URLCanonical: urlCanonical,
		URLHash:      canonical.URLHash(urlCanonical),
		Summary:      strings.TrimSpace(item.Summary),
		Source:       strings.TrimSpace(item.SourceLabel),
		SourceNorm:   sourceNorm,
		Category:     i.resolveCategory(item.CategoryHint, matched, text),
		Categories:   categories,
		Country:      country,
		PublishedAt:  item.PublishedAt,
	}
}

// resolveCategory picks the single-valued category: the feed's explicit hint,
// then the highest-priority rule match, then the learned classifier, then
// the default.
func (i *Ingestor) resolveCategory(hint string, matched []string, text string) string {
	if h := strings.TrimSpace(strings.ToLower(hint)); h != "" {
		return h
	}
	if len(matched) > 0 {
		return matched[0]
	}
	if cat, ok := i.classifier.Classify(text); ok && strings.TrimSpace(cat) != "" {
		return strings.TrimSpace(strings.ToLower(cat))
	}
	return store.DefaultCategory
}
