package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryProvider keeps articles in process memory. It applies the same merge
// rules as the Postgres provider and backs the default development setup and
// the pipeline tests.
type MemoryProvider struct {
	mu     sync.Mutex
	byURL  map[string]*Article
	byHash map[string]*Article
	nextID int64
}

func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{
		byURL:  make(map[string]*Article),
		byHash: make(map[string]*Article),
	}
}

func (m *MemoryProvider) BulkIngest(ctx context.Context, items []Upsert) (IngestResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var res IngestResult
	for _, item := range items {
		if existing, ok := m.byURL[item.URL]; ok {
			mergeUpsert(existing, item)
			res.Updated++
			continue
		}
		if existing, ok := m.byHash[item.URLHash]; ok && item.URLHash != "" {
			mergeUpsert(existing, item)
			res.Updated++
			continue
		}
		m.nextID++
		art := &Article{
			ID:           m.nextID,
			Title:        item.Title,
			URL:          item.URL,
			URLCanonical: item.URLCanonical,
			URLHash:      item.URLHash,
			Summary:      item.Summary,
			Source:       item.Source,
			SourceNorm:   item.SourceNorm,
			Category:     item.Category,
			Categories:   item.Categories,
			Country:      item.Country,
			Lang:         item.Lang,
			PublishedAt:  item.PublishedAt,
			CreatedAt:    time.Now().UTC(),
		}
		m.byURL[art.URL] = art
		if art.URLHash != "" {
			m.byHash[art.URLHash] = art
		}
		res.Created++
	}
	return res, nil
}

func mergeUpsert(existing *Article, item Upsert) {
	existing.Title = item.Title
	existing.Summary = item.Summary
	existing.Source = item.Source
	existing.SourceNorm = item.SourceNorm
	existing.URLCanonical = item.URLCanonical
	existing.Categories = item.Categories
	if item.PublishedAt != nil {
		existing.PublishedAt = item.PublishedAt
	}
	if existing.Category == "" || existing.Category == DefaultCategory {
		existing.Category = item.Category
	}
	if item.Country != "" && existing.Country == "" {
		existing.Country = item.Country
	}
	if item.Lang != "" && existing.Lang == "" {
		existing.Lang = item.Lang
	}
}

func (m *MemoryProvider) UpsertEnrichment(ctx context.Context, urlHash, url string, e Enrichment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	art, ok := m.byHash[urlHash]
	if !ok {
		art, ok = m.byURL[url]
	}
	if !ok {
		return nil
	}
	if e.Content != "" {
		art.Content = e.Content
	}
	if e.ContentFingerprint != "" {
		art.ContentFingerprint = e.ContentFingerprint
	}
	if e.Lang != "" {
		art.Lang = e.Lang
	}
	return nil
}

func (m *MemoryProvider) CoverageStats(ctx context.Context, window time.Duration) (CoverageStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().UTC().Add(-window)
	countries := make(map[string]int)
	langs := make(map[string]int)
	for _, art := range m.byURL {
		if art.CreatedAt.Before(cutoff) {
			continue
		}
		if art.Country != "" {
			countries[art.Country]++
		}
		if art.Lang != "" {
			langs[art.Lang]++
		}
	}
	return CoverageStats{
		ByCountry: sortedCounts(countries),
		ByLang:    sortedCounts(langs),
	}, nil
}

func sortedCounts(counts map[string]int) []CodeCount {
	out := make([]CodeCount, 0, len(counts))
	for code, n := range counts {
		out = append(out, CodeCount{Code: code, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// Lookup returns a copy of the stored article for a URL, for tests and the
// read API.
func (m *MemoryProvider) Lookup(url string) (Article, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	art, ok := m.byURL[url]
	if !ok {
		return Article{}, false
	}
	return *art, true
}

// Search returns copies of articles whose title or summary contains the
// query, case-insensitively, newest first.
func (m *MemoryProvider) Search(query string, limit int) []Article {
	m.mu.Lock()
	defer m.mu.Unlock()

	q := strings.ToLower(query)
	var out []Article
	for _, art := range m.byURL {
		if q != "" &&
			!strings.Contains(strings.ToLower(art.Title), q) &&
			!strings.Contains(strings.ToLower(art.Summary), q) {
			continue
		}
		out = append(out, *art)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Len reports the number of stored articles.
func (m *MemoryProvider) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byURL)
}

func (m *MemoryProvider) Close() {}
