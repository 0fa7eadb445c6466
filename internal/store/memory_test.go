package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleUpsert(url, hash string) Upsert {
	return Upsert{
		Title:        "Chip makers face new export rules",
		URL:          url,
		URLCanonical: url,
		URLHash:      hash,
		Summary:      "Export controls tighten.",
		Source:       "Example Wire",
		SourceNorm:   "example wire",
		Category:     "technology",
		Categories:   []string{"technology"},
		Country:      "us",
		Lang:         "en",
	}
}

func TestMemoryProviderCreateThenUpdate(t *testing.T) {
	t.Parallel()
	m := NewMemoryProvider()
	ctx := context.Background()

	res, err := m.BulkIngest(ctx, []Upsert{sampleUpsert("http://a.example/1", "hash-1")})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)
	assert.Equal(t, 0, res.Updated)

	second := sampleUpsert("http://a.example/1", "hash-1")
	second.Title = "Chip makers face revised export rules"
	res, err = m.BulkIngest(ctx, []Upsert{second})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Created)
	assert.Equal(t, 1, res.Updated)

	art, ok := m.Lookup("http://a.example/1")
	require.True(t, ok)
	assert.Equal(t, "Chip makers face revised export rules", art.Title)
	assert.Equal(t, 1, m.Len())
}

func TestMemoryProviderHashCollisionMergesCanonicalRow(t *testing.T) {
	t.Parallel()
	m := NewMemoryProvider()
	ctx := context.Background()

	_, err := m.BulkIngest(ctx, []Upsert{sampleUpsert("http://a.example/story", "shared")})
	require.NoError(t, err)

	variant := sampleUpsert("http://a.example/story?ref=mail", "shared")
	res, err := m.BulkIngest(ctx, []Upsert{variant})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Created)
	assert.Equal(t, 1, res.Updated)
	assert.Equal(t, 1, m.Len())
}

func TestMemoryProviderCategoryPreservedUnlessGeneral(t *testing.T) {
	t.Parallel()
	m := NewMemoryProvider()
	ctx := context.Background()

	first := sampleUpsert("http://a.example/1", "h1")
	first.Category = "finance"
	_, err := m.BulkIngest(ctx, []Upsert{first})
	require.NoError(t, err)

	second := sampleUpsert("http://a.example/1", "h1")
	second.Category = "technology"
	_, err = m.BulkIngest(ctx, []Upsert{second})
	require.NoError(t, err)

	art, _ := m.Lookup("http://a.example/1")
	assert.Equal(t, "finance", art.Category, "a specific category should survive re-ingestion")

	third := sampleUpsert("http://a.example/2", "h2")
	third.Category = DefaultCategory
	_, err = m.BulkIngest(ctx, []Upsert{third})
	require.NoError(t, err)
	fourth := sampleUpsert("http://a.example/2", "h2")
	fourth.Category = "health"
	_, err = m.BulkIngest(ctx, []Upsert{fourth})
	require.NoError(t, err)

	art, _ = m.Lookup("http://a.example/2")
	assert.Equal(t, "health", art.Category, "general should yield to a specific category")
}

func TestMemoryProviderCountryAndLangStrengthenOnly(t *testing.T) {
	t.Parallel()
	m := NewMemoryProvider()
	ctx := context.Background()

	first := sampleUpsert("http://a.example/1", "h1")
	first.Country = ""
	first.Lang = ""
	_, err := m.BulkIngest(ctx, []Upsert{first})
	require.NoError(t, err)

	second := sampleUpsert("http://a.example/1", "h1")
	second.Country = "hk"
	second.Lang = "zh"
	_, err = m.BulkIngest(ctx, []Upsert{second})
	require.NoError(t, err)

	art, _ := m.Lookup("http://a.example/1")
	assert.Equal(t, "hk", art.Country)
	assert.Equal(t, "zh", art.Lang)

	third := sampleUpsert("http://a.example/1", "h1")
	third.Country = "us"
	third.Lang = "en"
	_, err = m.BulkIngest(ctx, []Upsert{third})
	require.NoError(t, err)

	art, _ = m.Lookup("http://a.example/1")
	assert.Equal(t, "hk", art.Country, "a known country must not be overwritten")
	assert.Equal(t, "zh", art.Lang, "a known language must not be overwritten")
}

func TestMemoryProviderPublishedAtKeptWhenIncomingNil(t *testing.T) {
	t.Parallel()
	m := NewMemoryProvider()
	ctx := context.Background()

	published := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	first := sampleUpsert("http://a.example/1", "h1")
	first.PublishedAt = &published
	_, err := m.BulkIngest(ctx, []Upsert{first})
	require.NoError(t, err)

	second := sampleUpsert("http://a.example/1", "h1")
	second.PublishedAt = nil
	_, err = m.BulkIngest(ctx, []Upsert{second})
	require.NoError(t, err)

	art, _ := m.Lookup("http://a.example/1")
	require.NotNil(t, art.PublishedAt)
	assert.True(t, art.PublishedAt.Equal(published))
}

func TestMemoryProviderEnrichment(t *testing.T) {
	t.Parallel()
	m := NewMemoryProvider()
	ctx := context.Background()

	item := sampleUpsert("http://a.example/1", "h1")
	item.Lang = ""
	_, err := m.BulkIngest(ctx, []Upsert{item})
	require.NoError(t, err)

	err = m.UpsertEnrichment(ctx, "h1", "http://a.example/1", Enrichment{
		Content:            "Full article body.",
		ContentFingerprint: "00ff00ff00ff00ff",
		Lang:               "en",
	})
	require.NoError(t, err)

	art, _ := m.Lookup("http://a.example/1")
	assert.Equal(t, "Full article body.", art.Content)
	assert.Equal(t, "00ff00ff00ff00ff", art.ContentFingerprint)
	assert.Equal(t, "en", art.Lang)

	// Unknown hash and url is a quiet no-op.
	err = m.UpsertEnrichment(ctx, "missing", "http://nowhere.example", Enrichment{Content: "x"})
	assert.NoError(t, err)
}

func TestMemoryProviderEnrichmentLangReplacesFeedGuess(t *testing.T) {
	t.Parallel()
	m := NewMemoryProvider()
	ctx := context.Background()

	item := sampleUpsert("http://a.example/1", "h1")
	item.Lang = "en"
	_, err := m.BulkIngest(ctx, []Upsert{item})
	require.NoError(t, err)

	// Detection ran over the page body, so it outranks the feed-level value.
	err = m.UpsertEnrichment(ctx, "h1", "http://a.example/1", Enrichment{Lang: "zh"})
	require.NoError(t, err)

	art, _ := m.Lookup("http://a.example/1")
	assert.Equal(t, "zh", art.Lang)

	// An undetectable language never erases a stored one.
	err = m.UpsertEnrichment(ctx, "h1", "http://a.example/1", Enrichment{Lang: ""})
	require.NoError(t, err)
	art, _ = m.Lookup("http://a.example/1")
	assert.Equal(t, "zh", art.Lang)
}

func TestMemoryProviderCoverageStats(t *testing.T) {
	t.Parallel()
	m := NewMemoryProvider()
	ctx := context.Background()

	items := []Upsert{
		sampleUpsert("http://a.example/1", "h1"),
		sampleUpsert("http://a.example/2", "h2"),
	}
	items[1].Country = "hk"
	items[1].Lang = "zh"
	_, err := m.BulkIngest(ctx, items)
	require.NoError(t, err)

	stats, err := m.CoverageStats(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, []CodeCount{{Code: "hk", Count: 1}, {Code: "us", Count: 1}}, stats.ByCountry)
	assert.Equal(t, []CodeCount{{Code: "en", Count: 1}, {Code: "zh", Count: 1}}, stats.ByLang)
}

func TestMemoryProviderSearch(t *testing.T) {
	t.Parallel()
	m := NewMemoryProvider()
	ctx := context.Background()

	a := sampleUpsert("http://a.example/1", "h1")
	a.Title = "Central bank holds rates"
	b := sampleUpsert("http://a.example/2", "h2")
	b.Title = "New chip fab announced"
	_, err := m.BulkIngest(ctx, []Upsert{a, b})
	require.NoError(t, err)

	hits := m.Search("chip", 10)
	require.Len(t, hits, 1)
	assert.Equal(t, "New chip fab announced", hits[0].Title)

	assert.Len(t, m.Search("", 1), 1)
}
