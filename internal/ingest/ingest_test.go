package ingest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobocheung/Distributed-Web-Crawler/internal/classify"
	"github.com/bobocheung/Distributed-Web-Crawler/internal/parse"
	"github.com/bobocheung/Distributed-Web-Crawler/internal/store"
)

func TestIngestSkipsIncompleteItems(t *testing.T) {
	t.Parallel()

	mem := store.NewMemoryProvider()
	ing := New(mem, nil, nil)

	res, accepted, err := ing.Ingest(context.Background(), []parse.RawItem{
		{Title: "   ", Link: "http://a.example/1"},
		{Title: "Has a title", Link: ""},
		{Title: "Kept", Link: "http://a.example/2", SourceLabel: "Example Wire"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)
	assert.Equal(t, 0, res.Updated)
	require.Len(t, accepted, 1)
	assert.Equal(t, "Kept", accepted[0].Title)
	assert.Equal(t, 1, mem.Len())
}

func TestDeriveFields(t *testing.T) {
	t.Parallel()

	ing := New(store.NewMemoryProvider(), nil, nil)
	published := time.Date(2026, 2, 14, 8, 0, 0, 0, time.UTC)

	up := ing.Derive(parse.RawItem{
		Title:       "New chip fab breaks ground amid inflation worries",
		Link:        "http://News.Example.com/Story/?utm_campaign=abc&Id=5",
		Summary:     "Construction starts next year.",
		SourceLabel: "  Example   Wire ",
		PublishedAt: &published,
	})

	assert.Equal(t, "http://news.example.com/Story?Id=5", up.URLCanonical)
	assert.Len(t, up.URLHash, 32)
	assert.Equal(t, "example wire", up.SourceNorm)
	assert.Equal(t, "technology", up.Category, "first rule match wins")
	assert.Equal(t, []string{"technology", "economy"}, up.Categories)
	require.NotNil(t, up.PublishedAt)
	assert.True(t, up.PublishedAt.Equal(published))
}

func TestResolveCategoryPrecedence(t *testing.T) {
	t.Parallel()

	learned := classify.Func(func(text string) (string, bool) {
		return "Politics", true
	})
	ing := New(store.NewMemoryProvider(), learned, nil)

	// Explicit hint beats everything.
	up := ing.Derive(parse.RawItem{
		Title:        "New chip fab breaks ground",
		Link:         "http://a.example/1",
		CategoryHint: "business",
	})
	assert.Equal(t, "business", up.Category)

	// Rule match beats the learned classifier.
	up = ing.Derive(parse.RawItem{
		Title: "New chip fab breaks ground",
		Link:  "http://a.example/2",
	})
	assert.Equal(t, "technology", up.Category)

	// Learned classifier consulted only when no rule matched.
	up = ing.Derive(parse.RawItem{
		Title: "Quiet day in the village",
		Link:  "http://a.example/3",
	})
	assert.Equal(t, "politics", up.Category)
}

func TestResolveCategoryDefaultsToGeneral(t *testing.T) {
	t.Parallel()

	ing := New(store.NewMemoryProvider(), classify.Noop{}, nil)
	up := ing.Derive(parse.RawItem{
		Title: "Quiet day in the village",
		Link:  "http://a.example/1",
	})
	assert.Equal(t, store.DefaultCategory, up.Category)
}

func TestDeriveCountryFallsBackToLink(t *testing.T) {
	t.Parallel()

	ing := New(store.NewMemoryProvider(), nil, nil)

	up := ing.Derive(parse.RawItem{
		Title: "Harbour works resume",
		Link:  "https://news.gov.hk/article/1",
	})
	assert.Equal(t, "hk", up.Country)

	up = ing.Derive(parse.RawItem{
		Title:   "Harbour works resume",
		Link:    "https://news.gov.hk/article/1",
		Country: "sg",
	})
	assert.Equal(t, "sg", up.Country, "the resolved precedence value wins")
}

func TestDeriveSourceBiasMergedIntoCategories(t *testing.T) {
	t.Parallel()

	ing := New(store.NewMemoryProvider(), nil, nil)
	up := ing.Derive(parse.RawItem{
		Title:       "Quiet day in the village",
		Link:        "http://a.example/1",
		SourceLabel: "Bloomberg",
	})
	assert.Equal(t, []string{"finance", "economy"}, up.Categories)
}
