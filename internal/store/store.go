// Package store defines the durable article store consumed by the ingestion
// pipeline, the enrichment task, and the quota balancer, with Postgres and
// in-memory providers.
package store

import (
	"context"
	"time"
)

// DefaultCategory is assigned when neither a hint, a rule, nor the learned
// classifier produced a category.
const DefaultCategory = "general"

// Article is the canonical persistent record, one row per URL.
type Article struct {
	ID                 int64
	Title              string
	URL                string
	URLCanonical       string
	URLHash            string
	Summary            string
	Content            string
	Source             string
	SourceNorm         string
	Category           string
	Categories         []string
	Country            string
	Lang               string
	ContentFingerprint string
	PublishedAt        *time.Time
	CreatedAt          time.Time
}

// Upsert carries the derived fields for one create-or-merge operation.
type Upsert struct {
	Title        string
	URL          string
	URLCanonical string
	URLHash      string
	Summary      string
	Source       string
	SourceNorm   string
	Category     string
	Categories   []string
	Country      string
	Lang         string
	PublishedAt  *time.Time
}

// IngestResult counts the outcome of a bulk upsert.
type IngestResult struct {
	Created int
	Updated int
}

// Enrichment carries the fields the content-enrichment task may write. Empty
// values are never written over existing data.
type Enrichment struct {
	Content            string
	ContentFingerprint string
	Lang               string
}

// CodeCount is one coverage bucket.
type CodeCount struct {
	Code  string
	Count int
}

// CoverageStats groups article counts over a rolling window.
type CoverageStats struct {
	ByCountry []CodeCount
	ByLang    []CodeCount
}

// Provider is the storage boundary for the ingestion core. A race between
// two concurrent creations of the same URL must resolve to exactly one row.
type Provider interface {
	// BulkIngest merges the items under the URL uniqueness constraint and
	// reports how many rows were created versus updated.
	BulkIngest(ctx context.Context, items []Upsert) (IngestResult, error)

	// UpsertEnrichment updates content, fingerprint, and language for the
	// record matched by urlHash, falling back to url. Only non-empty fields
	// are written.
	UpsertEnrichment(ctx context.Context, urlHash, url string, e Enrichment) error

	// CoverageStats returns per-country and per-language article counts for
	// records created inside the trailing window.
	CoverageStats(ctx context.Context, window time.Duration) (CoverageStats, error)

	// Close releases the provider's resources.
	Close()
}
