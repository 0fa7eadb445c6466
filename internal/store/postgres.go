package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const uniqueViolation = "23505"

// schema mirrors the articles table created by the backend migrations.
const schema = `
CREATE TABLE IF NOT EXISTS articles (
	id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	title TEXT NOT NULL,
	url TEXT NOT NULL,
	url_canonical TEXT,
	url_hash TEXT,
	summary TEXT,
	content TEXT,
	source TEXT,
	source_norm TEXT,
	category TEXT,
	categories TEXT,
	country TEXT,
	lang TEXT,
	content_simhash TEXT,
	published_at TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	CONSTRAINT uq_article_url UNIQUE (url),
	CONSTRAINT uq_article_url_hash UNIQUE (url_hash)
);
CREATE INDEX IF NOT EXISTS idx_articles_country ON articles (country);
CREATE INDEX IF NOT EXISTS idx_articles_lang ON articles (lang);
CREATE INDEX IF NOT EXISTS idx_articles_created_at ON articles (created_at);
`

const upsertSQL = `
INSERT INTO articles (
	title, url, url_canonical, url_hash, summary, source, source_norm,
	category, categories, country, lang, published_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
ON CONFLICT (url) DO UPDATE SET
	title = EXCLUDED.title,
	summary = EXCLUDED.summary,
	source = EXCLUDED.source,
	source_norm = EXCLUDED.source_norm,
	url_canonical = EXCLUDED.url_canonical,
	url_hash = EXCLUDED.url_hash,
	categories = EXCLUDED.categories,
	published_at = COALESCE(EXCLUDED.published_at, articles.published_at),
	category = CASE
		WHEN articles.category IS NULL OR articles.category = '' OR articles.category = 'general'
		THEN EXCLUDED.category ELSE articles.category END,
	country = CASE
		WHEN articles.country IS NULL OR articles.country = ''
		THEN EXCLUDED.country ELSE articles.country END,
	lang = CASE
		WHEN articles.lang IS NULL OR articles.lang = ''
		THEN EXCLUDED.lang ELSE articles.lang END
RETURNING (xmax = 0) AS inserted
`

// hashUpdateSQL resolves the rare case where two distinct URLs share a
// canonical form: the url unique check passes but url_hash collides, so the
// merge is retargeted at the existing canonical row.
const hashUpdateSQL = `
UPDATE articles SET
	title = $1,
	summary = $2,
	source = $3,
	source_norm = $4,
	categories = $5,
	published_at = COALESCE($6, published_at),
	category = CASE
		WHEN category IS NULL OR category = '' OR category = 'general'
		THEN $7 ELSE category END,
	country = CASE WHEN country IS NULL OR country = '' THEN $8 ELSE country END,
	lang = CASE WHEN lang IS NULL OR lang = '' THEN $9 ELSE lang END
WHERE url_hash = $10
`

const enrichmentSQL = `
UPDATE articles SET
	content = COALESCE(NULLIF($1, ''), content),
	content_simhash = COALESCE(NULLIF($2, ''), content_simhash),
	lang = COALESCE(NULLIF($3, ''), lang)
WHERE url_hash = $4
`

const enrichmentByURLSQL = `
UPDATE articles SET
	content = COALESCE(NULLIF($1, ''), content),
	content_simhash = COALESCE(NULLIF($2, ''), content_simhash),
	lang = COALESCE(NULLIF($3, ''), lang)
WHERE url = $4
`

const coverageCountrySQL = `
SELECT country, COUNT(*) FROM articles
WHERE created_at > NOW() - $1::interval AND country IS NOT NULL AND country <> ''
GROUP BY country ORDER BY country
`

const coverageLangSQL = `
SELECT lang, COUNT(*) FROM articles
WHERE created_at > NOW() - $1::interval AND lang IS NOT NULL AND lang <> ''
GROUP BY lang ORDER BY lang
`

// Querier is the subset of pgxpool.Pool the provider needs; pgxmock
// implements it in tests.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresProvider implements Provider on a pgx connection pool.
type PostgresProvider struct {
	db     Querier
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPostgresProvider connects a pool, verifies it, and ensures the schema.
func NewPostgresProvider(ctx context.Context, dsn string, logger *zap.Logger) (*PostgresProvider, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	p := &PostgresProvider{db: pool, pool: pool, logger: logger}
	if err := p.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return p, nil
}

// NewPostgresProviderWithQuerier wires an existing querier, used by tests.
func NewPostgresProviderWithQuerier(db Querier, logger *zap.Logger) *PostgresProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PostgresProvider{db: db, logger: logger}
}

func (p *PostgresProvider) ensureSchema(ctx context.Context) error {
	if _, err := p.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// BulkIngest merges items one statement each under the url constraint. A
// url_hash collision falls back to updating the existing canonical row and
// is counted as an update.
func (p *PostgresProvider) BulkIngest(ctx context.Context, items []Upsert) (IngestResult, error) {
	var res IngestResult
	for _, item := range items {
		inserted, err := p.upsertOne(ctx, item)
		if err != nil {
			return res, err
		}
		if inserted {
			res.Created++
		} else {
			res.Updated++
		}
	}
	return res, nil
}

func (p *PostgresProvider) upsertOne(ctx context.Context, item Upsert) (bool, error) {
	var inserted bool
	err := p.db.QueryRow(ctx, upsertSQL,
		item.Title,
		item.URL,
		item.URLCanonical,
		item.URLHash,
		nullable(item.Summary),
		nullable(item.Source),
		nullable(item.SourceNorm),
		item.Category,
		strings.Join(item.Categories, ","),
		nullable(item.Country),
		nullable(item.Lang),
		item.PublishedAt,
	).Scan(&inserted)
	if err == nil {
		return inserted, nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		p.logger.Debug("url hash conflict; merging into canonical row",
			zap.String("url", item.URL), zap.String("url_hash", item.URLHash))
		_, updateErr := p.db.Exec(ctx, hashUpdateSQL,
			item.Title,
			nullable(item.Summary),
			nullable(item.Source),
			nullable(item.SourceNorm),
			strings.Join(item.Categories, ","),
			item.PublishedAt,
			item.Category,
			item.Country,
			item.Lang,
			item.URLHash,
		)
		if updateErr != nil {
			return false, fmt.Errorf("merge by url_hash: %w", updateErr)
		}
		return false, nil
	}
	return false, fmt.Errorf("upsert article %s: %w", item.URL, err)
}

// UpsertEnrichment writes content, fingerprint, and language for the record
// matched by urlHash, falling back to url when no row matched.
func (p *PostgresProvider) UpsertEnrichment(ctx context.Context, urlHash, url string, e Enrichment) error {
	if urlHash != "" {
		tag, err := p.db.Exec(ctx, enrichmentSQL, e.Content, e.ContentFingerprint, e.Lang, urlHash)
		if err != nil {
			return fmt.Errorf("enrich by url_hash: %w", err)
		}
		if tag.RowsAffected() > 0 {
			return nil
		}
	}
	if url == "" {
		return nil
	}
	if _, err := p.db.Exec(ctx, enrichmentByURLSQL, e.Content, e.ContentFingerprint, e.Lang, url); err != nil {
		return fmt.Errorf("enrich by url: %w", err)
	}
	return nil
}

// CoverageStats counts articles per country and language created inside the
// trailing window.
func (p *PostgresProvider) CoverageStats(ctx context.Context, window time.Duration) (CoverageStats, error) {
	interval := fmt.Sprintf("%d seconds", int(window.Seconds()))

	byCountry, err := p.countGroup(ctx, coverageCountrySQL, interval)
	if err != nil {
		return CoverageStats{}, fmt.Errorf("coverage by country: %w", err)
	}
	byLang, err := p.countGroup(ctx, coverageLangSQL, interval)
	if err != nil {
		return CoverageStats{}, fmt.Errorf("coverage by lang: %w", err)
	}
	return CoverageStats{ByCountry: byCountry, ByLang: byLang}, nil
}

func (p *PostgresProvider) countGroup(ctx context.Context, sql, interval string) ([]CodeCount, error) {
	rows, err := p.db.Query(ctx, sql, interval)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CodeCount
	for rows.Next() {
		var cc CodeCount
		if err := rows.Scan(&cc.Code, &cc.Count); err != nil {
			return nil, err
		}
		out = append(out, cc)
	}
	return out, rows.Err()
}

// Close shuts the pool down when the provider owns one.
func (p *PostgresProvider) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}

// nullable maps empty strings to NULL so absent values never mask stored
// ones through the COALESCE merge rules.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
