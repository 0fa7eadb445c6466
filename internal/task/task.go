// Package task provides the dispatch substrate: a queue abstraction with
// in-memory and Redis providers, a jittered retry policy, and a worker pool
// that dispatches tasks to registered handlers.
package task

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/bobocheung/Distributed-Web-Crawler/internal/feeds"
)

// Task names dispatched by the runner.
const (
	NameFetchFeed     = "fetch_feed"
	NameEnrichArticle = "enrich_article"
)

// Default attempt budgets. Feeds get more attempts than single articles
// because one feed failure costs a whole catalog entry for the cycle.
const (
	DefaultFeedAttempts    = 5
	DefaultArticleAttempts = 3
)

// ErrFull is returned by a bounded queue when an enqueue would block.
var ErrFull = errors.New("queue full")

// ErrClosed is returned after Close.
var ErrClosed = errors.New("queue closed")

// Task is one unit of work. Feed is set for fetch_feed tasks, URL and
// URLHash for enrich_article tasks.
type Task struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Feed        *feeds.Descriptor `json:"feed,omitempty"`
	URL         string            `json:"url,omitempty"`
	URLHash     string            `json:"url_hash,omitempty"`
	MaxAttempts int               `json:"max_attempts"`
}

// NewFetchFeed builds a feed crawl task.
func NewFetchFeed(desc feeds.Descriptor, maxAttempts int) Task {
	return Task{
		ID:          uuid.NewString(),
		Name:        NameFetchFeed,
		Feed:        &desc,
		MaxAttempts: maxAttempts,
	}
}

// NewEnrichArticle builds a content enrichment task.
func NewEnrichArticle(url, urlHash string, maxAttempts int) Task {
	return Task{
		ID:          uuid.NewString(),
		Name:        NameEnrichArticle,
		URL:         url,
		URLHash:     urlHash,
		MaxAttempts: maxAttempts,
	}
}

// Queue moves tasks between the scheduler and the worker pool. Enqueue never
// blocks: bounded providers report ErrFull instead.
type Queue interface {
	Enqueue(ctx context.Context, t Task) error
	Dequeue(ctx context.Context) (Task, error)
	Close()
}
