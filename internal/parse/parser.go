// Package parse turns fetched feed bytes into normalized raw items, degrading
// through feed rediscovery and plain HTML scraping before giving up.
package parse

import (
	"bytes"
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"go.uber.org/zap"

	"github.com/bobocheung/Distributed-Web-Crawler/internal/canonical"
	"github.com/bobocheung/Distributed-Web-Crawler/internal/feeds"
	"github.com/bobocheung/Distributed-Web-Crawler/internal/fetch"
)

const (
	maxAnchorItems  = 20
	maxAnchorTitle  = 200
	maxAnchorsScans = 50
)

// RawItem is one normalized feed entry. It is ephemeral: always passed
// through the ingestion pipeline, never persisted as-is.
type RawItem struct {
	Title        string
	Link         string
	Summary      string
	PublishedAt  *time.Time
	SourceLabel  string
	CategoryHint string
	Country      string
}

// Parser resolves feed descriptors into raw items.
type Parser struct {
	fetcher *fetch.Fetcher
	logger  *zap.Logger
}

// New builds a Parser on top of the resilient fetcher.
func New(fetcher *fetch.Fetcher, logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Parser{fetcher: fetcher, logger: logger}
}

// ParseFeed fetches and parses one descriptor. An empty result is valid; when
// every fallback stage comes up empty, exactly one failure is appended to the
// ledger (the fetch failure if the primary fetch failed, else no_entries).
func (p *Parser) ParseFeed(ctx context.Context, desc feeds.Descriptor, ledger *fetch.Ledger) []RawItem {
	body, fetchFail := p.fetcher.Fetch(ctx, desc.URL)

	if len(body) > 0 {
		if items := p.itemsFromFeed(body, desc); len(items) > 0 {
			return items
		}
	}

	// Stage: rediscover a feed behind the descriptor URL.
	if alt, ok := p.fetcher.DiscoverFeed(ctx, desc.URL); ok {
		if altBody, fail := p.fetcher.Fetch(ctx, alt); fail == nil {
			if items := p.itemsFromFeed(altBody, desc); len(items) > 0 {
				p.logger.Debug("feed rediscovered", zap.String("url", desc.URL), zap.String("feed", alt))
				return items
			}
		}
	}

	// Stage: discovery over the host's alternate candidate pages.
	for _, candidate := range p.fetcher.AlternateCandidates(desc.URL) {
		alt, ok := p.fetcher.DiscoverFeed(ctx, candidate)
		if !ok {
			continue
		}
		altBody, fail := p.fetcher.Fetch(ctx, alt)
		if fail != nil {
			continue
		}
		if items := p.itemsFromFeed(altBody, desc); len(items) > 0 {
			return items
		}
	}

	// Stage: scrape the page itself for anchors.
	if len(body) > 0 {
		if items := anchorItems(body, desc); len(items) > 0 {
			return items
		}
	}

	if ledger != nil {
		if fetchFail != nil {
			ledger.Append(*fetchFail)
		} else {
			ledger.Append(fetch.Failure{URL: desc.URL, Reason: fetch.ReasonNoEntries})
		}
	}
	p.logger.Warn("feed yielded no entries", zap.String("url", desc.URL))
	return nil
}

func (p *Parser) itemsFromFeed(body []byte, desc feeds.Descriptor) []RawItem {
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil || feed == nil {
		return nil
	}
	items := make([]RawItem, 0, len(feed.Items))
	for _, entry := range feed.Items {
		if entry == nil {
			continue
		}
		link := entry.Link
		if link != "" {
			link = canonical.CanonicalURL(link)
		}
		summary := entry.Description
		if summary == "" {
			summary = entry.Content
		}
		var published *time.Time
		if entry.PublishedParsed != nil {
			t := entry.PublishedParsed.UTC()
			published = &t
		} else if entry.UpdatedParsed != nil {
			t := entry.UpdatedParsed.UTC()
			published = &t
		}
		items = append(items, RawItem{
			Title:        entry.Title,
			Link:         link,
			Summary:      summary,
			PublishedAt:  published,
			SourceLabel:  desc.Source,
			CategoryHint: desc.Category,
			Country:      resolveCountry(desc, link),
		})
	}
	return items
}

// resolveCountry applies the precedence: descriptor hint, inference from the
// entry link, inference from the descriptor URL.
func resolveCountry(desc feeds.Descriptor, link string) string {
	if desc.Country != "" {
		return desc.Country
	}
	if code := canonical.CountryFromURL(link); code != "" {
		return code
	}
	return canonical.CountryFromURL(desc.URL)
}

// anchorItems treats the page as plain HTML and extracts up to 20 anchors
// with non-empty text as pseudo-items inheriting the descriptor's metadata.
func anchorItems(html []byte, desc feeds.Descriptor) []RawItem {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil
	}
	var items []RawItem
	doc.Find("a[href]").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if i >= maxAnchorsScans || len(items) >= maxAnchorItems {
			return false
		}
		title := strings.TrimSpace(s.Text())
		href, _ := s.Attr("href")
		if title == "" || strings.TrimSpace(href) == "" {
			return true
		}
		resolved := resolveAgainst(desc.URL, href)
		if resolved == "" {
			return true
		}
		items = append(items, RawItem{
			Title:        truncateRunes(title, maxAnchorTitle),
			Link:         canonical.CanonicalURL(resolved),
			SourceLabel:  desc.Source,
			CategoryHint: desc.Category,
			Country:      desc.Country,
		})
		return true
	})
	return items
}

func resolveAgainst(base, ref string) string {
	b, err := url.Parse(base)
	if err != nil {
		return ""
	}
	r, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return ""
	}
	resolved := b.ResolveReference(r)
	if resolved.Host == "" {
		return ""
	}
	return resolved.String()
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
