package fetch

import (
	"bytes"
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
)

// conventionalFeedPaths are probed, in order, when a page advertises no feed.
var conventionalFeedPaths = []string{"/feed", "/rss", "/rss.xml", "/index.xml", "/atom.xml"}

// DiscoverFeed locates a feed for an HTML page: first via
// <link rel="alternate"> elements whose type suggests RSS/Atom/XML, then by
// probing conventional paths and keeping the first that parses into at least
// one entry. Fetch failures during discovery are not recorded anywhere; a
// page without a feed is an expected outcome.
func (f *Fetcher) DiscoverFeed(ctx context.Context, pageURL string) (string, bool) {
	html, fail := f.Fetch(ctx, pageURL)
	if fail != nil || len(html) == 0 {
		return "", false
	}

	if href, ok := feedLinkFromHTML(html, pageURL); ok {
		return href, true
	}

	parser := gofeed.NewParser()
	for _, path := range conventionalFeedPaths {
		candidate, ok := resolveRef(pageURL, path)
		if !ok {
			continue
		}
		body, fail := f.Fetch(ctx, candidate)
		if fail != nil || len(body) == 0 {
			continue
		}
		feed, err := parser.Parse(bytes.NewReader(body))
		if err != nil || feed == nil || len(feed.Items) == 0 {
			continue
		}
		return candidate, true
	}
	return "", false
}

func feedLinkFromHTML(html []byte, baseURL string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return "", false
	}
	var found string
	doc.Find(`link[rel]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		rel, _ := s.Attr("rel")
		if !strings.Contains(strings.ToLower(rel), "alternate") {
			return true
		}
		typ, _ := s.Attr("type")
		typ = strings.ToLower(typ)
		if !strings.Contains(typ, "rss") && !strings.Contains(typ, "atom") && !strings.Contains(typ, "xml") {
			return true
		}
		href, ok := s.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return true
		}
		if resolved, ok := resolveRef(baseURL, href); ok {
			found = resolved
			return false
		}
		return true
	})
	return found, found != ""
}

// resolveRef resolves ref against base, returning an absolute URL.
func resolveRef(base, ref string) (string, bool) {
	b, err := url.Parse(base)
	if err != nil {
		return "", false
	}
	r, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return "", false
	}
	resolved := b.ResolveReference(r)
	if resolved.Host == "" {
		return "", false
	}
	return resolved.String(), true
}
