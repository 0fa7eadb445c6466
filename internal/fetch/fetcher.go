// Package fetch implements resilient HTTP retrieval for feeds and article
// pages: browser identities, per-domain header overrides, alternate-identity
// retry, alternate-feed fallbacks, and feed rediscovery.
package fetch

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
)

// Reason codes recorded on the failure ledger.
const (
	ReasonException = "exception"
	ReasonTimeout   = "timeout"
	ReasonNoEntries = "no_entries"
)

// Failure records one unrecoverable fetch for operational visibility. It is
// never persisted.
type Failure struct {
	URL    string `json:"url"`
	Reason string `json:"reason"`
}

// Ledger accumulates failures for a single run. Each run owns its ledger;
// there is no process-global failure state.
type Ledger struct {
	mu      sync.Mutex
	records []Failure
}

// Append adds a failure record.
func (l *Ledger) Append(f Failure) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, f)
}

// Records returns a copy of the accumulated failures.
func (l *Ledger) Records() []Failure {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Failure, len(l.records))
	copy(out, l.records)
	return out
}

// Len reports the number of accumulated failures.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}

// Config controls fetcher behavior.
type Config struct {
	Timeout         time.Duration
	UserAgent       string
	AltUserAgent    string
	AcceptLanguage  string
	HeadersByDomain map[string]map[string]string
	AltFeeds        map[string][]string
}

// DefaultConfig returns the production header rotation and the known
// alternate-feed lists.
func DefaultConfig() Config {
	return Config{
		Timeout: 30 * time.Second,
		UserAgent: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
			"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0 Safari/537.36",
		AltUserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
			"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0 Safari/537.36",
		AcceptLanguage: "zh-TW,zh;q=0.9,en-US;q=0.8,en;q=0.7",
		HeadersByDomain: map[string]map[string]string{
			"timesofisrael.com":  {"Accept-Language": "en-US,en;q=0.9"},
			"thejakartapost.com": {"Accept-Language": "en-US,en;q=0.9"},
			"apnews.com":         {"Accept-Language": "en-US,en;q=0.9"},
			"reuters.com":        {"Accept-Language": "en-US,en;q=0.9"},
		},
		AltFeeds: map[string][]string{
			"washingtonpost.com": {"https://feeds.washingtonpost.com/rss/world"},
			"thejakartapost.com": {"https://www.thejakartapost.com/"},
			"timesofisrael.com":  {"https://www.timesofisrael.com/"},
			"alarabiya.net":      {"https://english.alarabiya.net/"},
		},
	}
}

// Fetcher retrieves URLs with the resilience chain of the crawl pipeline. It
// is safe for concurrent use; every request clones the base collector.
type Fetcher struct {
	cfg    Config
	base   *colly.Collector
	logger *zap.Logger
}

// New builds a Fetcher.
func New(cfg Config, logger *zap.Logger) *Fetcher {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	base := colly.NewCollector()
	base.IgnoreRobotsTxt = true
	base.AllowURLRevisit = true
	base.WithTransport(&http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 8,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 15 * time.Second,
	})
	base.SetRequestTimeout(cfg.Timeout)
	return &Fetcher{cfg: cfg, base: base, logger: logger}
}

// Fetch runs the resilience chain for one URL: primary identity, alternate
// identity on 401/403/404, then the host's alternate-feed list. It returns
// the fetched bytes, or nil plus a Failure describing why the whole chain
// failed. It never returns an error and never panics.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, *Failure) {
	body, status, err := f.get(ctx, rawURL, f.cfg.UserAgent)
	if err == nil {
		return body, nil
	}
	primary := failureFor(rawURL, status, err)

	if status == http.StatusUnauthorized || status == http.StatusForbidden || status == http.StatusNotFound {
		if body, _, retryErr := f.get(ctx, rawURL, f.cfg.AltUserAgent); retryErr == nil {
			return body, nil
		}
	}

	host := hostnameOf(rawURL)
	for domain, alternates := range f.cfg.AltFeeds {
		if host == "" || !strings.HasSuffix(host, domain) {
			continue
		}
		for _, alt := range alternates {
			if body, _, altErr := f.get(ctx, alt, f.cfg.UserAgent); altErr == nil {
				f.logger.Debug("alternate feed served request",
					zap.String("url", rawURL), zap.String("alternate", alt))
				return body, nil
			}
		}
	}

	return nil, primary
}

// AlternateCandidates returns the configured alternate pages for the URL's
// host, in listed order.
func (f *Fetcher) AlternateCandidates(rawURL string) []string {
	host := hostnameOf(rawURL)
	if host == "" {
		return nil
	}
	for domain, candidates := range f.cfg.AltFeeds {
		if strings.HasSuffix(host, domain) {
			return candidates
		}
	}
	return nil
}

// get performs one GET with the given identity, returning the body, the HTTP
// status observed on failure (0 when none), and an error on any failure.
func (f *Fetcher) get(ctx context.Context, rawURL, userAgent string) ([]byte, int, error) {
	collector := f.base.Clone()
	collector.UserAgent = userAgent
	collector.IgnoreRobotsTxt = true
	collector.AllowURLRevisit = true
	collector.SetRequestTimeout(f.cfg.Timeout)

	var (
		body     []byte
		status   int
		fetchErr error
	)
	collector.OnRequest(func(r *colly.Request) {
		f.applyHeaders(r, rawURL)
	})
	collector.OnResponse(func(r *colly.Response) {
		status = r.StatusCode
		body = append([]byte(nil), r.Body...)
	})
	collector.OnError(func(r *colly.Response, err error) {
		if r != nil {
			status = r.StatusCode
		}
		fetchErr = err
	})

	done := make(chan error, 1)
	go func() {
		visitErr := collector.Visit(rawURL)
		collector.Wait()
		done <- visitErr
	}()

	select {
	case <-ctx.Done():
		return nil, 0, ctx.Err()
	case visitErr := <-done:
		if visitErr != nil && fetchErr == nil {
			fetchErr = visitErr
		}
		if fetchErr != nil {
			return nil, status, fetchErr
		}
		if status >= 400 {
			return nil, status, errors.New(http.StatusText(status))
		}
		return body, status, nil
	}
}

func (f *Fetcher) applyHeaders(r *colly.Request, originalURL string) {
	if f.cfg.AcceptLanguage != "" {
		r.Headers.Set("Accept-Language", f.cfg.AcceptLanguage)
	}
	r.Headers.Set("Accept",
		"text/html,application/xhtml+xml,application/xml;q=0.9,application/rss+xml;q=0.9,*/*;q=0.8")

	host := hostnameOf(originalURL)
	if host != "" {
		r.Headers.Set("Referer", "https://"+host+"/")
	}
	for domain, overrides := range f.cfg.HeadersByDomain {
		if host == "" || !strings.HasSuffix(host, domain) {
			continue
		}
		for k, v := range overrides {
			r.Headers.Set(k, v)
		}
	}
}

func failureFor(rawURL string, status int, err error) *Failure {
	switch {
	case status > 0:
		return &Failure{URL: rawURL, Reason: "http_error:" + strconv.Itoa(status)}
	case isTimeout(err):
		return &Failure{URL: rawURL, Reason: ReasonTimeout}
	default:
		return &Failure{URL: rawURL, Reason: ReasonException}
	}
}

func isTimeout(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	return errors.Is(err, context.DeadlineExceeded)
}

func hostnameOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
