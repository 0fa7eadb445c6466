// Package canonical provides the pure normalization helpers the ingestion
// pipeline dedupes with: URL canonicalization, URL hashing, source-name
// normalization, and country inference from hostnames.
package canonical

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"
)

// trackingPrefixes are query-parameter key prefixes stripped during
// canonicalization. The check is case-insensitive.
var trackingPrefixes = []string{"utm_", "fbclid", "gclid"}

// CanonicalURL normalizes a URL into its deduplication form: lowercased host,
// one trailing slash stripped from the path, fragment dropped, tracking
// parameters removed, and the remaining query pairs sorted by key then value.
// On any parse failure the input is returned unchanged. The function is
// idempotent: CanonicalURL(CanonicalURL(u)) == CanonicalURL(u).
func CanonicalURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	u.Host = strings.ToLower(u.Host)
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawPath = strings.TrimSuffix(u.RawPath, "/")
	u.Fragment = ""
	u.RawQuery = canonicalQuery(u.RawQuery)
	return u.String()
}

type queryPair struct {
	key   string
	value string
}

func canonicalQuery(rawQuery string) string {
	if rawQuery == "" {
		return ""
	}
	pairs := make([]queryPair, 0, 4)
	for _, chunk := range strings.Split(rawQuery, "&") {
		if chunk == "" {
			continue
		}
		key, value, _ := strings.Cut(chunk, "=")
		k, err := url.QueryUnescape(key)
		if err != nil {
			k = key
		}
		v, err := url.QueryUnescape(value)
		if err != nil {
			v = value
		}
		if isTrackingKey(k) {
			continue
		}
		pairs = append(pairs, queryPair{key: k, value: v})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].key != pairs[j].key {
			return pairs[i].key < pairs[j].key
		}
		return pairs[i].value < pairs[j].value
	})

	var b strings.Builder
	for i, p := range pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.value))
	}
	return b.String()
}

func isTrackingKey(key string) bool {
	lower := strings.ToLower(key)
	for _, prefix := range trackingPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

// URLHash returns the first 32 hex characters of the SHA-256 digest of the
// canonical URL. It depends on nothing but its input.
func URLHash(canonicalURL string) string {
	sum := sha256.Sum256([]byte(canonicalURL))
	return hex.EncodeToString(sum[:])[:32]
}

// NormalizeSource trims the source label, collapses internal whitespace runs
// to a single space, and lowercases. Empty in, empty out.
func NormalizeSource(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	return strings.ToLower(strings.Join(strings.Fields(trimmed), " "))
}
