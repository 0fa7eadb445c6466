// Package feeds holds the static catalog of feed descriptors plus the
// supplemental indexes consulted by the quota balancer.
package feeds

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Descriptor identifies one feed to crawl. Immutable after process start.
type Descriptor struct {
	URL      string `json:"url"`
	Source   string `json:"source"`
	Category string `json:"category,omitempty"`
	Country  string `json:"country,omitempty"`
}

// Registry groups the primary descriptor list with the supplemental indexes
// keyed "country:<code>" and "lang:<code>". Supplemental feeds are consulted
// only to backfill a coverage deficit.
type Registry struct {
	primary      []Descriptor
	supplemental map[string][]Descriptor
}

// New builds a registry from a primary list and a supplemental index.
func New(primary []Descriptor, supplemental map[string][]Descriptor) *Registry {
	if supplemental == nil {
		supplemental = map[string][]Descriptor{}
	}
	return &Registry{primary: primary, supplemental: supplemental}
}

// Default returns the built-in catalog.
func Default() *Registry {
	return New(defaultCatalog, defaultSupplemental)
}

// Primary returns the primary descriptor list.
func (r *Registry) Primary() []Descriptor {
	return r.primary
}

// Supplemental returns the descriptor list for a group key such as
// "country:hk" or "lang:zh".
func (r *Registry) Supplemental(key string) []Descriptor {
	return r.supplemental[key]
}

// SupplementalKeys returns all group keys holding the given prefix, e.g.
// "country:" or "lang:".
func (r *Registry) SupplementalKeys(prefix string) []string {
	var keys []string
	for k := range r.supplemental {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return keys
}

// Extend appends descriptors to the primary list, skipping entries without a
// URL.
func (r *Registry) Extend(extra []Descriptor) {
	for _, d := range extra {
		if strings.TrimSpace(d.URL) == "" {
			continue
		}
		r.primary = append(r.primary, d)
	}
}

// LoadFile reads a JSON array of descriptors from path.
func LoadFile(path string) ([]Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read feeds file: %w", err)
	}
	var out []Descriptor
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parse feeds file %s: %w", path, err)
	}
	return out, nil
}

// ParseExtra parses the supplemental feed environment value. It accepts
// either a JSON array of descriptors or semicolon-separated
// "url|source|category|country" tokens. Malformed tokens are dropped.
func ParseExtra(value string) []Descriptor {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	if strings.HasPrefix(value, "[") {
		var out []Descriptor
		if err := json.Unmarshal([]byte(value), &out); err != nil {
			return nil
		}
		return out
	}
	var out []Descriptor
	for _, token := range strings.Split(value, ";") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		parts := strings.Split(token, "|")
		d := Descriptor{URL: strings.TrimSpace(parts[0])}
		if len(parts) > 1 {
			d.Source = strings.TrimSpace(parts[1])
		}
		if len(parts) > 2 {
			d.Category = strings.TrimSpace(parts[2])
		}
		if len(parts) > 3 {
			d.Country = strings.TrimSpace(parts[3])
		}
		if d.URL == "" || d.Source == "" || d.Category == "" {
			continue
		}
		out = append(out, d)
	}
	return out
}
