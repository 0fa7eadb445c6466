package feeds

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	t.Parallel()

	r := Default()
	require.NotEmpty(t, r.Primary())
	for _, d := range r.Primary() {
		assert.NotEmpty(t, d.URL)
		assert.NotEmpty(t, d.Source)
	}

	assert.Len(t, r.Supplemental("country:hk"), 3)
	assert.Empty(t, r.Supplemental("country:xx"))

	countryKeys := r.SupplementalKeys("country:")
	assert.Contains(t, countryKeys, "country:hk")
	assert.Contains(t, countryKeys, "country:jp")
	for _, k := range countryKeys {
		assert.NotContains(t, k, "lang:")
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "feeds.json")
	body := `[
		{"url": "https://example.com/rss", "source": "Example", "category": "world", "country": "us"},
		{"url": "https://example.org/feed", "source": "Example Org"}
	]`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	got, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Example", got[0].Source)
	assert.Equal(t, "us", got[0].Country)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestParseExtraTokens(t *testing.T) {
	t.Parallel()

	got := ParseExtra("https://a.com/rss|A|world|us; https://b.com/rss|B|tech ;broken|only-source")
	require.Len(t, got, 2)
	assert.Equal(t, Descriptor{URL: "https://a.com/rss", Source: "A", Category: "world", Country: "us"}, got[0])
	assert.Equal(t, Descriptor{URL: "https://b.com/rss", Source: "B", Category: "tech"}, got[1])
}

func TestParseExtraJSON(t *testing.T) {
	t.Parallel()

	got := ParseExtra(`[{"url": "https://a.com/rss", "source": "A", "category": "world"}]`)
	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].Source)

	assert.Nil(t, ParseExtra("[not json"))
	assert.Nil(t, ParseExtra("  "))
}

func TestExtendSkipsEmptyURL(t *testing.T) {
	t.Parallel()

	r := New([]Descriptor{{URL: "https://a.com", Source: "A"}}, nil)
	r.Extend([]Descriptor{{URL: " "}, {URL: "https://b.com", Source: "B"}})
	require.Len(t, r.Primary(), 2)
	assert.Equal(t, "https://b.com", r.Primary()[1].URL)
}
