package canonical

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalURL(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "tracking params stripped and rest sorted",
			in:   "http://News.Example.com/Story/?utm_campaign=abc&Id=5&ref=1",
			want: "http://news.example.com/Story?Id=5&ref=1",
		},
		{
			name: "fragment dropped",
			in:   "https://example.com/a#section-2",
			want: "https://example.com/a",
		},
		{
			name: "host lowercased, path case preserved",
			in:   "https://WWW.Example.COM/Path/To",
			want: "https://www.example.com/Path/To",
		},
		{
			name: "query sorted by key then value",
			in:   "https://example.com/x?b=2&a=9&a=1",
			want: "https://example.com/x?a=1&a=9&b=2",
		},
		{
			name: "fbclid and gclid removed",
			in:   "https://example.com/x?fbclid=xyz&gclid=123&id=7",
			want: "https://example.com/x?id=7",
		},
		{
			name: "case-insensitive tracking prefix",
			in:   "https://example.com/x?UTM_Source=tw&id=7",
			want: "https://example.com/x?id=7",
		},
		{
			name: "unparseable input returned unchanged",
			in:   "http://exa mple.com/%zz",
			want: "http://exa mple.com/%zz",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, CanonicalURL(tc.in))
		})
	}
}

func TestCanonicalURLIdempotent(t *testing.T) {
	t.Parallel()

	urls := []string{
		"http://News.Example.com/Story/?utm_campaign=abc&Id=5&ref=1",
		"https://example.com/a?b=2&a=1#frag",
		"https://news.mingpao.com/rss/ins/all.xml",
		"https://example.com/search?q=a+b%20c",
		"not a url at all",
	}
	for _, u := range urls {
		once := CanonicalURL(u)
		assert.Equal(t, once, CanonicalURL(once), "not idempotent for %q", u)
	}
}

func TestURLHash(t *testing.T) {
	t.Parallel()

	h := URLHash("https://example.com/a")
	require.Len(t, h, 32)

	// Pure function of the canonical URL, nothing else.
	assert.Equal(t, h, URLHash("https://example.com/a"))
	assert.NotEqual(t, h, URLHash("https://example.com/b"))
}

func TestNormalizeSource(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "bbc world", NormalizeSource("  BBC   World "))
	assert.Equal(t, "明報 即時", NormalizeSource("明報\t即時"))
	assert.Equal(t, "", NormalizeSource("   "))
	assert.Equal(t, "", NormalizeSource(""))
}
