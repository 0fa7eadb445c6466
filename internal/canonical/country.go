package canonical

import (
	"net/url"
	"strings"
)

// countrySuffixes maps multi-label host suffixes to country codes. These are
// checked before the single-label TLD table because generic TLDs like .com
// carry no country signal on their own.
var countrySuffixes = map[string]string{
	".com.hk": "hk",
	".org.hk": "hk",
	".gov.hk": "hk",
	".co.uk":  "gb",
	".com.au": "au",
	".com.sg": "sg",
	".co.jp":  "jp",
	".com.tw": "tw",
	".com.cn": "cn",
}

// countryTLDs maps bare country-code TLDs to ISO country codes.
var countryTLDs = map[string]string{
	"hk": "hk", "uk": "gb", "us": "us", "cn": "cn", "jp": "jp", "kr": "kr",
	"sg": "sg", "tw": "tw", "my": "my", "th": "th", "vn": "vn", "ph": "ph",
	"id": "id", "au": "au", "ca": "ca", "de": "de", "fr": "fr", "it": "it",
	"es": "es",
}

// CountryFromURL infers a country code from the URL's hostname. Multi-label
// suffixes win over the last label; unknown labels yield "".
func CountryFromURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return ""
	}
	for suffix, code := range countrySuffixes {
		if strings.HasSuffix(host, suffix) {
			return code
		}
	}
	if i := strings.LastIndexByte(host, '.'); i >= 0 {
		return countryTLDs[host[i+1:]]
	}
	return ""
}
