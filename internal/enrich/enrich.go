// Package enrich extracts readable article text from fetched HTML, detects
// its language, and fingerprints it for near-duplicate observation.
package enrich

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/abadojack/whatlanggo"

	"github.com/bobocheung/Distributed-Web-Crawler/internal/store"
)

const (
	minFragmentChars = 80
	maxContentChars  = 20000
	langSampleChars  = 4000
)

var strippedSelectors = "script, style, noscript, nav, footer, header, aside"

// ExtractContent returns the readable text of an HTML document: fragments of
// p, article, section, and div elements longer than minFragmentChars, joined
// by blank lines and capped at maxContentChars. Both limits count runes, not
// bytes, so CJK text is measured like the Latin scripts. Chrome elements are
// removed first. Unparseable or empty input yields "".
func ExtractContent(html []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return ""
	}
	doc.Find(strippedSelectors).Remove()

	var fragments []string
	doc.Find("p, article, section, div").Each(func(_ int, sel *goquery.Selection) {
		// Own text only, so nested containers do not repeat their children.
		text := strings.TrimSpace(ownText(sel))
		if utf8.RuneCountInString(text) <= minFragmentChars {
			return
		}
		fragments = append(fragments, text)
	})

	return truncateRunes(strings.Join(fragments, "\n\n"), maxContentChars)
}

// truncateRunes cuts s after at most n runes, never splitting a multi-byte
// sequence.
func truncateRunes(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// ownText collects the direct text nodes of a selection, excluding text that
// belongs to nested block containers counted on their own.
func ownText(sel *goquery.Selection) string {
	var b strings.Builder
	sel.Contents().Each(func(_ int, c *goquery.Selection) {
		if goquery.NodeName(c) == "#text" {
			b.WriteString(c.Text())
			return
		}
		switch goquery.NodeName(c) {
		case "p", "article", "section", "div":
			// Counted separately.
		default:
			b.WriteString(c.Text())
		}
	})
	return b.String()
}

// DetectLang reports the ISO 639-1 code of the text's language, sampling the
// leading langSampleChars. Undetectable text yields "".
func DetectLang(text string) string {
	sample := strings.TrimSpace(truncateRunes(text, langSampleChars))
	if sample == "" {
		return ""
	}
	info := whatlanggo.Detect(sample)
	if info.Lang == -1 {
		return ""
	}
	return info.Lang.Iso6391()
}

// Enrich runs the full pass over one document: extraction, language
// detection, and fingerprinting. Empty content yields a zero Enrichment.
func Enrich(html []byte) store.Enrichment {
	content := ExtractContent(html)
	if content == "" {
		return store.Enrichment{}
	}
	return store.Enrichment{
		Content:            content,
		ContentFingerprint: Fingerprint(content),
		Lang:               DetectLang(content),
	}
}
