// Package classify implements the rule-based multi-label category engine and
// the optional learned-classifier capability used for single-label backfill.
package classify

import (
	"regexp"
	"strings"
)

// priority fixes the output order of multi-label classification, independent
// of which pattern matched first in the text.
var priority = []string{
	"technology",
	"finance",
	"economy",
	"politics",
	"health",
	"sports",
	"entertainment",
	"environment",
}

// rules holds per-category matchers. Latin terms use word boundaries; CJK
// terms match as plain substrings inside the same alternations.
var rules = map[string][]*regexp.Regexp{
	"technology": {
		re(`\bai\b|artificial intelligence|machine learning|deep learning`),
		re(`\bsemiconductor(s)?\b|\bchip(s)?\b|半導體|晶片`),
		re(`\bsoftware\b|\bapp(s)?\b|軟體`),
		re(`cyber ?security|資訊安全`),
		re(`cloud|雲端`),
		re(`\b5g\b|\b6g\b`),
		re(`blockchain|區塊鏈`),
		re(`electric vehicle|ev |電動車`),
		re(`tech(nology)?|科技`),
	},
	"economy": {
		re(`經濟|景氣|通膨|物價|通貨膨脹`),
		re(`\bgdp\b|\bcpi\b|\bppi\b|economic growth|inflation`),
		re(`unemployment|retail sales|消費|就業`),
	},
	"finance": {
		re(`finance|financial|bank(s)?|banking|利率|加息|減息|息口`),
		re(`stock(s)?|equit(y|ies)|market(s)?|證券|股市|股票|指數|基金|債券`),
		re(`\bipo\b|\bspac\b|並購|收購`),
	},
	"politics": {
		re(`政策|法案|立法|監管|政府|內閣|部長|特首|總統|首相`),
		re(`election|parliament|congress|cabinet|government|regulation`),
	},
	"health": {
		re(`健康|醫療|醫院|疫苗|新冠|疫情|癌`),
		re(`covid|vaccine|healthcare|hospital`),
	},
	"sports": {
		re(`sports?|football|soccer|basketball|tennis|olympic|world cup|比賽|球隊|球員|體育`),
	},
	"entertainment": {
		re(`娛樂|電影|影視|音樂|明星|演唱會|藝人`),
		re(`movie|film|music|celebrity|hollywood`),
	},
	"environment": {
		re(`環境|氣候|減碳|碳排|污染|保育`),
		re(`climate|emission(s)?|carbon|environment`),
	},
}

func re(pattern string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + pattern)
}

// SourceBiases adds default categories for outlets whose coverage leans a
// known way. Keys are normalized source names.
var SourceBiases = map[string][]string{
	"the economist finance": {"economy", "finance"},
	"bloomberg":             {"finance", "economy"},
	"wall street journal":   {"finance", "economy"},
	"financial times":       {"finance", "economy"},
	"reuters apac":          {"world"},
	"scmp hong kong":        {"local"},
}

// Categories runs every category's pattern list over the text and returns the
// matched category names in fixed priority order. Empty input yields nil.
func Categories(text string) []string {
	if text == "" {
		return nil
	}
	lower := strings.ToLower(text)
	matched := make(map[string]bool, len(rules))
	for cat, patterns := range rules {
		for _, p := range patterns {
			if p.MatchString(lower) {
				matched[cat] = true
				break
			}
		}
	}
	var out []string
	for _, cat := range priority {
		if matched[cat] {
			out = append(out, cat)
		}
	}
	return out
}

// WithSourceBias appends any bias categories for the normalized source name,
// preserving order and dropping duplicates.
func WithSourceBias(categories []string, sourceNorm string) []string {
	biases := SourceBiases[sourceNorm]
	if len(biases) == 0 {
		return categories
	}
	seen := make(map[string]bool, len(categories))
	for _, c := range categories {
		seen[c] = true
	}
	out := categories
	for _, c := range biases {
		if !seen[c] {
			out = append(out, c)
			seen[c] = true
		}
	}
	return out
}
