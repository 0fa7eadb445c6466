package enrich

import (
	"fmt"
	"hash/fnv"
	"math/bits"
	"strconv"
	"strings"
)

// Fingerprint computes a 64-bit simhash over the lowercase whitespace tokens
// of the text and renders it as 16 hex characters. Texts with no tokens
// yield "".
func Fingerprint(text string) string {
	h, ok := simhash64(text)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%016x", h)
}

func simhash64(text string) (uint64, bool) {
	tokens := strings.Fields(strings.ToLower(text))
	if len(tokens) == 0 {
		return 0, false
	}

	var bitWeights [64]int
	for _, token := range tokens {
		h := hashToken64(token)
		for bit := 0; bit < 64; bit++ {
			if h&(uint64(1)<<bit) != 0 {
				bitWeights[bit]++
			} else {
				bitWeights[bit]--
			}
		}
	}

	var result uint64
	for bit := 0; bit < 64; bit++ {
		if bitWeights[bit] > 0 {
			result |= uint64(1) << bit
		}
	}
	return result, true
}

func hashToken64(token string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(token))
	return h.Sum64()
}

// Distance reports the Hamming distance between two fingerprints, for
// observing near-duplicates. Malformed input reports ok=false.
func Distance(a, b string) (int, bool) {
	x, errA := strconv.ParseUint(a, 16, 64)
	y, errB := strconv.ParseUint(b, 16, 64)
	if errA != nil || errB != nil {
		return 0, false
	}
	return bits.OnesCount64(x ^ y), true
}
