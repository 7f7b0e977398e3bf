package dedup

import (
	"github.com/pmezard/go-difflib/difflib"
)

// minContentLen is the minimal normalized content length for fuzzy content comparison
const minContentLen = 50

// Thresholds for fuzzy duplicate detection, each is a sequence-similarity ratio
type Thresholds struct {
	Title   float64
	Content float64
	URL     float64
}

// DefaultThresholds used when none are configured
var DefaultThresholds = Thresholds{Title: 0.85, Content: 0.75, URL: 0.90}

// Ratio returns Ratcliff/Obershelp similarity of two strings in [0,1], compared rune by rune
func Ratio(a, b string) float64 {
	if a == "" && b == "" {
		return 1
	}
	return difflib.NewMatcher(runes(a), runes(b)).Ratio()
}

// similar reports if any of title, content or url similarity checks passes
func (t Thresholds) similar(a, b fingerprint) bool {
	if a.title != "" && b.title != "" && Ratio(a.title, b.title) >= t.Title {
		return true
	}
	if len(a.content) > minContentLen && len(b.content) > minContentLen && Ratio(a.content, b.content) >= t.Content {
		return true
	}
	if a.url != "" && b.url != "" && Ratio(a.url, b.url) >= t.URL {
		return true
	}
	return false
}

func runes(s string) []string {
	res := make([]string, 0, len(s))
	for _, r := range s {
		res = append(res, string(r))
	}
	return res
}
