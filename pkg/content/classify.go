package content

import (
	"strings"
	"unicode"
)

// content types produced by ClassifyType
const (
	TypeGeneral      = "general"
	TypeMatchThread  = "match_thread"
	TypeMatchPreview = "match_preview"
	TypeMatchReport  = "match_report"
	TypeInjuryNews   = "injury_news"
	TypeTransferNews = "transfer_news"
	TypeBreakingNews = "breaking_news"
	TypeExclusive    = "exclusive"
	TypeInterview    = "interview"
	TypeAnalysis     = "analysis"
	TypeRumor        = "rumor"
	TypeOpinion      = "opinion"
)

// typeRule maps title indicators to a content type. Phrases match as substrings,
// single words match whole words only.
type typeRule struct {
	contentType string
	phrases     []string
	words       []string
}

// typeRules are checked in order, the first matching rule wins
var typeRules = []typeRule{
	{TypeMatchThread, []string{"match thread", "live thread", "game thread"}, nil},
	{TypeMatchPreview, nil, []string{"preview", "prediction", "predictions", "vs", "v"}},
	{TypeMatchReport, []string{"player ratings"}, []string{"report", "result", "final", "ft"}},
	{TypeInjuryNews, nil, []string{"injury", "injured", "fitness", "ruled"}},
	{TypeTransferNews, nil, []string{"transfer", "signing", "signs", "deal", "contract", "loan"}},
	{TypeBreakingNews, nil, []string{"breaking", "urgent", "official"}},
	{TypeExclusive, nil, []string{"exclusive"}},
	{TypeInterview, nil, []string{"interview", "talks", "speaks"}},
	{TypeAnalysis, nil, []string{"analysis", "tactical", "stats", "explained"}},
	{TypeRumor, nil, []string{"rumour", "rumor", "rumours", "rumors", "linked", "gossip"}},
	{TypeOpinion, nil, []string{"opinion", "column", "verdict"}},
}

// ClassifyType returns the content type of an article by its title
func ClassifyType(title string) string {
	lower := strings.ToLower(title)
	words := map[string]bool{}
	for _, w := range tokenize(lower) {
		words[w] = true
	}

	for _, r := range typeRules {
		for _, p := range r.phrases {
			if strings.Contains(lower, p) {
				return r.contentType
			}
		}
		for _, w := range r.words {
			if words[w] {
				return r.contentType
			}
		}
	}
	return TypeGeneral
}

// tokenize splits text into words of letters and digits
func tokenize(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool { return !unicode.IsLetter(r) && !unicode.IsDigit(r) })
}
