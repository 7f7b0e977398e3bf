package content

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/umputun/matchnews/pkg/domain"
)

var competitions = []string{"premier league", "champions league", "europa league", "fa cup", "world cup", "euro"}

var positionTags = []string{"goalkeeper", "defender", "midfielder", "striker", "winger", "captain"}

var eventTags = []string{"goal", "assist", "penalty", "red card", "yellow card", "substitution"}

// Processor enriches collected articles: strips html from text fields, detects language,
// classifies content type, analyzes sentiment and adds competition/position/event tags.
type Processor struct {
	policy         *bluemonday.Policy
	detectLanguage func(string) string
}

// NewProcessor makes a content processor
func NewProcessor() *Processor {
	policy := bluemonday.StrictPolicy()
	policy.AddSpaceWhenStrippingTag(true)
	return &Processor{policy: policy, detectLanguage: DetectLanguage}
}

// Process enriches the article in place
func (p *Processor) Process(a *domain.Article) {
	a.Title = p.StripHTML(a.Title)
	a.Summary = p.StripHTML(a.Summary)
	a.Content = p.StripHTMLBlocks(a.Content)

	text := Text(a)
	if a.Language == "" {
		a.Language = p.detectLanguage(text)
	}
	if a.ContentType == "" {
		a.ContentType = ClassifyType(a.Title)
	}
	a.Sentiment = AnalyzeSentiment(text).Label
	a.Tags = EnhanceTags(a.Tags, text)
}

// ProcessBatch enriches all articles
func (p *Processor) ProcessBatch(articles []*domain.Article) {
	for _, a := range articles {
		if a != nil {
			p.Process(a)
		}
	}
}

// StripHTML removes all markup and unescapes entities
func (p *Processor) StripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.TrimSpace(s)
	}
	return strings.Join(strings.Fields(html.UnescapeString(p.policy.Sanitize(s))), " ")
}

var blockBreaks = strings.NewReplacer("</p>", "</p>\n\n", "<br>", "\n", "<br/>", "\n", "<br />", "\n")

// StripHTMLBlocks removes markup like StripHTML but keeps paragraphs separated by blank lines
func (p *Processor) StripHTMLBlocks(s string) string {
	if !strings.Contains(s, "<") {
		return strings.TrimSpace(s)
	}
	lines := strings.Split(html.UnescapeString(p.policy.Sanitize(blockBreaks.Replace(s))), "\n")
	res := make([]string, 0, len(lines))
	blank := false
	for _, l := range lines {
		l = strings.Join(strings.Fields(l), " ")
		if l == "" {
			blank = len(res) > 0
			continue
		}
		if blank {
			res = append(res, "")
			blank = false
		}
		res = append(res, l)
	}
	return strings.Join(res, "\n")
}

// Text joins title, summary and content of the article
func Text(a *domain.Article) string {
	parts := make([]string, 0, 3)
	for _, s := range []string{a.Title, a.Summary, a.Content} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// EnhanceTags adds competition, position and event tags found in text to the existing tags.
// Multi-word tags use underscores, e.g. "premier_league".
func EnhanceTags(tags []string, text string) []string {
	res := make([]string, 0, len(tags)+4)
	seen := map[string]bool{}
	add := func(t string) {
		if t != "" && !seen[t] {
			seen[t] = true
			res = append(res, t)
		}
	}
	for _, t := range tags {
		add(t)
	}

	lower := strings.ToLower(text)
	for _, group := range [][]string{competitions, positionTags, eventTags} {
		for _, term := range group {
			if strings.Contains(lower, term) {
				add(strings.ReplaceAll(term, " ", "_"))
			}
		}
	}
	return res
}
