package collector

import (
	"strings"
	"time"
	"unicode"

	"github.com/umputun/matchnews/pkg/domain"
)

// MinRelevance is the relevance below which collected items are dropped
const MinRelevance = 0.3

// teamVariations are short names and nicknames of well known clubs
var teamVariations = map[string][]string{
	"Manchester United": {"Man United", "ManUtd", "Man Utd", "MUFC"},
	"Manchester City":   {"Man City", "MCFC"},
	"Liverpool":         {"LFC", "The Reds"},
	"Arsenal":           {"Gunners", "AFC"},
	"Chelsea":           {"Blues", "CFC"},
	"Tottenham":         {"Spurs", "THFC"},
	"Real Madrid":       {"Madrid", "Los Blancos"},
	"Barcelona":         {"Barca", "Barça"},
	"Bayern Munich":     {"Bayern"},
	"Borussia Dortmund": {"Dortmund", "BVB"},
}

var relevanceKeywords = []string{
	"football", "soccer", "match", "game", "fixture", "preview", "prediction", "team news", "injury",
	"lineup", "starting eleven", "tactics",
}

var excludeTerms = []string{"women", "youth", "u21", "u19", "reserves", "academy"}

// Query holds the match terms relevance is computed against
type Query struct {
	Teams      []string
	Variations []string
	MatchTerms []string
	From, To   time.Time // zero values disable the date window
}

// NewQuery builds a query for the match with the date window [date-before, date+after]
func NewQuery(m domain.Match, before, after time.Duration) Query {
	q := Query{Teams: []string{}, Variations: []string{}}
	for _, t := range m.Teams() {
		if t = strings.TrimSpace(t); t == "" {
			continue
		}
		q.Teams = append(q.Teams, t)
		q.Variations = append(q.Variations, teamVariations[t]...)
	}
	if len(q.Teams) == 2 {
		home, away := q.Teams[0], q.Teams[1]
		q.MatchTerms = []string{home + " vs " + away, away + " vs " + home, home + " v " + away, away + " v " + home}
	}
	if !m.Date.IsZero() {
		q.From, q.To = m.Date.Add(-before), m.Date.Add(after)
	}
	return q
}

// Relevance scores how much title and summary are about the match, in [0, 1].
// Terms match as whole words or phrases, case-insensitive.
func (q Query) Relevance(title, summary string) float64 {
	text := termText(title + " " + summary)
	titleText := termText(title)

	score := 0.0
	for _, t := range q.Teams {
		if hasTerm(text, t) {
			score += 0.4
		}
		if hasTerm(titleText, t) {
			score += 0.2
		}
	}
	for _, v := range q.Variations {
		if hasTerm(text, v) {
			score += 0.2
		}
	}
	for _, t := range q.MatchTerms {
		if hasTerm(text, t) {
			score += 0.6
		}
	}
	for _, k := range relevanceKeywords {
		if hasTerm(text, k) {
			score += 0.1
		}
	}
	for _, e := range excludeTerms {
		if hasTerm(text, e) {
			score -= 0.3
		}
	}
	return max(0, min(score, 1))
}

// InWindow checks if t is inside the query date window. Unknown time is always inside.
func (q Query) InWindow(t time.Time) bool {
	if t.IsZero() || q.From.IsZero() {
		return true
	}
	return !t.Before(q.From) && !t.After(q.To)
}

// MentionsTeam checks if text mentions any team by name or variation
func (q Query) MentionsTeam(text string) bool {
	tt := termText(text)
	for _, t := range append(append([]string{}, q.Teams...), q.Variations...) {
		if hasTerm(tt, t) {
			return true
		}
	}
	return false
}

// TeamTags returns tags of teams mentioned in text, e.g. "manchester_united"
func (q Query) TeamTags(text string) []string {
	tt := termText(text)
	res := []string{}
	for _, t := range q.Teams {
		mentioned := hasTerm(tt, t)
		for _, v := range teamVariations[t] {
			mentioned = mentioned || hasTerm(tt, v)
		}
		if mentioned {
			res = append(res, TeamTag(t))
		}
	}
	return res
}

// TeamTag converts a team name to a tag
func TeamTag(team string) string {
	return strings.Join(words(team), "_")
}

// termText lowercases text into space separated words wrapped with spaces, ready for hasTerm
func termText(s string) string {
	return " " + strings.Join(words(s), " ") + " "
}

func hasTerm(text, term string) bool {
	w := words(term)
	if len(w) == 0 {
		return false
	}
	return strings.Contains(text, " "+strings.Join(w, " ")+" ")
}

func words(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool { return !unicode.IsLetter(r) && !unicode.IsDigit(r) })
}
