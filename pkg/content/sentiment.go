package content

import (
	"math"
	"strings"
)

// sentiment labels
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

var (
	positiveGeneral = wordsSet("good", "great", "excellent", "amazing", "brilliant", "fantastic", "outstanding", "superb",
		"incredible", "perfect")

	positiveFootball = wordsSet("goal", "victory", "win", "champion", "success", "triumph", "celebration", "hero", "legend",
		"star", "talent", "skill", "masterclass", "dominate", "clinical", "precise")

	negativeGeneral = wordsSet("bad", "terrible", "awful", "horrible", "disappointing", "disaster", "failure", "worst",
		"pathetic", "useless")

	negativeFootball = wordsSet("miss", "defeat", "loss", "injury", "injured", "mistake", "error", "penalty", "banned",
		"suspended", "crisis", "struggle", "pressure", "criticism", "controversy")

	neutralFootball = wordsSet("match", "game", "play", "player", "team", "club", "manager", "coach", "training",
		"transfer", "contract", "season", "league", "tournament")
)

// Sentiment is the result of lexical sentiment analysis
type Sentiment struct {
	Label      string  `json:"overall_sentiment"`
	Confidence float64 `json:"confidence"`
	Positive   float64 `json:"positive"`
	Negative   float64 `json:"negative"`
	Neutral    float64 `json:"neutral"`
}

// AnalyzeSentiment scores text by counting sentiment words. Football-specific words weigh 1.5,
// general words 1 and neutral football vocabulary 0.5. A side wins when it outweighs the other
// by 20%.
func AnalyzeSentiment(text string) Sentiment {
	if strings.TrimSpace(text) == "" {
		return Sentiment{Label: SentimentNeutral, Neutral: 1}
	}

	var pos, neg, neu float64
	for _, w := range tokenize(strings.ToLower(text)) {
		switch {
		case positiveGeneral[w]:
			pos++
		case positiveFootball[w]:
			pos += 1.5
		case negativeGeneral[w]:
			neg++
		case negativeFootball[w]:
			neg += 1.5
		case neutralFootball[w]:
			neu += 0.5
		}
	}

	total := pos + neg + neu
	if total == 0 {
		total = 1
	}
	res := Sentiment{Positive: pos / total, Negative: neg / total, Neutral: neu / total}
	switch {
	case pos > neg*1.2:
		res.Label = SentimentPositive
		res.Confidence = math.Min(pos/(pos+neg+1), 0.9)
	case neg > pos*1.2:
		res.Label = SentimentNegative
		res.Confidence = math.Min(neg/(pos+neg+1), 0.9)
	default:
		res.Label = SentimentNeutral
		res.Confidence = 0.5
	}
	return res
}

func wordsSet(words ...string) map[string]bool {
	res := make(map[string]bool, len(words))
	for _, w := range words {
		res[w] = true
	}
	return res
}
