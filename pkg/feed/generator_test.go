package feed

import (
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/matchnews/pkg/domain"
)

func TestGenerator_GenerateRSS(t *testing.T) {
	generator := NewGenerator("https://news.example.com/")

	now := time.Date(2024, 5, 12, 12, 0, 0, 0, time.UTC)
	pubTime := time.Date(2024, 5, 11, 9, 30, 0, 0, time.UTC)
	m := domain.Match{ID: "ars-che", HomeTeam: "Arsenal", AwayTeam: "Chelsea", Date: time.Date(2024, 5, 12, 15, 0, 0, 0, time.UTC)}

	scored := &domain.Article{
		Title:       "Arteta confirms Saka fitness",
		Summary:     "Bukayo Saka is fit for the derby",
		Link:        "https://www.bbc.co.uk/sport/football/1",
		Author:      "Sami Mokbel",
		PublishedAt: pubTime,
		Source:      "bbc_sport",
		SourceType:  domain.SourceRSS,
		Sentiment:   "positive",
		Language:    "en",
		Tags:        []string{"team_news", "injury"},
	}
	scored.SetQuality(0.82)
	unscored := &domain.Article{
		Title:      "Match thread: Arsenal vs Chelsea",
		Content:    strings.Repeat("x", 600),
		Link:       "https://reddit.com/r/soccer/1",
		SourceType: domain.SourceReddit,
	}

	rss, err := generator.GenerateRSS(m, []*domain.Article{scored, unscored}, 0.5, now)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(rss, xml.Header))

	var parsed RSS
	require.NoError(t, xml.Unmarshal([]byte(rss), &parsed))
	assert.Equal(t, "2.0", parsed.Version)
	require.NotNil(t, parsed.Channel)
	assert.Equal(t, "MatchNews - Arsenal vs Chelsea (2024-05-12)", parsed.Channel.Title)
	assert.Contains(t, rss, "<link>https://news.example.com/api/v1/matches/ars-che/news</link>")
	assert.Contains(t, parsed.Channel.Description, "quality ≥ 0.50")
	assert.Equal(t, now.Format(time.RFC1123Z), parsed.Channel.LastBuildDate)
	assert.Equal(t, "en", parsed.Channel.Language)
	assert.Equal(t, "Football", parsed.Channel.Category)
	assert.Equal(t, 15, parsed.Channel.TTL)
	assert.Contains(t, rss, `href="https://news.example.com/api/v1/matches/ars-che/rss"`)

	require.Len(t, parsed.Channel.Items, 2)
	first := parsed.Channel.Items[0]
	assert.Equal(t, "[0.82] Arteta confirms Saka fitness", first.Title)
	assert.Equal(t, "https://www.bbc.co.uk/sport/football/1", first.Link)
	assert.Equal(t, GUID{Value: first.Link, IsPermaLink: true}, first.GUID)
	require.NotNil(t, first.Source)
	assert.Equal(t, Source{Name: "bbc_sport", URL: "https://www.bbc.co.uk/"}, *first.Source)
	assert.Equal(t, "Sami Mokbel", first.Author)
	assert.Equal(t, pubTime.Format(time.RFC1123Z), first.PubDate)
	assert.Equal(t, []string{"rss", "team_news", "injury"}, first.Categories)
	assert.Equal(t, "Source: bbc_sport, Sentiment: positive\n\nBukayo Saka is fit for the derby", first.Description)

	second := parsed.Channel.Items[1]
	assert.Equal(t, "Match thread: Arsenal vs Chelsea", second.Title, "no score prefix if never scored")
	assert.Empty(t, second.PubDate)
	assert.Equal(t, []string{"reddit"}, second.Categories)
	assert.Nil(t, second.Source)
	assert.Equal(t, strings.Repeat("x", 500)+"...", second.Description)
}

func TestGenerator_GenerateRSS_Empty(t *testing.T) {
	generator := NewGenerator("http://localhost:8080")
	now := time.Date(2024, 5, 12, 12, 0, 0, 0, time.UTC)

	rss, err := generator.GenerateRSS(domain.Match{ID: "epl-38"}, nil, 0, now)
	require.NoError(t, err)

	var parsed RSS
	require.NoError(t, xml.Unmarshal([]byte(rss), &parsed))
	assert.Equal(t, "MatchNews - Match epl-38", parsed.Channel.Title)
	assert.NotContains(t, parsed.Channel.Description, "quality")
	assert.Empty(t, parsed.Channel.Items)
	assert.Empty(t, parsed.Channel.Language)
}

func TestMainLanguage(t *testing.T) {
	articles := []*domain.Article{{Language: "es"}, {Language: "en"}, {}, {Language: "en"}, {Language: "es"}}
	assert.Equal(t, "es", mainLanguage(articles), "tie goes to first seen")
	articles = append(articles, &domain.Article{Language: "en"})
	assert.Equal(t, "en", mainLanguage(articles))
	assert.Empty(t, mainLanguage(nil))
}
