// Package feed renders aggregated match news as RSS 2.0
package feed

import (
	"encoding/xml"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/umputun/matchnews/pkg/domain"
)

const (
	feedTTL         = 15 // minutes, matches are refreshed often around kick-off
	descriptionSize = 500
)

// Generator creates RSS feeds from match articles
type Generator struct {
	baseURL string
}

// NewGenerator creates a new feed generator
func NewGenerator(baseURL string) *Generator {
	return &Generator{
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// GenerateRSS creates an RSS 2.0 feed of match articles, in the given order
func (g *Generator) GenerateRSS(m domain.Match, articles []*domain.Article, minQuality float64, now time.Time) (string, error) {
	title := fmt.Sprintf("%s vs %s", m.HomeTeam, m.AwayTeam)
	if m.HomeTeam == "" || m.AwayTeam == "" {
		title = "Match " + m.ID
	}
	if !m.Date.IsZero() {
		title += " (" + m.Date.Format("2006-01-02") + ")"
	}

	selfLink := fmt.Sprintf("%s/api/v1/matches/%s/rss", g.baseURL, m.ID)

	// convert articles to RSS items
	rssItems := make([]*Item, 0, len(articles))
	for _, a := range articles {
		rssItems = append(rssItems, g.convertToRSSItem(a))
	}

	desc := "Match news collected from rss, reddit, news apis, club sites and twitter"
	if minQuality > 0 {
		desc += fmt.Sprintf(", quality ≥ %.2f", minQuality)
	}

	feed := &RSS{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		Channel: &Channel{
			Title:         "MatchNews - " + title,
			Link:          fmt.Sprintf("%s/api/v1/matches/%s/news", g.baseURL, m.ID),
			Description:   desc,
			Language:      mainLanguage(articles),
			Category:      "Football",
			Generator:     "matchnews",
			TTL:           feedTTL,
			LastBuildDate: now.Format(time.RFC1123Z),
			SelfLink:      &AtomLink{Href: selfLink, Rel: "self", Type: "application/rss+xml"},
			Items:         rssItems,
		},
	}

	output, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal RSS: %w", err)
	}

	// add XML declaration
	return xml.Header + string(output), nil
}

// convertToRSSItem converts an article to an RSS item, the quality score prefixes the title
func (g *Generator) convertToRSSItem(a *domain.Article) *Item {
	desc := a.Summary
	if desc == "" {
		desc = a.Content
	}
	if runes := []rune(desc); len(runes) > descriptionSize {
		desc = string(runes[:descriptionSize]) + "..."
	}
	var extra []string
	if a.Source != "" {
		extra = append(extra, "Source: "+a.Source)
	}
	if a.Sentiment != "" {
		extra = append(extra, "Sentiment: "+a.Sentiment)
	}
	if len(extra) > 0 {
		desc = strings.TrimSpace(strings.Join(extra, ", ") + "\n\n" + desc)
	}

	title := a.Title
	if a.QualityScore != nil {
		title = fmt.Sprintf("[%.2f] %s", a.Quality(), a.Title)
	}

	item := &Item{
		Title:       title,
		Link:        a.Link,
		GUID:        GUID{Value: a.Link, IsPermaLink: true},
		Description: desc,
		Author:      a.Author,
		Categories:  a.Tags,
	}
	if a.SourceType != "" {
		item.Categories = append([]string{string(a.SourceType)}, a.Tags...)
	}
	if a.Source != "" {
		item.Source = &Source{Name: a.Source, URL: sourceURL(a.Link)}
	}
	if !a.PublishedAt.IsZero() {
		item.PubDate = a.PublishedAt.Format(time.RFC1123Z)
	}
	return item
}

// mainLanguage returns the most common article language, ties go to the language seen first
func mainLanguage(articles []*domain.Article) string {
	counts := map[string]int{}
	res := ""
	for _, a := range articles {
		if a.Language == "" {
			continue
		}
		counts[a.Language]++
		if counts[a.Language] > counts[res] {
			res = a.Language
		}
	}
	return res
}

// sourceURL returns site root of the article link, empty if link is not absolute
func sourceURL(link string) string {
	u, err := url.Parse(link)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host + "/"
}
