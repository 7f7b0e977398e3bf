package collector

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/umputun/matchnews/pkg/domain"
)

// Feed is a named RSS/Atom feed. Feeds with teams are polled only for matches of these teams.
type Feed struct {
	Name  string   `yaml:"name" json:"name" jsonschema:"required,description=source name used for reputation lookup"`
	URL   string   `yaml:"url" json:"url" jsonschema:"required,description=feed URL"`
	Teams []string `yaml:"teams" json:"teams,omitempty" jsonschema:"description=teams the feed is dedicated to"`
}

// RSS collects match articles from RSS/Atom feeds
type RSS struct {
	feeds  []Feed
	client *httpClient
}

// NewRSS makes RSS collector for the feeds
func NewRSS(feeds []Feed, opts HTTPOptions) *RSS {
	return &RSS{feeds: feeds, client: newHTTPClient(opts)}
}

// Name returns collector name
func (r *RSS) Name() string { return "rss" }

// Collect fetches all general feeds and feeds of the match teams, keeping relevant items
// published within three days before and one day after the match
func (r *RSS) Collect(ctx context.Context, m domain.Match) ([]domain.Article, error) {
	q := NewQuery(m, 72*time.Hour, 24*time.Hour)
	return fanOut(ctx, r.Name(), r.feedsFor(m), func(ctx context.Context, f Feed) ([]domain.Article, error) {
		return r.collectFeed(ctx, f, q)
	})
}

// feedsFor selects general feeds and feeds dedicated to the match teams
func (r *RSS) feedsFor(m domain.Match) []Feed {
	res := make([]Feed, 0, len(r.feeds))
	for _, f := range r.feeds {
		if len(f.Teams) == 0 {
			res = append(res, f)
			continue
		}
		for _, t := range f.Teams {
			if strings.EqualFold(t, m.HomeTeam) || strings.EqualFold(t, m.AwayTeam) {
				res = append(res, f)
				break
			}
		}
	}
	return res
}

func (r *RSS) collectFeed(ctx context.Context, f Feed, q Query) ([]domain.Article, error) {
	items, err := parseFeed(ctx, r.client, f.URL)
	if err != nil {
		return nil, fmt.Errorf("feed %s: %w", f.Name, err)
	}

	res := make([]domain.Article, 0, len(items))
	for _, item := range items {
		title := cleanText(item.Title)
		link := strings.TrimSpace(item.Link)
		if title == "" || link == "" {
			continue
		}
		relevance := q.Relevance(title, item.Description)
		if relevance < MinRelevance {
			continue
		}
		published := itemTime(item)
		if !q.InWindow(published) {
			continue
		}

		a := domain.Article{
			Title:          title,
			Summary:        item.Description,
			Content:        item.Content,
			Link:           link,
			PublishedAt:    published,
			Source:         f.Name,
			SourceType:     domain.SourceRSS,
			RelevanceScore: relevance,
			Tags:           q.TeamTags(title + " " + item.Description),
		}
		if item.Author != nil {
			a.Author = item.Author.Name
		}
		res = append(res, a)
	}
	return res, nil
}

// parseFeed fetches and parses a feed
func parseFeed(ctx context.Context, client *httpClient, url string) ([]*gofeed.Item, error) {
	body, err := client.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	return feed.Items, nil
}

// itemTime returns published time of the item, falls back to updated time
func itemTime(item *gofeed.Item) time.Time {
	switch {
	case item.PublishedParsed != nil:
		return item.PublishedParsed.UTC()
	case item.UpdatedParsed != nil:
		return item.UpdatedParsed.UTC()
	}
	return time.Time{}
}
