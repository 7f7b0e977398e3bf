package collector

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/umputun/matchnews/pkg/domain"
)

// reddit discussion categories
const (
	RedditMatchThread = "match_threads"
	RedditPreMatch    = "pre_match_discussions"
	RedditPostMatch   = "post_match_discussions"
	RedditTeam        = "team_discussions"
	RedditGeneral     = "general_discussions"
)

// reddit source names, known to the quality reputation table
const (
	sourceRedditMatchThread = "reddit_match_thread"
	sourceRedditDiscussion  = "reddit_discussion"
)

var redditKeywords = []string{
	"match thread", "pre match", "post match", "vs", "v", "lineup", "team news", "injury", "preview", "prediction",
}

// RedditOptions define where reddit collector searches
type RedditOptions struct {
	BaseURL        string            // default https://www.reddit.com
	Subreddits     []string          // general football subreddits searched for every match
	TeamSubreddits map[string]string // team name to its subreddit
	Limit          int               // results per search, default 25
}

// Reddit collects match discussions via reddit public search API
type Reddit struct {
	opts   RedditOptions
	client *httpClient
}

// NewReddit makes reddit collector
func NewReddit(opts RedditOptions, httpOpts HTTPOptions) *Reddit {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://www.reddit.com"
	}
	opts.BaseURL = strings.TrimSuffix(opts.BaseURL, "/")
	if opts.Limit <= 0 {
		opts.Limit = 25
	}
	return &Reddit{opts: opts, client: newHTTPClient(httpOpts)}
}

// Name returns collector name
func (r *Reddit) Name() string { return "reddit" }

type redditListing struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditPost struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	SelfText    string  `json:"selftext"`
	URL         string  `json:"url"`
	Permalink   string  `json:"permalink"`
	Author      string  `json:"author"`
	Subreddit   string  `json:"subreddit"`
	Score       int     `json:"score"`
	NumComments int     `json:"num_comments"`
	CreatedUTC  float64 `json:"created_utc"`
}

// subredditSearch is a search in one subreddit, team is set for team subreddits
type subredditSearch struct {
	subreddit string
	team      string
}

// Collect searches general subreddits and subreddits of both teams for match discussions
// created within two days before and one day after the match
func (r *Reddit) Collect(ctx context.Context, m domain.Match) ([]domain.Article, error) {
	q := NewQuery(m, 48*time.Hour, 24*time.Hour)

	searches := make([]subredditSearch, 0, len(r.opts.Subreddits)+2)
	for _, s := range r.opts.Subreddits {
		searches = append(searches, subredditSearch{subreddit: s})
	}
	for _, t := range q.Teams {
		if s, ok := r.opts.TeamSubreddits[t]; ok {
			searches = append(searches, subredditSearch{subreddit: s, team: t})
		}
	}

	articles, err := fanOut(ctx, r.Name(), searches, func(ctx context.Context, s subredditSearch) ([]domain.Article, error) {
		return r.search(ctx, s, m, q)
	})
	return uniqueLinks(articles), err
}

func (r *Reddit) search(ctx context.Context, s subredditSearch, m domain.Match, q Query) ([]domain.Article, error) {
	query := m.HomeTeam + " " + m.AwayTeam
	if s.team != "" {
		query = otherTeam(m, s.team)
	}
	params := url.Values{}
	params.Set("q", query)
	params.Set("restrict_sr", "1")
	params.Set("sort", "new")
	params.Set("t", "week")
	params.Set("limit", fmt.Sprintf("%d", r.opts.Limit))
	searchURL := fmt.Sprintf("%s/r/%s/search.json?%s", r.opts.BaseURL, url.PathEscape(s.subreddit), params.Encode())

	var listing redditListing
	if err := r.client.getJSON(ctx, searchURL, &listing); err != nil {
		return nil, fmt.Errorf("search r/%s: %w", s.subreddit, err)
	}

	res := []domain.Article{}
	for _, child := range listing.Data.Children {
		p := child.Data
		created := time.Unix(int64(p.CreatedUTC), 0).UTC()
		if !r.relevant(p, q, created, s.team != "") {
			continue
		}
		category := categorize(p.Title, s.team != "")
		source := sourceRedditDiscussion
		if category == RedditMatchThread {
			source = sourceRedditMatchThread
		}
		link := p.URL
		if p.Permalink != "" {
			link = r.opts.BaseURL + p.Permalink
		}
		res = append(res, domain.Article{
			Title:          cleanText(p.Title),
			Content:        p.SelfText,
			Link:           link,
			Author:         p.Author,
			PublishedAt:    created,
			Source:         source,
			SourceType:     domain.SourceReddit,
			RelevanceScore: q.Relevance(p.Title, p.SelfText),
			Tags:           append([]string{"reddit"}, q.TeamTags(p.Title+" "+p.SelfText)...),
			Reddit: &domain.RedditData{
				Score:       p.Score,
				NumComments: p.NumComments,
				Subreddit:   p.Subreddit,
				Category:    category,
			},
		})
	}
	return res, nil
}

// relevant checks the post is in the date window and is about the match. Team subreddits
// discuss their team anyway, so a keyword or an opponent mention is enough there.
func (r *Reddit) relevant(p redditPost, q Query, created time.Time, teamSub bool) bool {
	if !q.InWindow(created) {
		return false
	}
	text := p.Title + " " + p.SelfText
	if !teamSub && !q.MentionsTeam(text) {
		return false
	}
	tt := termText(text)
	for _, k := range append(append([]string{}, redditKeywords...), q.MatchTerms...) {
		if hasTerm(tt, k) {
			return true
		}
	}
	return teamSub && q.MentionsTeam(text)
}

// categorize sorts a discussion by its title
func categorize(title string, teamSub bool) string {
	tt := termText(title)
	has := func(terms ...string) bool {
		for _, t := range terms {
			if hasTerm(tt, t) {
				return true
			}
		}
		return false
	}
	switch {
	case has("match thread", "live thread", "game thread"):
		return RedditMatchThread
	case has("pre match", "preview", "prediction", "lineup"):
		return RedditPreMatch
	case has("post match", "full time", "result", "highlights"):
		return RedditPostMatch
	case teamSub:
		return RedditTeam
	}
	return RedditGeneral
}

func otherTeam(m domain.Match, team string) string {
	if strings.EqualFold(team, m.HomeTeam) {
		return m.AwayTeam
	}
	return m.HomeTeam
}

// uniqueLinks drops repeated links, the same post is often found in several searches
func uniqueLinks(articles []domain.Article) []domain.Article {
	seen := make(map[string]bool, len(articles))
	res := articles[:0]
	for _, a := range articles {
		if seen[a.Link] {
			continue
		}
		seen[a.Link] = true
		res = append(res, a)
	}
	return res
}
