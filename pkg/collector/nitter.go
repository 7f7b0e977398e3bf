package collector

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/matchnews/pkg/domain"
)

// twitter source names, known to the quality reputation table
const (
	sourceTwitterJournalist = "twitter_journalist"
	sourceTwitterVerified   = "twitter_verified"
)

// tweet types
const (
	TweetBreaking  = "breaking_news"
	TweetEvent     = "match_events"
	TweetInjury    = "injury_news"
	TweetTransfer  = "transfer_news"
	TweetTeamNews  = "team_news"
	TweetInterview = "interview"
	TweetGeneral   = "general"
)

var retweetPrefix = regexp.MustCompile(`^(R to|RT) @\w+:\s*`)

// NitterOptions define nitter instances and the accounts to follow
type NitterOptions struct {
	Instances      []string
	Journalists    []string
	ClubAccounts   map[string]string // team name to its account
	LeagueAccounts []string
}

// Nitter collects tweets of journalists, clubs and leagues from nitter RSS feeds, rotating
// through instances and skipping the ones which failed recently
type Nitter struct {
	opts   NitterOptions
	client *httpClient

	mu      sync.Mutex
	next    int
	healthy map[string]bool
}

// NewNitter makes nitter collector
func NewNitter(opts NitterOptions, httpOpts HTTPOptions) *Nitter {
	res := &Nitter{opts: opts, client: newHTTPClient(httpOpts), healthy: map[string]bool{}}
	res.opts.Instances = make([]string, 0, len(opts.Instances))
	for _, inst := range opts.Instances {
		inst = strings.TrimSuffix(inst, "/")
		res.opts.Instances = append(res.opts.Instances, inst)
		res.healthy[inst] = true
	}
	return res
}

// Name returns collector name
func (n *Nitter) Name() string { return "nitter" }

// account is a followed twitter account with its kind
type account struct {
	name string
	kind string // journalist, club or league
}

// Collect reads feeds of journalists, both clubs and leagues. Tweets within three days before and
// one day after the match are kept.
func (n *Nitter) Collect(ctx context.Context, m domain.Match) ([]domain.Article, error) {
	if len(n.opts.Instances) == 0 {
		return []domain.Article{}, nil
	}
	q := NewQuery(m, 72*time.Hour, 24*time.Hour)

	accounts := []account{}
	for _, a := range n.opts.Journalists {
		accounts = append(accounts, account{name: a, kind: "journalist"})
	}
	for _, t := range q.Teams {
		if a, ok := n.opts.ClubAccounts[t]; ok {
			accounts = append(accounts, account{name: a, kind: "club"})
		}
	}
	for _, a := range n.opts.LeagueAccounts {
		accounts = append(accounts, account{name: a, kind: "league"})
	}

	return fanOut(ctx, n.Name(), accounts, func(ctx context.Context, acc account) ([]domain.Article, error) {
		return n.collectAccount(ctx, acc, q)
	})
}

func (n *Nitter) collectAccount(ctx context.Context, acc account, q Query) ([]domain.Article, error) {
	var errs []error
	for range n.opts.Instances {
		inst, ok := n.nextInstance()
		if !ok {
			break
		}
		items, err := parseFeed(ctx, n.client, fmt.Sprintf("%s/%s/rss", inst, acc.name))
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lgr.Printf("[WARN] nitter instance %s failed for %s, marked unhealthy: %v", inst, acc.name, err)
			n.markUnhealthy(inst)
			errs = append(errs, err)
			continue
		}

		res := []domain.Article{}
		for _, item := range items {
			if a, ok := tweetArticle(item.Title, item.Link, itemTime(item), acc, q); ok {
				res = append(res, a)
			}
		}
		return res, nil
	}

	n.resetHealth()
	if len(errs) == 0 {
		return nil, fmt.Errorf("no healthy nitter instance for %s", acc.name)
	}
	return nil, fmt.Errorf("no working nitter instance for %s: %w", acc.name, errors.Join(errs...))
}

// tweetArticle converts a tweet to an article, retweets, replies and irrelevant tweets are skipped
func tweetArticle(title, link string, published time.Time, acc account, q Query) (domain.Article, bool) {
	title, link = strings.TrimSpace(title), strings.TrimSpace(link)
	if title == "" || link == "" || strings.HasPrefix(title, "RT @") || strings.HasPrefix(title, "@") {
		return domain.Article{}, false
	}
	text := cleanText(retweetPrefix.ReplaceAllString(title, ""))
	relevance := q.Relevance(text, "")
	if relevance < MinRelevance || !q.InWindow(published) {
		return domain.Article{}, false
	}

	source, kindTag := sourceTwitterVerified, "official_league"
	switch acc.kind {
	case "journalist":
		source, kindTag = sourceTwitterJournalist, "journalist"
	case "club":
		source, kindTag = sourceOfficialClub, "official_club"
	}
	tweetType := classifyTweet(text)
	tags := unionTags([]string{"twitter", "social_media", kindTag}, q.TeamTags(text))
	if tweetType != TweetGeneral {
		tags = unionTags(tags, []string{tweetType})
	}

	return domain.Article{
		Title:          text,
		Summary:        text,
		Content:        text,
		Link:           link,
		Author:         "@" + acc.name,
		PublishedAt:    published,
		Source:         source,
		SourceType:     domain.SourceTwitter,
		RelevanceScore: relevance,
		Tags:           tags,
		Twitter:        &domain.TwitterData{Account: acc.name, TweetType: tweetType},
	}, true
}

// classifyTweet returns tweet type by its wording
func classifyTweet(text string) string {
	tt := termText(text)
	has := func(terms ...string) bool {
		for _, t := range terms {
			if hasTerm(tt, t) {
				return true
			}
		}
		return false
	}
	switch {
	case has("breaking", "just in", "urgent"):
		return TweetBreaking
	case has("goal", "scores", "penalty", "red card"):
		return TweetEvent
	case has("injury", "injured", "out for"):
		return TweetInjury
	case has("transfer", "signing", "deal"):
		return TweetTransfer
	case has("lineup", "starting", "team news"):
		return TweetTeamNews
	case has("interview", "says", "quotes"):
		return TweetInterview
	}
	return TweetGeneral
}

// nextInstance returns the next healthy instance in rotation
func (n *Nitter) nextInstance() (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for range n.opts.Instances {
		inst := n.opts.Instances[n.next]
		n.next = (n.next + 1) % len(n.opts.Instances)
		if n.healthy[inst] {
			return inst, true
		}
	}
	return "", false
}

func (n *Nitter) markUnhealthy(inst string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.healthy[inst] = false
}

// resetHealth marks all instances healthy again, called when every instance failed
func (n *Nitter) resetHealth() {
	n.mu.Lock()
	defer n.mu.Unlock()
	for k := range n.healthy {
		n.healthy[k] = true
	}
}

// Health returns current health of every instance
func (n *Nitter) Health() map[string]bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	res := make(map[string]bool, len(n.healthy))
	for k, v := range n.healthy {
		res[k] = v
	}
	return res
}
