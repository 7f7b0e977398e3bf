package collector

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/matchnews/pkg/domain"
)

// supported news APIs
const (
	APIGuardian = "guardian"
	APINewsData = "newsdata"
	APICurrents = "currents"
)

// apiContentLimit is the max number of content characters kept from API responses
const apiContentLimit = 1000

// APIEndpoint is a news API access point. Endpoints without a key are skipped.
type APIEndpoint struct {
	Name       string `yaml:"name" json:"name" jsonschema:"required,enum=guardian,enum=newsdata,enum=currents"`
	URL        string `yaml:"url" json:"url" jsonschema:"required"`
	Key        string `yaml:"key" json:"key,omitempty" jsonschema:"description=API key (supports $ENV expansion)"`
	DailyLimit int    `yaml:"daily_limit" json:"daily_limit" jsonschema:"minimum=0"`
}

// NewsAPI collects match articles from guardian, newsdata and currents APIs within daily quotas
type NewsAPI struct {
	endpoints []APIEndpoint
	usage     *UsageLimiter
	client    *httpClient
}

// NewNewsAPI makes news API collector. Usage limiter is shared with the owner, who resets it daily.
func NewNewsAPI(endpoints []APIEndpoint, usage *UsageLimiter, httpOpts HTTPOptions) *NewsAPI {
	return &NewsAPI{endpoints: endpoints, usage: usage, client: newHTTPClient(httpOpts)}
}

// Name returns collector name
func (n *NewsAPI) Name() string { return "api" }

// Health reports every endpoint usable if it has a key and quota left for today
func (n *NewsAPI) Health() map[string]bool {
	res := make(map[string]bool, len(n.endpoints))
	for _, ep := range n.endpoints {
		res[ep.Name] = ep.Key != "" && n.usage.Remaining(ep.Name) > 0
	}
	return res
}

// apiRequest is a single API call
type apiRequest struct {
	endpoint APIEndpoint
	url      string
}

// Collect queries every configured API, within three days before and one day after the match
func (n *NewsAPI) Collect(ctx context.Context, m domain.Match) ([]domain.Article, error) {
	q := NewQuery(m, 72*time.Hour, 24*time.Hour)

	requests := []apiRequest{}
	for _, ep := range n.endpoints {
		if ep.Key == "" {
			lgr.Printf("[DEBUG] no API key for %s, skipped", ep.Name)
			continue
		}
		for _, u := range n.requestURLs(ep, m, q) {
			requests = append(requests, apiRequest{endpoint: ep, url: u})
		}
	}

	articles, err := fanOut(ctx, n.Name(), requests, func(ctx context.Context, r apiRequest) ([]domain.Article, error) {
		if !n.usage.Allow(r.endpoint.Name) {
			lgr.Printf("[WARN] daily limit reached for %s", r.endpoint.Name)
			return []domain.Article{}, nil
		}
		return n.call(ctx, r, q)
	})
	return uniqueLinks(articles), err
}

// requestURLs builds API calls for the match. Guardian and currents are queried per team,
// newsdata with a single combined query.
func (n *NewsAPI) requestURLs(ep APIEndpoint, m domain.Match, q Query) []string {
	dates := func(params url.Values, fromKey, toKey string) {
		if q.From.IsZero() {
			return
		}
		params.Set(fromKey, q.From.Format(time.DateOnly))
		params.Set(toKey, q.To.Format(time.DateOnly))
	}

	res := []string{}
	switch ep.Name {
	case APIGuardian:
		for _, team := range q.Teams {
			params := url.Values{}
			params.Set("q", team+" AND (football OR soccer)")
			params.Set("section", "sport")
			params.Set("show-fields", "headline,trailText,body,thumbnail")
			params.Set("page-size", "20")
			params.Set("api-key", ep.Key)
			dates(params, "from-date", "to-date")
			res = append(res, ep.URL+"?"+params.Encode())
		}
	case APINewsData:
		params := url.Values{}
		query := fmt.Sprintf("(%s AND %s)", m.HomeTeam, m.AwayTeam)
		if len(q.MatchTerms) > 0 {
			query += " OR (" + strings.Join(q.MatchTerms, " OR ") + ")"
		}
		params.Set("q", query)
		params.Set("category", "sports")
		params.Set("language", "en")
		params.Set("apikey", ep.Key)
		dates(params, "from_date", "to_date")
		res = append(res, ep.URL+"?"+params.Encode())
	case APICurrents:
		for _, team := range q.Teams {
			params := url.Values{}
			params.Set("keywords", team+" football")
			params.Set("category", "sports")
			params.Set("language", "en")
			params.Set("page_size", "20")
			params.Set("apiKey", ep.Key)
			dates(params, "start_date", "end_date")
			res = append(res, ep.URL+"?"+params.Encode())
		}
	default:
		lgr.Printf("[WARN] unsupported news API %q", ep.Name)
	}
	return res
}

type guardianResponse struct {
	Response struct {
		Results []struct {
			ID                 string `json:"id"`
			WebTitle           string `json:"webTitle"`
			WebURL             string `json:"webUrl"`
			WebPublicationDate string `json:"webPublicationDate"`
			Fields             struct {
				Headline  string `json:"headline"`
				TrailText string `json:"trailText"`
				Body      string `json:"body"`
			} `json:"fields"`
		} `json:"results"`
	} `json:"response"`
}

type newsDataResponse struct {
	Results []struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Content     string   `json:"content"`
		Link        string   `json:"link"`
		PubDate     string   `json:"pubDate"`
		SourceID    string   `json:"source_id"`
		Creator     []string `json:"creator"`
	} `json:"results"`
}

type currentsResponse struct {
	News []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		Author      string `json:"author"`
		Published   string `json:"published"`
		Language    string `json:"language"`
	} `json:"news"`
}

// call makes the API request and converts results to relevant articles
func (n *NewsAPI) call(ctx context.Context, r apiRequest, q Query) ([]domain.Article, error) {
	raw := []domain.Article{}
	switch r.endpoint.Name {
	case APIGuardian:
		var resp guardianResponse
		if err := n.client.getJSON(ctx, r.url, &resp); err != nil {
			return nil, fmt.Errorf("guardian API: %w", err)
		}
		for _, item := range resp.Response.Results {
			title := item.Fields.Headline
			if title == "" {
				title = item.WebTitle
			}
			raw = append(raw, domain.Article{Title: title, Summary: item.Fields.TrailText, Content: item.Fields.Body,
				Link: item.WebURL, PublishedAt: parseTime(item.WebPublicationDate), Source: "guardian_football",
				Language: "en"})
		}
	case APINewsData:
		var resp newsDataResponse
		if err := n.client.getJSON(ctx, r.url, &resp); err != nil {
			return nil, fmt.Errorf("newsdata API: %w", err)
		}
		for _, item := range resp.Results {
			source := item.SourceID
			if source == "" {
				source = APINewsData
			}
			raw = append(raw, domain.Article{Title: item.Title, Summary: item.Description, Content: item.Content,
				Link: item.Link, Author: strings.Join(item.Creator, ", "), PublishedAt: parseTime(item.PubDate),
				Source: source})
		}
	case APICurrents:
		var resp currentsResponse
		if err := n.client.getJSON(ctx, r.url, &resp); err != nil {
			return nil, fmt.Errorf("currents API: %w", err)
		}
		for _, item := range resp.News {
			raw = append(raw, domain.Article{Title: item.Title, Summary: item.Description, Link: item.URL,
				Author: item.Author, PublishedAt: parseTime(item.Published), Source: APICurrents, Language: item.Language})
		}
	}

	res := make([]domain.Article, 0, len(raw))
	for _, a := range raw {
		a.Title = cleanText(a.Title)
		if a.Title == "" || a.Link == "" || !q.InWindow(a.PublishedAt) {
			continue
		}
		if a.RelevanceScore = q.Relevance(a.Title, a.Summary+" "+a.Content); a.RelevanceScore < MinRelevance {
			continue
		}
		a.Content = truncate(a.Content, apiContentLimit)
		a.SourceType = domain.SourceAPI
		a.Tags = append([]string{r.endpoint.Name}, q.TeamTags(a.Title+" "+a.Summary)...)
		res = append(res, a)
	}
	return res, nil
}

var timeLayouts = []string{
	time.RFC3339, time.RFC1123Z, time.RFC1123, time.DateTime, "2006-01-02 15:04:05 -0700", "2006-01-02 15:04:05 Z0700",
}

// parseTime parses API timestamps, returns zero time for unknown formats.
// Timestamps without zone are UTC.
func parseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// truncate cuts s to at most n runes
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
