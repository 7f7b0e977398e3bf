package collector

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-pkgz/lgr"

	"github.com/umputun/matchnews/pkg/domain"
)

// PageFetcher retrieves decoded pages and extracts readable article text
type PageFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
	Extract(ctx context.Context, url string) (string, error)
}

// scraper source names, known to the quality reputation table
const (
	sourceOfficialClub = "official_club"
	sourceScrapedNews  = "scraped_news"
)

// maxItemsPerPage limits news items taken from a single listing page
const maxItemsPerPage = 10

var (
	itemSelectors    = []string{".news-item", ".article-card", ".news-card", ".post-item", "article", ".article"}
	titleSelectors   = "h1, h2, h3, .title, .headline, .article-title, .news-title"
	summarySelectors = ".summary, .description, .standfirst, p"
	dateSelectors    = "time, [datetime], .date, .publish-date, .article-date, .timestamp"
)

// Site is a news listing page to scrape. Sites with a team are official club sites.
type Site struct {
	Name string `yaml:"name" json:"name" jsonschema:"required"`
	URL  string `yaml:"url" json:"url" jsonschema:"required"`
	Team string `yaml:"team" json:"team,omitempty" jsonschema:"description=club the site belongs to"`
}

// Scraper collects match articles from news listing pages of club and news sites
type Scraper struct {
	sites    []Site
	fetcher  PageFetcher
	gate     *Gate
	fullText bool
}

// NewScraper makes scraper over the sites. With fullText set, the article text of every relevant
// item is extracted from its page.
func NewScraper(sites []Site, fetcher PageFetcher, gate *Gate, fullText bool) *Scraper {
	return &Scraper{sites: sites, fetcher: fetcher, gate: gate, fullText: fullText}
}

// Name returns collector name
func (s *Scraper) Name() string { return "scraper" }

// Collect scrapes general news sites and club sites of the match teams
func (s *Scraper) Collect(ctx context.Context, m domain.Match) ([]domain.Article, error) {
	q := NewQuery(m, 72*time.Hour, 24*time.Hour)

	sites := make([]Site, 0, len(s.sites))
	for _, site := range s.sites {
		if site.Team == "" || strings.EqualFold(site.Team, m.HomeTeam) || strings.EqualFold(site.Team, m.AwayTeam) {
			sites = append(sites, site)
		}
	}

	articles, err := fanOut(ctx, s.Name(), sites, func(ctx context.Context, site Site) ([]domain.Article, error) {
		return s.scrapeSite(ctx, site, q)
	})
	return uniqueLinks(articles), err
}

func (s *Scraper) scrapeSite(ctx context.Context, site Site, q Query) ([]domain.Article, error) {
	pageURL, err := url.Parse(site.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid site URL %s: %w", site.URL, err)
	}

	var page []byte
	err = s.gate.Do(ctx, func(ctx context.Context) error {
		var fetchErr error
		page, fetchErr = s.fetcher.Fetch(ctx, site.URL)
		return fetchErr
	})
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", site.Name, err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parse HTML of %s: %w", site.Name, err)
	}

	source, tags := sourceScrapedNews, []string{"scraped"}
	if site.Team != "" {
		source, tags = sourceOfficialClub, []string{"official", TeamTag(site.Team)}
	}

	res := []domain.Article{}
	for _, a := range extractItems(doc, pageURL) {
		if a.RelevanceScore = q.Relevance(a.Title, a.Summary); a.RelevanceScore < MinRelevance {
			continue
		}
		if !q.InWindow(a.PublishedAt) {
			continue
		}
		a.Source = source
		a.SourceType = domain.SourceScrape
		a.Tags = unionTags(tags, q.TeamTags(a.Title+" "+a.Summary))
		if s.fullText {
			s.fillContent(ctx, &a)
		}
		res = append(res, a)
	}
	return res, nil
}

// fillContent extracts full article text, failures keep the listing summary only
func (s *Scraper) fillContent(ctx context.Context, a *domain.Article) {
	err := s.gate.Do(ctx, func(ctx context.Context) error {
		text, err := s.fetcher.Extract(ctx, a.Link)
		if err != nil {
			return err
		}
		a.Content = text
		return nil
	})
	if err != nil {
		lgr.Printf("[DEBUG] failed to extract content of %s: %v", a.Link, err)
	}
}

// extractItems finds news items on a listing page using the first item selector that matches
func extractItems(doc *goquery.Document, pageURL *url.URL) []domain.Article {
	var items *goquery.Selection
	for _, sel := range itemSelectors {
		if found := doc.Find(sel); found.Length() > 0 {
			items = found
			break
		}
	}
	if items == nil {
		return nil
	}

	res := []domain.Article{}
	items.EachWithBreak(func(_ int, item *goquery.Selection) bool {
		title := cleanText(item.Find(titleSelectors).First().Text())
		href, ok := item.Find("a[href]").First().Attr("href")
		if !ok {
			href, ok = item.Attr("href")
		}
		if title == "" || !ok {
			return true
		}
		link, err := pageURL.Parse(strings.TrimSpace(href))
		if err != nil {
			return true
		}
		a := domain.Article{
			Title:       title,
			Summary:     cleanText(item.Find(summarySelectors).First().Text()),
			Link:        link.String(),
			PublishedAt: itemDate(item),
		}
		res = append(res, a)
		return len(res) < maxItemsPerPage
	})
	return res
}

// itemDate reads publication date from datetime attribute or date element text
func itemDate(item *goquery.Selection) time.Time {
	el := item.Find(dateSelectors).First()
	if el.Length() == 0 {
		return time.Time{}
	}
	if dt, ok := el.Attr("datetime"); ok {
		if t := parseTime(dt); !t.IsZero() {
			return t
		}
	}
	text := cleanText(el.Text())
	for _, layout := range []string{"2 January 2006", "January 2, 2006", "02/01/2006", time.DateOnly} {
		if t, err := time.Parse(layout, text); err == nil {
			return t.UTC()
		}
	}
	return parseTime(text)
}

// unionTags merges tag lists keeping order, without duplicates
func unionTags(lists ...[]string) []string {
	seen := map[string]bool{}
	res := []string{}
	for _, l := range lists {
		for _, t := range l {
			if t != "" && !seen[t] {
				seen[t] = true
				res = append(res, t)
			}
		}
	}
	return res
}
