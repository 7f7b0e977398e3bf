package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/matchnews/pkg/domain"
)

const guardianBody = `{"response": {"status": "ok", "results": [
	{"id": "football/2024/may/11/arsenal-chelsea-preview", "webTitle": "Arsenal v Chelsea: match preview",
		"webUrl": "https://www.theguardian.com/football/2024/may/11/arsenal-chelsea-preview",
		"webPublicationDate": "2024-05-11T09:00:00Z",
		"fields": {"headline": "Arsenal v Chelsea: match preview", "trailText": "Team news, stats and prediction",
			"body": "<p>Long body</p>"}},
	{"id": "sport/cricket", "webTitle": "County cricket scores", "webUrl": "https://www.theguardian.com/sport/cricket",
		"webPublicationDate": "2024-05-11T09:00:00Z"}
]}}`

const currentsBody = `{"status": "ok", "news": [
	{"id": "c1", "title": "Chelsea face Arsenal test", "description": "Pochettino on the derby",
		"url": "https://currents.example.com/chelsea-arsenal", "author": "Reporter",
		"published": "2024-05-11 08:00:00 +0000", "language": "en"}
]}`

func TestNewsAPI_Collect(t *testing.T) {
	var guardianHits, newsdataHits, currentsHits int32
	mux := http.NewServeMux()
	mux.HandleFunc("/guardian", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&guardianHits, 1)
		assert.Equal(t, "g-key", r.URL.Query().Get("api-key"))
		assert.Equal(t, "2024-05-09", r.URL.Query().Get("from-date"))
		assert.Equal(t, "2024-05-13", r.URL.Query().Get("to-date"))
		assert.Equal(t, "sport", r.URL.Query().Get("section"))
		_, _ = w.Write([]byte(guardianBody))
	})
	mux.HandleFunc("/newsdata", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&newsdataHits, 1)
	})
	mux.HandleFunc("/currents", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&currentsHits, 1)
		assert.Equal(t, "c-key", r.URL.Query().Get("apiKey"))
		assert.Equal(t, "2024-05-09", r.URL.Query().Get("start_date"))
		_, _ = w.Write([]byte(currentsBody))
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	endpoints := []APIEndpoint{
		{Name: APIGuardian, URL: ts.URL + "/guardian", Key: "g-key", DailyLimit: 1},
		{Name: APINewsData, URL: ts.URL + "/newsdata", DailyLimit: 100},
		{Name: APICurrents, URL: ts.URL + "/currents", Key: "c-key", DailyLimit: 10},
	}
	usage := NewUsageLimiter(map[string]int{APIGuardian: 1, APINewsData: 100, APICurrents: 10})
	api := NewNewsAPI(endpoints, usage, HTTPOptions{Timeout: 5 * time.Second, Gate: NewGate("apis", 2, 0)})
	assert.Equal(t, "api", api.Name())

	articles, err := api.Collect(context.Background(), testMatch)
	require.NoError(t, err)
	require.Len(t, articles, 2)

	assert.Equal(t, int32(1), atomic.LoadInt32(&guardianHits), "guardian daily limit allows a single call")
	assert.Zero(t, atomic.LoadInt32(&newsdataHits), "no key, no calls")
	assert.Equal(t, int32(2), atomic.LoadInt32(&currentsHits), "currents queried per team")
	assert.Equal(t, map[string]int{APIGuardian: 1, APICurrents: 2}, usage.Usage())

	byTitle := map[string]domain.Article{}
	for _, a := range articles {
		byTitle[a.Title] = a
	}

	g := byTitle["Arsenal v Chelsea: match preview"]
	assert.Equal(t, "https://www.theguardian.com/football/2024/may/11/arsenal-chelsea-preview", g.Link)
	assert.Equal(t, "Team news, stats and prediction", g.Summary)
	assert.Equal(t, "<p>Long body</p>", g.Content)
	assert.Equal(t, "guardian_football", g.Source)
	assert.Equal(t, domain.SourceAPI, g.SourceType)
	assert.Equal(t, "en", g.Language)
	assert.Equal(t, time.Date(2024, 5, 11, 9, 0, 0, 0, time.UTC), g.PublishedAt)
	assert.Equal(t, []string{APIGuardian, "arsenal", "chelsea"}, g.Tags)

	c := byTitle["Chelsea face Arsenal test"]
	assert.Equal(t, APICurrents, c.Source)
	assert.Equal(t, "Reporter", c.Author)
	assert.Equal(t, time.Date(2024, 5, 11, 8, 0, 0, 0, time.UTC), c.PublishedAt)
	assert.InDelta(t, 1.0, c.RelevanceScore, 0.0001)
}

func TestNewsAPI_NewsData(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		assert.Contains(t, q, "(Arsenal AND Chelsea)")
		assert.Contains(t, q, "Arsenal vs Chelsea")
		_, _ = w.Write([]byte(`{"status": "success", "results": [
			{"title": "Arsenal vs Chelsea: five things to watch", "description": "Derby preview", "content": "Full text",
				"link": "https://news.example.com/five-things", "pubDate": "2024-05-11 07:30:00",
				"source_id": "goal_com", "creator": ["Jane Doe", "John Roe"]},
			{"title": "", "link": "https://news.example.com/untitled"}
		]}`))
	}))
	defer ts.Close()

	api := NewNewsAPI([]APIEndpoint{{Name: APINewsData, URL: ts.URL, Key: "n-key"}},
		NewUsageLimiter(map[string]int{APINewsData: 5}), HTTPOptions{Timeout: time.Second})
	articles, err := api.Collect(context.Background(), testMatch)
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, "goal_com", articles[0].Source)
	assert.Equal(t, "Jane Doe, John Roe", articles[0].Author)
	assert.Equal(t, "Full text", articles[0].Content)
	assert.Equal(t, time.Date(2024, 5, 11, 7, 30, 0, 0, time.UTC), articles[0].PublishedAt)
}

func TestNewsAPI_QuotaExhausted(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer ts.Close()

	api := NewNewsAPI([]APIEndpoint{{Name: APICurrents, URL: ts.URL, Key: "k"}},
		NewUsageLimiter(map[string]int{APICurrents: 0}), HTTPOptions{Timeout: time.Second})
	articles, err := api.Collect(context.Background(), testMatch)
	require.NoError(t, err)
	assert.Empty(t, articles)
	assert.Zero(t, atomic.LoadInt32(&hits))
}

func TestNewsAPI_Health(t *testing.T) {
	api := NewNewsAPI([]APIEndpoint{
		{Name: APIGuardian, URL: "http://localhost", Key: "k"},
		{Name: APINewsData, URL: "http://localhost"},
		{Name: APICurrents, URL: "http://localhost", Key: "k"},
	}, NewUsageLimiter(map[string]int{APIGuardian: 10, APINewsData: 10, APICurrents: 0}), HTTPOptions{})
	assert.Equal(t, map[string]bool{APIGuardian: true, APINewsData: false, APICurrents: false}, api.Health())
}

func TestParseTime(t *testing.T) {
	want := time.Date(2024, 5, 11, 8, 0, 0, 0, time.UTC)
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-05-11T08:00:00Z", want},
		{"2024-05-11T10:00:00+02:00", want},
		{"2024-05-11 08:00:00 +0000", want},
		{"2024-05-11 08:00:00", want},
		{"Sat, 11 May 2024 08:00:00 +0000", want},
		{" 2024-05-11T08:00:00Z ", want},
		{"yesterday", time.Time{}},
		{"", time.Time{}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.True(t, tt.want.Equal(parseTime(tt.in)), "got %v", parseTime(tt.in))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "Saïd", truncate("Saïd Müller", 4))
}
