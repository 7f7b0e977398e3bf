package content

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetBrowserHeaders(t *testing.T) {
	t.Run("chrome with referer and dnt", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, "https://www.arsenal.com/news/team-news", http.NoBody)
		require.NoError(t, err)
		setBrowserHeaders(req, func(int) int { return 0 })

		assert.Contains(t, req.Header.Get("Accept"), "signed-exchange")
		assert.Equal(t, "en-GB,en;q=0.9", req.Header.Get("Accept-Language"))
		assert.Contains(t, req.Header.Get("Sec-CH-UA"), "Google Chrome")
		assert.Equal(t, "https://www.arsenal.com/", req.Header.Get("Referer"))
		assert.Equal(t, "same-origin", req.Header.Get("Sec-Fetch-Site"))
		assert.Equal(t, "1", req.Header.Get("DNT"))
		assert.Empty(t, req.Header.Get("Accept-Encoding"))
	})

	t.Run("firefox direct visit", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, "https://www.chelseafc.com/en/news", http.NoBody)
		require.NoError(t, err)
		setBrowserHeaders(req, func(n int) int { return n - 1 })

		assert.NotContains(t, req.Header.Get("Accept"), "signed-exchange")
		assert.Equal(t, "nl-NL,nl;q=0.9,en;q=0.8", req.Header.Get("Accept-Language"))
		assert.Empty(t, req.Header.Get("Sec-CH-UA"))
		assert.Empty(t, req.Header.Get("Referer"))
		assert.Equal(t, "none", req.Header.Get("Sec-Fetch-Site"))
		assert.Empty(t, req.Header.Get("DNT"))
	})

	t.Run("no referer for front page", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, "https://www.bbc.co.uk/", http.NoBody)
		require.NoError(t, err)
		setBrowserHeaders(req, func(int) int { return 0 })
		assert.Empty(t, req.Header.Get("Referer"))
	})

	t.Run("random pick stays in range", func(t *testing.T) {
		for range 50 {
			req, err := http.NewRequest(http.MethodGet, "https://www.skysports.com/football/news", http.NoBody)
			require.NoError(t, err)
			SetBrowserHeaders(req)
			assert.NotEmpty(t, req.Header.Get("Accept"))
			assert.NotEmpty(t, req.Header.Get("Accept-Language"))
		}
	})
}
