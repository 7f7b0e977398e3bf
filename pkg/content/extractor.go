package content

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	readability "github.com/go-shiori/go-readability"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html/charset"
)

// maxPageSize limits the amount of html read from a page
const maxPageSize = 5 * 1024 * 1024

// HTTPExtractor extracts article text from pages. Trafilatura is tried first, readability is
// the fallback for pages trafilatura can't handle.
type HTTPExtractor struct {
	timeout   time.Duration
	userAgent string
	client    *http.Client
}

// NewHTTPExtractor creates a new content extractor
func NewHTTPExtractor(timeout time.Duration) *HTTPExtractor {
	return &HTTPExtractor{
		timeout:   timeout,
		userAgent: "Mozilla/5.0 (compatible; MatchNews/1.0)",
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// WithUserAgent sets user agent of extraction requests
func (e *HTTPExtractor) WithUserAgent(ua string) *HTTPExtractor {
	if ua != "" {
		e.userAgent = ua
	}
	return e
}

// Extract retrieves and extracts text content from the given URL
func (e *HTTPExtractor) Extract(ctx context.Context, urlStr string) (string, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return "", fmt.Errorf("parse URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return "", fmt.Errorf("invalid URL: %s", urlStr)
	}

	body, err := e.Fetch(ctx, urlStr)
	if err != nil {
		return "", err
	}
	return ExtractHTML(body, parsedURL)
}

// Fetch downloads the page and returns its html decoded to utf-8
func (e *HTTPExtractor) Fetch(ctx context.Context, urlStr string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	SetBrowserHeaders(req)
	req.Header.Set("User-Agent", e.userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch URL %s: %w", urlStr, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d for URL %s", resp.StatusCode, urlStr)
	}

	reader, err := charset.NewReader(io.LimitReader(resp.Body, maxPageSize), resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("decode charset of %s: %w", urlStr, err)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read body of %s: %w", urlStr, err)
	}
	return body, nil
}

// ExtractHTML extracts main text from the html page
func ExtractHTML(page []byte, pageURL *url.URL) (string, error) {
	opts := trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
		ExcludeTables:   false,
		IncludeImages:   false,
		IncludeLinks:    false,
		Deduplicate:     true,
		OriginalURL:     pageURL,
	}

	result, err := trafilatura.Extract(bytes.NewReader(page), opts)
	if err == nil && result != nil && strings.TrimSpace(result.ContentText) != "" {
		return strings.TrimSpace(result.ContentText), nil
	}
	if err != nil {
		lgr.Printf("[DEBUG] trafilatura failed for %s, trying readability: %v", pageURL, err)
	}

	article, rerr := readability.FromReader(bytes.NewReader(page), pageURL)
	if rerr != nil {
		return "", fmt.Errorf("extract content from %s: %w", pageURL, rerr)
	}
	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		return "", fmt.Errorf("no text content extracted from %s", pageURL)
	}
	return text, nil
}
