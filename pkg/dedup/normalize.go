package dedup

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	titlePrefixRe   = regexp.MustCompile(`(?i)^(breaking|official|exclusive|live|update)\s*:\s*`)
	titlePipeRe     = regexp.MustCompile(`\s*\|.*$`)
	titleDashRe     = regexp.MustCompile(`\s+[-–—]\s+.*$`)
	titleEllipsisRe = regexp.MustCompile(`\s*(\.\.\.|…)$`)
	htmlTagRe       = regexp.MustCompile(`<[^>]+>`)
	paragraphRe     = regexp.MustCompile(`(?i)\n\s*\n|</p>|<p[^>]*>`)
	schemeRe        = regexp.MustCompile(`^[a-z][a-z0-9+.-]*://`)
)

// trackingParams are query keys dropped from URLs before comparison, utm_* is handled separately
var trackingParams = map[string]bool{"ref": true, "source": true, "fbclid": true, "gclid": true}

// NormalizeTitle lowercases the title, drops "BREAKING:"-like prefixes, " | Source" and
// " - Source" suffixes, trailing ellipsis and collapses whitespace.
// The dash suffix needs surrounding spaces so scores like "3-1" survive.
func NormalizeTitle(title string) string {
	if strings.TrimSpace(title) == "" {
		return ""
	}
	res := strings.ToLower(strings.TrimSpace(title))
	res = titlePrefixRe.ReplaceAllString(res, "")
	res = titlePipeRe.ReplaceAllString(res, "")
	res = titleDashRe.ReplaceAllString(res, "")
	res = titleEllipsisRe.ReplaceAllString(res, "")
	return collapseSpaces(res)
}

// NormalizeContent strips html tags, lowercases and collapses whitespace
func NormalizeContent(content string) string {
	if content == "" {
		return ""
	}
	res := htmlTagRe.ReplaceAllString(content, " ")
	return collapseSpaces(strings.ToLower(res))
}

// FirstParagraph returns the first non-empty paragraph of the content with html tags removed.
// Paragraphs are separated by blank lines or <p> tags.
func FirstParagraph(content string) string {
	if content == "" {
		return ""
	}
	for _, p := range paragraphRe.Split(content, -1) {
		p = strings.TrimSpace(htmlTagRe.ReplaceAllString(p, ""))
		if p != "" {
			return p
		}
	}
	return ""
}

// NormalizeURL drops scheme, "www.", tracking query params (utm_*, ref, source, fbclid, gclid)
// and a trailing slash. Returns empty string for urls which can't be parsed.
func NormalizeURL(link string) string {
	link = strings.TrimSpace(link)
	if link == "" {
		return ""
	}
	if _, err := url.Parse(link); err != nil {
		return ""
	}
	if strings.ContainsAny(link, " \t\n") {
		return ""
	}

	res := strings.ToLower(link)
	res = schemeRe.ReplaceAllString(res, "")
	res = strings.TrimPrefix(res, "www.")

	base, query, hasQuery := strings.Cut(res, "?")
	base = strings.TrimRight(base, "/")
	if !hasQuery {
		return base
	}

	kept := make([]string, 0, 4)
	for _, param := range strings.Split(query, "&") {
		if param == "" {
			continue
		}
		key, _, _ := strings.Cut(param, "=")
		if strings.HasPrefix(key, "utm_") || trackingParams[key] {
			continue
		}
		kept = append(kept, param)
	}
	if len(kept) == 0 {
		return base
	}
	return base + "?" + strings.Join(kept, "&")
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
