package dedup

import (
	"crypto/md5" //nolint:gosec // hashes are identity keys, not security
	"encoding/hex"

	"github.com/umputun/matchnews/pkg/domain"
)

// fingerprint keeps normalized forms and hashes of an article, computed once per dedup pass
type fingerprint struct {
	title   string // normalized title
	content string // normalized full body, used for fuzzy comparison
	url     string // normalized url
	hashes  domain.ArticleHashSet
}

func newFingerprint(a *domain.Article) fingerprint {
	fp := fingerprint{
		title:   NormalizeTitle(a.Title),
		content: NormalizeContent(a.Body()),
		url:     NormalizeURL(a.URL()),
	}

	firstPara := NormalizeContent(FirstParagraph(a.Body()))
	fp.hashes = domain.ArticleHashSet{
		Title:    hashNonEmpty(fp.title),
		Content:  hashNonEmpty(firstPara),
		URL:      hashNonEmpty(fp.url),
		Combined: hashNonEmpty(fp.title + firstPara),
		Exact:    hashNonEmpty(a.Title + a.Body() + a.URL()),
	}
	return fp
}

// Hashes computes the hash set of an article
func Hashes(a *domain.Article) domain.ArticleHashSet {
	return newFingerprint(a).hashes
}

// hashNonEmpty returns md5 hex of s, empty input gives empty key which never matches
func hashNonEmpty(s string) string {
	if s == "" {
		return ""
	}
	sum := md5.Sum([]byte(s)) //nolint:gosec // not used for security
	return hex.EncodeToString(sum[:])
}
