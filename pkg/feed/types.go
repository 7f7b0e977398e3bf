package feed

import (
	"encoding/xml"
)

// RSS is the root element of a match feed
type RSS struct {
	XMLName xml.Name `xml:"rss"`
	Version string   `xml:"version,attr"`
	Atom    string   `xml:"xmlns:atom,attr"`
	Channel *Channel `xml:"channel"`
}

// Channel describes a single match
type Channel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	Language      string    `xml:"language,omitempty"`
	Category      string    `xml:"category,omitempty"`
	Generator     string    `xml:"generator,omitempty"`
	TTL           int       `xml:"ttl,omitempty"` // minutes
	LastBuildDate string    `xml:"lastBuildDate"`
	SelfLink      *AtomLink `xml:"http://www.w3.org/2005/Atom link"`
	Items         []*Item   `xml:"item"`
}

// AtomLink is the atom:link self reference recommended for RSS 2.0 feeds
type AtomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

// Item is a single article
type Item struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	GUID        GUID     `xml:"guid"`
	Description string   `xml:"description"`
	Author      string   `xml:"author,omitempty"`
	PubDate     string   `xml:"pubDate,omitempty"`
	Categories  []string `xml:"category"`
	Source      *Source  `xml:"source,omitempty"`
}

// GUID identifies an item, the article link in our feeds
type GUID struct {
	Value       string `xml:",chardata"`
	IsPermaLink bool   `xml:"isPermaLink,attr"`
}

// Source names the outlet the article came from
type Source struct {
	Name string `xml:",chardata"`
	URL  string `xml:"url,attr"`
}
