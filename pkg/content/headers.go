package content

import (
	"math/rand"
	"net/http"
)

// browserProfile is a set of headers a real browser sends on a top-level page visit
type browserProfile struct {
	accept  string
	secCHUA string // empty for browsers without client hints
}

var browserProfiles = []browserProfile{
	{ // chrome
		accept:  "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8,application/signed-exchange;v=b3;q=0.7",
		secCHUA: `"Chromium";v="124", "Google Chrome";v="124", "Not-A.Brand";v="99"`,
	},
	{ // edge
		accept:  "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8,application/signed-exchange;v=b3;q=0.7",
		secCHUA: `"Chromium";v="124", "Microsoft Edge";v="124", "Not-A.Brand";v="99"`,
	},
	{ // firefox
		accept: "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
	},
}

// football audiences of club and news sites we read
var acceptLanguages = []string{
	"en-GB,en;q=0.9",
	"en-US,en;q=0.9",
	"en-GB,en-US;q=0.9,en;q=0.8",
	"en-IE,en;q=0.9",
	"es-ES,es;q=0.9,en;q=0.8",
	"it-IT,it;q=0.9,en;q=0.8",
	"de-DE,de;q=0.9,en;q=0.8",
	"fr-FR,fr;q=0.9,en;q=0.8",
	"pt-PT,pt;q=0.9,en;q=0.8",
	"nl-NL,nl;q=0.9,en;q=0.8",
}

// SetBrowserHeaders makes request look like a browser visit with a random profile and language.
// Accept-Encoding is left to the transport, so responses are decompressed transparently.
func SetBrowserHeaders(req *http.Request) {
	setBrowserHeaders(req, rand.Intn) //nolint:gosec // non-cryptographic randomness is fine for header variation
}

// setBrowserHeaders sets headers picking random values with pick(n), returning [0,n)
func setBrowserHeaders(req *http.Request, pick func(n int) int) {
	profile := browserProfiles[pick(len(browserProfiles))]
	req.Header.Set("Accept", profile.accept)
	req.Header.Set("Accept-Language", acceptLanguages[pick(len(acceptLanguages))])
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
	if profile.secCHUA != "" {
		req.Header.Set("Sec-CH-UA", profile.secCHUA)
		req.Header.Set("Sec-CH-UA-Mobile", "?0")
	}

	req.Header.Set("Sec-Fetch-Dest", "document")
	req.Header.Set("Sec-Fetch-Mode", "navigate")
	req.Header.Set("Sec-Fetch-User", "?1")
	req.Header.Set("Sec-Fetch-Site", "none")

	// some visits come from the site's front page
	if req.URL != nil && req.URL.Host != "" && req.URL.Path != "" && req.URL.Path != "/" && pick(2) == 0 {
		req.Header.Set("Referer", req.URL.Scheme+"://"+req.URL.Host+"/")
		req.Header.Set("Sec-Fetch-Site", "same-origin")
	}

	// dnt in about a third of visits
	if pick(3) == 0 {
		req.Header.Set("DNT", "1")
	}
}
