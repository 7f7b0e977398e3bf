package dedup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"empty", "", ""},
		{"spaces only", "   ", ""},
		{"plain", "Arsenal sign new striker", "arsenal sign new striker"},
		{"breaking prefix", "BREAKING: Arsenal sign new striker", "arsenal sign new striker"},
		{"official prefix no space", "Official:Chelsea appoint coach", "chelsea appoint coach"},
		{"pipe suffix", "Man United beat Liverpool 3-1 | BBC Sport", "man united beat liverpool 3-1"},
		{"dash suffix", "Arsenal sign new striker - Sky News", "arsenal sign new striker"},
		{"em dash suffix", "Arsenal sign new striker — Sky News", "arsenal sign new striker"},
		{"score kept", "Arsenal 2-0 Spurs", "arsenal 2-0 spurs"},
		{"ellipsis", "Salah injury update...", "salah injury update"},
		{"whitespace collapsed", "  Salah   scores\ttwice ", "salah scores twice"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTitle(tt.in))
		})
	}
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"empty", "", ""},
		{"scheme and www", "https://www.bbc.co.uk/sport/football/123", "bbc.co.uk/sport/football/123"},
		{"utm dropped", "https://www.bbc.co.uk/sport/football/123?utm_source=x", "bbc.co.uk/sport/football/123"},
		{"tracking dropped, other kept", "http://example.com/a?ref=home&id=5&fbclid=zz", "example.com/a?id=5"},
		{"trailing slash", "https://example.com/news/", "example.com/news"},
		{"case folded", "HTTPS://Example.COM/News", "example.com/news"},
		{"whitespace inside", "https://exa mple.com/x", ""},
		{"broken", "http://[::1", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeURL(tt.in))
		})
	}
}

func TestNormalizeContent(t *testing.T) {
	assert.Empty(t, NormalizeContent(""))
	assert.Equal(t, "salah scores twice as liverpool win",
		NormalizeContent("<p>Salah  <b>scores</b> twice</p>\n\nas Liverpool WIN"))
}

func TestFirstParagraph(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"empty", "", ""},
		{"blank lines", "First para.\n\nSecond para.", "First para."},
		{"leading blank", "\n\n  \n\nFirst para.\n\nSecond.", "First para."},
		{"html paragraphs", "<p>One <b>bold</b></p><p>Two</p>", "One bold"},
		{"single", "just text", "just text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FirstParagraph(tt.in))
		})
	}
}

func TestRatio(t *testing.T) {
	assert.InDelta(t, 1.0, Ratio("", ""), 0.0001)
	assert.InDelta(t, 1.0, Ratio("abc", "abc"), 0.0001)
	assert.InDelta(t, 0.0, Ratio("abc", "xyz"), 0.0001)
	assert.InDelta(t, 0.892, Ratio("manchester united beat liverpool 3-1", "man united beat liverpool 3-1"), 0.001)
}
