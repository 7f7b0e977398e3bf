package quality

// sourceWeights is the reputation table, keyed by source name or by source type
var sourceWeights = map[string]float64{
	"bbc_sport":           0.95,
	"guardian_football":   0.92,
	"sky_sports":          0.88,
	"espn_fc":             0.85,
	"official_club":       0.90,
	"premier_league":      0.88,
	"champions_league":    0.85,
	"reddit_match_thread": 0.75,
	"reddit_discussion":   0.65,
	"twitter_verified":    0.70,
	"twitter_journalist":  0.75,
	"scraped_news":        0.60,
	"google_news":         0.55,
}

// tier is a credibility bracket, sources are matched by substring of the source name
type tier struct {
	multiplier float64
	sources    []string
}

// tiers are ordered from the most credible, the first match wins
var tiers = []tier{
	{1.0, []string{"bbc_sport", "guardian_football", "sky_sports", "official_club"}},
	{0.95, []string{"espn_fc", "premier_league", "champions_league", "reuters_sport"}},
	{0.85, []string{"cnn_sport", "goal_com", "football_365", "transfermarkt"}},
	{0.75, []string{"reddit_match_thread", "twitter_journalist", "scraped_news"}},
	{0.65, []string{"reddit_discussion", "twitter_verified", "google_news"}},
}

var (
	officialMarkers   = []string{"official", "verified"}
	aggregatorMarkers = []string{"aggregator", "compilation", "roundup"}
)

// positive lexical indicators, grouped as authority language, depth language and attribution
var positiveIndicators = [][]string{
	{"official", "verified", "confirmed", "statement", "press release", "exclusive", "interview", "quotes", "breaking"},
	{"analysis", "detailed", "comprehensive", "in-depth", "expert", "statistics", "data", "evidence", "research", "study"},
	{"according to", "sources say", "confirmed by", "reported by", "spokesperson", "manager said", "player said",
		"official statement"},
}

// negative lexical indicators: speculation, clickbait and low quality signals
var negativeIndicators = [][]string{
	{"rumor", "rumour", "speculation", "allegedly", "reportedly", "unconfirmed", "gossip", "whisper", "buzz", "chatter"},
	{"shocking", "incredible", "unbelievable", "amazing", "stunning", "you won't believe", "this will blow your mind", "viral"},
	{"opinion", "blog", "personal view", "rant", "hot take", "controversial", "drama", "feud", "controversy"},
}

var authorityTerms = []string{
	"manager", "coach", "player", "spokesperson", "chairman", "director", "official", "statement",
	"press conference", "interview", "quotes", "said", "confirmed", "announced",
}

// contentMultipliers scale the final score by content type, unknown types keep 1.0
var contentMultipliers = map[string]float64{
	"breaking_news": 1.3,
	"exclusive":     1.2,
	"match_preview": 1.1,
	"match_report":  1.15,
	"injury_news":   1.1,
	"transfer_news": 1.05,
	"opinion":       0.8,
	"rumor":         0.6,
}

const (
	redditUpvoteWeight  = 0.001
	redditCommentWeight = 0.002
)

// journalists is the allowlist of high-profile twitter accounts
var journalists = map[string]bool{"FabrizioRomano": true, "David_Ornstein": true, "JamesPearceLFC": true}

var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true, "in": true, "on": true,
	"at": true, "to": true, "for": true, "of": true, "with": true, "by": true,
}

// sub-score weights of the final score
const (
	weightSource      = 0.30
	weightContent     = 0.25
	weightAuthority   = 0.20
	weightFreshness   = 0.10
	weightEngagement  = 0.10
	weightConsistency = 0.05
)
