package config

import (
	"os"

	"github.com/umputun/matchnews/pkg/collector"
)

// built-in sources used when the config file doesn't list any

func defaultFeeds() []collector.Feed {
	return []collector.Feed{
		{Name: "bbc_sport", URL: "https://feeds.bbci.co.uk/sport/football/rss.xml"},
		{Name: "guardian_football", URL: "https://www.theguardian.com/football/rss"},
		{Name: "espn_fc", URL: "https://www.espn.com/espn/rss/soccer/news"},
		{Name: "sky_sports", URL: "https://www.skysports.com/rss/12040"},
		{Name: "premier_league", URL: "https://www.premierleague.com/en-gb/news/rss"},
		{Name: "champions_league", URL: "https://www.uefa.com/uefachampionsleague/news/rss.xml"},
		{Name: "goal_com", URL: "https://www.goal.com/feeds/news?fmt=rss"},
		{Name: "official_club", URL: "https://www.arsenal.com/rss/news", Teams: []string{"Arsenal"}},
		{Name: "official_club", URL: "https://www.liverpoolfc.com/rss/news", Teams: []string{"Liverpool"}},
		{Name: "official_club", URL: "https://www.chelseafc.com/en/rss", Teams: []string{"Chelsea"}},
		{Name: "official_club", URL: "https://www.manutd.com/en/rss", Teams: []string{"Manchester United"}},
		{Name: "official_club", URL: "https://www.mancity.com/rss/news", Teams: []string{"Manchester City"}},
		{Name: "official_club", URL: "https://www.tottenhamhotspur.com/rss", Teams: []string{"Tottenham"}},
	}
}

func defaultTeamSubreddits() map[string]string {
	return map[string]string{
		"Manchester United": "reddevils",
		"Liverpool":         "LiverpoolFC",
		"Arsenal":           "Gunners",
		"Chelsea":           "chelseafc",
		"Tottenham":         "coys",
		"Manchester City":   "MCFC",
		"Real Madrid":       "realmadrid",
		"Barcelona":         "Barca",
		"Juventus":          "Juve",
		"AC Milan":          "ACMilan",
		"Bayern Munich":     "fcbayern",
		"Borussia Dortmund": "borussiadortmund",
	}
}

func defaultClubAccounts() map[string]string {
	return map[string]string{
		"Manchester United": "ManUtd",
		"Liverpool":         "LFC",
		"Arsenal":           "Arsenal",
		"Chelsea":           "ChelseaFC",
		"Tottenham":         "SpursOfficial",
		"Manchester City":   "ManCity",
		"Real Madrid":       "realmadrid",
		"Barcelona":         "FCBarcelona",
		"Juventus":          "juventusfc",
		"AC Milan":          "acmilan",
		"Bayern Munich":     "FCBayern",
		"Borussia Dortmund": "BVB",
	}
}

// defaultAPIEndpoints reads keys from environment, endpoints without a key are skipped by the collector
func defaultAPIEndpoints() []collector.APIEndpoint {
	return []collector.APIEndpoint{
		{Name: collector.APIGuardian, URL: "https://content.guardianapis.com/search", Key: os.Getenv("GUARDIAN_API_KEY"), DailyLimit: 5000},
		{Name: collector.APINewsData, URL: "https://newsdata.io/api/1/news", Key: os.Getenv("NEWSDATA_API_KEY"), DailyLimit: 200},
		{Name: collector.APICurrents, URL: "https://api.currentsapi.services/v1/search", Key: os.Getenv("CURRENTS_API_KEY"), DailyLimit: 600},
	}
}

func defaultSites() []collector.Site {
	return []collector.Site{
		{Name: "official_club", URL: "https://www.arsenal.com/news", Team: "Arsenal"},
		{Name: "official_club", URL: "https://www.liverpoolfc.com/news", Team: "Liverpool"},
		{Name: "official_club", URL: "https://www.chelseafc.com/en/news", Team: "Chelsea"},
		{Name: "official_club", URL: "https://www.manutd.com/en/news", Team: "Manchester United"},
		{Name: "official_club", URL: "https://www.mancity.com/news", Team: "Manchester City"},
		{Name: "official_club", URL: "https://www.tottenhamhotspur.com/news", Team: "Tottenham"},
		{Name: "official_club", URL: "https://www.realmadrid.com/en/news", Team: "Real Madrid"},
		{Name: "official_club", URL: "https://www.fcbarcelona.com/en/news", Team: "Barcelona"},
	}
}
