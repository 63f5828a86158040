package botdetection

import "strings"

// substrings of lowercased user agents that belong to crawlers, link
// previewers, monitoring probes and scripted clients
var botPatterns = []string{
	"bot",
	"crawler",
	"spider",
	"slurp",
	"scanner",
	"headlesschrome",
	"phantomjs",
	"selenium",
	"puppeteer",
	"playwright",
	"lighthouse",
	"pagespeed",
	"pingdom",
	"uptimerobot",
	"statuscake",
	"facebookexternalhit",
	"whatsapp",
	"telegram",
	"slack",
	"discord",
	"embedly",
	"preview",
	"python-requests",
	"python-urllib",
	"aiohttp",
	"curl",
	"wget",
	"httpie",
	"java/",
	"okhttp",
	"go-http-client",
	"node-fetch",
	"axios",
	"postman",
}

// IsBotUserAgent reports whether a visit from userAgent should be left out
// of visitor counts. An empty user agent counts as a bot.
func IsBotUserAgent(userAgent string) bool {
	return MatchedPattern(userAgent) != ""
}

// MatchedPattern returns the pattern that flagged userAgent, "empty" for a
// blank one, or "" for a human looking browser
func MatchedPattern(userAgent string) string {
	ua := strings.ToLower(strings.TrimSpace(userAgent))
	if ua == "" {
		return "empty"
	}
	for _, pattern := range botPatterns {
		if strings.Contains(ua, pattern) {
			return pattern
		}
	}
	return ""
}
