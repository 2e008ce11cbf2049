// Package botdetect classifies requesting user agents and keeps an advisory
// count of bot visits.
package botdetect

import "strings"

// Kind is the broad class of a requesting agent.
type Kind int

const (
	// KindBrowser is an interactive browser; it bypasses the render pipeline.
	KindBrowser Kind = iota
	// KindBot is a recognized crawler, previewer, or AI answer engine.
	KindBot
	// KindNonBrowser is any other non-interactive client, e.g. curl.
	KindNonBrowser
)

// Agent is the classification result for one User-Agent string.
type Agent struct {
	Kind    Kind
	BotName string
}

// NonInteractive reports whether the agent should receive a prerendered document.
func (a Agent) NonInteractive() bool {
	return a.Kind != KindBrowser
}

// botTokens lists lowercase substrings identifying known crawlers. Order
// matters only for telemetry naming when a UA carries several tokens.
var botTokens = []string{
	"googlebot",
	"google-extended",
	"bingbot",
	"duckduckbot",
	"yandexbot",
	"baiduspider",
	"slurp",
	"applebot",
	"facebookexternalhit",
	"meta-externalagent",
	"twitterbot",
	"linkedinbot",
	"pinterestbot",
	"whatsapp",
	"telegrambot",
	"discordbot",
	"slackbot",
	"gptbot",
	"oai-searchbot",
	"chatgpt-user",
	"claudebot",
	"claude-web",
	"perplexitybot",
	"youbot",
	"ccbot",
	"bytespider",
	"amazonbot",
	"semrushbot",
	"ahrefsbot",
	"mj12bot",
	"petalbot",
}

// Classify buckets a User-Agent string into browser, known bot, or other
// non-browser client. Bot tokens are checked first because crawler UAs
// routinely impersonate Mozilla.
func Classify(userAgent string) Agent {
	lowered := strings.ToLower(userAgent)
	for _, token := range botTokens {
		if strings.Contains(lowered, token) {
			return Agent{Kind: KindBot, BotName: token}
		}
	}
	if !strings.Contains(lowered, "mozilla") {
		return Agent{Kind: KindNonBrowser}
	}
	return Agent{Kind: KindBrowser}
}
