package knowledge

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// noisePatterns strip markup fragments and scraper boilerplate from fetched
// content before analysis. Order matters: markup first, then boilerplate.
var noisePatterns = []*regexp.Regexp{
	// Markup and style fragments
	regexp.MustCompile(`(?i)style[^>]*>`),
	regexp.MustCompile(`<[^>]*>`),
	regexp.MustCompile(`(?i)(?:border|position|display|margin|padding):\s*[^;]+;`),

	// Encyclopedia boilerplate
	regexp.MustCompile(`(?i)Retrieved from https?://\S+`),
	regexp.MustCompile(`(?i)From Wikipedia, the free encyclopedia`),
	regexp.MustCompile(`(?i)This article is about`),
	regexp.MustCompile(`(?i)For other uses, see`),
	regexp.MustCompile(`(?i)Jump to (?:navigation|search)`),

	// Search-result chrome
	regexp.MustCompile(`(?i)Search Results`),
	regexp.MustCompile(`(?i)More results`),
	regexp.MustCompile(`(?i)(?:Click here|Read more|Learn more|See more|View more)`),

	// Bylines, social handles, navigation
	regexp.MustCompile(`(?i)(?:By|Written by|Author:) [A-Za-z ]+$`),
	regexp.MustCompile(`[@#][A-Za-z0-9_]+`),
	regexp.MustCompile(`(?i)(?:Follow us|Share this)`),
	regexp.MustCompile(`(?i)Home\s*>\s*`),

	// Advertising and legal chrome
	regexp.MustCompile(`(?i)(?:Advertisement|Sponsored|Promoted|Buy now|Shop now)`),
	regexp.MustCompile(`(?i)(?:Cookie policy|Privacy policy|Terms of service|Contact us|About us|Disclaimer)`),
}

var spaceRun = regexp.MustCompile(`\s+`)

// CleanText strips markup and boilerplate noise from text and collapses
// whitespace. HTML input is reduced to its visible text first.
func CleanText(text string) string {
	if strings.Contains(text, "<") && strings.Contains(text, ">") {
		if visible, err := visibleText(text); err == nil && visible != "" {
			text = visible
		}
	}
	for _, p := range noisePatterns {
		text = p.ReplaceAllString(text, "")
	}
	return strings.TrimSpace(spaceRun.ReplaceAllString(text, " "))
}

// visibleText extracts text nodes, skipping script/style subtrees.
func visibleText(markup string) (string, error) {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return "", err
	}
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				buf.WriteString(t)
				buf.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return buf.String(), nil
}

// qualityIndicator is one signed lexical signal of content quality.
type qualityIndicator struct {
	pattern *regexp.Regexp
	score   float64
}

var qualityIndicators = []qualityIndicator{
	// Positive: complete, connected prose
	{regexp.MustCompile(`^[A-Z][^.!?]*[.!?]$`), 0.3},
	{regexp.MustCompile(`(?i)\b(?:is|are|was|were|has|have|had|will|would|can|could|should|must)\b`), 0.2},
	{regexp.MustCompile(`(?i)\b(?:the|a|an|this|that|these|those)\b`), 0.1},
	{regexp.MustCompile(`(?i)\b(?:and|or|but|so|because|although|however)\b`), 0.1},
	{regexp.MustCompile(`(?i)\b(?:in|on|at|by|for|with|from|to|of)\b`), 0.1},

	// Negative: navigation junk and self-reference
	{regexp.MustCompile(`^[a-z]`), -0.2},
	{regexp.MustCompile(`[.!?]\s*[a-z]`), -0.1},
	{regexp.MustCompile(`(?i)\b(?:click|here|more|read|see|view|learn)\b`), -0.3},
	{regexp.MustCompile(`(?i)\b(?:this|that|these|those)\s+(?:article|page|site|website)\b`), -0.2},
	{regexp.MustCompile(`(?i)\b(?:http|www|\.com|\.org|\.net)\b`), -0.2},
}

// QualityScore sums signed indicator weights over the text, clamped to [0,1].
func QualityScore(text string) float64 {
	var score float64
	for _, qi := range qualityIndicators {
		score += qi.score * float64(len(qi.pattern.FindAllString(text, -1)))
	}
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
