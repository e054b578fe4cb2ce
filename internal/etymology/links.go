package etymology

import "regexp"

// wikiLinkRe matches [[target]] and [[target|display]]; group 1 is the displayed text.
var wikiLinkRe = regexp.MustCompile(`\[\[(?:[^|\]]+\|)?([^\]]+)\]\]`)

// FlattenLinks replaces wiki links with their display text:
// [[chaos|Chaos]] → Chaos, [[chaos]] → chaos.
func FlattenLinks(s string) string {
	return wikiLinkRe.ReplaceAllString(s, "$1")
}
