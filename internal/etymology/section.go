package etymology

import (
	"regexp"
	"strings"
)

// Heading forms, tried in order: {{S|étymologie}} as used by French
// Wiktionary, then a plain "Étymologie" title.
var etymologyHeadings = []*regexp.Regexp{
	regexp.MustCompile(`(?i)===\s*\{\{S\|étymologie(?:\|[^{}]*)?\}\}\s*===[ \t]*(?:\r?\n|\z)`),
	regexp.MustCompile(`(?i)===\s*Étymologie\s*===[ \t]*(?:\r?\n|\z)`),
}

// sectionEnd marks the start of the next heading at the same level.
const sectionEnd = "\n==="

// ExtractSection returns the trimmed body of the étymologie section of page.
// The body runs until the next "===" heading or the end of the page.
func ExtractSection(page string) (string, bool) {
	for _, re := range etymologyHeadings {
		loc := re.FindStringIndex(page)
		if loc == nil {
			continue
		}
		body := page[loc[1]:]
		if strings.HasPrefix(body, "===") {
			return "", true
		}
		if end := strings.Index(body, sectionEnd); end >= 0 {
			body = body[:end]
		}
		return strings.TrimSpace(body), true
	}
	return "", false
}
