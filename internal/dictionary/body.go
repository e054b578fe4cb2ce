package dictionary

import (
	"regexp"
	"strings"
)

const originMarker = "**Origin:**"

var (
	seeAlsoRe = regexp.MustCompile(`(?is)\*\*see also:\*\*\s*(.*?)(?:\n\n|\n*\z)`)
	mdLinkRe  = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
)

// RemoveOriginSection deletes every "**Origin:**" paragraph from body. A
// paragraph ends at a blank line, at the next bold label or at the end of the
// body. The result is trimmed.
func RemoveOriginSection(body string) string {
	for {
		start := strings.Index(body, originMarker)
		if start < 0 {
			break
		}
		end := len(body)
		rest := body[start+len(originMarker):]
		for _, stop := range []string{"\n\n", "\n**"} {
			if i := strings.Index(rest, stop); i >= 0 && start+len(originMarker)+i < end {
				end = start + len(originMarker) + i
			}
		}
		for start > 0 && body[start-1] == '\n' {
			start--
		}
		body = body[:start] + body[end:]
	}
	return strings.TrimSpace(body)
}

// ExtractSeeAlso pulls the links of a "**See also:**" paragraph out of body.
// It returns the links and the body without the paragraph. When there is no
// such paragraph the body is returned unchanged.
func ExtractSeeAlso(body string) ([]Link, string) {
	m := seeAlsoRe.FindStringSubmatch(body)
	if m == nil {
		return nil, body
	}

	var links []Link
	for _, lm := range mdLinkRe.FindAllStringSubmatch(strings.TrimSpace(m[1]), -1) {
		links = append(links, Link{Text: lm[1], URL: lm[2]})
	}

	cleaned := strings.TrimSpace(seeAlsoRe.ReplaceAllString(body, ""))
	return links, cleaned
}
