// Package pronunciation finds IPA transcriptions for headwords, either in
// Wiktionary page markup or through a grapheme-to-phoneme dictionary.
package pronunciation

import (
	"regexp"
	"strings"

	"github.com/temporal-IPA/tipa/pkg/ipa"

	"github.com/heartmarshall/dictmeta/internal/etymology"
)

// pronTemplateRe matches {{pron|…}} and {{API|…}} invocations.
var pronTemplateRe = regexp.MustCompile(`\{\{(?:pron|API)\|[^{}]*\}\}`)

// FromWikitext returns the distinct transcriptions found in the pron
// templates of page for lang, in order of appearance. Only positional
// parameters before the language code are considered, and only those that
// contain IPA symbols.
func FromWikitext(page, lang string) []string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		lang = "fr"
	}

	seen := make(map[string]struct{})
	var out []string

	for _, raw := range pronTemplateRe.FindAllString(page, -1) {
		t := etymology.ParseTemplate(raw)
		if !hasLanguage(t, lang) {
			continue
		}
		for _, p := range t.Positional {
			if strings.ToLower(p) == lang {
				break
			}
			if p == "" || !strings.ContainsAny(p, ipa.Charset) {
				continue
			}
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}
	return out
}

func hasLanguage(t etymology.Template, lang string) bool {
	if strings.ToLower(t.Param("lang")) == lang {
		return true
	}
	for _, p := range t.Positional {
		if strings.ToLower(p) == lang {
			return true
		}
	}
	return false
}

// Slashed wraps a bare transcription in slashes, /ka.o/. Existing slashes or
// brackets are replaced.
func Slashed(transcription string) string {
	t := strings.Trim(strings.TrimSpace(transcription), "/[]")
	if t == "" {
		return ""
	}
	return "/" + t + "/"
}
