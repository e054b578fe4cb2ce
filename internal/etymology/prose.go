package etymology

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// entityReplacer decodes the entities the definition API actually emits.
var entityReplacer = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
)

// DefaultProseLanguages lists the source-language names italicized in prose.
var DefaultProseLanguages = []string{
	"Latin", "Greek", "French", "Old English", "Middle English",
	"Old French", "Proto-Germanic", "German", "Italian", "Spanish",
	"Sanskrit", "Arabic", "Hebrew", "Old Norse", "Dutch",
}

// ProseFormatter cleans etymology text that arrives as HTML prose rather
// than wikitext.
type ProseFormatter struct {
	languageRe *regexp.Regexp
}

// NewProseFormatter builds a formatter that italicizes each of languages
// together with the word that follows it.
func NewProseFormatter(languages []string) *ProseFormatter {
	names := append([]string(nil), languages...)
	// Longest first, so "Old French" wins over "French".
	sort.SliceStable(names, func(i, j int) bool { return len(names[i]) > len(names[j]) })

	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = regexp.QuoteMeta(n)
	}

	pf := &ProseFormatter{}
	if len(quoted) > 0 {
		pf.languageRe = regexp.MustCompile(`\b(` + strings.Join(quoted, "|") + `)\s+([a-zA-Z]+)\b`)
	}
	return pf
}

// Format strips markup from raw and italicizes language names and the
// word following each of them.
func (pf *ProseFormatter) Format(raw string) string {
	text := CleanHTML(raw)
	if pf.languageRe == nil {
		return text
	}
	return pf.languageRe.ReplaceAllString(text, "*$1* *$2*")
}

// CleanHTML removes HTML tags, decodes the common entities and collapses
// whitespace.
func CleanHTML(raw string) string {
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(raw))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			// io.EOF is the only error a strings.Reader can produce.
			break
		}
		if tt == html.TextToken {
			b.Write(z.Raw())
		}
	}
	text := entityReplacer.Replace(b.String())
	return strings.TrimSpace(spaceRunRe.ReplaceAllString(text, " "))
}
