package etymology

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultMinLength is the quality gate threshold: results of this many runes
// or fewer are discarded.
const DefaultMinLength = 10

// Artifact is a language code that survived resolution verbatim, with the
// phrase that replaces it.
type Artifact struct {
	Code   string
	Phrase string
}

// ScrubberOptions configures a Scrubber.
type ScrubberOptions struct {
	Artifacts   []Artifact
	Boilerplate []string
	MinLength   int
}

// DefaultScrubberOptions returns the artifact and boilerplate lists used for
// French Wiktionary pages.
func DefaultScrubberOptions() ScrubberOptions {
	return ScrubberOptions{
		Artifacts: []Artifact{
			{Code: "la-lat", Phrase: "Late Latin"},
			{Code: "la-med", Phrase: "Medieval Latin"},
			{Code: "la-new", Phrase: "New Latin"},
		},
		Boilerplate: []string{"Displaced native"},
		MinLength:   DefaultMinLength,
	}
}

var (
	boldItalicRe     = regexp.MustCompile(`'''?`)
	refSelfClosingRe = regexp.MustCompile(`<ref[^>]*/>`)
	refSpanRe        = regexp.MustCompile(`(?s)<ref[^>]*>.*?</ref>`)
	tagRe            = regexp.MustCompile(`<[^>]+>`)
	spaceRunRe       = regexp.MustCompile(`\s+`)
	leadingColonRe   = regexp.MustCompile(`^:\s*`)
	emptyParensRe    = regexp.MustCompile(`\(\s*\)`)
	doubleCommaRe    = regexp.MustCompile(`,\s*,`)
	edgeSeparatorRe  = regexp.MustCompile(`^[\s,;]+|[\s,;]+$`)
)

type rule func(string) string

// Scrubber normalizes resolved etymology text. It is immutable and safe for
// concurrent use.
type Scrubber struct {
	rules     []rule
	minLength int
}

// NewScrubber builds a Scrubber from opts. A non-positive MinLength means
// DefaultMinLength.
func NewScrubber(opts ScrubberOptions) *Scrubber {
	minLength := opts.MinLength
	if minLength <= 0 {
		minLength = DefaultMinLength
	}

	rules := []rule{
		replaceRe(boldItalicRe, ""),
		replaceRe(refSelfClosingRe, ""),
		replaceRe(refSpanRe, ""),
		replaceRe(tagRe, ""),
	}
	for _, a := range opts.Artifacts {
		re := regexp.MustCompile(`\b` + regexp.QuoteMeta(a.Code) + `\b`)
		rules = append(rules, replaceRe(re, a.Phrase))
	}
	for _, phrase := range opts.Boilerplate {
		re := regexp.MustCompile(regexp.QuoteMeta(phrase) + `\s*\.?`)
		rules = append(rules, removeAll(re))
	}
	rules = append(rules,
		collapseSpace,
		replaceRe(leadingColonRe, ""),
		removeAll(emptyParensRe),
		replaceRe(doubleCommaRe, ","),
		collapseSpace,
		replaceRe(edgeSeparatorRe, ""),
		capitalizeFirst,
	)

	return &Scrubber{rules: rules, minLength: minLength}
}

// Scrub applies every rule in order, repeating the sequence until the text
// is stable, so Scrub(Scrub(s)) == Scrub(s). A round that changes the text
// removes input bytes or rewrites an artifact those removals exposed, so the
// loop is bounded by the input length.
func (s *Scrubber) Scrub(text string) string {
	for range 2*len(text) + 4 {
		next := text
		for _, r := range s.rules {
			next = r(next)
		}
		if next == text {
			break
		}
		text = next
	}
	return text
}

// Accept scrubs text and applies the quality gate. It reports false when the
// scrubbed text is too short to be a meaningful etymology.
func (s *Scrubber) Accept(text string) (string, bool) {
	text = s.Scrub(text)
	if utf8.RuneCountInString(text) <= s.minLength {
		return "", false
	}
	return text, true
}

func replaceRe(re *regexp.Regexp, repl string) rule {
	return func(s string) string { return re.ReplaceAllString(s, repl) }
}

// removeAll deletes matches of re until none remain, so removing an inner
// match cannot expose an outer one.
func removeAll(re *regexp.Regexp) rule {
	return func(s string) string {
		for re.MatchString(s) {
			s = re.ReplaceAllString(s, "")
		}
		return s
	}
}

func collapseSpace(s string) string {
	return strings.TrimSpace(spaceRunRe.ReplaceAllString(s, " "))
}

func capitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || r == utf8.RuneError {
		return s
	}
	upper := unicode.ToUpper(r)
	if upper == r {
		return s
	}
	return string(upper) + s[size:]
}
