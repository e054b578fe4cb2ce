// Package etymology turns Wiktionary page markup into a readable etymology
// sentence.
//
// The wikitext path locates the étymologie section, resolves templates
// innermost first until nothing changes, flattens wiki links and scrubs the
// remaining markup. The prose path cleans etymology text that is already
// delivered as HTML. Both paths either produce a string or report absence;
// neither returns errors, and all types are safe for concurrent use.
package etymology

import (
	"golang.org/x/text/unicode/norm"
)

// Reason explains why an extraction produced no etymology.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonNoSection
	ReasonRejected
)

func (r Reason) String() string {
	switch r {
	case ReasonNoSection:
		return "no etymology section"
	case ReasonRejected:
		return "rejected by quality gate"
	default:
		return "found"
	}
}

// Trace records every intermediate stage of a wikitext extraction.
type Trace struct {
	Section   string
	Resolved  string
	Passes    int
	Flattened string
	Scrubbed  string
	Result    string
	Found     bool
	Reason    Reason
}

// Options configures an Extractor. Zero values select the French defaults.
type Options struct {
	Languages      *LanguageTable
	Scrubber       ScrubberOptions
	ProseLanguages []string
}

// Extractor runs the extraction pipelines.
type Extractor struct {
	resolver *Resolver
	scrubber *Scrubber
	prose    *ProseFormatter
}

// NewExtractor builds an Extractor from opts.
func NewExtractor(opts Options) *Extractor {
	scrubOpts := opts.Scrubber
	if scrubOpts.Artifacts == nil && scrubOpts.Boilerplate == nil {
		minLength := scrubOpts.MinLength
		scrubOpts = DefaultScrubberOptions()
		if minLength > 0 {
			scrubOpts.MinLength = minLength
		}
	}
	proseLangs := opts.ProseLanguages
	if proseLangs == nil {
		proseLangs = DefaultProseLanguages
	}

	return &Extractor{
		resolver: NewResolver(NewInterpreter(opts.Languages)),
		scrubber: NewScrubber(scrubOpts),
		prose:    NewProseFormatter(proseLangs),
	}
}

// FromWikitext extracts the etymology from a full page of raw markup.
func (e *Extractor) FromWikitext(page string) (string, bool) {
	t := e.Trace(page)
	return t.Result, t.Found
}

// Trace runs the wikitext pipeline and keeps every stage.
func (e *Extractor) Trace(page string) Trace {
	var t Trace

	section, ok := ExtractSection(norm.NFC.String(page))
	if !ok {
		t.Reason = ReasonNoSection
		return t
	}
	t.Section = section

	t.Resolved, t.Passes = e.resolver.Resolve(section)
	t.Flattened = FlattenLinks(t.Resolved)
	t.Scrubbed = e.scrubber.Scrub(t.Flattened)

	result, ok := e.scrubber.Accept(t.Scrubbed)
	if !ok {
		t.Reason = ReasonRejected
		return t
	}
	t.Result, t.Found = result, true
	return t
}

// FromProse formats etymology text delivered as HTML prose.
func (e *Extractor) FromProse(raw string) (string, bool) {
	text := e.prose.Format(raw)
	return text, text != ""
}
