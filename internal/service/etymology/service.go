// Package etymology fills the etymology field of dictionary entries from
// Wiktionary.
package etymology

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/dictmeta/internal/dictionary"
	"github.com/heartmarshall/dictmeta/internal/domain"
	etym "github.com/heartmarshall/dictmeta/internal/etymology"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type fetcher interface {
	FetchDefinitionEtymology(ctx context.Context, word string) (string, error)
	FetchWikitext(ctx context.Context, word string) (string, error)
}

type extractor interface {
	FromWikitext(page string) (string, bool)
	FromProse(raw string) (string, bool)
	Trace(page string) etym.Trace
}

type entryStore interface {
	List() ([]string, error)
	PathFor(word string) string
	Load(path string) (*dictionary.Entry, error)
	Save(e *dictionary.Entry) error
}

type ledger interface {
	Record(ctx context.Context, rec domain.EnrichmentRecord) error
}

type pacer interface {
	Wait(ctx context.Context, key string) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Source tells which Wiktionary endpoint produced an etymology.
type Source string

const (
	SourceNone       Source = ""
	SourceDefinition Source = "definition"
	SourceWikitext   Source = "wikitext"
)

// Options configures the Service.
type Options struct {
	// OverrideField marks entries whose etymology is maintained by hand.
	OverrideField string
	// WikitextOnly skips the definition endpoint.
	WikitextOnly bool
}

// Service implements the etymology enrichment.
type Service struct {
	log     *slog.Logger
	fetch   fetcher
	extract extractor
	store   entryStore
	ledger  ledger
	pace    pacer
	opts    Options
}

// NewService creates a new etymology service.
func NewService(
	logger *slog.Logger,
	fetch fetcher,
	extract extractor,
	store entryStore,
	ledger ledger,
	pace pacer,
	opts Options,
) *Service {
	if opts.OverrideField == "" {
		opts.OverrideField = "etymology_alt"
	}
	return &Service{
		log:     logger.With("service", "etymology"),
		fetch:   fetch,
		extract: extract,
		store:   store,
		ledger:  ledger,
		pace:    pace,
		opts:    opts,
	}
}

// Lookup fetches the etymology of word. The definition endpoint is tried
// first, then the page wikitext; a failed definition fetch falls through to
// the wikitext. An absent etymology is reported as SourceNone with a nil
// error.
func (s *Service) Lookup(ctx context.Context, word string) (string, Source, error) {
	if !s.opts.WikitextOnly {
		if err := s.pace.Wait(ctx, "wiktionary"); err != nil {
			return "", SourceNone, err
		}
		raw, err := s.fetch.FetchDefinitionEtymology(ctx, word)
		switch {
		case err != nil && ctx.Err() != nil:
			return "", SourceNone, fmt.Errorf("etymology: lookup %q: %w", word, err)
		case err != nil:
			s.log.WarnContext(ctx, "definition lookup failed, trying wikitext",
				slog.String("word", word),
				slog.String("error", err.Error()),
			)
		default:
			if text, ok := s.extract.FromProse(raw); ok {
				return text, SourceDefinition, nil
			}
		}
	}

	if err := s.pace.Wait(ctx, "wiktionary"); err != nil {
		return "", SourceNone, err
	}
	page, err := s.fetch.FetchWikitext(ctx, word)
	if err != nil {
		return "", SourceNone, fmt.Errorf("etymology: lookup %q: %w", word, err)
	}
	if text, ok := s.extract.FromWikitext(page); ok {
		return text, SourceWikitext, nil
	}
	return "", SourceNone, nil
}

// Explain fetches the page of word and returns every stage of the wikitext
// pipeline.
func (s *Service) Explain(ctx context.Context, word string) (etym.Trace, error) {
	word = domain.NormalizeWord(word)
	if word == "" {
		return etym.Trace{}, domain.NewValidationError("word", "required")
	}
	if err := s.pace.Wait(ctx, "wiktionary"); err != nil {
		return etym.Trace{}, err
	}
	page, err := s.fetch.FetchWikitext(ctx, word)
	if err != nil {
		return etym.Trace{}, fmt.Errorf("etymology: explain %q: %w", word, err)
	}
	if page == "" {
		return etym.Trace{}, fmt.Errorf("etymology: explain %q: page %w", word, domain.ErrNotFound)
	}
	return s.extract.Trace(page), nil
}
