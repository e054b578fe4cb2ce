// Package pronunciation fills the pronunciation and audio fields of
// dictionary entries.
package pronunciation

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/dictmeta/internal/dictionary"
	"github.com/heartmarshall/dictmeta/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type pageFetcher interface {
	FetchWikitext(ctx context.Context, word string) (string, error)
}

type transcriber interface {
	Transcribe(word string) (string, bool)
}

type synthesizer interface {
	Synthesize(ctx context.Context, text, lang string) ([]byte, error)
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

// Options configures the Service.
type Options struct {
	AudioDir       string
	AudioURLPrefix string
	Language       string
	// DictOnly skips the Wiktionary {{pron}} lookup.
	DictOnly    bool
	Concurrency int
}

// Result is what happened to one entry.
type Result struct {
	Word          string
	Pronunciation domain.EnrichmentOutcome
	Audio         domain.EnrichmentOutcome
}

// Updated reports whether the entry file was rewritten.
func (r Result) Updated() bool {
	return r.Pronunciation == domain.OutcomeUpdated || r.Audio == domain.OutcomeUpdated
}

// BatchStats holds per-field counts of a batch run.
type BatchStats struct {
	Pronunciation domain.RunStats
	Audio         domain.RunStats
}

// Service implements the pronunciation enrichment.
type Service struct {
	log    *slog.Logger
	pages  pageFetcher
	dict   transcriber
	speech synthesizer
	store  entryStore
	ledger ledger
	pace   pacer
	opts   Options
}

// NewService creates a new pronunciation service. dict may be nil when no
// phonetic dictionary is configured.
func NewService(
	logger *slog.Logger,
	pages pageFetcher,
	dict transcriber,
	speech synthesizer,
	store entryStore,
	ledger ledger,
	pace pacer,
	opts Options,
) *Service {
	if opts.Language == "" {
		opts.Language = "fr"
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	return &Service{
		log:    logger.With("service", "pronunciation"),
		pages:  pages,
		dict:   dict,
		speech: speech,
		store:  store,
		ledger: ledger,
		pace:   pace,
		opts:   opts,
	}
}
