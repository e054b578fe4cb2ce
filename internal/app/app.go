package app

import (
	"context"
	"fmt"
	"log/slog"

	postgres "github.com/heartmarshall/dictmeta/internal/adapter/postgres"
	"github.com/heartmarshall/dictmeta/internal/adapter/postgres/ledger"
	"github.com/heartmarshall/dictmeta/internal/adapter/provider/tts"
	"github.com/heartmarshall/dictmeta/internal/adapter/provider/wiktionary"
	"github.com/heartmarshall/dictmeta/internal/config"
	"github.com/heartmarshall/dictmeta/internal/dictionary"
	"github.com/heartmarshall/dictmeta/internal/domain"
	"github.com/heartmarshall/dictmeta/internal/etymology"
	"github.com/heartmarshall/dictmeta/internal/pacer"
	"github.com/heartmarshall/dictmeta/internal/pronunciation"
	etymologysvc "github.com/heartmarshall/dictmeta/internal/service/etymology"
	"github.com/heartmarshall/dictmeta/internal/service/maintenance"
	pronunciationsvc "github.com/heartmarshall/dictmeta/internal/service/pronunciation"
)

// Ledger is the enrichment log used by the services and the history command.
type Ledger interface {
	Record(ctx context.Context, rec domain.EnrichmentRecord) error
	ListByWord(ctx context.Context, word string, limit int) ([]domain.EnrichmentRecord, error)
}

// App holds the wired components of one CLI invocation.
type App struct {
	Config        *config.Config
	Log           *slog.Logger
	Store         *dictionary.Store
	Ledger        Ledger
	Etymology     *etymologysvc.Service
	Pronunciation *pronunciationsvc.Service
	Maintenance   *maintenance.Service

	closers []func()
}

// New builds the application from cfg. The ledger database is connected and
// migrated only when a DSN is configured; the phonetic dictionary is loaded
// only when a path is set.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := NewLogger(cfg.Log)
	a := &App{Config: cfg, Log: logger}

	logger.Debug("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	if cfg.Ledger.Enabled() {
		pool, err := postgres.NewPool(ctx, cfg.Ledger)
		if err != nil {
			return nil, fmt.Errorf("app: ledger: %w", err)
		}
		a.closers = append(a.closers, pool.Close)
		if err := postgres.Migrate(ctx, pool, logger); err != nil {
			a.Close()
			return nil, fmt.Errorf("app: ledger: %w", err)
		}
		a.Ledger = ledger.New(pool)
	} else {
		a.Ledger = ledger.Nop{}
	}

	var dict interface {
		Transcribe(word string) (string, bool)
	}
	if cfg.Pronunciation.DictPath != "" {
		d, err := pronunciation.LoadDictionary(cfg.Pronunciation.DictPath, cfg.Pronunciation.FinalDictPath)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("app: %w", err)
		}
		dict = d
	}

	a.Store = dictionary.NewStore(cfg.Dictionary.Root, logger)
	wiki := wiktionary.NewClient(cfg.Wiktionary, logger)
	speech := tts.NewClient(cfg.Speech, logger)
	pace := pacer.New(cfg.Wiktionary.PaceInterval, 1)

	extractor := etymology.NewExtractor(etymology.Options{
		Scrubber: etymology.ScrubberOptions{MinLength: cfg.Etymology.MinLength},
	})

	a.Etymology = etymologysvc.NewService(logger, wiki, extractor, a.Store, a.Ledger, pace,
		etymologysvc.Options{
			OverrideField: cfg.Dictionary.OverrideField,
			WikitextOnly:  cfg.Etymology.WikitextOnly,
		})

	a.Pronunciation = pronunciationsvc.NewService(logger, wiki, dict, speech, a.Store, a.Ledger, pace,
		pronunciationsvc.Options{
			AudioDir:       cfg.Dictionary.AudioDir,
			AudioURLPrefix: cfg.Dictionary.AudioURLPrefix,
			Language:       cfg.Speech.Language,
			DictOnly:       cfg.Pronunciation.DictOnly,
			Concurrency:    cfg.Speech.Concurrency,
		})

	a.Maintenance = maintenance.NewService(logger, a.Store, a.Ledger, cfg.Dictionary.AudioDir)

	return a, nil
}

// Close releases the resources opened by New.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
