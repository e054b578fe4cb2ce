// Package maintenance holds one-off housekeeping jobs over the dictionary:
// orphan audio cleanup and the see-also migration.
package maintenance

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/heartmarshall/dictmeta/internal/dictionary"
	"github.com/heartmarshall/dictmeta/internal/domain"
	"github.com/heartmarshall/dictmeta/pkg/ctxutil"
)

type entryStore interface {
	List() ([]string, error)
	Load(path string) (*dictionary.Entry, error)
	Save(e *dictionary.Entry) error
}

type ledger interface {
	Record(ctx context.Context, rec domain.EnrichmentRecord) error
}

// Service runs maintenance jobs.
type Service struct {
	log      *slog.Logger
	store    entryStore
	ledger   ledger
	audioDir string
}

// NewService creates a new maintenance service.
func NewService(logger *slog.Logger, store entryStore, ledger ledger, audioDir string) *Service {
	return &Service{
		log:      logger.With("service", "maintenance"),
		store:    store,
		ledger:   ledger,
		audioDir: audioDir,
	}
}

// CleanupReport lists the orphaned audio files found by CleanupAudio.
type CleanupReport struct {
	Orphans []string
	Deleted int
}

// CleanupAudio finds the MP3 files of the audio directory that no entry
// links to. With remove set they are deleted, otherwise only reported.
func (s *Service) CleanupAudio(ctx context.Context, remove bool) (CleanupReport, error) {
	var report CleanupReport

	linked, err := s.linkedAudio(ctx)
	if err != nil {
		return report, err
	}
	existing, err := s.existingAudio()
	if err != nil {
		return report, err
	}

	for _, name := range existing {
		if _, ok := linked[name]; !ok {
			report.Orphans = append(report.Orphans, name)
		}
	}

	if !remove {
		s.log.InfoContext(ctx, "orphan audio found", slog.Int("count", len(report.Orphans)))
		return report, nil
	}

	for _, name := range report.Orphans {
		if err := os.Remove(filepath.Join(s.audioDir, name)); err != nil {
			return report, fmt.Errorf("maintenance: remove %s: %w", name, err)
		}
		report.Deleted++
	}
	s.log.InfoContext(ctx, "orphan audio deleted", slog.Int("count", report.Deleted))
	return report, nil
}

func (s *Service) linkedAudio(ctx context.Context) (map[string]struct{}, error) {
	paths, err := s.store.List()
	if err != nil {
		return nil, fmt.Errorf("maintenance: list entries: %w", err)
	}

	linked := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		entry, err := s.store.Load(p)
		if err != nil {
			return nil, fmt.Errorf("maintenance: %w", err)
		}
		if url := entry.FrontMatter.String(dictionary.KeyAudio); url != "" {
			linked[path.Base(url)] = struct{}{}
		}
	}
	return linked, nil
}

func (s *Service) existingAudio() ([]string, error) {
	entries, err := os.ReadDir(s.audioDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("maintenance: read %s: %w", s.audioDir, err)
	}

	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() && filepath.Ext(e.Name()) == ".mp3" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// MigrateSeeAlso moves the "**See also:**" paragraph of every entry body
// into the see_also header list. Entries without links are left untouched.
func (s *Service) MigrateSeeAlso(ctx context.Context) (domain.RunStats, error) {
	ctx, _ = ctxutil.EnsureRunID(ctx)

	var stats domain.RunStats
	paths, err := s.store.List()
	if err != nil {
		return stats, fmt.Errorf("maintenance: list entries: %w", err)
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		outcome, word, detail := s.migrateEntry(ctx, p)
		stats.Add(outcome)
		if outcome == domain.OutcomeSkipped {
			continue
		}
		s.record(ctx, word, outcome, detail)
	}

	s.log.InfoContext(ctx, "see also migration finished",
		slog.Int("updated", stats.Updated),
		slog.Int("failed", stats.Failed),
	)
	return stats, nil
}

func (s *Service) migrateEntry(ctx context.Context, p string) (domain.EnrichmentOutcome, string, string) {
	entry, err := s.store.Load(p)
	if err != nil {
		s.log.WarnContext(ctx, "load failed", slog.String("path", p), slog.String("error", err.Error()))
		return domain.OutcomeFailed, p, err.Error()
	}

	links, body := dictionary.ExtractSeeAlso(entry.Body)
	if len(links) == 0 {
		return domain.OutcomeSkipped, "", ""
	}

	word := entry.Word()
	if word == "" {
		word = p
	}
	if err := entry.FrontMatter.SetLinks(dictionary.KeySeeAlso, links); err != nil {
		return domain.OutcomeFailed, word, err.Error()
	}
	entry.Body = body + "\n"
	if err := s.store.Save(entry); err != nil {
		s.log.WarnContext(ctx, "save failed", slog.String("path", p), slog.String("error", err.Error()))
		return domain.OutcomeFailed, word, err.Error()
	}

	s.log.InfoContext(ctx, "see also migrated", slog.String("word", word), slog.Int("links", len(links)))
	return domain.OutcomeUpdated, word, fmt.Sprintf("%d links", len(links))
}

func (s *Service) record(ctx context.Context, word string, outcome domain.EnrichmentOutcome, detail string) {
	runID, _ := ctxutil.RunIDFromCtx(ctx)
	err := s.ledger.Record(ctx, domain.EnrichmentRecord{
		RunID:   runID,
		Word:    word,
		Field:   domain.FieldSeeAlso,
		Outcome: outcome,
		Detail:  detail,
	})
	if err != nil {
		s.log.WarnContext(ctx, "ledger record failed",
			slog.String("word", word),
			slog.String("error", err.Error()),
		)
	}
}
