package etymology

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/dictmeta/internal/dictionary"
	"github.com/heartmarshall/dictmeta/internal/domain"
	"github.com/heartmarshall/dictmeta/pkg/ctxutil"
)

// ProcessEntry applies the etymology policy to the entry at path:
//   - entries without a word, with the override field set, or with an
//     etymology already present (unless force) are skipped;
//   - otherwise the etymology is looked up, written to the header and the
//     legacy Origin paragraph is dropped from the body.
//
// The returned error is non-nil only for OutcomeFailed.
func (s *Service) ProcessEntry(ctx context.Context, path string, force bool) (domain.EnrichmentOutcome, error) {
	entry, err := s.store.Load(path)
	if err != nil {
		s.record(ctx, path, domain.OutcomeFailed, err.Error())
		return domain.OutcomeFailed, err
	}

	word := entry.Word()
	if word == "" {
		s.log.InfoContext(ctx, "skipping entry without word", slog.String("path", path))
		s.record(ctx, path, domain.OutcomeSkipped, "no word")
		return domain.OutcomeSkipped, nil
	}
	if entry.FrontMatter.HasValue(s.opts.OverrideField) {
		s.log.InfoContext(ctx, "skipping custom etymology", slog.String("word", word))
		s.record(ctx, word, domain.OutcomeSkipped, s.opts.OverrideField)
		return domain.OutcomeSkipped, nil
	}
	if !force && entry.FrontMatter.HasValue(dictionary.KeyEtymology) {
		s.log.DebugContext(ctx, "etymology already present", slog.String("word", word))
		s.record(ctx, word, domain.OutcomeSkipped, "already present")
		return domain.OutcomeSkipped, nil
	}

	text, source, err := s.Lookup(ctx, word)
	if err != nil {
		s.log.WarnContext(ctx, "etymology lookup failed",
			slog.String("word", word),
			slog.String("error", err.Error()),
		)
		s.record(ctx, word, domain.OutcomeFailed, err.Error())
		return domain.OutcomeFailed, err
	}
	if source == SourceNone {
		s.log.InfoContext(ctx, "no etymology found", slog.String("word", word))
		s.record(ctx, word, domain.OutcomeAbsent, "")
		return domain.OutcomeAbsent, nil
	}

	entry.FrontMatter.SetString(dictionary.KeyEtymology, text)
	entry.Body = dictionary.RemoveOriginSection(entry.Body)
	if err := s.store.Save(entry); err != nil {
		s.record(ctx, word, domain.OutcomeFailed, err.Error())
		return domain.OutcomeFailed, err
	}

	s.log.InfoContext(ctx, "etymology updated",
		slog.String("word", word),
		slog.String("source", string(source)),
	)
	s.record(ctx, word, domain.OutcomeUpdated, string(source))
	return domain.OutcomeUpdated, nil
}

// Word processes the entry of a single word, forcing the update. It returns
// ErrNotFound when the entry does not exist and ErrNotUpdated when the word
// was processed without being updated.
func (s *Service) Word(ctx context.Context, word string) (domain.EnrichmentOutcome, error) {
	ctx, _ = ctxutil.EnsureRunID(ctx)

	word = domain.NormalizeWord(word)
	if word == "" {
		return domain.OutcomeFailed, domain.NewValidationError("word", "required")
	}

	path := s.store.PathFor(word)
	outcome, err := s.ProcessEntry(ctx, path, true)
	if err != nil {
		return outcome, err
	}
	if outcome != domain.OutcomeUpdated {
		return outcome, fmt.Errorf("etymology: %q %s: %w", word, outcome, ErrNotUpdated)
	}
	return outcome, nil
}

// ErrNotUpdated reports a single-word run that left the entry unchanged.
var ErrNotUpdated = errors.New("not updated")

// All processes every entry of the dictionary in order. Per-entry failures
// are counted and logged; cancellation stops the run and is returned with
// the stats collected so far.
func (s *Service) All(ctx context.Context, force bool) (domain.RunStats, error) {
	ctx, runID := ctxutil.EnsureRunID(ctx)

	var stats domain.RunStats
	paths, err := s.store.List()
	if err != nil {
		return stats, fmt.Errorf("etymology: list entries: %w", err)
	}
	s.log.InfoContext(ctx, "etymology run started",
		slog.String("run_id", runID.String()),
		slog.String("command", ctxutil.CommandFromCtx(ctx)),
		slog.Int("entries", len(paths)),
		slog.Bool("force", force),
	)

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		outcome, err := s.ProcessEntry(ctx, path, force)
		if err != nil && ctx.Err() != nil {
			return stats, ctx.Err()
		}
		stats.Add(outcome)
	}

	s.log.InfoContext(ctx, "etymology run finished",
		slog.String("run_id", runID.String()),
		slog.Int("updated", stats.Updated),
		slog.Int("skipped", stats.Skipped),
		slog.Int("absent", stats.Absent),
		slog.Int("failed", stats.Failed),
	)
	return stats, nil
}

func (s *Service) record(ctx context.Context, word string, outcome domain.EnrichmentOutcome, detail string) {
	runID, _ := ctxutil.RunIDFromCtx(ctx)
	err := s.ledger.Record(ctx, domain.EnrichmentRecord{
		RunID:   runID,
		Word:    word,
		Field:   domain.FieldEtymology,
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
