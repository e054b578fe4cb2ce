package pronunciation

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/dictmeta/internal/dictionary"
	"github.com/heartmarshall/dictmeta/internal/domain"
	ipa "github.com/heartmarshall/dictmeta/internal/pronunciation"
	"github.com/heartmarshall/dictmeta/pkg/ctxutil"
)

// ErrNotUpdated reports a single-word run that left the entry unchanged.
var ErrNotUpdated = errors.New("not updated")

// Transcribe returns the IPA of word without slashes, from the Wiktionary
// page unless DictOnly is set, then from the phonetic dictionary. It reports
// false when neither source knows the word.
func (s *Service) Transcribe(ctx context.Context, word string) (string, bool, error) {
	if !s.opts.DictOnly {
		if err := s.pace.Wait(ctx, "wiktionary"); err != nil {
			return "", false, err
		}
		page, err := s.pages.FetchWikitext(ctx, word)
		if err != nil {
			return "", false, fmt.Errorf("pronunciation: transcribe %q: %w", word, err)
		}
		for _, t := range ipa.FromWikitext(page, s.opts.Language) {
			if t != strings.ToLower(word) {
				return t, true, nil
			}
		}
	}

	if s.dict != nil {
		if t, ok := s.dict.Transcribe(word); ok {
			return t, true, nil
		}
	}
	return "", false, nil
}

// ProcessEntry applies the pronunciation and audio policy to the entry at
// path. Without force the IPA is only generated when missing and the audio
// only when its file does not exist; an existing file missing from the
// header is linked. Field failures are joined into the returned error.
func (s *Service) ProcessEntry(ctx context.Context, path string, force bool) (Result, error) {
	entry, err := s.store.Load(path)
	if err != nil {
		return Result{Pronunciation: domain.OutcomeFailed, Audio: domain.OutcomeFailed}, err
	}

	res := Result{Word: entry.Word()}
	if res.Word == "" {
		s.log.InfoContext(ctx, "skipping entry without word", slog.String("path", path))
		res.Pronunciation, res.Audio = domain.OutcomeSkipped, domain.OutcomeSkipped
		s.record(ctx, path, domain.FieldPronunciation, res.Pronunciation, "no word")
		s.record(ctx, path, domain.FieldAudio, res.Audio, "no word")
		return res, nil
	}

	var errs []error

	var ipaDetail string
	res.Pronunciation, ipaDetail, err = s.pronunciationStep(ctx, entry, force)
	if err != nil {
		errs = append(errs, err)
	}
	s.record(ctx, res.Word, domain.FieldPronunciation, res.Pronunciation, ipaDetail)

	var audioDetail string
	res.Audio, audioDetail, err = s.audioStep(ctx, entry, force)
	if err != nil {
		errs = append(errs, err)
	}
	s.record(ctx, res.Word, domain.FieldAudio, res.Audio, audioDetail)

	if res.Updated() {
		if err := s.store.Save(entry); err != nil {
			return res, errors.Join(append(errs, err)...)
		}
		s.log.InfoContext(ctx, "entry updated",
			slog.String("word", res.Word),
			slog.String("pronunciation", res.Pronunciation.String()),
			slog.String("audio", res.Audio.String()),
		)
	}
	return res, errors.Join(errs...)
}

func (s *Service) pronunciationStep(ctx context.Context, entry *dictionary.Entry, force bool) (domain.EnrichmentOutcome, string, error) {
	word := entry.Word()
	if !force && entry.FrontMatter.String(dictionary.KeyPronunciation) != "" {
		return domain.OutcomeSkipped, "already present", nil
	}

	transcription, ok, err := s.Transcribe(ctx, word)
	if err != nil {
		s.log.WarnContext(ctx, "transcription failed",
			slog.String("word", word),
			slog.String("error", err.Error()),
		)
		return domain.OutcomeFailed, err.Error(), err
	}
	if !ok {
		return domain.OutcomeAbsent, "", nil
	}

	value := ipa.Slashed(transcription)
	entry.FrontMatter.SetString(dictionary.KeyPronunciation, value)
	return domain.OutcomeUpdated, value, nil
}

func (s *Service) audioStep(ctx context.Context, entry *dictionary.Entry, force bool) (domain.EnrichmentOutcome, string, error) {
	word := entry.Word()
	file, url := s.AudioPath(word)

	exists, err := fileExists(file)
	if err != nil {
		return domain.OutcomeFailed, err.Error(), err
	}

	if force || !exists {
		data, err := s.speech.Synthesize(ctx, word, s.opts.Language)
		if err != nil {
			s.log.WarnContext(ctx, "audio generation failed",
				slog.String("word", word),
				slog.String("error", err.Error()),
			)
			return domain.OutcomeFailed, err.Error(), err
		}
		if err := writeAudio(file, data); err != nil {
			return domain.OutcomeFailed, err.Error(), err
		}
		entry.FrontMatter.SetString(dictionary.KeyAudio, url)
		return domain.OutcomeUpdated, url, nil
	}

	if !entry.FrontMatter.Has(dictionary.KeyAudio) {
		entry.FrontMatter.SetString(dictionary.KeyAudio, url)
		return domain.OutcomeUpdated, "linked existing file", nil
	}
	return domain.OutcomeSkipped, "already present", nil
}

// AudioPath returns the file and the public URL of the audio of word.
func (s *Service) AudioPath(word string) (file, url string) {
	name := strings.ToLower(strings.TrimSpace(word)) + ".mp3"
	return filepath.Join(s.opts.AudioDir, name), strings.TrimRight(s.opts.AudioURLPrefix, "/") + "/" + name
}

// Word processes the entry of a single word, forcing both fields.
func (s *Service) Word(ctx context.Context, word string) (Result, error) {
	ctx, _ = ctxutil.EnsureRunID(ctx)

	word = domain.NormalizeWord(word)
	if word == "" {
		return Result{}, domain.NewValidationError("word", "required")
	}

	res, err := s.ProcessEntry(ctx, s.store.PathFor(word), true)
	if err != nil {
		return res, err
	}
	if !res.Updated() {
		return res, fmt.Errorf("pronunciation: %q: %w", word, ErrNotUpdated)
	}
	return res, nil
}

// All processes every entry with at most Concurrency entries in flight.
// Per-entry failures are counted; cancellation stops the run.
func (s *Service) All(ctx context.Context, force bool) (BatchStats, error) {
	ctx, runID := ctxutil.EnsureRunID(ctx)

	var stats BatchStats
	paths, err := s.store.List()
	if err != nil {
		return stats, fmt.Errorf("pronunciation: list entries: %w", err)
	}
	s.log.InfoContext(ctx, "pronunciation run started",
		slog.String("run_id", runID.String()),
		slog.String("command", ctxutil.CommandFromCtx(ctx)),
		slog.Int("entries", len(paths)),
		slog.Int("concurrency", s.opts.Concurrency),
		slog.Bool("force", force),
	)

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Concurrency)

	for _, path := range paths {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			res, err := s.ProcessEntry(gctx, path, force)
			if err != nil && gctx.Err() != nil {
				return gctx.Err()
			}
			mu.Lock()
			stats.Pronunciation.Add(res.Pronunciation)
			stats.Audio.Add(res.Audio)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return stats, err
	}
	if err := ctx.Err(); err != nil {
		return stats, err
	}

	total := stats.Pronunciation
	total.Merge(stats.Audio)
	s.log.InfoContext(ctx, "pronunciation run finished",
		slog.String("run_id", runID.String()),
		slog.Int("ipa_updated", stats.Pronunciation.Updated),
		slog.Int("audio_updated", stats.Audio.Updated),
		slog.Int("failed", total.Failed),
	)
	return stats, nil
}

func (s *Service) record(ctx context.Context, word string, field domain.EnrichmentField, outcome domain.EnrichmentOutcome, detail string) {
	runID, _ := ctxutil.RunIDFromCtx(ctx)
	err := s.ledger.Record(ctx, domain.EnrichmentRecord{
		RunID:   runID,
		Word:    word,
		Field:   field,
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

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("pronunciation: stat %s: %w", path, err)
}

func writeAudio(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("pronunciation: write %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("pronunciation: write %s: %w", path, err)
	}
	return nil
}
