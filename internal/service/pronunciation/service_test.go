package pronunciation

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/dictmeta/internal/dictionary"
	"github.com/heartmarshall/dictmeta/internal/domain"
)

// ---------------------------------------------------------------------------
// Mocks
// ---------------------------------------------------------------------------

type mockPages struct {
	fn func(ctx context.Context, word string) (string, error)

	mu    sync.Mutex
	calls int
}

func (m *mockPages) FetchWikitext(ctx context.Context, word string) (string, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.fn == nil {
		return "", nil
	}
	return m.fn(ctx, word)
}

type mockDict map[string]string

func (m mockDict) Transcribe(word string) (string, bool) {
	v, ok := m[word]
	return v, ok
}

type mockSpeech struct {
	fn func(ctx context.Context, text, lang string) ([]byte, error)

	mu    sync.Mutex
	texts []string
}

func (m *mockSpeech) Synthesize(ctx context.Context, text, lang string) ([]byte, error) {
	m.mu.Lock()
	m.texts = append(m.texts, text)
	m.mu.Unlock()
	if m.fn == nil {
		return []byte("ID3" + text), nil
	}
	return m.fn(ctx, text, lang)
}

type mockLedger struct {
	mu      sync.Mutex
	records []domain.EnrichmentRecord
}

func (m *mockLedger) Record(_ context.Context, rec domain.EnrichmentRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, rec)
	return nil
}

type nopPacer struct{}

func (nopPacer) Wait(ctx context.Context, _ string) error { return ctx.Err() }

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

type fixture struct {
	svc    *Service
	root   string
	audio  string
	pages  *mockPages
	speech *mockSpeech
	ledger *mockLedger
}

func newFixture(t *testing.T, dict transcriber, opts Options) *fixture {
	t.Helper()

	dir := t.TempDir()
	f := &fixture{
		root:   filepath.Join(dir, "_dictionary"),
		audio:  filepath.Join(dir, "assets", "audio"),
		pages:  &mockPages{},
		speech: &mockSpeech{},
		ledger: &mockLedger{},
	}
	require.NoError(t, os.MkdirAll(f.root, 0o755))

	opts.AudioDir = f.audio
	opts.AudioURLPrefix = "/assets/audio/"
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.svc = NewService(logger, f.pages, dict, f.speech,
		dictionary.NewStore(f.root, logger), f.ledger, nopPacer{}, opts)
	return f
}

func (f *fixture) writeEntry(t *testing.T, word, content string) string {
	t.Helper()

	path := filepath.Join(f.root, domain.FirstLetter(word), word+".md")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func (f *fixture) writeAudio(t *testing.T, word string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(f.audio, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(f.audio, word+".mp3"), []byte("old"), 0o644))
}

func read(t *testing.T, path string) string {
	t.Helper()

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestService_Transcribe(t *testing.T) {
	t.Parallel()

	t.Run("wiktionary first", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, mockDict{"chaos": "kaos"}, Options{})
		f.pages.fn = func(context.Context, string) (string, error) {
			return "'''chaos''' {{pron|ka.o|fr}}", nil
		}

		got, ok, err := f.svc.Transcribe(context.Background(), "chaos")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "ka.o", got)
	})

	t.Run("dictionary fallback", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, mockDict{"chaos": "kaos"}, Options{})

		got, ok, err := f.svc.Transcribe(context.Background(), "chaos")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "kaos", got)
		assert.Equal(t, 1, f.pages.calls)
	})

	t.Run("dictionary only", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, mockDict{"chaos": "kaos"}, Options{DictOnly: true})

		got, ok, err := f.svc.Transcribe(context.Background(), "chaos")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "kaos", got)
		assert.Zero(t, f.pages.calls)
	})

	t.Run("unknown without dictionary", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, nil, Options{})

		_, ok, err := f.svc.Transcribe(context.Background(), "chaos")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("fetch error", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, nil, Options{})
		f.pages.fn = func(context.Context, string) (string, error) { return "", errors.New("status 502") }

		_, _, err := f.svc.Transcribe(context.Background(), "chaos")
		assert.Error(t, err)
	})
}

func TestService_ProcessEntry_NewEntry(t *testing.T) {
	t.Parallel()

	f := newFixture(t, mockDict{"chaos": "ka.o"}, Options{DictOnly: true})
	path := f.writeEntry(t, "chaos", "---\nword: chaos\netymology: Du latin.\n---\nCorps.\n")

	res, err := f.svc.ProcessEntry(context.Background(), path, false)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeUpdated, res.Pronunciation)
	assert.Equal(t, domain.OutcomeUpdated, res.Audio)

	assert.Equal(t,
		"---\nword: chaos\netymology: Du latin.\npronunciation: /ka.o/\naudio: /assets/audio/chaos.mp3\n---\nCorps.\n",
		read(t, path))
	assert.Equal(t, "ID3chaos", read(t, filepath.Join(f.audio, "chaos.mp3")))

	require.Len(t, f.ledger.records, 2)
	assert.Equal(t, domain.FieldPronunciation, f.ledger.records[0].Field)
	assert.Equal(t, domain.FieldAudio, f.ledger.records[1].Field)
}

func TestService_ProcessEntry_Policy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		content   string
		haveAudio bool
		force     bool
		wantIPA   domain.EnrichmentOutcome
		wantAudio domain.EnrichmentOutcome
		wantTTS   bool
	}{
		{
			name:      "nothing to do",
			content:   "---\nword: chaos\npronunciation: /ka.o/\naudio: /assets/audio/chaos.mp3\n---\n",
			haveAudio: true,
			wantIPA:   domain.OutcomeSkipped,
			wantAudio: domain.OutcomeSkipped,
		},
		{
			name:      "existing file linked",
			content:   "---\nword: chaos\npronunciation: /ka.o/\n---\n",
			haveAudio: true,
			wantIPA:   domain.OutcomeSkipped,
			wantAudio: domain.OutcomeUpdated,
		},
		{
			name:      "forced regenerates both",
			content:   "---\nword: chaos\npronunciation: /kaos/\naudio: /assets/audio/chaos.mp3\n---\n",
			haveAudio: true,
			force:     true,
			wantIPA:   domain.OutcomeUpdated,
			wantAudio: domain.OutcomeUpdated,
			wantTTS:   true,
		},
		{
			name:      "no word",
			content:   "---\ntitle: Chaos\n---\n",
			force:     true,
			wantIPA:   domain.OutcomeSkipped,
			wantAudio: domain.OutcomeSkipped,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t, mockDict{"chaos": "ka.o"}, Options{DictOnly: true})
			path := f.writeEntry(t, "chaos", tt.content)
			if tt.haveAudio {
				f.writeAudio(t, "chaos")
			}

			res, err := f.svc.ProcessEntry(context.Background(), path, tt.force)
			require.NoError(t, err)
			assert.Equal(t, tt.wantIPA, res.Pronunciation)
			assert.Equal(t, tt.wantAudio, res.Audio)
			assert.Equal(t, tt.wantTTS, len(f.speech.texts) > 0)

			if !res.Updated() {
				assert.Equal(t, tt.content, read(t, path))
			}
		})
	}
}

func TestService_ProcessEntry_PartialFailure(t *testing.T) {
	t.Parallel()

	f := newFixture(t, mockDict{"chaos": "ka.o"}, Options{DictOnly: true})
	boom := errors.New("tts: status 503")
	f.speech.fn = func(context.Context, string, string) ([]byte, error) { return nil, boom }
	path := f.writeEntry(t, "chaos", "---\nword: chaos\n---\n")

	res, err := f.svc.ProcessEntry(context.Background(), path, false)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, domain.OutcomeUpdated, res.Pronunciation)
	assert.Equal(t, domain.OutcomeFailed, res.Audio)

	assert.Equal(t, "---\nword: chaos\npronunciation: /ka.o/\n---\n", read(t, path))
	_, statErr := os.Stat(filepath.Join(f.audio, "chaos.mp3"))
	assert.True(t, errors.Is(statErr, os.ErrNotExist))
}

func TestService_AudioPath(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil, Options{})
	file, url := f.svc.AudioPath(" Chaos ")
	assert.Equal(t, filepath.Join(f.audio, "chaos.mp3"), file)
	assert.Equal(t, "/assets/audio/chaos.mp3", url)
}

func TestService_Word(t *testing.T) {
	t.Parallel()

	t.Run("updated", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, mockDict{"chaos": "ka.o"}, Options{DictOnly: true})
		f.writeEntry(t, "chaos", "---\nword: chaos\n---\n")

		res, err := f.svc.Word(context.Background(), "CHAOS")
		require.NoError(t, err)
		assert.True(t, res.Updated())
	})

	t.Run("missing entry", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, nil, Options{})

		_, err := f.svc.Word(context.Background(), "chaos")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("not updated", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, nil, Options{DictOnly: true})
		f.writeEntry(t, "chaos", "---\ntitle: x\n---\n")

		_, err := f.svc.Word(context.Background(), "chaos")
		assert.ErrorIs(t, err, ErrNotUpdated)
	})
}

func TestService_All(t *testing.T) {
	t.Parallel()

	f := newFixture(t, mockDict{"chaos": "ka.o", "zen": "zɛn"}, Options{DictOnly: true, Concurrency: 3})
	for _, w := range []string{"chaos", "cosmos", "zen", "ordre"} {
		f.writeEntry(t, w, "---\nword: "+w+"\n---\n")
	}
	f.speech.fn = func(_ context.Context, text, _ string) ([]byte, error) {
		if text == "ordre" {
			return nil, errors.New("status 500")
		}
		return []byte("mp3"), nil
	}

	stats, err := f.svc.All(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, domain.RunStats{Updated: 2, Absent: 2, Total: 4}, stats.Pronunciation)
	assert.Equal(t, domain.RunStats{Updated: 3, Failed: 1, Total: 4}, stats.Audio)
	assert.Len(t, f.ledger.records, 8)
}

func TestService_All_Cancelled(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil, Options{})
	f.writeEntry(t, "chaos", "---\nword: chaos\n---\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.svc.All(ctx, false)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, f.speech.texts)
}
