package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/dictmeta/internal/adapter/postgres/ledger"
	"github.com/heartmarshall/dictmeta/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	dir := t.TempDir()
	return &config.Config{
		Log:        config.LogConfig{Level: "error", Format: "text"},
		Dictionary: config.DictionaryConfig{Root: dir, AudioDir: filepath.Join(dir, "audio"), AudioURLPrefix: "/assets/audio", OverrideField: "etymology_alt"},
		Wiktionary: config.WiktionaryConfig{RESTURL: "http://127.0.0.1:1", APIURL: "http://127.0.0.1:1", Language: "fr", UserAgent: "test"},
		Speech:     config.SpeechConfig{URL: "http://127.0.0.1:1", Language: "fr", Concurrency: 2},
		Etymology:  config.EtymologyConfig{MinLength: 10},
	}
}

func TestNew_WithoutLedger(t *testing.T) {
	a, err := New(context.Background(), testConfig(t))
	require.NoError(t, err)
	defer a.Close()

	assert.IsType(t, ledger.Nop{}, a.Ledger)
	assert.NotNil(t, a.Store)
	assert.NotNil(t, a.Etymology)
	assert.NotNil(t, a.Pronunciation)
	assert.NotNil(t, a.Maintenance)
}

func TestNew_MissingDictionary(t *testing.T) {
	cfg := testConfig(t)
	cfg.Pronunciation.DictPath = filepath.Join(t.TempDir(), "missing.txt")

	_, err := New(context.Background(), cfg)
	assert.Error(t, err)
}

func TestNew_BadLedgerDSN(t *testing.T) {
	cfg := testConfig(t)
	cfg.Ledger = config.LedgerConfig{DSN: "://not a dsn", MaxConns: 1}

	_, err := New(context.Background(), cfg)
	assert.Error(t, err)
}
