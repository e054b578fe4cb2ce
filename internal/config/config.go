package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Log           LogConfig           `yaml:"log"`
	Dictionary    DictionaryConfig    `yaml:"dictionary"`
	Wiktionary    WiktionaryConfig    `yaml:"wiktionary"`
	Speech        SpeechConfig        `yaml:"speech"`
	Pronunciation PronunciationConfig `yaml:"pronunciation"`
	Etymology     EtymologyConfig     `yaml:"etymology"`
	Ledger        LedgerConfig        `yaml:"ledger"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// DictionaryConfig locates the Markdown entries and their audio files.
type DictionaryConfig struct {
	Root           string `yaml:"root"             env:"DICT_ROOT"             env-default:"_dictionary"`
	AudioDir       string `yaml:"audio_dir"        env:"DICT_AUDIO_DIR"        env-default:"assets/audio"`
	AudioURLPrefix string `yaml:"audio_url_prefix" env:"DICT_AUDIO_URL_PREFIX" env-default:"/assets/audio"`
	OverrideField  string `yaml:"override_field"   env:"DICT_OVERRIDE_FIELD"   env-default:"etymology_alt"`
}

// WiktionaryConfig holds Wiktionary API settings.
type WiktionaryConfig struct {
	RESTURL      string        `yaml:"rest_url"      env:"WIKTIONARY_REST_URL"      env-default:"https://fr.wiktionary.org/api/rest_v1"`
	APIURL       string        `yaml:"api_url"       env:"WIKTIONARY_API_URL"       env-default:"https://fr.wiktionary.org/w/api.php"`
	Language     string        `yaml:"language"      env:"WIKTIONARY_LANGUAGE"      env-default:"fr"`
	UserAgent    string        `yaml:"user_agent"    env:"WIKTIONARY_USER_AGENT"    env-default:"AgasophyBot/1.0 (etymology lookup for dictionary project)"`
	Timeout      time.Duration `yaml:"timeout"       env:"WIKTIONARY_TIMEOUT"       env-default:"10s"`
	PaceInterval time.Duration `yaml:"pace_interval" env:"WIKTIONARY_PACE_INTERVAL" env-default:"1s"`
}

// SpeechConfig holds text-to-speech settings.
type SpeechConfig struct {
	URL         string        `yaml:"url"         env:"SPEECH_URL"         env-default:"https://translate.google.com/translate_tts"`
	Language    string        `yaml:"language"    env:"SPEECH_LANGUAGE"    env-default:"fr"`
	Timeout     time.Duration `yaml:"timeout"     env:"SPEECH_TIMEOUT"     env-default:"15s"`
	Concurrency int           `yaml:"concurrency" env:"SPEECH_CONCURRENCY" env-default:"4"`
}

// PronunciationConfig selects where IPA transcriptions come from.
// DictOnly skips the {{pron}} lookup on Wiktionary pages.
type PronunciationConfig struct {
	DictPath      string `yaml:"dict_path"       env:"PRON_DICT_PATH"`
	FinalDictPath string `yaml:"final_dict_path" env:"PRON_FINAL_DICT_PATH"`
	DictOnly      bool   `yaml:"dict_only"       env:"PRON_DICT_ONLY"       env-default:"false"`
}

// EtymologyConfig holds extraction settings.
// WikitextOnly skips the definition API and parses page markup directly.
type EtymologyConfig struct {
	MinLength    int  `yaml:"min_length"    env:"ETYMOLOGY_MIN_LENGTH"    env-default:"10"`
	WikitextOnly bool `yaml:"wikitext_only" env:"ETYMOLOGY_WIKITEXT_ONLY" env-default:"false"`
}

// LedgerConfig holds the optional PostgreSQL ledger settings.
// An empty DSN disables the ledger.
type LedgerConfig struct {
	DSN             string        `yaml:"dsn"                env:"LEDGER_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"LEDGER_MAX_CONNS"          env-default:"4"`
	MinConns        int32         `yaml:"min_conns"          env:"LEDGER_MIN_CONNS"          env-default:"0"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"LEDGER_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"LEDGER_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// Enabled reports whether a ledger database is configured.
func (c LedgerConfig) Enabled() bool { return c.DSN != "" }
