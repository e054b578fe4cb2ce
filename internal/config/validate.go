package config

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/language"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Log.validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	if strings.TrimSpace(c.Dictionary.Root) == "" {
		return fmt.Errorf("dictionary.root must not be empty")
	}
	if err := c.Wiktionary.validate(); err != nil {
		return fmt.Errorf("wiktionary: %w", err)
	}
	if err := c.Speech.validate(); err != nil {
		return fmt.Errorf("speech: %w", err)
	}
	if c.Etymology.MinLength < 0 {
		return fmt.Errorf("etymology.min_length must be >= 0 (got %d)", c.Etymology.MinLength)
	}
	if c.Ledger.Enabled() && c.Ledger.MinConns > c.Ledger.MaxConns {
		return fmt.Errorf("ledger.min_conns (%d) must not exceed ledger.max_conns (%d)", c.Ledger.MinConns, c.Ledger.MaxConns)
	}
	return nil
}

func (l LogConfig) validate() error {
	switch strings.ToLower(l.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("format must be json or text (got %q)", l.Format)
	}
	switch strings.ToLower(l.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown level %q", l.Level)
	}
	return nil
}

func (w WiktionaryConfig) validate() error {
	if err := validateURL(w.RESTURL); err != nil {
		return fmt.Errorf("rest_url: %w", err)
	}
	if err := validateURL(w.APIURL); err != nil {
		return fmt.Errorf("api_url: %w", err)
	}
	if _, err := ParseLanguage(w.Language); err != nil {
		return fmt.Errorf("language: %w", err)
	}
	if strings.TrimSpace(w.UserAgent) == "" {
		return fmt.Errorf("user_agent must not be empty")
	}
	if w.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %s)", w.Timeout)
	}
	if w.PaceInterval < 0 {
		return fmt.Errorf("pace_interval must be >= 0 (got %s)", w.PaceInterval)
	}
	return nil
}

func (s SpeechConfig) validate() error {
	if err := validateURL(s.URL); err != nil {
		return fmt.Errorf("url: %w", err)
	}
	if _, err := ParseLanguage(s.Language); err != nil {
		return fmt.Errorf("language: %w", err)
	}
	if s.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %s)", s.Timeout)
	}
	if s.Concurrency < 1 {
		return fmt.Errorf("concurrency must be >= 1 (got %d)", s.Concurrency)
	}
	return nil
}

// ParseLanguage validates a BCP 47 tag and returns its base language code,
// e.g. "fr-CA" -> "fr".
func ParseLanguage(tag string) (string, error) {
	t, err := language.Parse(tag)
	if err != nil {
		return "", fmt.Errorf("invalid language tag %q: %w", tag, err)
	}
	base, _ := t.Base()
	return base.String(), nil
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https (got %q)", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host in %q", raw)
	}
	return nil
}
