// Package wiktionary fetches etymology sources from Wiktionary: prose from
// the REST definition endpoint and raw page markup from the action API.
package wiktionary

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/heartmarshall/dictmeta/internal/config"
	"github.com/heartmarshall/dictmeta/internal/domain"
)

const (
	defaultRESTURL   = "https://fr.wiktionary.org/api/rest_v1"
	defaultAPIURL    = "https://fr.wiktionary.org/w/api.php"
	defaultUserAgent = "AgasophyBot/1.0 (etymology lookup for dictionary project)"
	defaultLanguage  = "fr"
	defaultTimeout   = 10 * time.Second
	retryDelay       = 500 * time.Millisecond
)

// Client talks to one Wiktionary edition.
type Client struct {
	restURL    string
	apiURL     string
	userAgent  string
	language   string
	httpClient *http.Client
	retryDelay time.Duration
	log        *slog.Logger
}

// NewClient creates a Client from the wiktionary config section.
func NewClient(cfg config.WiktionaryConfig, logger *slog.Logger) *Client {
	c := NewClientWithURLs(cfg.RESTURL, cfg.APIURL, logger)
	if cfg.UserAgent != "" {
		c.userAgent = cfg.UserAgent
	}
	if cfg.Language != "" {
		c.language = cfg.Language
	}
	if cfg.Timeout > 0 {
		c.httpClient.Timeout = cfg.Timeout
	}
	return c
}

// NewClientWithURLs creates a Client with custom endpoints (for testing).
// Empty URLs select the French Wiktionary endpoints.
func NewClientWithURLs(restURL, apiURL string, logger *slog.Logger) *Client {
	if restURL == "" {
		restURL = defaultRESTURL
	}
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	return &Client{
		restURL:    strings.TrimRight(restURL, "/"),
		apiURL:     apiURL,
		userAgent:  defaultUserAgent,
		language:   defaultLanguage,
		httpClient: &http.Client{Timeout: defaultTimeout},
		retryDelay: retryDelay,
		log:        logger.With("adapter", "wiktionary"),
	}
}

// FetchDefinitionEtymology returns the first non-empty etymology among the
// entries for the configured language. The text is HTML prose.
// Returns "", nil if the word or the etymology is missing.
func (c *Client) FetchDefinitionEtymology(ctx context.Context, word string) (string, error) {
	word = domain.NormalizeWord(word)
	reqURL := c.restURL + "/page/definition/" + url.PathEscape(word)

	body, found, err := c.get(ctx, reqURL, word)
	if err != nil || !found {
		return "", err
	}

	var resp definitionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("wiktionary: decode definition: %w", err)
	}

	entries, ok := resp[c.language]
	if !ok {
		c.log.DebugContext(ctx, "no entry for language", slog.String("word", word), slog.String("language", c.language))
		return "", nil
	}
	for _, e := range entries {
		if strings.TrimSpace(e.Etymology) != "" {
			return e.Etymology, nil
		}
	}
	return "", nil
}

// FetchWikitext returns the raw markup of the page titled word.
// Returns "", nil if the page does not exist.
func (c *Client) FetchWikitext(ctx context.Context, word string) (string, error) {
	word = domain.NormalizeWord(word)

	q := url.Values{}
	q.Set("action", "parse")
	q.Set("page", word)
	q.Set("prop", "wikitext")
	q.Set("format", "json")
	reqURL := c.apiURL + "?" + q.Encode()

	body, found, err := c.get(ctx, reqURL, word)
	if err != nil || !found {
		return "", err
	}

	var resp parseResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("wiktionary: decode parse: %w", err)
	}
	if resp.Error != nil {
		c.log.DebugContext(ctx, "parse api error",
			slog.String("word", word),
			slog.String("code", resp.Error.Code),
		)
		return "", nil
	}
	if resp.Parse == nil {
		return "", nil
	}
	return resp.Parse.Wikitext.Content, nil
}

// get performs a GET and returns the body. found is false on HTTP 404.
func (c *Client) get(ctx context.Context, reqURL, word string) ([]byte, bool, error) {
	c.log.DebugContext(ctx, "wiktionary request", slog.String("word", word), slog.String("url", reqURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, false, fmt.Errorf("wiktionary: create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.doWithRetry(ctx, req, word)
	if err != nil {
		c.log.ErrorContext(ctx, "wiktionary request failed", slog.String("word", word), slog.String("error", err.Error()))
		return nil, false, fmt.Errorf("wiktionary: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		c.log.DebugContext(ctx, "word not found", slog.String("word", word))
		return nil, false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("wiktionary: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, fmt.Errorf("wiktionary: read body: %w", err)
	}
	return body, true, nil
}

// doWithRetry executes the request with a single retry on 5xx or network errors.
func (c *Client) doWithRetry(ctx context.Context, req *http.Request, word string) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}
	if ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	c.log.WarnContext(ctx, "wiktionary retry", slog.String("word", word), slog.String("reason", reason))

	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(c.retryDelay):
	}

	return c.httpClient.Do(req)
}
