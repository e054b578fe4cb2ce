// Package tts downloads spoken MP3 renditions of dictionary headwords.
package tts

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/heartmarshall/dictmeta/internal/config"
	"github.com/heartmarshall/dictmeta/internal/domain"
)

const (
	defaultBaseURL = "https://translate.google.com/translate_tts"
	defaultTimeout = 15 * time.Second
	retryDelay     = 500 * time.Millisecond

	// maxTextRunes is the longest text the endpoint accepts in one request.
	maxTextRunes = 200
	// maxAudioBytes caps the response body.
	maxAudioBytes = 4 << 20
)

// Client fetches speech audio from a translate_tts style endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	retryDelay time.Duration
	log        *slog.Logger
}

// NewClient creates a Client from the speech config section.
func NewClient(cfg config.SpeechConfig, logger *slog.Logger) *Client {
	c := NewClientWithURL(cfg.URL, logger)
	if cfg.Timeout > 0 {
		c.httpClient.Timeout = cfg.Timeout
	}
	return c
}

// NewClientWithURL creates a Client with a custom endpoint (for testing).
func NewClientWithURL(baseURL string, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		retryDelay: retryDelay,
		log:        logger.With("adapter", "tts"),
	}
}

// Synthesize returns MP3 audio of text spoken in lang.
func (c *Client) Synthesize(ctx context.Context, text, lang string) ([]byte, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.NewValidationError("text", "required")
	}
	if utf8.RuneCountInString(text) > maxTextRunes {
		return nil, domain.NewValidationError("text", fmt.Sprintf("longer than %d characters", maxTextRunes))
	}

	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("client", "tw-ob")
	q.Set("tl", lang)
	q.Set("q", text)
	reqURL := c.baseURL + "?" + q.Encode()

	c.log.DebugContext(ctx, "tts request", slog.String("text", text), slog.String("lang", lang))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("tts: create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.doWithRetry(ctx, req, text)
	if err != nil {
		c.log.ErrorContext(ctx, "tts request failed", slog.String("text", text), slog.String("error", err.Error()))
		return nil, fmt.Errorf("tts: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tts: unexpected status %d", resp.StatusCode)
	}

	audio, err := io.ReadAll(io.LimitReader(resp.Body, maxAudioBytes))
	if err != nil {
		return nil, fmt.Errorf("tts: read body: %w", err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("tts: empty audio for %q", text)
	}

	c.log.DebugContext(ctx, "tts response", slog.String("text", text), slog.Int("bytes", len(audio)))
	return audio, nil
}

// doWithRetry executes the request with a single retry on 5xx or network errors.
func (c *Client) doWithRetry(ctx context.Context, req *http.Request, text string) (*http.Response, error) {
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
	c.log.WarnContext(ctx, "tts retry", slog.String("text", text), slog.String("reason", reason))

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
