package tts

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/heartmarshall/dictmeta/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(url string) *Client {
	c := NewClientWithURL(url, newTestLogger())
	c.retryDelay = time.Millisecond
	return c
}

func TestClient_Synthesize_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "UTF-8", q.Get("ie"))
		assert.Equal(t, "tw-ob", q.Get("client"))
		assert.Equal(t, "fr", q.Get("tl"))
		assert.Equal(t, "arc-en-ciel", q.Get("q"))
		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte("ID3fake-mp3"))
	}))
	defer srv.Close()

	audio, err := newTestClient(srv.URL).Synthesize(context.Background(), " arc-en-ciel ", "fr")
	require.NoError(t, err)
	assert.Equal(t, []byte("ID3fake-mp3"), audio)
}

func TestClient_Synthesize_EmptyBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Synthesize(context.Background(), "chaos", "fr")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty audio")
}

func TestClient_Synthesize_Non200(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Synthesize(context.Background(), "chaos", "fr")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 429")
}

func TestClient_Synthesize_RetryOn5xx(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte("mp3"))
	}))
	defer srv.Close()

	audio, err := newTestClient(srv.URL).Synthesize(context.Background(), "chaos", "fr")
	require.NoError(t, err)
	assert.Equal(t, []byte("mp3"), audio)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_Synthesize_Validation(t *testing.T) {
	t.Parallel()

	c := NewClientWithURL("http://unused.invalid", newTestLogger())

	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"blank", "   "},
		{"too long", strings.Repeat("a", maxTextRunes+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Synthesize(context.Background(), tt.text, "fr")
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrValidation))
		})
	}
}
